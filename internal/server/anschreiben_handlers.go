package server

import (
	"trackwerk/internal/middleware"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
	"trackwerk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateAnschreiben handles POST /api/anschreiben
func (s *Server) CreateAnschreiben(c *fiber.Ctx) error {
	var req service.CreateAnschreibenInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.UserID = middleware.CallerID(c)

	letter, err := s.anschreibenService.Create(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Anschreiben created successfully", fiber.Map{"anschreiben": letter})
}

// GenerateAnschreiben handles POST /api/anschreiben/generate
func (s *Server) GenerateAnschreiben(c *fiber.Ctx) error {
	var req service.GenerateAnschreibenInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.UserID = middleware.CallerID(c)

	letter, err := s.anschreibenService.Generate(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Anschreiben generated successfully", fiber.Map{"anschreiben": letter})
}

// GetAllAnschreiben handles GET /api/anschreiben with an optional isTemplate
// filter.
func (s *Server) GetAllAnschreiben(c *fiber.Ctx) error {
	filter := repository.AnschreibenFilter{
		IsTemplate: queryBoolPtr(c, "isTemplate"),
	}

	letters, err := s.anschreibenService.List(c.UserContext(), middleware.CallerID(c), filter)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{
		"anschreiben": letters,
		"count":       len(letters),
	})
}

// GetAnschreibenStatistics handles GET /api/anschreiben/statistics
func (s *Server) GetAnschreibenStatistics(c *fiber.Ctx) error {
	stats, err := s.anschreibenService.Statistics(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"statistics": stats})
}

// GetAnschreibenByApplication handles GET /api/anschreiben/application/:applicationId
func (s *Server) GetAnschreibenByApplication(c *fiber.Ctx) error {
	applicationID, err := parseID(c, "applicationId")
	if err != nil {
		return nil
	}

	letters, err := s.anschreibenService.GetByApplication(c.UserContext(), middleware.CallerID(c), applicationID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{
		"anschreiben": letters,
		"count":       len(letters),
	})
}

// GetAnschreiben handles GET /api/anschreiben/:id
func (s *Server) GetAnschreiben(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	letter, err := s.anschreibenService.Get(c.UserContext(), middleware.CallerID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"anschreiben": letter})
}

// UpdateAnschreiben handles PUT /api/anschreiben/:id
func (s *Server) UpdateAnschreiben(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateAnschreibenInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	letter, err := s.anschreibenService.Update(c.UserContext(), middleware.CallerID(c), id, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Anschreiben updated successfully", fiber.Map{"anschreiben": letter})
}

// RefineAnschreiben handles POST /api/anschreiben/:id/refine
func (s *Server) RefineAnschreiben(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Instructions string `json:"instructions"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	letter, err := s.anschreibenService.Refine(c.UserContext(), middleware.CallerID(c), id, req.Instructions)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Anschreiben refined successfully", fiber.Map{"anschreiben": letter})
}

// DuplicateAnschreiben handles POST /api/anschreiben/:id/duplicate
func (s *Server) DuplicateAnschreiben(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
	}
	_ = c.BodyParser(&req)

	letter, err := s.anschreibenService.Duplicate(c.UserContext(), middleware.CallerID(c), id, req.Title)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Anschreiben duplicated successfully", fiber.Map{"anschreiben": letter})
}

// DeleteAnschreiben handles DELETE /api/anschreiben/:id
func (s *Server) DeleteAnschreiben(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.anschreibenService.Delete(c.UserContext(), middleware.CallerID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Anschreiben deleted successfully", nil)
}
