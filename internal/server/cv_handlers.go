package server

import (
	"trackwerk/internal/middleware"
	"trackwerk/internal/models"
	"trackwerk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateCV handles POST /api/cvs
func (s *Server) CreateCV(c *fiber.Ctx) error {
	var req service.CreateCVInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.UserID = middleware.CallerID(c)

	cv, err := s.cvService.Create(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "CV created successfully", fiber.Map{"cv": cv})
}

// GetCVs handles GET /api/cvs
func (s *Server) GetCVs(c *fiber.Ctx) error {
	cvs, err := s.cvService.List(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{
		"cvs":   cvs,
		"count": len(cvs),
	})
}

// GetDefaultCV handles GET /api/cvs/default. Data is null when the user has
// no default CV.
func (s *Server) GetDefaultCV(c *fiber.Ctx) error {
	cv, err := s.cvService.GetDefault(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"cv": cv})
}

// GetCVStatistics handles GET /api/cvs/statistics
func (s *Server) GetCVStatistics(c *fiber.Ctx) error {
	stats, err := s.cvService.Statistics(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"statistics": stats})
}

// GetCV handles GET /api/cvs/:id
func (s *Server) GetCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	cv, err := s.cvService.Get(c.UserContext(), middleware.CallerID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"cv": cv})
}

// UpdateCV handles PUT /api/cvs/:id
func (s *Server) UpdateCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateCVInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	cv, err := s.cvService.Update(c.UserContext(), middleware.CallerID(c), id, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "CV updated successfully", fiber.Map{"cv": cv})
}

// SetDefaultCV handles PATCH /api/cvs/:id/default
func (s *Server) SetDefaultCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	cv, err := s.cvService.SetDefault(c.UserContext(), middleware.CallerID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Default CV updated successfully", fiber.Map{"cv": cv})
}

// DuplicateCV handles POST /api/cvs/:id/duplicate
func (s *Server) DuplicateCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
	}
	// The body is optional; a missing title falls back to "<old> (Copy)".
	_ = c.BodyParser(&req)

	cv, err := s.cvService.Duplicate(c.UserContext(), middleware.CallerID(c), id, req.Title)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "CV duplicated successfully", fiber.Map{"cv": cv})
}

// DeleteCV handles DELETE /api/cvs/:id
func (s *Server) DeleteCV(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.cvService.Delete(c.UserContext(), middleware.CallerID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "CV deleted successfully", nil)
}
