package server

import (
	"trackwerk/internal/middleware"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
	"trackwerk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateApplication handles POST /api/applications
func (s *Server) CreateApplication(c *fiber.Ctx) error {
	var req service.CreateApplicationInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.UserID = middleware.CallerID(c)

	app, err := s.appService.Create(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Application created successfully", fiber.Map{"application": app})
}

// GetApplications handles GET /api/applications with filters and pagination.
func (s *Server) GetApplications(c *fiber.Ctx) error {
	filter := repository.ApplicationFilter{
		Status:        models.ApplicationStatus(c.Query("status")),
		CompanyName:   c.Query("companyName"),
		PositionTitle: c.Query("positionTitle"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
	}

	apps, pagination, err := s.appService.List(c.UserContext(), middleware.CallerID(c), filter)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{
		"applications": apps,
		"pagination":   pagination,
	})
}

// GetApplicationStatistics handles GET /api/applications/statistics
func (s *Server) GetApplicationStatistics(c *fiber.Ctx) error {
	stats, err := s.appService.Statistics(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"statistics": stats})
}

// GetKanban handles GET /api/applications/kanban
func (s *Server) GetKanban(c *fiber.Ctx) error {
	board, err := s.appService.Kanban(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"kanban": board})
}

// GetApplication handles GET /api/applications/:id
func (s *Server) GetApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	app, err := s.appService.Get(c.UserContext(), middleware.CallerID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"application": app})
}

// UpdateApplication handles PUT /api/applications/:id
func (s *Server) UpdateApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateApplicationInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	app, err := s.appService.Update(c.UserContext(), middleware.CallerID(c), id, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Application updated successfully", fiber.Map{"application": app})
}

// UpdateApplicationStatus handles PATCH /api/applications/:id/status
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	app, err := s.appService.UpdateStatus(c.UserContext(), middleware.CallerID(c), id, req.Status)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Application status updated successfully", fiber.Map{"application": app})
}

// DeleteApplication handles DELETE /api/applications/:id
func (s *Server) DeleteApplication(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.appService.Delete(c.UserContext(), middleware.CallerID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Application deleted successfully", nil)
}
