package server

import (
	"strings"

	"trackwerk/internal/middleware"
	"trackwerk/internal/models"
	"trackwerk/internal/repository"
	"trackwerk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateJob handles POST /api/jobs
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var req service.CreateJobInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.UserID = middleware.CallerID(c)

	job, err := s.jobService.Create(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, "Job created successfully", fiber.Map{"job": job})
}

// GetJobs handles GET /api/jobs with filters and pagination.
func (s *Server) GetJobs(c *fiber.Ctx) error {
	filter := repository.JobFilter{
		CompanyName:   c.Query("companyName"),
		PositionTitle: c.Query("positionTitle"),
		Location:      c.Query("location"),
		IsSaved:       queryBoolPtr(c, "isSaved"),
		Page:          c.QueryInt("page", 1),
		Limit:         c.QueryInt("limit", 10),
	}
	if raw := c.Query("techStack"); raw != "" {
		for _, tech := range strings.Split(raw, ",") {
			if tech = strings.TrimSpace(tech); tech != "" {
				filter.TechStack = append(filter.TechStack, tech)
			}
		}
	}

	jobs, pagination, err := s.jobService.List(c.UserContext(), middleware.CallerID(c), filter)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{
		"jobs":       jobs,
		"pagination": pagination,
	})
}

// SearchJobs handles GET /api/jobs/search
func (s *Server) SearchJobs(c *fiber.Ctx) error {
	jobs, err := s.jobService.Search(c.UserContext(), middleware.CallerID(c),
		c.Query("q"), c.QueryInt("limit", 10))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// GetJobStatistics handles GET /api/jobs/statistics
func (s *Server) GetJobStatistics(c *fiber.Ctx) error {
	stats, err := s.jobService.Statistics(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"statistics": stats})
}

// GetJob handles GET /api/jobs/:id
func (s *Server) GetJob(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	job, err := s.jobService.Get(c.UserContext(), middleware.CallerID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"job": job})
}

// UpdateJob handles PUT /api/jobs/:id
func (s *Server) UpdateJob(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.UpdateJobInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	job, err := s.jobService.Update(c.UserContext(), middleware.CallerID(c), id, req)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Job updated successfully", fiber.Map{"job": job})
}

// DeleteJob handles DELETE /api/jobs/:id
func (s *Server) DeleteJob(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.jobService.Delete(c.UserContext(), middleware.CallerID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Job deleted successfully", nil)
}
