package server

import (
	"time"

	"trackwerk/internal/middleware"
	"trackwerk/internal/models"
	"trackwerk/internal/service"

	"github.com/gofiber/fiber/v2"
)

// setSessionCookie stores the token in the httpOnly session cookie.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	isProduction := s.config.Env == "production" || s.config.Env == "prod"
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(time.Duration(s.config.JWTExpiryDays) * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   isProduction,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, token, err := s.authService.Register(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setSessionCookie(c, token)
	return models.Respond(c, fiber.StatusCreated, "Registration successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	user, token, err := s.authService.Login(c.UserContext(), req)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.setSessionCookie(c, token)
	return models.Respond(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Logout handles POST /api/auth/logout by clearing the session cookie.
func (s *Server) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return models.Respond(c, fiber.StatusOK, "Logout successful", nil)
}

// Me handles GET /api/auth/me
func (s *Server) Me(c *fiber.Ctx) error {
	user, err := s.authService.Me(c.UserContext(), middleware.CallerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "", fiber.Map{"user": user})
}
