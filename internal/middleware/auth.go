package middleware

import (
	"context"

	"trackwerk/internal/auth"
	"trackwerk/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "token"

// extractToken pulls the session token from the request. The session cookie
// takes precedence; the Authorization header is the fallback for API clients.
func extractToken(c *fiber.Ctx) string {
	if cookie := c.Cookies(SessionCookie); cookie != "" {
		return cookie
	}

	header := c.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}

func storePrincipal(c *fiber.Ctx, p auth.Principal) {
	c.Locals("userID", p.UserID)
	c.Locals("userEmail", p.Email)

	ctx := context.WithValue(c.UserContext(), UserIDKey, p.UserID)
	c.SetUserContext(ctx)
}

// AuthRequired enforces authentication for protected routes. On success the
// caller's identity is stored in c.Locals("userID") and the request context.
func AuthRequired(mgr *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return models.RespondWithError(c, models.NewUnauthorizedError("Authentication required"))
		}

		principal, err := mgr.VerifyToken(tokenString)
		if err != nil {
			return models.RespondWithError(c, err)
		}

		storePrincipal(c, principal)
		return c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// but never rejects the request. Handlers behind it must treat a missing
// userID local as an anonymous caller.
func OptionalAuth(mgr *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := extractToken(c); tokenString != "" {
			if principal, err := mgr.VerifyToken(tokenString); err == nil {
				storePrincipal(c, principal)
			}
		}
		return c.Next()
	}
}

// CallerID returns the authenticated user ID stored by AuthRequired.
func CallerID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}
