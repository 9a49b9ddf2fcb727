package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/services"
)

const sessionLocal = "session"

// LoadSession parses the session cookie once per request. A missing or invalid cookie
// leaves the request anonymous.
func LoadSession(sessions *services.SessionManager, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(cookieName); token != "" {
			if sess, err := sessions.Parse(token); err == nil {
				c.Locals(sessionLocal, sess)
			}
		}
		return c.Next()
	}
}

// SessionFrom returns the session attached by LoadSession.
func SessionFrom(c *fiber.Ctx) (*services.SessionContext, bool) {
	sess, ok := c.Locals(sessionLocal).(*services.SessionContext)
	return sess, ok && sess != nil
}

// RequireSession rejects requests without a verified session.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFrom(c)
		if !ok {
			return apperr.ErrNotAuthenticated
		}
		if !sess.Verified {
			return apperr.ErrNotVerified
		}
		return c.Next()
	}
}

// RequireAdmin rejects requests whose session is not the admin's.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, ok := SessionFrom(c)
		if !ok {
			return apperr.ErrNotAuthenticated
		}
		if !sess.Admin {
			return apperr.ErrAdminOnly
		}
		return c.Next()
	}
}
