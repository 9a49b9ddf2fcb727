package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/services"
)

func guardedApp(sessions *services.SessionManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			switch apperr.KindOf(err) {
			case apperr.KindUnauthorized:
				return c.SendStatus(fiber.StatusUnauthorized)
			case apperr.KindForbidden:
				return c.SendStatus(fiber.StatusForbidden)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	app.Use(LoadSession(sessions, "user_session"))
	app.Get("/open", func(c *fiber.Ctx) error {
		if sess, ok := SessionFrom(c); ok {
			return c.SendString(sess.UserID)
		}
		return c.SendString("anonymous")
	})
	app.Get("/user", RequireSession(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "user_session", Value: token})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestGuards(t *testing.T) {
	sessions := services.NewSessionManager("secret", time.Hour, "9999999999")
	app := guardedApp(sessions)

	user, _, err := sessions.Issue(&models.User{ID: "u1", Phone: "9876543210", IsVerified: true})
	require.NoError(t, err)
	unverified, _, err := sessions.Issue(&models.User{ID: "u2", Phone: "9876500000"})
	require.NoError(t, err)
	admin, _, err := sessions.Issue(&models.User{ID: "a1", Phone: "9999999999", IsVerified: true})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(t, app, "/open", ""))
	assert.Equal(t, http.StatusOK, get(t, app, "/open", "garbage"))

	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/user", ""))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/user", "garbage"))
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/user", unverified))
	assert.Equal(t, http.StatusOK, get(t, app, "/user", user))

	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/admin", ""))
	assert.Equal(t, http.StatusForbidden, get(t, app, "/admin", user))
	assert.Equal(t, http.StatusOK, get(t, app, "/admin", admin))
}
