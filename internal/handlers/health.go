package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/storage"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	Version       string
	Environment   string
	store         storage.Store
	smsConfigured bool
	demoMode      bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(version, environment string, store storage.Store, smsConfigured, demoMode bool) *HealthHandler {
	return &HealthHandler{
		Version:       version,
		Environment:   environment,
		store:         store,
		smsConfigured: smsConfigured,
		demoMode:      demoMode,
	}
}

// Info describes the service and its collaborators
func (h *HealthHandler) Info(c *fiber.Ctx) error {
	dbStatus := "connected"
	if err := h.store.Ping(c.UserContext()); err != nil {
		dbStatus = "error: " + err.Error()
	}

	return c.JSON(fiber.Map{
		"service":     "Government Jobs Portal API",
		"version":     h.Version,
		"status":      "healthy",
		"environment": h.Environment,
		"storage": fiber.Map{
			"driver": h.store.Name(),
			"status": dbStatus,
		},
		"sms": fiber.Map{
			"configured": h.smsConfigured,
			"demo_mode":  h.demoMode,
		},
	})
}

// Check returns 503 when the store cannot be reached
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	code := fiber.StatusOK
	if err := h.store.Ping(c.UserContext()); err != nil {
		status = "unhealthy"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"version": h.Version,
		"services": fiber.Map{
			"database": status == "healthy",
			"sms":      h.smsConfigured,
		},
	})
}
