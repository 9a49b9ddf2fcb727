package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/services"
)

// AdminHandler handles admin operations
type AdminHandler struct {
	admin *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *services.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListJobs returns every job, active or not
func (h *AdminHandler) ListJobs(c *fiber.Ctx) error {
	return c.JSON(h.admin.ListJobs(c.UserContext()))
}

func (h *AdminHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.admin.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": job})
}

func (h *AdminHandler) CreateJob(c *fiber.Ctx) error {
	var in services.JobInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}

	job, err := h.admin.CreateJob(c.UserContext(), in)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"job":     job,
		"message": "Job created successfully",
	})
}

func (h *AdminHandler) UpdateJob(c *fiber.Ctx) error {
	var in services.JobInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}

	job, err := h.admin.UpdateJob(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": job})
}

func (h *AdminHandler) DeleteJob(c *fiber.Ctx) error {
	if err := h.admin.DeleteJob(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Job deleted successfully"})
}

// ToggleJob sets is_active from the body, or flips it when the body is empty
func (h *AdminHandler) ToggleJob(c *fiber.Ctx) error {
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badBody(err)
		}
	}

	job, err := h.admin.ToggleJob(c.UserContext(), c.Params("id"), req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": job})
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.admin.GetSettings(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"settings": settings})
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var in models.AdminSettings
	if err := c.BodyParser(&in); err != nil {
		return badBody(err)
	}

	settings, err := h.admin.ReplaceSettings(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"settings": settings})
}

// Dashboard returns headline counts
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stats": h.admin.Dashboard(c.UserContext())})
}
