package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/services"
	"github.com/Ananth-NQI/govjobs-backend/internal/wizard"
)

// JobHandler serves the public job catalog
type JobHandler struct {
	catalog *services.CatalogService
}

func NewJobHandler(catalog *services.CatalogService) *JobHandler {
	return &JobHandler{catalog: catalog}
}

// List returns open jobs, tagged with where they were read from
func (h *JobHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.catalog.ListActive(c.UserContext()))
}

func (h *JobHandler) Get(c *fiber.Ctx) error {
	job, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": job})
}

// Checklist lists the documents an application must carry
func (h *JobHandler) Checklist(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"documents":   wizard.Checklist(),
		"maxFileSize": wizard.MaxDocumentSize,
	})
}
