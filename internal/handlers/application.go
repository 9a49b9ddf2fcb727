package handlers

import (
	"mime/multipart"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/apperr"
	"github.com/Ananth-NQI/govjobs-backend/internal/middleware"
	"github.com/Ananth-NQI/govjobs-backend/internal/models"
	"github.com/Ananth-NQI/govjobs-backend/internal/services"
)

// ApplicationHandler handles job applications
type ApplicationHandler struct {
	apps *services.ApplicationService
}

func NewApplicationHandler(apps *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

// Apply accepts a multipart application form. Text fields carry the personal and
// additional info; each file part is named after its checklist slot. Only file
// metadata is kept.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return apperr.ErrNotAuthenticated
	}

	var form services.ApplicationForm
	if err := c.BodyParser(&form.Personal); err != nil {
		return badBody(err)
	}
	if err := c.BodyParser(&form.Additional); err != nil {
		return badBody(err)
	}

	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		mf, err := c.MultipartForm()
		if err != nil {
			return badBody(err)
		}
		form.Documents = uploadedDocuments(mf)
	}

	res, err := h.apps.Submit(c.UserContext(), sess, c.Params("id"), form)
	if err != nil {
		return err
	}

	body := fiber.Map{
		"message":       "Application submitted successfully",
		"applicationId": res.Application.ID,
		"referenceNo":   res.Application.ReferenceNo,
		"next":          res.Next,
		"amount":        res.Amount,
	}
	if len(res.DocumentErrors) > 0 {
		body["documentErrors"] = res.DocumentErrors
	}
	return c.Status(fiber.StatusCreated).JSON(body)
}

func uploadedDocuments(mf *multipart.Form) []services.UploadedDocument {
	slots := make([]string, 0, len(mf.File))
	for slot := range mf.File {
		slots = append(slots, slot)
	}
	sort.Strings(slots)

	docs := make([]services.UploadedDocument, 0, len(slots))
	for _, slot := range slots {
		files := mf.File[slot]
		if len(files) == 0 {
			continue
		}
		fh := files[len(files)-1]
		docs = append(docs, services.UploadedDocument{
			SlotID: slot,
			Meta: models.DocumentMeta{
				Name: fh.Filename,
				Type: fh.Header.Get(fiber.HeaderContentType),
				Size: fh.Size,
			},
		})
	}
	return docs
}

// ListMine returns the caller's applications
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return apperr.ErrNotAuthenticated
	}
	apps, err := h.apps.ListMine(c.UserContext(), sess)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"applications": apps,
		"count":        len(apps),
	})
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return apperr.ErrNotAuthenticated
	}
	app, err := h.apps.Get(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": app})
}
