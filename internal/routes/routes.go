package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Ananth-NQI/govjobs-backend/internal/handlers"
	"github.com/Ananth-NQI/govjobs-backend/internal/middleware"
	"github.com/Ananth-NQI/govjobs-backend/internal/services"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
	Payments     *handlers.PaymentHandler
	Admin        *handlers.AdminHandler
}

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, h Handlers, sessions *services.SessionManager, cookieName string) {
	app.Use(middleware.LoadSession(sessions, cookieName))

	app.Get("/", h.Health.Info)
	app.Get("/health", h.Health.Check)

	// ========== AUTH ROUTES ==========
	auth := app.Group("/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/verify", h.Auth.Verify)
	auth.Post("/logout", h.Auth.Logout)
	auth.Get("/session", middleware.RequireSession(), h.Auth.Session)
	auth.Get("/demo-otp", h.Auth.DemoOTP)

	// ========== JOB ROUTES ==========
	jobs := app.Group("/jobs")
	jobs.Get("/", h.Jobs.List)
	jobs.Post("/", middleware.RequireAdmin(), h.Admin.CreateJob)
	jobs.Get("/:id", h.Jobs.Get)
	jobs.Post("/:id/apply", middleware.RequireSession(), h.Applications.Apply)

	// ========== APPLICATION ROUTES ==========
	apps := app.Group("/applications")
	apps.Get("/checklist", h.Jobs.Checklist)
	apps.Get("/", middleware.RequireSession(), h.Applications.ListMine)
	apps.Get("/:id", middleware.RequireSession(), h.Applications.Get)

	// ========== PAYMENT ROUTES ==========
	payments := app.Group("/payments")
	payments.Post("/verify", h.Payments.Verify)
	payments.Get("/:applicationId/instructions", h.Payments.Instructions)

	// ========== ADMIN ROUTES ==========
	admin := app.Group("/admin", middleware.RequireAdmin())
	admin.Get("/jobs", h.Admin.ListJobs)
	admin.Post("/jobs", h.Admin.CreateJob)
	admin.Get("/jobs/:id", h.Admin.GetJob)
	admin.Put("/jobs/:id", h.Admin.UpdateJob)
	admin.Delete("/jobs/:id", h.Admin.DeleteJob)
	admin.Patch("/jobs/:id/toggle", h.Admin.ToggleJob)
	admin.Get("/settings", h.Admin.GetSettings)
	admin.Put("/settings", h.Admin.UpdateSettings)
	admin.Get("/dashboard", h.Admin.Dashboard)
}
