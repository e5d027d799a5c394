package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/riteshsinghh-coder/maxbytelms/internal/config"
	"github.com/riteshsinghh-coder/maxbytelms/internal/handler"
	"github.com/riteshsinghh-coder/maxbytelms/internal/middleware"
	"github.com/riteshsinghh-coder/maxbytelms/internal/models"
	"github.com/riteshsinghh-coder/maxbytelms/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	CourseHandler     *handler.CourseHandler
	AssignmentHandler *handler.AssignmentHandler
	StudentHandler    *handler.StudentHandler
	LectureHandler    *handler.LectureHandler
	DashboardHandler  *handler.DashboardHandler
	UploadHandler     *handler.UploadHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("login", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.RegisterPublic(api.Group("/courses"))
		admin := api.Group("/courses", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.CourseHandler.RegisterAdmin(admin)
	}

	if deps.AssignmentHandler != nil {
		assignments := api.Group("/assignments", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.AssignmentHandler.Register(assignments)
	}

	if deps.StudentHandler != nil {
		admin := api.Group("/students", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.StudentHandler.RegisterAdmin(admin)

		self := api.Group("/me", jwtMiddleware)
		deps.StudentHandler.RegisterStudent(self)
	}

	if deps.LectureHandler != nil {
		lectures := api.Group("/lectures", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.LectureHandler.Register(lectures)
	}

	if deps.DashboardHandler != nil {
		student := api.Group("/student", jwtMiddleware)
		deps.DashboardHandler.Register(student)
	}

	if deps.UploadHandler != nil {
		uploads := api.Group("/uploads", jwtMiddleware)
		deps.UploadHandler.Register(uploads)
	}
}
