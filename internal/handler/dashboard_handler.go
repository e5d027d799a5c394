package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/middleware"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
	"github.com/riteshsinghh-coder/maxbytelms/internal/utils"
)

// DashboardHandler serves the per-student home view.
type DashboardHandler struct {
	service service.DashboardService
	logger  zerolog.Logger
}

// NewDashboardHandler constructs the handler instance.
func NewDashboardHandler(service service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires the dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/dashboard", h.dashboard)
}

func (h *DashboardHandler) dashboard(c *fiber.Ctx) error {
	uid := middleware.AuthenticatedUID(c)
	if uid == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	dashboard, err := h.service.ForStudent(c.UserContext(), uid)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard")
	}
	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}
