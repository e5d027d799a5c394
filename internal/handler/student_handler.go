package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/middleware"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
	"github.com/riteshsinghh-coder/maxbytelms/internal/utils"
)

// StudentHandler exposes student registration and profile endpoints.
type StudentHandler struct {
	students  service.StudentService
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewStudentHandler constructs the handler instance.
func NewStudentHandler(students service.StudentService, dashboard service.DashboardService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students:  students,
		dashboard: dashboard,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// RegisterAdmin wires the registration and roster routes.
func (h *StudentHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
}

// RegisterStudent wires the self-service profile routes.
func (h *StudentHandler) RegisterStudent(router fiber.Router) {
	router.Patch("/profile", h.updateProfile)
}

func (h *StudentHandler) create(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	student, err := h.students.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to register student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to register student")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student registered", student)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.students.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch students")
	}
	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) updateProfile(c *fiber.Ctx) error {
	uid := middleware.AuthenticatedUID(c)
	if uid == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	student, err := h.students.UpdateProfile(c.UserContext(), uid, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update profile")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}

	h.dashboard.Invalidate(c.UserContext(), uid)
	return utils.SendSuccess(c, "profile updated", student)
}
