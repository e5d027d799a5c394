package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
	"github.com/riteshsinghh-coder/maxbytelms/internal/utils"
)

// CourseHandler exposes the course catalog endpoints.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the handler instance.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// RegisterPublic wires the read-only catalog routes.
func (h *CourseHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

// RegisterAdmin wires the catalog management routes.
func (h *CourseHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	course, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create course")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create course")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	courses, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch courses")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch courses")
	}
	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	course, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch course")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch course")
	}
	return utils.SendSuccess(c, "course retrieved", course)
}
