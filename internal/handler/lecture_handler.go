package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/middleware"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
	"github.com/riteshsinghh-coder/maxbytelms/internal/utils"
)

// LectureHandler exposes the lecture publishing endpoints.
type LectureHandler struct {
	service service.LectureService
	logger  zerolog.Logger
}

// NewLectureHandler constructs the handler instance.
func NewLectureHandler(service service.LectureService, logger zerolog.Logger) *LectureHandler {
	return &LectureHandler{
		service: service,
		logger:  logger.With().Str("component", "lecture_handler").Logger(),
	}
}

// Register wires the lecture routes.
func (h *LectureHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Get("", h.list)
}

func (h *LectureHandler) create(c *fiber.Ctx) error {
	var payload dto.LectureCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	lecture, err := h.service.Create(c.UserContext(), payload, middleware.AuthenticatedUID(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to publish lecture")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to publish lecture")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lecture published", lecture)
}

func (h *LectureHandler) list(c *fiber.Ctx) error {
	lectures, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch lectures")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch lectures")
	}
	return utils.SendSuccess(c, "lectures retrieved", lectures)
}
