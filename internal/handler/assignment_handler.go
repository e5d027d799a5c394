package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/middleware"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
	"github.com/riteshsinghh-coder/maxbytelms/internal/utils"
)

// AssignmentHandler exposes the assignment submission and retrieval endpoints.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler instance.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register wires the assignment routes.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	var payload dto.AssignmentSubmitRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}

	createdBy := middleware.AuthenticatedUID(c)
	idempotencyKey := strings.TrimSpace(c.Get("Idempotency-Key"))

	result, err := h.service.Submit(c.UserContext(), payload, createdBy, idempotencyKey)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return utils.SendError(c, fiber.StatusBadRequest, validationErr.Violation.Message())
		case errors.Is(err, service.ErrMalformedCourseID):
			return utils.SendError(c, fiber.StatusBadRequest, "One or more selected course ids are invalid.")
		case errors.Is(err, service.ErrSubmissionInFlight):
			return utils.SendError(c, fiber.StatusConflict, "A submission with this idempotency key is already being processed.")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to store assignment")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to store assignment")
		}
	}

	status := fiber.StatusCreated
	if result.Replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.AssignmentSubmitResponse{
		Message:      "Assignment created successfully.",
		AssignmentID: result.AssignmentID,
	})
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	assignments, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch assignments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch assignments")
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	assignment, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch assignment")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch assignment")
	}
	return utils.SendSuccess(c, "assignment retrieved", assignment)
}
