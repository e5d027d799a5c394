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

// UploadHandler exposes the profile image upload endpoint.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler instance.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register wires the upload routes.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("/profile-image", h.profileImage)
}

func (h *UploadHandler) profileImage(c *fiber.Ctx) error {
	uid := middleware.AuthenticatedUID(c)
	if uid == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image file is required")
	}

	imageURL, err := h.service.StoreProfileImage(c.UserContext(), uid, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "image exceeds the maximum allowed size")
		case errors.Is(err, service.ErrUnsupportedImage):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "only JPEG, PNG, WebP and GIF images are accepted")
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to store profile image")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to store profile image")
		}
	}
	return utils.SendSuccess(c, "profile image uploaded", dto.UploadResponse{ImageURL: imageURL})
}
