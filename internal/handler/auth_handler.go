package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
	"github.com/riteshsinghh-coder/maxbytelms/internal/utils"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler instance.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request payload")
	}
	if payload.UID == "" || payload.Password == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "uid and password are required")
	}

	session, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid uid or password")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}
	return utils.SendSuccess(c, "login successful", session)
}
