package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/handler"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
)

type mockAuthService struct {
	response dto.LoginResponse
	err      error
}

func (m *mockAuthService) Login(_ context.Context, _ dto.LoginRequest) (dto.LoginResponse, error) {
	if m.err != nil {
		return dto.LoginResponse{}, m.err
	}
	return m.response, nil
}

func postLogin(t *testing.T, app *fiber.App, payload dto.LoginRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLoginSuccess(t *testing.T) {
	svc := &mockAuthService{response: dto.LoginResponse{Token: "tok", UID: "MB2024001", Role: "student"}}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))

	resp := postLogin(t, app, dto.LoginRequest{UID: "MB2024001", Password: "secret99"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeBody(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "tok", body.Data.Token)
}

func TestLoginRejectsMissingFields(t *testing.T) {
	svc := &mockAuthService{}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))

	resp := postLogin(t, app, dto.LoginRequest{UID: "MB2024001"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{err: service.ErrInvalidCredentials}
	app := fiber.New()
	handler.NewAuthHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/auth"))

	resp := postLogin(t, app, dto.LoginRequest{UID: "MB2024001", Password: "wrong"})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
