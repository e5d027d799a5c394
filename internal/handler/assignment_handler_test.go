package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/riteshsinghh-coder/maxbytelms/internal/draft"
	"github.com/riteshsinghh-coder/maxbytelms/internal/dto"
	"github.com/riteshsinghh-coder/maxbytelms/internal/handler"
	"github.com/riteshsinghh-coder/maxbytelms/internal/service"
)

type mockAssignmentService struct {
	lastPayload   dto.AssignmentSubmitRequest
	lastCreatedBy string
	lastIdemKey   string
	result        service.SubmitResult
	submitErr     error
	getResponse   dto.AssignmentResponse
	getErr        error
}

func (m *mockAssignmentService) Submit(_ context.Context, payload dto.AssignmentSubmitRequest, createdBy, idempotencyKey string) (service.SubmitResult, error) {
	m.lastPayload = payload
	m.lastCreatedBy = createdBy
	m.lastIdemKey = idempotencyKey
	if m.submitErr != nil {
		return service.SubmitResult{}, m.submitErr
	}
	return m.result, nil
}

func (m *mockAssignmentService) List(_ context.Context) ([]dto.AssignmentResponse, error) {
	return nil, nil
}

func (m *mockAssignmentService) Get(_ context.Context, _ string) (dto.AssignmentResponse, error) {
	if m.getErr != nil {
		return dto.AssignmentResponse{}, m.getErr
	}
	return m.getResponse, nil
}

func newAssignmentApp(svc service.AssignmentService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/assignments", func(c *fiber.Ctx) error {
		c.Locals("user_uid", "ADMIN01")
		return c.Next()
	})
	handler.NewAssignmentHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func postAssignment(t *testing.T, app *fiber.App, body interface{}, headers map[string]string) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assignments", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestAssignmentSubmitCreated(t *testing.T) {
	svc := &mockAssignmentService{result: service.SubmitResult{AssignmentID: "64f0c1"}}
	app := newAssignmentApp(svc)

	payload := dto.AssignmentSubmitRequest{
		SelectedCourseIDs: []string{"64f0aa"},
		Topics:            []dto.TopicPayload{{Title: "Algebra"}},
	}
	resp := postAssignment(t, app, payload, map[string]string{"Idempotency-Key": "key-1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body dto.AssignmentSubmitResponse
	decodeBody(t, resp, &body)
	require.Equal(t, "Assignment created successfully.", body.Message)
	require.Equal(t, "64f0c1", body.AssignmentID)

	require.Equal(t, "ADMIN01", svc.lastCreatedBy)
	require.Equal(t, "key-1", svc.lastIdemKey)
	require.Equal(t, payload.SelectedCourseIDs, svc.lastPayload.SelectedCourseIDs)
}

func TestAssignmentSubmitReplayReturnsOK(t *testing.T) {
	svc := &mockAssignmentService{result: service.SubmitResult{AssignmentID: "64f0c1", Replayed: true}}
	app := newAssignmentApp(svc)

	resp := postAssignment(t, app, dto.AssignmentSubmitRequest{}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.AssignmentSubmitResponse
	decodeBody(t, resp, &body)
	require.Equal(t, "64f0c1", body.AssignmentID)
}

func TestAssignmentSubmitValidationMessageSurfaced(t *testing.T) {
	svc := &mockAssignmentService{submitErr: &service.ValidationError{
		Violation: &draft.Violation{Kind: draft.NoCourseSelected, TopicIndex: -1, QuestionIndex: -1},
	}}
	app := newAssignmentApp(svc)

	resp := postAssignment(t, app, dto.AssignmentSubmitRequest{}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	require.False(t, body.Success)
	require.Equal(t, "Please select at least one course.", body.Message)
}

func TestAssignmentSubmitMalformedCourseID(t *testing.T) {
	svc := &mockAssignmentService{submitErr: service.ErrMalformedCourseID}
	app := newAssignmentApp(svc)

	resp := postAssignment(t, app, dto.AssignmentSubmitRequest{}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAssignmentSubmitIdempotencyConflict(t *testing.T) {
	svc := &mockAssignmentService{submitErr: service.ErrSubmissionInFlight}
	app := newAssignmentApp(svc)

	resp := postAssignment(t, app, dto.AssignmentSubmitRequest{}, nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestAssignmentSubmitInternalError(t *testing.T) {
	svc := &mockAssignmentService{submitErr: errors.New("store offline")}
	app := newAssignmentApp(svc)

	resp := postAssignment(t, app, dto.AssignmentSubmitRequest{}, nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestAssignmentGetNotFound(t *testing.T) {
	svc := &mockAssignmentService{getErr: service.ErrAssignmentNotFound}
	app := newAssignmentApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assignments/64f0c1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
