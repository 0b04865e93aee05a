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

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/handler"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/service"
)

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

type mockInternshipService struct {
	listResponse dto.InternshipListResponse
	response     dto.InternshipResponse
	err          error
	lastPatch    dto.InternshipFieldPatchRequest
}

func (m *mockInternshipService) List(context.Context, dto.InternshipListRequest) (dto.InternshipListResponse, error) {
	return m.listResponse, m.err
}

func (m *mockInternshipService) Get(context.Context, uint) (dto.InternshipResponse, error) {
	return m.response, m.err
}

func (m *mockInternshipService) Create(context.Context, dto.InternshipCreateRequest) (dto.InternshipResponse, error) {
	return m.response, m.err
}

func (m *mockInternshipService) Update(context.Context, uint, dto.InternshipUpdateRequest) (dto.InternshipResponse, error) {
	return m.response, m.err
}

func (m *mockInternshipService) PatchField(_ context.Context, _ uint, payload dto.InternshipFieldPatchRequest) (dto.InternshipResponse, error) {
	m.lastPatch = payload
	return m.response, m.err
}

func (m *mockInternshipService) Transition(context.Context, uint, dto.PhaseTransitionRequest) (dto.InternshipResponse, error) {
	return m.response, m.err
}

func (m *mockInternshipService) SetExtension(context.Context, uint, dto.ExtensionRequest) (dto.InternshipResponse, error) {
	return m.response, m.err
}

type mockClearanceService struct {
	response dto.ClearanceResponse
	err      error
}

func (m *mockClearanceService) Clearance(context.Context, uint) (dto.ClearanceResponse, error) {
	return m.response, m.err
}

func newInternshipApp(svc service.InternshipService, clearance service.ClearanceService) *fiber.App {
	app := fiber.New()
	handler.NewInternshipHandler(svc, clearance, testLogger()).Register(app.Group("/api/v1/internships"))
	return app
}

func TestInternshipHandler_GetSuccess(t *testing.T) {
	svc := &mockInternshipService{response: dto.InternshipResponse{ID: 7, StudentID: 3, CurrentPhase: models.PhaseMentorship}}
	app := newInternshipApp(svc, &mockClearanceService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/internships/7", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                   `json:"success"`
		Data    dto.InternshipResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Success)
	require.Equal(t, uint(7), payload.Data.ID)
	require.Equal(t, models.PhaseMentorship, payload.Data.CurrentPhase)
}

func TestInternshipHandler_GetNotFound(t *testing.T) {
	svc := &mockInternshipService{err: service.ErrInternshipNotFound}
	app := newInternshipApp(svc, &mockClearanceService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/internships/404", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestInternshipHandler_GetInvalidID(t *testing.T) {
	app := newInternshipApp(&mockInternshipService{}, &mockClearanceService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/internships/abc", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestInternshipHandler_CreateReturnsCreated(t *testing.T) {
	svc := &mockInternshipService{response: dto.InternshipResponse{ID: 1, StudentID: 5}}
	app := newInternshipApp(svc, &mockClearanceService{})

	body, err := json.Marshal(dto.InternshipCreateRequest{StudentID: 5})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/internships", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestInternshipHandler_CreateDuplicateConflict(t *testing.T) {
	svc := &mockInternshipService{err: service.ErrDuplicateInternship}
	app := newInternshipApp(svc, &mockClearanceService{})

	body, err := json.Marshal(dto.InternshipCreateRequest{StudentID: 5})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/internships", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestInternshipHandler_PatchFieldForwardsPayload(t *testing.T) {
	svc := &mockInternshipService{response: dto.InternshipResponse{ID: 1, BackgroundCheck: true}}
	app := newInternshipApp(svc, &mockClearanceService{})

	body, err := json.Marshal(dto.InternshipFieldPatchRequest{Field: "background_check", Value: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/internships/1/field", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "background_check", svc.lastPatch.Field)
	require.True(t, svc.lastPatch.Value)
}

func TestInternshipHandler_TransitionRegressionConflict(t *testing.T) {
	svc := &mockInternshipService{err: service.ErrPhaseRegression}
	app := newInternshipApp(svc, &mockClearanceService{})

	body, err := json.Marshal(dto.PhaseTransitionRequest{Phase: models.PhasePreInternship})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/internships/1/transition", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestInternshipHandler_ClearanceSuccess(t *testing.T) {
	clearance := &mockClearanceService{response: dto.ClearanceResponse{InternshipID: 3, ExamCleared: true, NotifyEligible: true}}
	app := newInternshipApp(&mockInternshipService{}, clearance)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/internships/3/clearance", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                  `json:"success"`
		Data    dto.ClearanceResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.True(t, payload.Data.ExamCleared)
	require.True(t, payload.Data.NotifyEligible)
}
