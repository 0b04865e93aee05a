package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/handler"
	"github.com/emscoord/internship-api/internal/service"
)

type mockCloseoutService struct {
	summary      dto.CloseoutSummaryResponse
	document     dto.DocumentResponse
	verification dto.VerificationResponse
	err          error

	lastDocType    string
	lastUploadedBy string
}

func (m *mockCloseoutService) Summary(context.Context, uint) (dto.CloseoutSummaryResponse, error) {
	return m.summary, m.err
}

func (m *mockCloseoutService) ListDocuments(context.Context, uint) ([]dto.DocumentResponse, error) {
	return []dto.DocumentResponse{m.document}, m.err
}

func (m *mockCloseoutService) UploadDocument(_ context.Context, _ uint, docType, uploadedBy string, _ *multipart.FileHeader) (dto.DocumentResponse, error) {
	m.lastDocType = docType
	m.lastUploadedBy = uploadedBy
	return m.document, m.err
}

func (m *mockCloseoutService) DeleteDocument(context.Context, uint) error {
	return m.err
}

func (m *mockCloseoutService) ListSurveys(context.Context, uint) ([]dto.SurveyResponse, error) {
	return nil, m.err
}

func (m *mockCloseoutService) CreateSurvey(context.Context, uint, dto.SurveyCreateRequest) (dto.SurveyResponse, error) {
	return dto.SurveyResponse{}, m.err
}

func (m *mockCloseoutService) GetVerification(context.Context, uint) (dto.VerificationResponse, error) {
	return m.verification, m.err
}

func (m *mockCloseoutService) SaveVerification(context.Context, uint, dto.VerificationUpsertRequest) (dto.VerificationResponse, error) {
	return m.verification, m.err
}

func newCloseoutApp(svc service.CloseoutService) *fiber.App {
	app := fiber.New()
	handler.NewCloseoutHandler(svc, testLogger()).Register(app.Group("/api/v1"))
	return app
}

func uploadRequest(t *testing.T, target, docType string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "eval.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 final evaluation"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("doc_type", docType))
	require.NoError(t, writer.WriteField("uploaded_by", "coordinator"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestCloseoutHandler_UploadDocument(t *testing.T) {
	svc := &mockCloseoutService{document: dto.DocumentResponse{
		ID:           3,
		InternshipID: 7,
		DocType:      "final_eval",
		FileName:     "eval.pdf",
		FileURL:      "https://cdn.example.com/eval.pdf",
	}}
	app := newCloseoutApp(svc)

	resp, err := app.Test(uploadRequest(t, "/api/v1/internships/7/closeout/documents", "final_eval"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "final_eval", svc.lastDocType)
	require.Equal(t, "coordinator", svc.lastUploadedBy)

	var payload struct {
		Success bool                 `json:"success"`
		Data    dto.DocumentResponse `json:"data"`
	}
	decodeResponse(t, resp, &payload)
	require.Equal(t, "https://cdn.example.com/eval.pdf", payload.Data.FileURL)
}

func TestCloseoutHandler_UploadDocumentInvalidType(t *testing.T) {
	svc := &mockCloseoutService{err: service.ErrInvalidDocType}
	app := newCloseoutApp(svc)

	resp, err := app.Test(uploadRequest(t, "/api/v1/internships/7/closeout/documents", "transcript"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCloseoutHandler_UploadDocumentTooLarge(t *testing.T) {
	svc := &mockCloseoutService{err: service.ErrDocumentTooLarge}
	app := newCloseoutApp(svc)

	resp, err := app.Test(uploadRequest(t, "/api/v1/internships/7/closeout/documents", "final_eval"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestCloseoutHandler_UploadDocumentMissingFile(t *testing.T) {
	app := newCloseoutApp(&mockCloseoutService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/internships/7/closeout/documents", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCloseoutHandler_DeleteDocumentNotFound(t *testing.T) {
	svc := &mockCloseoutService{err: service.ErrDocumentNotFound}
	app := newCloseoutApp(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/closeout/documents/99", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCloseoutHandler_GetVerificationNotFound(t *testing.T) {
	svc := &mockCloseoutService{err: service.ErrVerificationNotFound}
	app := newCloseoutApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/internships/7/closeout/verification", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
