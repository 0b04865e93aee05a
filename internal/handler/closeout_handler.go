package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/service"
	"github.com/emscoord/internship-api/internal/utils"
)

// CloseoutHandler wires closeout documents, surveys and employment verification.
type CloseoutHandler struct {
	service service.CloseoutService
	logger  zerolog.Logger
}

// NewCloseoutHandler constructs the handler.
func NewCloseoutHandler(svc service.CloseoutService, logger zerolog.Logger) *CloseoutHandler {
	return &CloseoutHandler{
		service: svc,
		logger:  logger.With().Str("component", "closeout_handler").Logger(),
	}
}

// Register attaches closeout routes to the API group.
func (h *CloseoutHandler) Register(api fiber.Router) {
	api.Get("/internships/:id/closeout", h.summary)
	api.Get("/internships/:id/closeout/documents", h.listDocuments)
	api.Post("/internships/:id/closeout/documents", h.uploadDocument)
	api.Delete("/closeout/documents/:id", h.deleteDocument)
	api.Get("/internships/:id/closeout/surveys", h.listSurveys)
	api.Post("/internships/:id/closeout/surveys", h.createSurvey)
	api.Get("/internships/:id/closeout/verification", h.getVerification)
	api.Put("/internships/:id/closeout/verification", h.saveVerification)
}

func (h *CloseoutHandler) summary(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	summary, err := h.service.Summary(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build closeout summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build closeout summary")
	}

	return utils.SendSuccess(c, "closeout summary retrieved", summary)
}

func (h *CloseoutHandler) listDocuments(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	documents, err := h.service.ListDocuments(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list closeout documents")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list closeout documents")
	}

	return utils.SendSuccess(c, "closeout documents retrieved", documents)
}

func (h *CloseoutHandler) uploadDocument(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	docType := c.FormValue("doc_type")
	uploadedBy := c.FormValue("uploaded_by")

	document, err := h.service.UploadDocument(c.Context(), id, docType, uploadedBy, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case errors.Is(err, service.ErrInvalidDocType):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid document type")
		case errors.Is(err, service.ErrDocumentTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, service.ErrDocumentTypeNotAllowed):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to upload closeout document")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload closeout document")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "closeout document uploaded", document)
}

func (h *CloseoutHandler) deleteDocument(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.DeleteDocument(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "document not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete closeout document")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete closeout document")
	}

	return utils.SendSuccess(c, "closeout document deleted", fiber.Map{"id": id})
}

func (h *CloseoutHandler) listSurveys(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	surveys, err := h.service.ListSurveys(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list closeout surveys")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list closeout surveys")
	}

	return utils.SendSuccess(c, "closeout surveys retrieved", surveys)
}

func (h *CloseoutHandler) createSurvey(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.SurveyCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	survey, err := h.service.CreateSurvey(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record closeout survey")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record closeout survey")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "closeout survey recorded", survey)
}

func (h *CloseoutHandler) getVerification(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	verification, err := h.service.GetVerification(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case errors.Is(err, service.ErrVerificationNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "employment verification not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch employment verification")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch employment verification")
		}
	}

	return utils.SendSuccess(c, "employment verification retrieved", verification)
}

func (h *CloseoutHandler) saveVerification(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.VerificationUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	verification, err := h.service.SaveVerification(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to save employment verification")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save employment verification")
		}
	}

	return utils.SendSuccess(c, "employment verification saved", verification)
}
