package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/service"
	"github.com/emscoord/internship-api/internal/utils"
)

// ReferenceHandler serves the lookup data behind the coordinator forms.
type ReferenceHandler struct {
	service service.ReferenceService
	logger  zerolog.Logger
}

// NewReferenceHandler constructs the handler.
func NewReferenceHandler(svc service.ReferenceService, logger zerolog.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		service: svc,
		logger:  logger.With().Str("component", "reference_handler").Logger(),
	}
}

// Register attaches lookup routes to the API group.
func (h *ReferenceHandler) Register(api fiber.Router) {
	api.Get("/students", h.listStudents)
	api.Post("/students", h.createStudent)
	api.Get("/students/:id", h.getStudent)
	api.Get("/cohorts", h.listCohorts)
	api.Get("/cohorts/:id", h.getCohort)
	api.Get("/agencies", h.listAgencies)
	api.Get("/agencies/:id", h.getAgency)
	api.Get("/preceptors", h.listPreceptors)
	api.Post("/preceptors", h.createPreceptor)
	api.Get("/preceptors/:id", h.getPreceptor)
}

func includeInactive(c *fiber.Ctx) bool {
	return strings.EqualFold(c.Query("include_inactive"), "true")
}

func (h *ReferenceHandler) listStudents(c *fiber.Ctx) error {
	students, err := h.service.ListStudents(c.Context(), !includeInactive(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list students")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list students")
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *ReferenceHandler) getStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	student, err := h.service.GetStudent(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch student")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch student")
	}

	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *ReferenceHandler) createStudent(c *fiber.Ctx) error {
	var payload dto.StudentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	student, err := h.service.CreateStudent(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCohortNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "cohort not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to enroll student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to enroll student")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student enrolled", student)
}

func (h *ReferenceHandler) listCohorts(c *fiber.Ctx) error {
	cohorts, err := h.service.ListCohorts(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list cohorts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list cohorts")
	}

	return utils.SendSuccess(c, "cohorts retrieved", cohorts)
}

func (h *ReferenceHandler) getCohort(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	cohort, err := h.service.GetCohort(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCohortNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "cohort not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch cohort")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch cohort")
	}

	return utils.SendSuccess(c, "cohort retrieved", cohort)
}

func (h *ReferenceHandler) listAgencies(c *fiber.Ctx) error {
	agencies, err := h.service.ListAgencies(c.Context(), !includeInactive(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list agencies")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list agencies")
	}

	return utils.SendSuccess(c, "agencies retrieved", agencies)
}

func (h *ReferenceHandler) getAgency(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	agency, err := h.service.GetAgency(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAgencyNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "agency not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch agency")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch agency")
	}

	return utils.SendSuccess(c, "agency retrieved", agency)
}

func (h *ReferenceHandler) getPreceptor(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	preceptor, err := h.service.GetPreceptor(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPreceptorNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "preceptor not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch preceptor")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch preceptor")
	}

	return utils.SendSuccess(c, "preceptor retrieved", preceptor)
}

func (h *ReferenceHandler) listPreceptors(c *fiber.Ctx) error {
	agencyID, err := parseQueryUint(c, "agency_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid agency filter")
	}

	preceptors, err := h.service.ListPreceptors(c.Context(), agencyID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list preceptors")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list preceptors")
	}

	return utils.SendSuccess(c, "preceptors retrieved", preceptors)
}

func (h *ReferenceHandler) createPreceptor(c *fiber.Ctx) error {
	var payload dto.PreceptorCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	preceptor, err := h.service.CreatePreceptor(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAgencyNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "agency not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to register preceptor")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register preceptor")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "preceptor registered", preceptor)
}
