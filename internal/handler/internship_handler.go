package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/service"
	"github.com/emscoord/internship-api/internal/utils"
)

// InternshipHandler wires the internship record endpoints.
type InternshipHandler struct {
	service   service.InternshipService
	clearance service.ClearanceService
	logger    zerolog.Logger
}

// NewInternshipHandler constructs the handler.
func NewInternshipHandler(svc service.InternshipService, clearance service.ClearanceService, logger zerolog.Logger) *InternshipHandler {
	return &InternshipHandler{
		service:   svc,
		clearance: clearance,
		logger:    logger.With().Str("component", "internship_handler").Logger(),
	}
}

// Register attaches internship routes to the router group.
func (h *InternshipHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Patch("/:id/field", h.patchField)
	router.Post("/:id/transition", h.transition)
	router.Put("/:id/extension", h.setExtension)
	router.Get("/:id/clearance", h.getClearance)
}

func (h *InternshipHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	if page <= 0 {
		page = 1
	}

	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	if pageSize <= 0 {
		pageSize = 20
	} else if pageSize > 100 {
		pageSize = 100
	}

	cohortID, err := parseQueryUint(c, "cohort_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid cohort filter")
	}
	agencyID, err := parseQueryUint(c, "agency_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid agency filter")
	}

	req := dto.InternshipListRequest{
		CohortID: cohortID,
		AgencyID: agencyID,
		Phase:    c.Query("phase"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	response, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list internships")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list internships")
	}

	return utils.SendSuccess(c, "internships retrieved", response)
}

func (h *InternshipHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	internship, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch internship")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch internship")
	}

	return utils.SendSuccess(c, "internship retrieved", internship)
}

func (h *InternshipHandler) create(c *fiber.Ctx) error {
	var payload dto.InternshipCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	internship, err := h.service.Create(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case errors.Is(err, service.ErrDuplicateInternship):
			return utils.SendError(c, fiber.StatusConflict, "student already has an internship record")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create internship")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create internship")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "internship created", internship)
}

func (h *InternshipHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.InternshipUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	internship, err := h.service.Update(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update internship")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update internship")
		}
	}

	return utils.SendSuccess(c, "internship updated", internship)
}

func (h *InternshipHandler) patchField(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.InternshipFieldPatchRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	internship, err := h.service.PatchField(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case errors.Is(err, service.ErrUnknownField):
			return utils.SendError(c, fiber.StatusBadRequest, "unknown toggle field")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to toggle internship field")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to toggle internship field")
		}
	}

	return utils.SendSuccess(c, "internship field updated", internship)
}

func (h *InternshipHandler) transition(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.PhaseTransitionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	internship, err := h.service.Transition(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case errors.Is(err, service.ErrInvalidPhase):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid phase")
		case errors.Is(err, service.ErrPhaseRegression):
			return utils.SendError(c, fiber.StatusConflict, "phase cannot move backwards")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to transition internship")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to transition internship")
		}
	}

	return utils.SendSuccess(c, "internship phase updated", internship)
}

func (h *InternshipHandler) setExtension(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ExtensionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	internship, err := h.service.SetExtension(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update extension")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update extension")
		}
	}

	return utils.SendSuccess(c, "extension updated", internship)
}

func (h *InternshipHandler) getClearance(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	clearance, err := h.clearance.Clearance(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute clearance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute clearance")
	}

	return utils.SendSuccess(c, "clearance computed", clearance)
}
