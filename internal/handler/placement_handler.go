package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/service"
	"github.com/emscoord/internship-api/internal/utils"
)

// PlacementHandler wires the placement board and preceptor assignment endpoints.
type PlacementHandler struct {
	service service.PlacementService
	logger  zerolog.Logger
}

// NewPlacementHandler constructs the handler.
func NewPlacementHandler(svc service.PlacementService, logger zerolog.Logger) *PlacementHandler {
	return &PlacementHandler{
		service: svc,
		logger:  logger.With().Str("component", "placement_handler").Logger(),
	}
}

// Register attaches placement routes to the API group.
func (h *PlacementHandler) Register(api fiber.Router) {
	api.Get("/placements", h.board)
	api.Get("/internships/:id/assignments", h.listAssignments)
	api.Post("/internships/:id/assignments", h.assign)
	api.Put("/assignments/:id/end", h.endAssignment)
	api.Delete("/assignments/:id", h.removeAssignment)
}

func (h *PlacementHandler) board(c *fiber.Ctx) error {
	cohortID, err := parseQueryUint(c, "cohort_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid cohort filter")
	}

	rows, err := h.service.Board(c.Context(), cohortID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build placement board")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build placement board")
	}

	return utils.SendSuccess(c, "placement board retrieved", rows)
}

func (h *PlacementHandler) listAssignments(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	assignments, err := h.service.ListAssignments(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrInternshipNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list assignments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list assignments")
	}

	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *PlacementHandler) assign(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	assignment, err := h.service.Assign(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInternshipNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "internship not found")
		case errors.Is(err, service.ErrPreceptorNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "preceptor not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to assign preceptor")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to assign preceptor")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "preceptor assigned", assignment)
}

func (h *PlacementHandler) endAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.AssignmentEndRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	assignment, err := h.service.EndAssignment(c.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAssignmentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to end assignment")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to end assignment")
		}
	}

	return utils.SendSuccess(c, "assignment ended", assignment)
}

func (h *PlacementHandler) removeAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	if err := h.service.RemoveAssignment(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to remove assignment")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove assignment")
	}

	return utils.SendSuccess(c, "assignment removed", fiber.Map{"id": id})
}
