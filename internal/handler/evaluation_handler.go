package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/service"
	"github.com/emscoord/internship-api/internal/utils"
)

// EvaluationHandler wires scenarios, summative evaluations and the
// difficulty recommendation endpoint.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(svc service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: svc,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches evaluation routes to the API group.
func (h *EvaluationHandler) Register(api fiber.Router) {
	api.Get("/scenarios", h.listScenarios)
	api.Post("/scenarios", h.createScenario)
	api.Get("/scenarios/:id", h.getScenario)
	api.Get("/scenarios/:id/evaluations", h.listByScenario)
	api.Get("/scenarios/:id/recommendation", h.recommendation)
	api.Post("/evaluations", h.createEvaluation)
	api.Get("/evaluations/:id", h.getEvaluation)
	api.Get("/students/:id/evaluations", h.listByStudent)
}

func (h *EvaluationHandler) listScenarios(c *fiber.Ctx) error {
	scenarios, err := h.service.ListScenarios(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list scenarios")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list scenarios")
	}

	return utils.SendSuccess(c, "scenarios retrieved", scenarios)
}

func (h *EvaluationHandler) createScenario(c *fiber.Ctx) error {
	var payload dto.ScenarioCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	scenario, err := h.service.CreateScenario(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create scenario")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create scenario")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "scenario created", scenario)
}

func (h *EvaluationHandler) getScenario(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	scenario, err := h.service.GetScenario(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrScenarioNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch scenario")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch scenario")
	}

	return utils.SendSuccess(c, "scenario retrieved", scenario)
}

func (h *EvaluationHandler) listByScenario(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	evaluations, err := h.service.ListByScenario(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrScenarioNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list evaluations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list evaluations")
	}

	return utils.SendSuccess(c, "evaluations retrieved", evaluations)
}

func (h *EvaluationHandler) recommendation(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	recommendation, err := h.service.Recommendation(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrScenarioNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute recommendation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute recommendation")
	}

	return utils.SendSuccess(c, "recommendation computed", recommendation)
}

func (h *EvaluationHandler) createEvaluation(c *fiber.Ctx) error {
	var payload dto.EvaluationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	evaluation, err := h.service.CreateEvaluation(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrScenarioNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "scenario not found")
		case errors.Is(err, service.ErrStudentNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "student not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to record evaluation")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to record evaluation")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation recorded", evaluation)
}

func (h *EvaluationHandler) getEvaluation(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	evaluation, err := h.service.GetEvaluation(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEvaluationNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "evaluation not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to fetch evaluation")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch evaluation")
	}

	return utils.SendSuccess(c, "evaluation retrieved", evaluation)
}

func (h *EvaluationHandler) listByStudent(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	evaluations, err := h.service.ListByStudent(c.Context(), id)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list student evaluations")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list student evaluations")
	}

	return utils.SendSuccess(c, "evaluations retrieved", evaluations)
}
