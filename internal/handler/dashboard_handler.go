package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/service"
	"github.com/emscoord/internship-api/internal/utils"
)

// DashboardHandler wires the milestone alert dashboard and the reminder trigger.
type DashboardHandler struct {
	dashboard service.DashboardService
	reminders service.ReminderService
	logger    zerolog.Logger
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(dashboard service.DashboardService, reminders service.ReminderService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		reminders: reminders,
		logger:    logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches dashboard routes to the API group.
func (h *DashboardHandler) Register(api fiber.Router) {
	api.Get("/dashboard/alerts", h.alerts)
	api.Post("/reminders/run", h.runReminders)
}

func (h *DashboardHandler) alerts(c *fiber.Ctx) error {
	response, err := h.dashboard.Alerts(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build alert dashboard")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build alert dashboard")
	}

	return utils.SendSuccess(c, "alerts retrieved", response)
}

func (h *DashboardHandler) runReminders(c *fiber.Ctx) error {
	response, err := h.reminders.Run(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("reminder run failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "reminder run failed")
	}

	return utils.SendSuccess(c, "reminder run finished", response)
}
