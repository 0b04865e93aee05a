package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/handler"
	"github.com/emscoord/internship-api/internal/milestone"
)

type stubDashboardService struct {
	response dto.AlertDashboardResponse
}

func (s stubDashboardService) Alerts(context.Context) (dto.AlertDashboardResponse, error) {
	return s.response, nil
}

type stubReminderService struct{}

func (stubReminderService) Run(context.Context) (dto.ReminderRunResponse, error) {
	return dto.ReminderRunResponse{}, nil
}

func TestAlertDashboardContract(t *testing.T) {
	schemaPath, err := filepath.Abs(filepath.Join("..", "contracts", "alert_dashboard.schema.json"))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	now := time.Now().UTC()
	response := dto.AlertDashboardResponse{
		GeneratedAt: now,
		Total:       3,
		CacheHit:    false,
		Alerts: milestone.Partition{
			Critical: []milestone.Alert{
				{InternshipID: 1, StudentName: "Jordan Avery", Severity: milestone.SeverityCritical, Reason: "Phase 1 eval overdue"},
			},
			Action: []milestone.Alert{
				{InternshipID: 2, StudentName: "Casey Nguyen", Severity: milestone.SeverityAction, Reason: "Phase 2 eval due within 7 days"},
			},
			Upcoming: []milestone.Alert{},
		},
	}

	svc := stubDashboardService{response: response}
	dashboardHandler := handler.NewDashboardHandler(svc, stubReminderService{}, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(1))
		c.Locals("user_role", "coordinator")
		return c.Next()
	})
	dashboardHandler.Register(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/alerts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
