package dto

import (
	"time"

	"github.com/emscoord/internship-api/internal/milestone"
)

// AlertDashboardResponse is the classified alert view over active internships.
type AlertDashboardResponse struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Total       int                 `json:"total_records"`
	Alerts      milestone.Partition `json:"alerts"`
	CacheHit    bool                `json:"cache_hit"`
}

// ReminderRunResponse reports the outcome of a reminder trigger.
type ReminderRunResponse struct {
	Ran          bool   `json:"ran"`
	Deduplicated bool   `json:"deduplicated"`
	Critical     int    `json:"critical"`
	Action       int    `json:"action"`
	Upcoming     int    `json:"upcoming"`
	DayKey       string `json:"day_key"`
}
