// Package milestone contains the pure derivation logic that turns raw
// internship records into coordinator-facing status: per-milestone proximity,
// aggregate alert classification, checklist completion, and the scenario
// difficulty heuristic. Everything here is synchronous, side-effect free and
// deterministic given an explicit reference date.
package milestone

import (
	"math"
	"time"
)

// Status is the proximity state of a single dated milestone.
type Status string

const (
	// StatusComplete means the milestone's completion flag is set.
	StatusComplete Status = "complete"
	// StatusOverdue means the scheduled date has passed without completion.
	StatusOverdue Status = "overdue"
	// StatusDueWeek means the milestone is due within 7 days.
	StatusDueWeek Status = "due_week"
	// StatusDueSoon means the milestone is due within 14 days.
	StatusDueSoon Status = "due_soon"
	// StatusNotSet means no schedule exists or the date is too far out to matter.
	StatusNotSet Status = "not_set"
)

// Midnight truncates a timestamp to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysUntil returns the whole number of days from today's midnight to the
// scheduled instant, rounding partial days up.
func DaysUntil(scheduled, today time.Time) int {
	diff := scheduled.Sub(Midnight(today))
	return int(math.Ceil(diff.Hours() / 24))
}

// Evaluate maps a scheduled date and completion flag to a milestone status.
// A completed milestone is complete regardless of the date, including when no
// date was ever scheduled. A missing or zero date never errors; it collapses
// to not_set.
func Evaluate(scheduled *time.Time, completed bool, today time.Time) Status {
	if completed {
		return StatusComplete
	}
	if scheduled == nil || scheduled.IsZero() {
		return StatusNotSet
	}

	switch days := DaysUntil(*scheduled, today); {
	case days < 0:
		return StatusOverdue
	case days <= 7:
		return StatusDueWeek
	case days <= 14:
		return StatusDueSoon
	default:
		return StatusNotSet
	}
}

// Extension is a phase-1 grace window granted by a coordinator.
type Extension struct {
	Extended bool
	Until    *time.Time
	Reason   string
}

// ActiveOn reports whether the extension covers the given day. An extension
// expiring today is still active.
func (e Extension) ActiveOn(today time.Time) bool {
	if !e.Extended || e.Until == nil || e.Until.IsZero() {
		return false
	}
	return !e.Until.Before(Midnight(today))
}

// EvaluateWithExtension evaluates a phase-1 milestone, suppressing an overdue
// result to not_set while an extension's grace window is active. Once the
// window lapses the overdue status resurfaces.
func EvaluateWithExtension(scheduled *time.Time, completed bool, ext Extension, today time.Time) Status {
	status := Evaluate(scheduled, completed, today)
	if status == StatusOverdue && ext.ActiveOn(today) {
		return StatusNotSet
	}
	return status
}
