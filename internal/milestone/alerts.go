package milestone

import (
	"fmt"
	"time"
)

// Severity buckets an alert for the coordinator dashboard.
type Severity string

const (
	// SeverityCritical means at least one milestone is overdue.
	SeverityCritical Severity = "critical"
	// SeverityAction means something is due within a week or the record is at risk.
	SeverityAction Severity = "action"
	// SeverityUpcoming means something is due within two weeks.
	SeverityUpcoming Severity = "upcoming"
)

// Record is the milestone-relevant projection of an internship.
type Record struct {
	InternshipID uint
	StudentName  string
	Status       string

	Phase1EvalScheduled *time.Time
	Phase1EvalCompleted bool
	Phase2EvalScheduled *time.Time
	Phase2EvalCompleted bool
	ExpectedEndDate     *time.Time

	Phase1Extension Extension
}

// Alert is one dashboard entry for a record.
type Alert struct {
	InternshipID uint     `json:"internship_id"`
	StudentName  string   `json:"student_name"`
	Severity     Severity `json:"severity"`
	Reason       string   `json:"reason"`
}

// Statuses holds the evaluated status of each tracked milestone.
type Statuses struct {
	Phase1 Status `json:"phase1"`
	Phase2 Status `json:"phase2"`
	End    Status `json:"end"`
}

// EvaluateRecord computes the three milestone statuses for a record. Phase 1
// honors the extension grace window.
func EvaluateRecord(rec Record, today time.Time) Statuses {
	return Statuses{
		Phase1: EvaluateWithExtension(rec.Phase1EvalScheduled, rec.Phase1EvalCompleted, rec.Phase1Extension, today),
		Phase2: Evaluate(rec.Phase2EvalScheduled, rec.Phase2EvalCompleted, today),
		End:    Evaluate(rec.ExpectedEndDate, false, today),
	}
}

const statusAtRisk = "at_risk"

// Classify derives the dashboard alerts for one record. A record yields at
// most one primary alert (critical beats action beats upcoming, with reasons
// picked in phase-1, phase-2, end-date priority order) plus an informational
// upcoming entry whenever a phase-1 extension is active, independent of the
// numeric thresholds. Classification is idempotent.
func Classify(rec Record, today time.Time) []Alert {
	statuses := EvaluateRecord(rec, today)
	var alerts []Alert

	if reason := pickReason(statuses, StatusOverdue); reason != "" {
		alerts = append(alerts, newAlert(rec, SeverityCritical, reason))
	} else if reason := actionReason(rec, statuses); reason != "" {
		alerts = append(alerts, newAlert(rec, SeverityAction, reason))
	} else if reason := pickReason(statuses, StatusDueSoon); reason != "" {
		alerts = append(alerts, newAlert(rec, SeverityUpcoming, reason))
	}

	if rec.Phase1Extension.ActiveOn(today) {
		reason := fmt.Sprintf("Phase 1 extended until %s", rec.Phase1Extension.Until.Format("2006-01-02"))
		alerts = append(alerts, newAlert(rec, SeverityUpcoming, reason))
	}

	return alerts
}

// actionReason resolves the single action-severity reason for a record.
// A milestone due this week wins over at-risk standing; either way the record
// surfaces exactly once at this severity.
func actionReason(rec Record, statuses Statuses) string {
	if reason := pickReason(statuses, StatusDueWeek); reason != "" {
		return reason
	}
	if rec.Status == statusAtRisk {
		return "At risk status"
	}
	return ""
}

func pickReason(statuses Statuses, match Status) string {
	reasons := map[Status][3]string{
		StatusOverdue: {"Phase 1 eval overdue", "Phase 2 eval overdue", "Expected end date passed"},
		StatusDueWeek: {"Phase 1 eval due this week", "Phase 2 eval due this week", "Internship ends this week"},
		StatusDueSoon: {"Phase 1 eval in ~2 weeks", "Phase 2 eval in ~2 weeks", "Internship ends in ~2 weeks"},
	}

	set, ok := reasons[match]
	if !ok {
		return ""
	}

	if statuses.Phase1 == match {
		return set[0]
	}
	if statuses.Phase2 == match {
		return set[1]
	}
	if statuses.End == match {
		return set[2]
	}
	return ""
}

func newAlert(rec Record, severity Severity, reason string) Alert {
	return Alert{
		InternshipID: rec.InternshipID,
		StudentName:  rec.StudentName,
		Severity:     severity,
		Reason:       reason,
	}
}

// Partition groups alerts for a record set by severity, preserving record order.
type Partition struct {
	Critical []Alert `json:"critical"`
	Action   []Alert `json:"action"`
	Upcoming []Alert `json:"upcoming"`
}

// ClassifyAll classifies every record and partitions the resulting alerts.
func ClassifyAll(records []Record, today time.Time) Partition {
	partition := Partition{
		Critical: []Alert{},
		Action:   []Alert{},
		Upcoming: []Alert{},
	}

	for _, rec := range records {
		for _, alert := range Classify(rec, today) {
			switch alert.Severity {
			case SeverityCritical:
				partition.Critical = append(partition.Critical, alert)
			case SeverityAction:
				partition.Action = append(partition.Action, alert)
			case SeverityUpcoming:
				partition.Upcoming = append(partition.Upcoming, alert)
			}
		}
	}

	return partition
}
