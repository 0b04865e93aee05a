package milestone

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func onTrackRecord() Record {
	return Record{
		InternshipID: 7,
		StudentName:  "Dana Reyes",
		Status:       "on_track",
	}
}

func TestClassifyOverduePhase1IsCritical(t *testing.T) {
	rec := onTrackRecord()
	rec.Phase1EvalScheduled = dateIn(-5)

	alerts := Classify(rec, today)
	require.Len(t, alerts, 1)
	require.Equal(t, SeverityCritical, alerts[0].Severity)
	require.Equal(t, "Phase 1 eval overdue", alerts[0].Reason)
}

func TestClassifyPhase2DueSoonIsUpcoming(t *testing.T) {
	rec := onTrackRecord()
	rec.Phase2EvalScheduled = dateIn(10)

	alerts := Classify(rec, today)
	require.Len(t, alerts, 1)
	require.Equal(t, SeverityUpcoming, alerts[0].Severity)
	require.Equal(t, "Phase 2 eval in ~2 weeks", alerts[0].Reason)
}

func TestClassifyAtRiskAppearsOnceDespiteDueSoon(t *testing.T) {
	rec := onTrackRecord()
	rec.Status = "at_risk"
	rec.Phase2EvalScheduled = dateIn(10)

	alerts := Classify(rec, today)
	require.Len(t, alerts, 1)
	require.Equal(t, SeverityAction, alerts[0].Severity)
	require.Equal(t, "At risk status", alerts[0].Reason)
}

func TestClassifyDueWeekBeatsAtRiskReason(t *testing.T) {
	rec := onTrackRecord()
	rec.Status = "at_risk"
	rec.Phase1EvalScheduled = dateIn(3)

	alerts := Classify(rec, today)
	require.Len(t, alerts, 1)
	require.Equal(t, SeverityAction, alerts[0].Severity)
	require.Equal(t, "Phase 1 eval due this week", alerts[0].Reason)
}

func TestClassifyCriticalBeatsEverything(t *testing.T) {
	rec := onTrackRecord()
	rec.Status = "at_risk"
	rec.Phase1EvalScheduled = dateIn(-2)
	rec.Phase2EvalScheduled = dateIn(5)

	alerts := Classify(rec, today)
	require.Len(t, alerts, 1)
	require.Equal(t, SeverityCritical, alerts[0].Severity)
	require.Equal(t, "Phase 1 eval overdue", alerts[0].Reason)
}

func TestClassifyReasonPriorityPhase1First(t *testing.T) {
	rec := onTrackRecord()
	rec.Phase1EvalScheduled = dateIn(-5)
	rec.Phase2EvalScheduled = dateIn(-2)
	rec.ExpectedEndDate = dateIn(-1)

	alerts := Classify(rec, today)
	require.Len(t, alerts, 1)
	require.Equal(t, "Phase 1 eval overdue", alerts[0].Reason)
}

func TestClassifyActiveExtensionAlwaysSurfaces(t *testing.T) {
	rec := onTrackRecord()
	rec.Phase1EvalScheduled = dateIn(-3)
	rec.Phase1Extension = Extension{Extended: true, Until: dateIn(6), Reason: "shift coverage gap"}
	rec.Phase2EvalScheduled = dateIn(30)

	alerts := Classify(rec, today)
	// Overdue is suppressed by the grace window; only the informational entry remains.
	require.Len(t, alerts, 1)
	require.Equal(t, SeverityUpcoming, alerts[0].Severity)
	require.Contains(t, alerts[0].Reason, "Phase 1 extended until")
}

func TestClassifyExtensionEntryAddsToPrimaryAlert(t *testing.T) {
	rec := onTrackRecord()
	rec.Phase1Extension = Extension{Extended: true, Until: dateIn(6)}
	rec.Phase2EvalScheduled = dateIn(-1)

	alerts := Classify(rec, today)
	require.Len(t, alerts, 2)
	require.Equal(t, SeverityCritical, alerts[0].Severity)
	require.Equal(t, "Phase 2 eval overdue", alerts[0].Reason)
	require.Equal(t, SeverityUpcoming, alerts[1].Severity)
}

func TestClassifyQuietRecordYieldsNothing(t *testing.T) {
	rec := onTrackRecord()
	rec.Phase1EvalScheduled = dateIn(40)
	require.Empty(t, Classify(rec, today))
}

func TestClassifyAllIsIdempotent(t *testing.T) {
	records := []Record{
		func() Record {
			rec := onTrackRecord()
			rec.InternshipID = 1
			rec.Phase1EvalScheduled = dateIn(-5)
			return rec
		}(),
		func() Record {
			rec := onTrackRecord()
			rec.InternshipID = 2
			rec.Status = "at_risk"
			return rec
		}(),
		func() Record {
			rec := onTrackRecord()
			rec.InternshipID = 3
			rec.Phase2EvalScheduled = dateIn(10)
			return rec
		}(),
	}

	first := ClassifyAll(records, today)
	second := ClassifyAll(records, today)
	require.Equal(t, first, second)

	require.Len(t, first.Critical, 1)
	require.Len(t, first.Action, 1)
	require.Len(t, first.Upcoming, 1)
	require.Equal(t, uint(1), first.Critical[0].InternshipID)
	require.Equal(t, uint(2), first.Action[0].InternshipID)
	require.Equal(t, uint(3), first.Upcoming[0].InternshipID)
}
