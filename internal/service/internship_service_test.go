package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/models"
)

func newInternshipFixture() (*internshipService, *memoryInternshipRepo, *memoryStudentRepo) {
	repo := newMemoryInternshipRepo()
	students := &memoryStudentRepo{students: []models.Student{
		{ID: 1, FirstName: "Jordan", LastName: "Avery", Email: "jordan@example.com", Active: true},
		{ID: 2, FirstName: "Sam", LastName: "Reyes", Email: "sam@example.com", Active: true},
	}}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewInternshipService(repo, students, validate, testLogger()).(*internshipService)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC) }
	return svc, repo, students
}

func TestInternshipCreateStartsAtPreInternship(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	resp, err := svc.Create(context.Background(), dto.InternshipCreateRequest{
		StudentID:       1,
		ShiftType:       "24h",
		Phase1StartDate: strPtr("2025-04-01"),
		Notes:           "  transfers from day cohort  ",
	})
	require.NoError(t, err)
	require.Equal(t, models.PhasePreInternship, resp.CurrentPhase)
	require.Equal(t, models.StatusOnTrack, resp.Status)
	require.Equal(t, "transfers from day cohort", resp.Notes)
	require.NotNil(t, resp.Phase1StartDate)
	require.Equal(t, time.April, resp.Phase1StartDate.Month())
}

func TestInternshipCreateRejectsUnknownStudent(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	_, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 99})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestInternshipCreateRejectsDuplicate(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	_, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.ErrorIs(t, err, ErrDuplicateInternship)
}

func TestInternshipCreateSanitizesNotes(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	resp, err := svc.Create(context.Background(), dto.InternshipCreateRequest{
		StudentID: 1,
		Notes:     `needs night shifts <script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.NotContains(t, resp.Notes, "<script>")
	require.Contains(t, resp.Notes, "needs night shifts")
}

func TestInternshipUpdateLeavesNilFieldsUntouched(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	created, err := svc.Create(context.Background(), dto.InternshipCreateRequest{
		StudentID: 1,
		ShiftType: "24h",
		Notes:     "original",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, dto.InternshipUpdateRequest{
		Status:              strPtr(models.StatusAtRisk),
		Phase1EvalScheduled: strPtr("2025-03-20"),
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusAtRisk, updated.Status)
	require.Equal(t, "24h", updated.ShiftType)
	require.Equal(t, "original", updated.Notes)
	require.NotNil(t, updated.Phase1EvalScheduled)
}

func TestInternshipPatchFieldTogglesClearance(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	created, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.NoError(t, err)

	patched, err := svc.PatchField(context.Background(), created.ID, dto.InternshipFieldPatchRequest{
		Field: "background_check",
		Value: true,
	})
	require.NoError(t, err)
	require.True(t, patched.BackgroundCheck)

	patched, err = svc.PatchField(context.Background(), created.ID, dto.InternshipFieldPatchRequest{
		Field: "background_check",
		Value: false,
	})
	require.NoError(t, err)
	require.False(t, patched.BackgroundCheck)
}

func TestInternshipPatchFieldEvalCompletionSetsDate(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	created, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.NoError(t, err)

	patched, err := svc.PatchField(context.Background(), created.ID, dto.InternshipFieldPatchRequest{
		Field: "phase1_eval_completed",
		Value: true,
	})
	require.NoError(t, err)
	require.True(t, patched.Phase1EvalCompleted)
	require.NotNil(t, patched.Phase1EvalDate)
	require.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), *patched.Phase1EvalDate)

	patched, err = svc.PatchField(context.Background(), created.ID, dto.InternshipFieldPatchRequest{
		Field: "phase1_eval_completed",
		Value: false,
	})
	require.NoError(t, err)
	require.False(t, patched.Phase1EvalCompleted)
	require.Nil(t, patched.Phase1EvalDate)
}

func TestInternshipPatchFieldRejectsUnknownField(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	created, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.NoError(t, err)

	_, err = svc.PatchField(context.Background(), created.ID, dto.InternshipFieldPatchRequest{
		Field: "current_phase",
		Value: true,
	})
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestInternshipTransitionForwardOnly(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	created, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.NoError(t, err)

	advanced, err := svc.Transition(context.Background(), created.ID, dto.PhaseTransitionRequest{Phase: models.PhaseMentorship})
	require.NoError(t, err)
	require.Equal(t, models.PhaseMentorship, advanced.CurrentPhase)

	_, err = svc.Transition(context.Background(), created.ID, dto.PhaseTransitionRequest{Phase: models.PhasePreInternship})
	require.ErrorIs(t, err, ErrPhaseRegression)

	_, err = svc.Transition(context.Background(), created.ID, dto.PhaseTransitionRequest{Phase: "graduated"})
	require.ErrorIs(t, err, ErrInvalidPhase)
}

func TestInternshipTransitionToCompletedStampsDate(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	created, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.NoError(t, err)

	done, err := svc.Transition(context.Background(), created.ID, dto.PhaseTransitionRequest{Phase: models.PhaseCompleted})
	require.NoError(t, err)
	require.Equal(t, models.PhaseCompleted, done.CurrentPhase)
	require.NotNil(t, done.CompletionDate)
}

func TestInternshipExtensionSetAndClear(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	created, err := svc.Create(context.Background(), dto.InternshipCreateRequest{StudentID: 1})
	require.NoError(t, err)

	extended, err := svc.SetExtension(context.Background(), created.ID, dto.ExtensionRequest{
		Extended: true,
		Until:    strPtr("2025-04-15"),
		Reason:   "needs more airway reps",
	})
	require.NoError(t, err)
	require.True(t, extended.Phase1Extended)
	require.NotNil(t, extended.Phase1ExtendedUntil)
	require.Equal(t, "needs more airway reps", extended.Phase1ExtensionNote)

	cleared, err := svc.SetExtension(context.Background(), created.ID, dto.ExtensionRequest{Extended: false})
	require.NoError(t, err)
	require.False(t, cleared.Phase1Extended)
	require.Nil(t, cleared.Phase1ExtendedUntil)
	require.Empty(t, cleared.Phase1ExtensionNote)
}

func TestInternshipGetUnknownID(t *testing.T) {
	svc, _, _ := newInternshipFixture()

	_, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrInternshipNotFound)
}
