package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/milestone"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

// ClearanceService aggregates an internship's checklists and the exam gate.
type ClearanceService interface {
	Clearance(ctx context.Context, internshipID uint) (dto.ClearanceResponse, error)
}

type clearanceService struct {
	internships repository.InternshipRepository
	logger      zerolog.Logger
}

// NewClearanceService builds the checklist aggregator service.
func NewClearanceService(internships repository.InternshipRepository, logger zerolog.Logger) ClearanceService {
	return &clearanceService{
		internships: internships,
		logger:      logger.With().Str("component", "clearance_service").Logger(),
	}
}

func (s *clearanceService) Clearance(ctx context.Context, internshipID uint) (dto.ClearanceResponse, error) {
	internship, err := s.internships.GetByID(ctx, internshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClearanceResponse{}, ErrInternshipNotFound
		}
		return dto.ClearanceResponse{}, err
	}

	placement := milestone.Summarize(PlacementChecklist(internship))
	exam := milestone.Summarize(ExamChecklist(internship))
	phase1 := milestone.Summarize(Phase1Checklist(internship))
	phase2 := milestone.Summarize(Phase2Checklist(internship))
	closeout := milestone.Summarize(CloseoutChecklist(internship))

	cleared := milestone.CombineRequired(placement, exam, phase1, phase2)

	return dto.ClearanceResponse{
		InternshipID:   internship.ID,
		Placement:      placement,
		Exam:           exam,
		Phase1:         phase1,
		Phase2:         phase2,
		Closeout:       closeout,
		ExamCleared:    cleared,
		NotifyEligible: cleared && !internship.NREMTCleared,
	}, nil
}

// PlacementChecklist covers the prerequisites for starting field shifts.
func PlacementChecklist(internship models.Internship) []milestone.Item {
	return []milestone.Item{
		{Key: "liability_form_signed", Label: "Liability form signed", Required: true, Complete: internship.LiabilityFormSigned},
		{Key: "background_check", Label: "Background check passed", Required: true, Complete: internship.BackgroundCheck},
		{Key: "drug_screen", Label: "Drug screen passed", Required: true, Complete: internship.DrugScreen},
		{Key: "immunizations", Label: "Immunizations current", Required: true, Complete: internship.Immunizations},
		{Key: "cpr_current", Label: "CPR card current", Required: true, Complete: internship.CPRCurrent},
		milestone.DateItem("orientation_date", "Agency orientation held", true, internship.OrientationDate != nil),
	}
}

// ExamChecklist covers the certification-exam prerequisites beyond placement.
func ExamChecklist(internship models.Internship) []milestone.Item {
	return []milestone.Item{
		{Key: "phase1_eval_completed", Label: "Phase 1 evaluation completed", Required: true, Complete: internship.Phase1EvalCompleted},
		{Key: "phase2_eval_completed", Label: "Phase 2 evaluation completed", Required: true, Complete: internship.Phase2EvalCompleted},
		milestone.DateItem("actual_end_date", "Internship hours complete", true, internship.ActualEndDate != nil),
	}
}

// Phase1Checklist tracks the mentorship-phase milestones.
func Phase1Checklist(internship models.Internship) []milestone.Item {
	return []milestone.Item{
		milestone.DateItem("phase1_start_date", "Phase 1 started", true, internship.Phase1StartDate != nil),
		milestone.DateItem("phase1_eval_scheduled", "Phase 1 eval scheduled", true, internship.Phase1EvalScheduled != nil),
		{Key: "phase1_eval_completed", Label: "Phase 1 eval completed", Required: true, Complete: internship.Phase1EvalCompleted},
	}
}

// Phase2Checklist tracks the evaluation-phase milestones.
func Phase2Checklist(internship models.Internship) []milestone.Item {
	return []milestone.Item{
		milestone.DateItem("phase2_start_date", "Phase 2 started", true, internship.Phase2StartDate != nil),
		milestone.DateItem("phase2_eval_scheduled", "Phase 2 eval scheduled", true, internship.Phase2EvalScheduled != nil),
		{Key: "phase2_eval_completed", Label: "Phase 2 eval completed", Required: true, Complete: internship.Phase2EvalCompleted},
	}
}

// CloseoutChecklist tracks the terminal administrative steps.
func CloseoutChecklist(internship models.Internship) []milestone.Item {
	return []milestone.Item{
		milestone.DateItem("closeout_meeting_date", "Closeout meeting scheduled", true, internship.CloseoutMeetingDate != nil),
		{Key: "closeout_meeting_completed", Label: "Closeout meeting held", Required: true, Complete: internship.CloseoutMeetingCompleted},
		milestone.DateItem("actual_end_date", "Final shift logged", true, internship.ActualEndDate != nil),
		milestone.DateItem("completion_date", "Completion certified", true, internship.CompletionDate != nil),
	}
}
