package models

import "time"

// Internship tracks one student through a single clinical placement cycle.
type Internship struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	StudentID   uint  `gorm:"uniqueIndex;not null" json:"student_id"`
	CohortID    *uint `gorm:"index" json:"cohort_id"`
	AgencyID    *uint `gorm:"index" json:"agency_id"`
	PreceptorID *uint `gorm:"index" json:"preceptor_id"`

	ShiftType    string `gorm:"size:32" json:"shift_type"`
	CurrentPhase string `gorm:"size:32;not null;default:pre_internship" json:"current_phase"`
	Status       string `gorm:"size:32;not null;default:on_track" json:"status"`

	OrientationDate     *time.Time `json:"orientation_date"`
	Phase1StartDate     *time.Time `json:"phase1_start_date"`
	Phase1EvalScheduled *time.Time `json:"phase1_eval_scheduled"`
	Phase1EvalCompleted bool       `gorm:"not null;default:false" json:"phase1_eval_completed"`
	Phase1EvalDate      *time.Time `json:"phase1_eval_date"`
	Phase2StartDate     *time.Time `json:"phase2_start_date"`
	Phase2EvalScheduled *time.Time `json:"phase2_eval_scheduled"`
	Phase2EvalCompleted bool       `gorm:"not null;default:false" json:"phase2_eval_completed"`
	Phase2EvalDate      *time.Time `json:"phase2_eval_date"`
	ExpectedEndDate     *time.Time `json:"expected_end_date"`
	ActualEndDate       *time.Time `json:"actual_end_date"`

	// Phase-1 extension grants a grace window before phase-1 counts as overdue.
	Phase1Extended      bool       `gorm:"not null;default:false" json:"phase1_extended"`
	Phase1ExtendedUntil *time.Time `json:"phase1_extended_until"`
	Phase1ExtensionNote string     `gorm:"type:text" json:"phase1_extension_note"`

	LiabilityFormSigned bool `gorm:"not null;default:false" json:"liability_form_signed"`
	BackgroundCheck     bool `gorm:"not null;default:false" json:"background_check"`
	DrugScreen          bool `gorm:"not null;default:false" json:"drug_screen"`
	Immunizations       bool `gorm:"not null;default:false" json:"immunizations"`
	CPRCurrent          bool `gorm:"not null;default:false" json:"cpr_current"`
	NREMTCleared        bool `gorm:"not null;default:false" json:"nremt_cleared"`

	CloseoutMeetingDate      *time.Time `json:"closeout_meeting_date"`
	CloseoutMeetingCompleted bool       `gorm:"not null;default:false" json:"closeout_meeting_completed"`
	CompletionDate           *time.Time `json:"completion_date"`

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student   Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
	Cohort    *Cohort    `json:"cohort,omitempty"`
	Agency    *Agency    `json:"agency,omitempty"`
	Preceptor *Preceptor `json:"preceptor,omitempty"`
}

const (
	// PhasePreInternship is the state before orientation and placement paperwork clear.
	PhasePreInternship = "pre_internship"
	// PhaseMentorship is phase 1, where the preceptor leads and the student assists.
	PhaseMentorship = "phase_1_mentorship"
	// PhaseEvaluation is phase 2, where the student leads under observation.
	PhaseEvaluation = "phase_2_evaluation"
	// PhaseCompleted marks a certified, closed-out internship.
	PhaseCompleted = "completed"
	// PhaseExtended marks an explicit extension excursion out of the normal sequence.
	PhaseExtended = "extended"
)

const (
	// StatusOnTrack is the default coordinator-facing standing.
	StatusOnTrack = "on_track"
	// StatusAtRisk flags an internship needing coordinator attention.
	StatusAtRisk = "at_risk"
)

var phaseRank = map[string]int{
	PhasePreInternship: 0,
	PhaseMentorship:    1,
	PhaseEvaluation:    2,
	PhaseCompleted:     3,
}

// ValidPhase reports whether the value is a known phase.
func ValidPhase(phase string) bool {
	if phase == PhaseExtended {
		return true
	}
	_, ok := phaseRank[phase]
	return ok
}

// PhaseAdvances reports whether moving from one phase to another respects the
// monotonic ordering. Extension excursions are allowed in either direction.
func PhaseAdvances(from, to string) bool {
	if from == PhaseExtended || to == PhaseExtended {
		return true
	}
	fromRank, ok := phaseRank[from]
	if !ok {
		return false
	}
	toRank, ok := phaseRank[to]
	if !ok {
		return false
	}
	return toRank >= fromRank
}

// IsCompleted reports whether the internship reached its terminal state.
func (i Internship) IsCompleted() bool {
	return i.CurrentPhase == PhaseCompleted
}
