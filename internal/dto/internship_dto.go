package dto

import (
	"time"

	"github.com/emscoord/internship-api/internal/models"
)

// InternshipListRequest defines query filters for listing internships.
type InternshipListRequest struct {
	CohortID *uint
	Phase    string
	Status   string
	AgencyID *uint
	Page     int
	PageSize int
}

// InternshipCreateRequest is the coordinator Setup form payload.
type InternshipCreateRequest struct {
	StudentID       uint    `json:"student_id" validate:"required"`
	CohortID        *uint   `json:"cohort_id"`
	AgencyID        *uint   `json:"agency_id"`
	PreceptorID     *uint   `json:"preceptor_id"`
	ShiftType       string  `json:"shift_type" validate:"omitempty,max=32"`
	OrientationDate *string `json:"orientation_date" validate:"omitempty,datetime=2006-01-02"`
	Phase1StartDate *string `json:"phase1_start_date" validate:"omitempty,datetime=2006-01-02"`
	ExpectedEndDate *string `json:"expected_end_date" validate:"omitempty,datetime=2006-01-02"`
	Notes           string  `json:"notes"`
}

// InternshipUpdateRequest is the full edit-form payload; nil fields stay untouched.
type InternshipUpdateRequest struct {
	CohortID            *uint   `json:"cohort_id"`
	AgencyID            *uint   `json:"agency_id"`
	PreceptorID         *uint   `json:"preceptor_id"`
	ShiftType           *string `json:"shift_type" validate:"omitempty,max=32"`
	Status              *string `json:"status" validate:"omitempty,oneof=on_track at_risk"`
	OrientationDate     *string `json:"orientation_date" validate:"omitempty,datetime=2006-01-02"`
	Phase1StartDate     *string `json:"phase1_start_date" validate:"omitempty,datetime=2006-01-02"`
	Phase1EvalScheduled *string `json:"phase1_eval_scheduled" validate:"omitempty,datetime=2006-01-02"`
	Phase2StartDate     *string `json:"phase2_start_date" validate:"omitempty,datetime=2006-01-02"`
	Phase2EvalScheduled *string `json:"phase2_eval_scheduled" validate:"omitempty,datetime=2006-01-02"`
	ExpectedEndDate     *string `json:"expected_end_date" validate:"omitempty,datetime=2006-01-02"`
	ActualEndDate       *string `json:"actual_end_date" validate:"omitempty,datetime=2006-01-02"`
	CloseoutMeetingDate *string `json:"closeout_meeting_date" validate:"omitempty,datetime=2006-01-02"`
	CompletionDate      *string `json:"completion_date" validate:"omitempty,datetime=2006-01-02"`
	Notes               *string `json:"notes"`
}

// InternshipFieldPatchRequest toggles a single boolean field, or records a
// milestone completion with its date.
type InternshipFieldPatchRequest struct {
	Field string  `json:"field" validate:"required"`
	Value bool    `json:"value"`
	Date  *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// PhaseTransitionRequest moves an internship to a new phase.
type PhaseTransitionRequest struct {
	Phase string `json:"phase" validate:"required"`
}

// ExtensionRequest grants or clears a phase-1 extension.
type ExtensionRequest struct {
	Extended bool    `json:"extended"`
	Until    *string `json:"until" validate:"omitempty,datetime=2006-01-02"`
	Reason   string  `json:"reason" validate:"omitempty,max=500"`
}

// InternshipResponse is the serialized internship returned to clients.
type InternshipResponse struct {
	ID           uint   `json:"id"`
	StudentID    uint   `json:"student_id"`
	StudentName  string `json:"student_name"`
	CohortID     *uint  `json:"cohort_id"`
	AgencyID     *uint  `json:"agency_id"`
	PreceptorID  *uint  `json:"preceptor_id"`
	ShiftType    string `json:"shift_type"`
	CurrentPhase string `json:"current_phase"`
	Status       string `json:"status"`

	OrientationDate     *time.Time `json:"orientation_date"`
	Phase1StartDate     *time.Time `json:"phase1_start_date"`
	Phase1EvalScheduled *time.Time `json:"phase1_eval_scheduled"`
	Phase1EvalCompleted bool       `json:"phase1_eval_completed"`
	Phase1EvalDate      *time.Time `json:"phase1_eval_date"`
	Phase2StartDate     *time.Time `json:"phase2_start_date"`
	Phase2EvalScheduled *time.Time `json:"phase2_eval_scheduled"`
	Phase2EvalCompleted bool       `json:"phase2_eval_completed"`
	Phase2EvalDate      *time.Time `json:"phase2_eval_date"`
	ExpectedEndDate     *time.Time `json:"expected_end_date"`
	ActualEndDate       *time.Time `json:"actual_end_date"`

	Phase1Extended      bool       `json:"phase1_extended"`
	Phase1ExtendedUntil *time.Time `json:"phase1_extended_until"`
	Phase1ExtensionNote string     `json:"phase1_extension_note"`

	LiabilityFormSigned bool `json:"liability_form_signed"`
	BackgroundCheck     bool `json:"background_check"`
	DrugScreen          bool `json:"drug_screen"`
	Immunizations       bool `json:"immunizations"`
	CPRCurrent          bool `json:"cpr_current"`
	NREMTCleared        bool `json:"nremt_cleared"`

	CloseoutMeetingDate      *time.Time `json:"closeout_meeting_date"`
	CloseoutMeetingCompleted bool       `json:"closeout_meeting_completed"`
	CompletionDate           *time.Time `json:"completion_date"`

	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InternshipListResponse wraps a filtered internship page.
type InternshipListResponse struct {
	Items      []InternshipResponse `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
}

// NewInternshipResponse converts a model into a DTO.
func NewInternshipResponse(model models.Internship) InternshipResponse {
	studentName := ""
	if model.Student.ID != 0 {
		studentName = model.Student.FullName()
	}

	return InternshipResponse{
		ID:                       model.ID,
		StudentID:                model.StudentID,
		StudentName:              studentName,
		CohortID:                 model.CohortID,
		AgencyID:                 model.AgencyID,
		PreceptorID:              model.PreceptorID,
		ShiftType:                model.ShiftType,
		CurrentPhase:             model.CurrentPhase,
		Status:                   model.Status,
		OrientationDate:          model.OrientationDate,
		Phase1StartDate:          model.Phase1StartDate,
		Phase1EvalScheduled:      model.Phase1EvalScheduled,
		Phase1EvalCompleted:      model.Phase1EvalCompleted,
		Phase1EvalDate:           model.Phase1EvalDate,
		Phase2StartDate:          model.Phase2StartDate,
		Phase2EvalScheduled:      model.Phase2EvalScheduled,
		Phase2EvalCompleted:      model.Phase2EvalCompleted,
		Phase2EvalDate:           model.Phase2EvalDate,
		ExpectedEndDate:          model.ExpectedEndDate,
		ActualEndDate:            model.ActualEndDate,
		Phase1Extended:           model.Phase1Extended,
		Phase1ExtendedUntil:      model.Phase1ExtendedUntil,
		Phase1ExtensionNote:      model.Phase1ExtensionNote,
		LiabilityFormSigned:      model.LiabilityFormSigned,
		BackgroundCheck:          model.BackgroundCheck,
		DrugScreen:               model.DrugScreen,
		Immunizations:            model.Immunizations,
		CPRCurrent:               model.CPRCurrent,
		NREMTCleared:             model.NREMTCleared,
		CloseoutMeetingDate:      model.CloseoutMeetingDate,
		CloseoutMeetingCompleted: model.CloseoutMeetingCompleted,
		CompletionDate:           model.CompletionDate,
		Notes:                    model.Notes,
		CreatedAt:                model.CreatedAt,
		UpdatedAt:                model.UpdatedAt,
	}
}

// NewInternshipResponseSlice converts a slice of models into DTOs.
func NewInternshipResponseSlice(internships []models.Internship) []InternshipResponse {
	responses := make([]InternshipResponse, 0, len(internships))
	for _, internship := range internships {
		responses = append(responses, NewInternshipResponse(internship))
	}
	return responses
}
