package dto

import (
	"time"

	"github.com/emscoord/internship-api/internal/models"
)

// PlacementRow is one entry on the placement board. Exactly one of Internship
// or Student is set, discriminated by Placed: students without an internship
// record appear as synthetic unplaced rows that are never stored.
type PlacementRow struct {
	Placed     bool                `json:"placed"`
	Internship *InternshipResponse `json:"internship,omitempty"`
	Student    *StudentResponse    `json:"student,omitempty"`
}

// NewPlacedRow wraps an internship as a placement row.
func NewPlacedRow(internship models.Internship) PlacementRow {
	response := NewInternshipResponse(internship)
	return PlacementRow{Placed: true, Internship: &response}
}

// NewUnplacedRow wraps a record-less student as a placement row.
func NewUnplacedRow(student models.Student) PlacementRow {
	response := NewStudentResponse(student)
	return PlacementRow{Placed: false, Student: &response}
}

// AssignmentCreateRequest assigns a preceptor to an internship.
type AssignmentCreateRequest struct {
	PreceptorID uint    `json:"preceptor_id" validate:"required"`
	Role        string  `json:"role" validate:"required,oneof=primary secondary backup"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

// AssignmentEndRequest closes an assignment's time range.
type AssignmentEndRequest struct {
	EndDate *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// AssignmentResponse serializes a preceptor assignment.
type AssignmentResponse struct {
	ID            uint       `json:"id"`
	InternshipID  uint       `json:"internship_id"`
	PreceptorID   uint       `json:"preceptor_id"`
	PreceptorName string     `json:"preceptor_name"`
	Role          string     `json:"role"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Active        bool       `json:"active"`
	CreatedAt     time.Time  `json:"created_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.PreceptorAssignment) AssignmentResponse {
	name := ""
	if model.Preceptor.ID != 0 {
		name = model.Preceptor.FullName()
	}

	return AssignmentResponse{
		ID:            model.ID,
		InternshipID:  model.InternshipID,
		PreceptorID:   model.PreceptorID,
		PreceptorName: name,
		Role:          model.Role,
		StartDate:     model.StartDate,
		EndDate:       model.EndDate,
		Active:        model.Active,
		CreatedAt:     model.CreatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.PreceptorAssignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}
	return responses
}
