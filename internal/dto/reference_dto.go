package dto

import (
	"time"

	"github.com/emscoord/internship-api/internal/models"
)

// StudentCreateRequest enrolls a student into the tracking tool.
type StudentCreateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=128"`
	LastName  string `json:"last_name" validate:"required,max=128"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	CohortID  *uint  `json:"cohort_id"`
}

// StudentResponse serializes a student.
type StudentResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CohortID  *uint     `json:"cohort_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		FullName:  model.FullName(),
		Email:     model.Email,
		Phone:     model.Phone,
		CohortID:  model.CohortID,
		Active:    model.Active,
		CreatedAt: model.CreatedAt,
	}
}

// NewStudentResponseSlice converts a slice of models into DTOs.
func NewStudentResponseSlice(students []models.Student) []StudentResponse {
	responses := make([]StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, NewStudentResponse(student))
	}
	return responses
}

// CohortResponse serializes a cohort.
type CohortResponse struct {
	ID        uint       `json:"id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// NewCohortResponse converts a model into a DTO.
func NewCohortResponse(model models.Cohort) CohortResponse {
	return CohortResponse{
		ID:        model.ID,
		Name:      model.Name,
		StartDate: model.StartDate,
		EndDate:   model.EndDate,
	}
}

// AgencyResponse serializes an agency.
type AgencyResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	City   string `json:"city"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
}

// NewAgencyResponse converts a model into a DTO.
func NewAgencyResponse(model models.Agency) AgencyResponse {
	return AgencyResponse{
		ID:     model.ID,
		Name:   model.Name,
		City:   model.City,
		Phone:  model.Phone,
		Active: model.Active,
	}
}

// PreceptorCreateRequest registers a new preceptor under an agency.
type PreceptorCreateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=128"`
	LastName  string `json:"last_name" validate:"required,max=128"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=32"`
	AgencyID  *uint  `json:"agency_id"`
}

// PreceptorResponse serializes a preceptor.
type PreceptorResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	AgencyID *uint  `json:"agency_id"`
	Active   bool   `json:"active"`
}

// NewPreceptorResponse converts a model into a DTO.
func NewPreceptorResponse(model models.Preceptor) PreceptorResponse {
	return PreceptorResponse{
		ID:       model.ID,
		FullName: model.FullName(),
		Email:    model.Email,
		Phone:    model.Phone,
		AgencyID: model.AgencyID,
		Active:   model.Active,
	}
}
