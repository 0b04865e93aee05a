package dto

import (
	"encoding/json"
	"time"

	"github.com/emscoord/internship-api/internal/models"
)

// DocumentResponse serializes a closeout document.
type DocumentResponse struct {
	ID           uint      `json:"id"`
	InternshipID uint      `json:"internship_id"`
	DocType      string    `json:"doc_type"`
	FileName     string    `json:"file_name"`
	FileURL      string    `json:"file_url"`
	UploadedBy   string    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewDocumentResponse converts a model into a DTO.
func NewDocumentResponse(model models.CloseoutDocument) DocumentResponse {
	return DocumentResponse{
		ID:           model.ID,
		InternshipID: model.InternshipID,
		DocType:      model.DocType,
		FileName:     model.FileName,
		FileURL:      model.FileURL,
		UploadedBy:   model.UploadedBy,
		CreatedAt:    model.CreatedAt,
	}
}

// NewDocumentResponseSlice converts a slice of models into DTOs.
func NewDocumentResponseSlice(documents []models.CloseoutDocument) []DocumentResponse {
	responses := make([]DocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, NewDocumentResponse(document))
	}
	return responses
}

// SurveyCreateRequest records an exit survey response.
type SurveyCreateRequest struct {
	Respondent string          `json:"respondent" validate:"required,oneof=student preceptor agency"`
	Responses  json.RawMessage `json:"responses" validate:"required"`
}

// SurveyResponse serializes a closeout survey.
type SurveyResponse struct {
	ID           uint            `json:"id"`
	InternshipID uint            `json:"internship_id"`
	Respondent   string          `json:"respondent"`
	Responses    json.RawMessage `json:"responses"`
	SubmittedAt  *time.Time      `json:"submitted_at"`
}

// NewSurveyResponse converts a model into a DTO.
func NewSurveyResponse(model models.CloseoutSurvey) SurveyResponse {
	return SurveyResponse{
		ID:           model.ID,
		InternshipID: model.InternshipID,
		Respondent:   model.Respondent,
		Responses:    json.RawMessage(model.Responses),
		SubmittedAt:  model.SubmittedAt,
	}
}

// NewSurveyResponseSlice converts a slice of models into DTOs.
func NewSurveyResponseSlice(surveys []models.CloseoutSurvey) []SurveyResponse {
	responses := make([]SurveyResponse, 0, len(surveys))
	for _, survey := range surveys {
		responses = append(responses, NewSurveyResponse(survey))
	}
	return responses
}

// VerificationUpsertRequest creates or updates an employment verification.
type VerificationUpsertRequest struct {
	Employer string  `json:"employer" validate:"required,max=255"`
	Position string  `json:"position" validate:"omitempty,max=128"`
	HireDate *string `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Verified bool    `json:"verified"`
}

// VerificationResponse serializes an employment verification.
type VerificationResponse struct {
	ID           uint       `json:"id"`
	InternshipID uint       `json:"internship_id"`
	Employer     string     `json:"employer"`
	Position     string     `json:"position"`
	HireDate     *time.Time `json:"hire_date"`
	Verified     bool       `json:"verified"`
	VerifiedDate *time.Time `json:"verified_date"`
}

// NewVerificationResponse converts a model into a DTO.
func NewVerificationResponse(model models.EmploymentVerification) VerificationResponse {
	return VerificationResponse{
		ID:           model.ID,
		InternshipID: model.InternshipID,
		Employer:     model.Employer,
		Position:     model.Position,
		HireDate:     model.HireDate,
		Verified:     model.Verified,
		VerifiedDate: model.VerifiedDate,
	}
}
