package dto

import (
	"time"

	"github.com/emscoord/internship-api/internal/milestone"
	"github.com/emscoord/internship-api/internal/models"
)

// ScenarioCreateRequest defines a new summative testing scenario.
type ScenarioCreateRequest struct {
	Title          string `json:"title" validate:"required,min=3,max=255"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty" validate:"required,oneof=easy moderate hard"`
	PointThreshold int    `json:"point_threshold" validate:"required,gt=0"`
	MaxPoints      int    `json:"max_points" validate:"required,gtefield=PointThreshold"`
}

// ScenarioResponse serializes a scenario.
type ScenarioResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty"`
	PointThreshold int       `json:"point_threshold"`
	MaxPoints      int       `json:"max_points"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewScenarioResponse converts a model into a DTO.
func NewScenarioResponse(model models.Scenario) ScenarioResponse {
	return ScenarioResponse{
		ID:             model.ID,
		Title:          model.Title,
		Description:    model.Description,
		Difficulty:     model.Difficulty,
		PointThreshold: model.PointThreshold,
		MaxPoints:      model.MaxPoints,
		CreatedAt:      model.CreatedAt,
	}
}

// NewScenarioResponseSlice converts a slice of models into DTOs.
func NewScenarioResponseSlice(scenarios []models.Scenario) []ScenarioResponse {
	responses := make([]ScenarioResponse, 0, len(scenarios))
	for _, scenario := range scenarios {
		responses = append(responses, NewScenarioResponse(scenario))
	}
	return responses
}

// ScoreInput is one student's result submitted with an evaluation.
type ScoreInput struct {
	StudentID             uint `json:"student_id" validate:"required"`
	Points                int  `json:"points" validate:"gte=0"`
	MandatorySkillFailure bool `json:"mandatory_skill_failure"`
	HarmfulIntervention   bool `json:"harmful_intervention"`
	UnprofessionalConduct bool `json:"unprofessional_conduct"`
}

// EvaluationCreateRequest records a group evaluation of 1-6 students.
type EvaluationCreateRequest struct {
	ScenarioID uint         `json:"scenario_id" validate:"required"`
	EvalDate   string       `json:"eval_date" validate:"required,datetime=2006-01-02"`
	Evaluator  string       `json:"evaluator" validate:"omitempty,max=128"`
	Notes      string       `json:"notes"`
	Scores     []ScoreInput `json:"scores" validate:"required,min=1,max=6,dive"`
}

// ScoreResponse serializes one student's evaluation result.
type ScoreResponse struct {
	ID                    uint   `json:"id"`
	StudentID             uint   `json:"student_id"`
	StudentName           string `json:"student_name"`
	Points                int    `json:"points"`
	MandatorySkillFailure bool   `json:"mandatory_skill_failure"`
	HarmfulIntervention   bool   `json:"harmful_intervention"`
	UnprofessionalConduct bool   `json:"unprofessional_conduct"`
	Passed                bool   `json:"passed"`
}

// EvaluationResponse serializes a summative evaluation with its scores.
type EvaluationResponse struct {
	ID         uint            `json:"id"`
	ScenarioID uint            `json:"scenario_id"`
	Scenario   string          `json:"scenario"`
	EvalDate   time.Time       `json:"eval_date"`
	Evaluator  string          `json:"evaluator"`
	Notes      string          `json:"notes"`
	Scores     []ScoreResponse `json:"scores"`
}

// NewEvaluationResponse converts a model into a DTO.
func NewEvaluationResponse(model models.SummativeEvaluation) EvaluationResponse {
	scores := make([]ScoreResponse, 0, len(model.Scores))
	for _, score := range model.Scores {
		name := ""
		if score.Student.ID != 0 {
			name = score.Student.FullName()
		}
		scores = append(scores, ScoreResponse{
			ID:                    score.ID,
			StudentID:             score.StudentID,
			StudentName:           name,
			Points:                score.Points,
			MandatorySkillFailure: score.MandatorySkillFailure,
			HarmfulIntervention:   score.HarmfulIntervention,
			UnprofessionalConduct: score.UnprofessionalConduct,
			Passed:                score.Passed,
		})
	}

	return EvaluationResponse{
		ID:         model.ID,
		ScenarioID: model.ScenarioID,
		Scenario:   model.Scenario.Title,
		EvalDate:   model.EvalDate,
		Evaluator:  model.Evaluator,
		Notes:      model.Notes,
		Scores:     scores,
	}
}

// NewEvaluationResponseSlice converts a slice of models into DTOs.
func NewEvaluationResponseSlice(evaluations []models.SummativeEvaluation) []EvaluationResponse {
	responses := make([]EvaluationResponse, 0, len(evaluations))
	for _, evaluation := range evaluations {
		responses = append(responses, NewEvaluationResponse(evaluation))
	}
	return responses
}

// RecommendationResponse wraps the difficulty heuristic output for a scenario.
type RecommendationResponse struct {
	ScenarioID     uint                     `json:"scenario_id"`
	Title          string                   `json:"title"`
	Difficulty     string                   `json:"difficulty"`
	Recommendation milestone.Recommendation `json:"recommendation"`
}
