package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/milestone"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

// ErrScenarioNotFound indicates the requested scenario does not exist.
var ErrScenarioNotFound = errors.New("scenario not found")

// ErrEvaluationNotFound indicates the requested evaluation does not exist.
var ErrEvaluationNotFound = errors.New("evaluation not found")

// EvaluationService covers scenarios, summative evaluations and the
// difficulty recommendation heuristic.
type EvaluationService interface {
	ListScenarios(ctx context.Context) ([]dto.ScenarioResponse, error)
	GetScenario(ctx context.Context, id uint) (dto.ScenarioResponse, error)
	CreateScenario(ctx context.Context, payload dto.ScenarioCreateRequest) (dto.ScenarioResponse, error)
	CreateEvaluation(ctx context.Context, payload dto.EvaluationCreateRequest) (dto.EvaluationResponse, error)
	GetEvaluation(ctx context.Context, id uint) (dto.EvaluationResponse, error)
	ListByScenario(ctx context.Context, scenarioID uint) ([]dto.EvaluationResponse, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dto.EvaluationResponse, error)
	Recommendation(ctx context.Context, scenarioID uint) (dto.RecommendationResponse, error)
}

type evaluationService struct {
	repo      repository.EvaluationRepository
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewEvaluationService builds the evaluation service.
func NewEvaluationService(repo repository.EvaluationRepository, students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		repo:      repo,
		students:  students,
		validator: validate,
		logger:    logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) ListScenarios(ctx context.Context) ([]dto.ScenarioResponse, error) {
	scenarios, err := s.repo.ListScenarios(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewScenarioResponseSlice(scenarios), nil
}

func (s *evaluationService) GetScenario(ctx context.Context, id uint) (dto.ScenarioResponse, error) {
	scenario, err := s.getScenario(ctx, id)
	if err != nil {
		return dto.ScenarioResponse{}, err
	}
	return dto.NewScenarioResponse(scenario), nil
}

func (s *evaluationService) CreateScenario(ctx context.Context, payload dto.ScenarioCreateRequest) (dto.ScenarioResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScenarioResponse{}, err
	}

	scenario := models.Scenario{
		Title:          payload.Title,
		Description:    payload.Description,
		Difficulty:     payload.Difficulty,
		PointThreshold: payload.PointThreshold,
		MaxPoints:      payload.MaxPoints,
	}

	if err := s.repo.CreateScenario(ctx, &scenario); err != nil {
		return dto.ScenarioResponse{}, err
	}

	s.logger.Info().Uint("scenario_id", scenario.ID).Str("difficulty", scenario.Difficulty).Msg("scenario created")

	return dto.NewScenarioResponse(scenario), nil
}

// CreateEvaluation records a group evaluation. Each score passes when it
// reaches the scenario's point threshold and carries no critical-fail flag;
// any critical flag overrides the numeric result.
func (s *evaluationService) CreateEvaluation(ctx context.Context, payload dto.EvaluationCreateRequest) (dto.EvaluationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EvaluationResponse{}, err
	}

	scenario, err := s.getScenario(ctx, payload.ScenarioID)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	evalDate, err := time.Parse(dateLayout, payload.EvalDate)
	if err != nil {
		return dto.EvaluationResponse{}, err
	}

	scores := make([]models.EvaluationScore, 0, len(payload.Scores))
	for _, input := range payload.Scores {
		if _, err := s.students.GetByID(ctx, input.StudentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.EvaluationResponse{}, ErrStudentNotFound
			}
			return dto.EvaluationResponse{}, err
		}

		score := models.EvaluationScore{
			StudentID:             input.StudentID,
			Points:                input.Points,
			MandatorySkillFailure: input.MandatorySkillFailure,
			HarmfulIntervention:   input.HarmfulIntervention,
			UnprofessionalConduct: input.UnprofessionalConduct,
		}
		score.Passed = input.Points >= scenario.PointThreshold && !score.HasCriticalFailure()
		scores = append(scores, score)
	}

	evaluation := models.SummativeEvaluation{
		ScenarioID: scenario.ID,
		EvalDate:   evalDate,
		Evaluator:  payload.Evaluator,
		Notes:      payload.Notes,
		Scores:     scores,
	}

	if err := s.repo.CreateEvaluation(ctx, &evaluation); err != nil {
		return dto.EvaluationResponse{}, err
	}

	s.logger.Info().
		Uint("evaluation_id", evaluation.ID).
		Uint("scenario_id", scenario.ID).
		Int("students", len(scores)).
		Msg("summative evaluation recorded")

	created, err := s.repo.GetEvaluation(ctx, evaluation.ID)
	if err != nil {
		evaluation.Scenario = scenario
		return dto.NewEvaluationResponse(evaluation), nil
	}
	return dto.NewEvaluationResponse(created), nil
}

func (s *evaluationService) GetEvaluation(ctx context.Context, id uint) (dto.EvaluationResponse, error) {
	evaluation, err := s.repo.GetEvaluation(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrEvaluationNotFound
		}
		return dto.EvaluationResponse{}, err
	}
	return dto.NewEvaluationResponse(evaluation), nil
}

func (s *evaluationService) ListByScenario(ctx context.Context, scenarioID uint) ([]dto.EvaluationResponse, error) {
	if _, err := s.getScenario(ctx, scenarioID); err != nil {
		return nil, err
	}

	evaluations, err := s.repo.ListByScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	return dto.NewEvaluationResponseSlice(evaluations), nil
}

func (s *evaluationService) ListByStudent(ctx context.Context, studentID uint) ([]dto.EvaluationResponse, error) {
	evaluations, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return dto.NewEvaluationResponseSlice(evaluations), nil
}

func (s *evaluationService) Recommendation(ctx context.Context, scenarioID uint) (dto.RecommendationResponse, error) {
	scenario, err := s.getScenario(ctx, scenarioID)
	if err != nil {
		return dto.RecommendationResponse{}, err
	}

	stats, err := s.repo.StatsForScenario(ctx, scenarioID)
	if err != nil {
		return dto.RecommendationResponse{}, err
	}

	return dto.RecommendationResponse{
		ScenarioID:     scenario.ID,
		Title:          scenario.Title,
		Difficulty:     scenario.Difficulty,
		Recommendation: milestone.Recommend(stats.PassCount, stats.FailCount, stats.AverageScore, scenario.Difficulty),
	}, nil
}

func (s *evaluationService) getScenario(ctx context.Context, id uint) (models.Scenario, error) {
	scenario, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Scenario{}, ErrScenarioNotFound
		}
		return models.Scenario{}, err
	}
	return scenario, nil
}
