package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
)

// ScenarioStats aggregates evaluation outcomes for one scenario.
type ScenarioStats struct {
	PassCount    int
	FailCount    int
	AverageScore float64
}

// EvaluationRepository defines persistence for scenarios and summative evaluations.
type EvaluationRepository interface {
	ListScenarios(ctx context.Context) ([]models.Scenario, error)
	GetScenario(ctx context.Context, id uint) (models.Scenario, error)
	CreateScenario(ctx context.Context, scenario *models.Scenario) error

	CreateEvaluation(ctx context.Context, evaluation *models.SummativeEvaluation) error
	GetEvaluation(ctx context.Context, id uint) (models.SummativeEvaluation, error)
	ListByScenario(ctx context.Context, scenarioID uint) ([]models.SummativeEvaluation, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.SummativeEvaluation, error)
	StatsForScenario(ctx context.Context, scenarioID uint) (ScenarioStats, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates a GORM-backed repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) ListScenarios(ctx context.Context) ([]models.Scenario, error) {
	var scenarios []models.Scenario
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&scenarios).Error; err != nil {
		return nil, err
	}
	return scenarios, nil
}

func (r *evaluationRepository) GetScenario(ctx context.Context, id uint) (models.Scenario, error) {
	var scenario models.Scenario
	if err := r.db.WithContext(ctx).First(&scenario, id).Error; err != nil {
		return models.Scenario{}, err
	}
	return scenario, nil
}

func (r *evaluationRepository) CreateScenario(ctx context.Context, scenario *models.Scenario) error {
	return r.db.WithContext(ctx).Create(scenario).Error
}

// CreateEvaluation persists the evaluation and its scores in one transaction.
func (r *evaluationRepository) CreateEvaluation(ctx context.Context, evaluation *models.SummativeEvaluation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(evaluation).Error
	})
}

func (r *evaluationRepository) GetEvaluation(ctx context.Context, id uint) (models.SummativeEvaluation, error) {
	var evaluation models.SummativeEvaluation
	err := r.db.WithContext(ctx).
		Preload("Scenario").
		Preload("Scores").
		Preload("Scores.Student").
		First(&evaluation, id).Error
	if err != nil {
		return models.SummativeEvaluation{}, err
	}
	return evaluation, nil
}

func (r *evaluationRepository) ListByScenario(ctx context.Context, scenarioID uint) ([]models.SummativeEvaluation, error) {
	var evaluations []models.SummativeEvaluation
	err := r.db.WithContext(ctx).
		Preload("Scenario").
		Preload("Scores").
		Preload("Scores.Student").
		Where("scenario_id = ?", scenarioID).
		Order("eval_date DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *evaluationRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.SummativeEvaluation, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.EvaluationScore{}).
		Where("student_id = ?", studentID).
		Distinct("evaluation_id").
		Pluck("evaluation_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.SummativeEvaluation{}, nil
	}

	var evaluations []models.SummativeEvaluation
	err = r.db.WithContext(ctx).
		Preload("Scenario").
		Preload("Scores").
		Preload("Scores.Student").
		Where("id IN ?", ids).
		Order("eval_date DESC").
		Find(&evaluations).Error
	if err != nil {
		return nil, err
	}
	return evaluations, nil
}

func (r *evaluationRepository) StatsForScenario(ctx context.Context, scenarioID uint) (ScenarioStats, error) {
	var row struct {
		PassCount    int
		FailCount    int
		AverageScore float64
	}

	err := r.db.WithContext(ctx).
		Model(&models.EvaluationScore{}).
		Select(
			"COALESCE(SUM(CASE WHEN passed THEN 1 ELSE 0 END), 0) AS pass_count, "+
				"COALESCE(SUM(CASE WHEN passed THEN 0 ELSE 1 END), 0) AS fail_count, "+
				"COALESCE(AVG(points), 0) AS average_score").
		Joins("JOIN summative_evaluations ON summative_evaluations.id = evaluation_scores.evaluation_id").
		Where("summative_evaluations.scenario_id = ?", scenarioID).
		Scan(&row).Error
	if err != nil {
		return ScenarioStats{}, err
	}

	return ScenarioStats{
		PassCount:    row.PassCount,
		FailCount:    row.FailCount,
		AverageScore: row.AverageScore,
	}, nil
}
