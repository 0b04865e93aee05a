package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
)

// AssignmentRepository defines persistence operations for preceptor assignments.
type AssignmentRepository interface {
	ListByInternship(ctx context.Context, internshipID uint) ([]models.PreceptorAssignment, error)
	GetByID(ctx context.Context, id uint) (models.PreceptorAssignment, error)
	ActivePrimary(ctx context.Context, internshipID uint) (models.PreceptorAssignment, error)
	Create(ctx context.Context, assignment *models.PreceptorAssignment) error
	Update(ctx context.Context, assignment *models.PreceptorAssignment) error
	Delete(ctx context.Context, id uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ListByInternship(ctx context.Context, internshipID uint) ([]models.PreceptorAssignment, error) {
	var assignments []models.PreceptorAssignment
	err := r.db.WithContext(ctx).
		Preload("Preceptor").
		Where("internship_id = ?", internshipID).
		Order("active DESC, created_at DESC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.PreceptorAssignment, error) {
	var assignment models.PreceptorAssignment
	if err := r.db.WithContext(ctx).Preload("Preceptor").First(&assignment, id).Error; err != nil {
		return models.PreceptorAssignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) ActivePrimary(ctx context.Context, internshipID uint) (models.PreceptorAssignment, error) {
	var assignment models.PreceptorAssignment
	err := r.db.WithContext(ctx).
		Where("internship_id = ? AND role = ? AND active = ?", internshipID, models.RolePrimary, true).
		First(&assignment).Error
	if err != nil {
		return models.PreceptorAssignment{}, err
	}
	return assignment, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.PreceptorAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.PreceptorAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PreceptorAssignment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
