package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
)

// StudentRepository provides access to student records.
type StudentRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Student, error)
	ListByCohort(ctx context.Context, cohortID uint) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	Create(ctx context.Context, student *models.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, activeOnly bool) ([]models.Student, error) {
	query := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) ListByCohort(ctx context.Context, cohortID uint) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Where("cohort_id = ?", cohortID).
		Order("last_name ASC, first_name ASC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return models.Student{}, err
	}
	return student, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

// CohortRepository provides access to cohorts.
type CohortRepository interface {
	List(ctx context.Context) ([]models.Cohort, error)
	GetByID(ctx context.Context, id uint) (models.Cohort, error)
}

type cohortRepository struct {
	db *gorm.DB
}

// NewCohortRepository constructs a cohort repository.
func NewCohortRepository(db *gorm.DB) CohortRepository {
	return &cohortRepository{db: db}
}

func (r *cohortRepository) List(ctx context.Context) ([]models.Cohort, error) {
	var cohorts []models.Cohort
	if err := r.db.WithContext(ctx).Order("start_date DESC").Find(&cohorts).Error; err != nil {
		return nil, err
	}
	return cohorts, nil
}

func (r *cohortRepository) GetByID(ctx context.Context, id uint) (models.Cohort, error) {
	var cohort models.Cohort
	if err := r.db.WithContext(ctx).First(&cohort, id).Error; err != nil {
		return models.Cohort{}, err
	}
	return cohort, nil
}
