package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
)

// InternshipFilter narrows internship lists by the coordinator's view filters.
type InternshipFilter struct {
	CohortID *uint
	Phase    string
	Status   string
	AgencyID *uint
	Page     int
	PageSize int
}

// InternshipRepository defines persistence operations for internships.
type InternshipRepository interface {
	List(ctx context.Context, filter InternshipFilter) ([]models.Internship, int64, error)
	ListAll(ctx context.Context) ([]models.Internship, error)
	ListActive(ctx context.Context) ([]models.Internship, error)
	GetByID(ctx context.Context, id uint) (models.Internship, error)
	GetByStudent(ctx context.Context, studentID uint) (models.Internship, error)
	Create(ctx context.Context, internship *models.Internship) error
	Update(ctx context.Context, internship *models.Internship) error
}

type internshipRepository struct {
	db *gorm.DB
}

// NewInternshipRepository instantiates a GORM-backed repository.
func NewInternshipRepository(db *gorm.DB) InternshipRepository {
	return &internshipRepository{db: db}
}

func (r *internshipRepository) List(ctx context.Context, filter InternshipFilter) ([]models.Internship, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Internship{})

	if filter.CohortID != nil {
		query = query.Where("cohort_id = ?", *filter.CohortID)
	}
	if filter.Phase != "" {
		query = query.Where("current_phase = ?", filter.Phase)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.AgencyID != nil {
		query = query.Where("agency_id = ?", *filter.AgencyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var internships []models.Internship
	if err := query.Preload("Student").Order("id ASC").Find(&internships).Error; err != nil {
		return nil, 0, err
	}

	return internships, total, nil
}

func (r *internshipRepository) ListAll(ctx context.Context) ([]models.Internship, error) {
	var internships []models.Internship
	err := r.db.WithContext(ctx).
		Preload("Student").
		Order("id ASC").
		Find(&internships).Error
	if err != nil {
		return nil, err
	}
	return internships, nil
}

func (r *internshipRepository) ListActive(ctx context.Context) ([]models.Internship, error) {
	var internships []models.Internship
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("current_phase <> ?", models.PhaseCompleted).
		Order("id ASC").
		Find(&internships).Error
	if err != nil {
		return nil, err
	}
	return internships, nil
}

func (r *internshipRepository) GetByID(ctx context.Context, id uint) (models.Internship, error) {
	var internship models.Internship
	if err := r.db.WithContext(ctx).Preload("Student").First(&internship, id).Error; err != nil {
		return models.Internship{}, err
	}
	return internship, nil
}

func (r *internshipRepository) GetByStudent(ctx context.Context, studentID uint) (models.Internship, error) {
	var internship models.Internship
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		First(&internship).Error
	if err != nil {
		return models.Internship{}, err
	}
	return internship, nil
}

func (r *internshipRepository) Create(ctx context.Context, internship *models.Internship) error {
	return r.db.WithContext(ctx).Create(internship).Error
}

// Update persists the whole record. Concurrent edits are not reconciled; the
// later save wins.
func (r *internshipRepository) Update(ctx context.Context, internship *models.Internship) error {
	return r.db.WithContext(ctx).Save(internship).Error
}
