package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
)

// AgencyRepository provides access to EMS agencies.
type AgencyRepository interface {
	List(ctx context.Context, activeOnly bool) ([]models.Agency, error)
	GetByID(ctx context.Context, id uint) (models.Agency, error)
}

type agencyRepository struct {
	db *gorm.DB
}

// NewAgencyRepository constructs an agency repository.
func NewAgencyRepository(db *gorm.DB) AgencyRepository {
	return &agencyRepository{db: db}
}

func (r *agencyRepository) List(ctx context.Context, activeOnly bool) ([]models.Agency, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var agencies []models.Agency
	if err := query.Find(&agencies).Error; err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *agencyRepository) GetByID(ctx context.Context, id uint) (models.Agency, error) {
	var agency models.Agency
	if err := r.db.WithContext(ctx).First(&agency, id).Error; err != nil {
		return models.Agency{}, err
	}
	return agency, nil
}

// PreceptorRepository provides access to preceptors.
type PreceptorRepository interface {
	List(ctx context.Context, agencyID *uint) ([]models.Preceptor, error)
	GetByID(ctx context.Context, id uint) (models.Preceptor, error)
	Create(ctx context.Context, preceptor *models.Preceptor) error
}

type preceptorRepository struct {
	db *gorm.DB
}

// NewPreceptorRepository constructs a preceptor repository.
func NewPreceptorRepository(db *gorm.DB) PreceptorRepository {
	return &preceptorRepository{db: db}
}

func (r *preceptorRepository) List(ctx context.Context, agencyID *uint) ([]models.Preceptor, error) {
	query := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC")
	if agencyID != nil {
		query = query.Where("agency_id = ?", *agencyID)
	}

	var preceptors []models.Preceptor
	if err := query.Find(&preceptors).Error; err != nil {
		return nil, err
	}
	return preceptors, nil
}

func (r *preceptorRepository) GetByID(ctx context.Context, id uint) (models.Preceptor, error) {
	var preceptor models.Preceptor
	if err := r.db.WithContext(ctx).First(&preceptor, id).Error; err != nil {
		return models.Preceptor{}, err
	}
	return preceptor, nil
}

func (r *preceptorRepository) Create(ctx context.Context, preceptor *models.Preceptor) error {
	return r.db.WithContext(ctx).Create(preceptor).Error
}
