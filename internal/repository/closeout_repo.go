package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/models"
)

// CloseoutRepository defines persistence for closeout satellite entities.
type CloseoutRepository interface {
	ListDocuments(ctx context.Context, internshipID uint) ([]models.CloseoutDocument, error)
	CreateDocument(ctx context.Context, document *models.CloseoutDocument) error
	DeleteDocument(ctx context.Context, id uint) error

	ListSurveys(ctx context.Context, internshipID uint) ([]models.CloseoutSurvey, error)
	CreateSurvey(ctx context.Context, survey *models.CloseoutSurvey) error

	GetVerification(ctx context.Context, internshipID uint) (models.EmploymentVerification, error)
	SaveVerification(ctx context.Context, verification *models.EmploymentVerification) error
}

type closeoutRepository struct {
	db *gorm.DB
}

// NewCloseoutRepository instantiates a GORM-backed repository.
func NewCloseoutRepository(db *gorm.DB) CloseoutRepository {
	return &closeoutRepository{db: db}
}

func (r *closeoutRepository) ListDocuments(ctx context.Context, internshipID uint) ([]models.CloseoutDocument, error) {
	var documents []models.CloseoutDocument
	err := r.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Order("created_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *closeoutRepository) CreateDocument(ctx context.Context, document *models.CloseoutDocument) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *closeoutRepository) DeleteDocument(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.CloseoutDocument{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *closeoutRepository) ListSurveys(ctx context.Context, internshipID uint) ([]models.CloseoutSurvey, error) {
	var surveys []models.CloseoutSurvey
	err := r.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		Order("created_at DESC").
		Find(&surveys).Error
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *closeoutRepository) CreateSurvey(ctx context.Context, survey *models.CloseoutSurvey) error {
	return r.db.WithContext(ctx).Create(survey).Error
}

func (r *closeoutRepository) GetVerification(ctx context.Context, internshipID uint) (models.EmploymentVerification, error) {
	var verification models.EmploymentVerification
	err := r.db.WithContext(ctx).
		Where("internship_id = ?", internshipID).
		First(&verification).Error
	if err != nil {
		return models.EmploymentVerification{}, err
	}
	return verification, nil
}

// SaveVerification creates the row on first write and updates it afterwards;
// one verification per internship.
func (r *closeoutRepository) SaveVerification(ctx context.Context, verification *models.EmploymentVerification) error {
	var existing models.EmploymentVerification
	err := r.db.WithContext(ctx).
		Where("internship_id = ?", verification.InternshipID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r.db.WithContext(ctx).Create(verification).Error
		}
		return err
	}

	verification.ID = existing.ID
	verification.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(verification).Error
}
