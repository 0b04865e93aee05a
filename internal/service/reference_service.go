package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

// ErrCohortNotFound indicates the requested cohort does not exist.
var ErrCohortNotFound = errors.New("cohort not found")

// ErrAgencyNotFound indicates the requested agency does not exist.
var ErrAgencyNotFound = errors.New("agency not found")

// ReferenceService serves the lookup data behind the coordinator forms.
type ReferenceService interface {
	ListStudents(ctx context.Context, activeOnly bool) ([]dto.StudentResponse, error)
	GetStudent(ctx context.Context, id uint) (dto.StudentResponse, error)
	CreateStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	ListCohorts(ctx context.Context) ([]dto.CohortResponse, error)
	GetCohort(ctx context.Context, id uint) (dto.CohortResponse, error)
	ListAgencies(ctx context.Context, activeOnly bool) ([]dto.AgencyResponse, error)
	GetAgency(ctx context.Context, id uint) (dto.AgencyResponse, error)
	ListPreceptors(ctx context.Context, agencyID *uint) ([]dto.PreceptorResponse, error)
	GetPreceptor(ctx context.Context, id uint) (dto.PreceptorResponse, error)
	CreatePreceptor(ctx context.Context, payload dto.PreceptorCreateRequest) (dto.PreceptorResponse, error)
}

type referenceService struct {
	students   repository.StudentRepository
	cohorts    repository.CohortRepository
	agencies   repository.AgencyRepository
	preceptors repository.PreceptorRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewReferenceService builds the lookup-data service.
func NewReferenceService(students repository.StudentRepository, cohorts repository.CohortRepository, agencies repository.AgencyRepository, preceptors repository.PreceptorRepository, validate *validator.Validate, logger zerolog.Logger) ReferenceService {
	return &referenceService{
		students:   students,
		cohorts:    cohorts,
		agencies:   agencies,
		preceptors: preceptors,
		validator:  validate,
		logger:     logger.With().Str("component", "reference_service").Logger(),
	}
}

func (s *referenceService) ListStudents(ctx context.Context, activeOnly bool) ([]dto.StudentResponse, error) {
	students, err := s.students.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	return dto.NewStudentResponseSlice(students), nil
}

func (s *referenceService) GetStudent(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *referenceService) CreateStudent(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	if payload.CohortID != nil {
		if _, err := s.cohorts.GetByID(ctx, *payload.CohortID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.StudentResponse{}, ErrCohortNotFound
			}
			return dto.StudentResponse{}, err
		}
	}

	student := models.Student{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		CohortID:  payload.CohortID,
		Active:    true,
	}

	if err := s.students.Create(ctx, &student); err != nil {
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student enrolled")

	return dto.NewStudentResponse(student), nil
}

func (s *referenceService) ListCohorts(ctx context.Context) ([]dto.CohortResponse, error) {
	cohorts, err := s.cohorts.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CohortResponse, 0, len(cohorts))
	for _, cohort := range cohorts {
		responses = append(responses, dto.NewCohortResponse(cohort))
	}
	return responses, nil
}

func (s *referenceService) GetCohort(ctx context.Context, id uint) (dto.CohortResponse, error) {
	cohort, err := s.cohorts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CohortResponse{}, ErrCohortNotFound
		}
		return dto.CohortResponse{}, err
	}
	return dto.NewCohortResponse(cohort), nil
}

func (s *referenceService) ListAgencies(ctx context.Context, activeOnly bool) ([]dto.AgencyResponse, error) {
	agencies, err := s.agencies.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AgencyResponse, 0, len(agencies))
	for _, agency := range agencies {
		responses = append(responses, dto.NewAgencyResponse(agency))
	}
	return responses, nil
}

func (s *referenceService) GetAgency(ctx context.Context, id uint) (dto.AgencyResponse, error) {
	agency, err := s.agencies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AgencyResponse{}, ErrAgencyNotFound
		}
		return dto.AgencyResponse{}, err
	}
	return dto.NewAgencyResponse(agency), nil
}

func (s *referenceService) GetPreceptor(ctx context.Context, id uint) (dto.PreceptorResponse, error) {
	preceptor, err := s.preceptors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PreceptorResponse{}, ErrPreceptorNotFound
		}
		return dto.PreceptorResponse{}, err
	}
	return dto.NewPreceptorResponse(preceptor), nil
}

func (s *referenceService) ListPreceptors(ctx context.Context, agencyID *uint) ([]dto.PreceptorResponse, error) {
	preceptors, err := s.preceptors.List(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PreceptorResponse, 0, len(preceptors))
	for _, preceptor := range preceptors {
		responses = append(responses, dto.NewPreceptorResponse(preceptor))
	}
	return responses, nil
}

func (s *referenceService) CreatePreceptor(ctx context.Context, payload dto.PreceptorCreateRequest) (dto.PreceptorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.PreceptorResponse{}, err
	}

	if payload.AgencyID != nil {
		if _, err := s.agencies.GetByID(ctx, *payload.AgencyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.PreceptorResponse{}, ErrAgencyNotFound
			}
			return dto.PreceptorResponse{}, err
		}
	}

	preceptor := models.Preceptor{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		AgencyID:  payload.AgencyID,
		Active:    true,
	}

	if err := s.preceptors.Create(ctx, &preceptor); err != nil {
		return dto.PreceptorResponse{}, err
	}

	s.logger.Info().Uint("preceptor_id", preceptor.ID).Msg("preceptor registered")

	return dto.NewPreceptorResponse(preceptor), nil
}
