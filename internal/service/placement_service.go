package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

// ErrAssignmentNotFound indicates the requested preceptor assignment does not exist.
var ErrAssignmentNotFound = errors.New("preceptor assignment not found")

// ErrPreceptorNotFound indicates the referenced preceptor does not exist.
var ErrPreceptorNotFound = errors.New("preceptor not found")

// PlacementService covers the placement board and preceptor assignments.
type PlacementService interface {
	Board(ctx context.Context, cohortID *uint) ([]dto.PlacementRow, error)
	ListAssignments(ctx context.Context, internshipID uint) ([]dto.AssignmentResponse, error)
	Assign(ctx context.Context, internshipID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	EndAssignment(ctx context.Context, id uint, payload dto.AssignmentEndRequest) (dto.AssignmentResponse, error)
	RemoveAssignment(ctx context.Context, id uint) error
}

type placementService struct {
	internships repository.InternshipRepository
	students    repository.StudentRepository
	preceptors  repository.PreceptorRepository
	assignments repository.AssignmentRepository
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewPlacementService builds the placement service.
func NewPlacementService(internships repository.InternshipRepository, students repository.StudentRepository, preceptors repository.PreceptorRepository, assignments repository.AssignmentRepository, validate *validator.Validate, logger zerolog.Logger) PlacementService {
	return &placementService{
		internships: internships,
		students:    students,
		preceptors:  preceptors,
		assignments: assignments,
		validator:   validate,
		logger:      logger.With().Str("component", "placement_service").Logger(),
		now:         time.Now,
	}
}

// Board lists every active student exactly once: placed students carry their
// internship (completed ones included, so a graduated student never reads as
// awaiting placement), the rest become synthetic unplaced rows that are never
// stored.
func (s *placementService) Board(ctx context.Context, cohortID *uint) ([]dto.PlacementRow, error) {
	var students []models.Student
	var err error
	if cohortID != nil {
		students, err = s.students.ListByCohort(ctx, *cohortID)
	} else {
		students, err = s.students.List(ctx, true)
	}
	if err != nil {
		return nil, err
	}

	internships, err := s.internships.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uint]models.Internship, len(internships))
	for _, internship := range internships {
		byStudent[internship.StudentID] = internship
	}

	rows := make([]dto.PlacementRow, 0, len(students))
	for _, student := range students {
		if internship, ok := byStudent[student.ID]; ok {
			rows = append(rows, dto.NewPlacedRow(internship))
		} else {
			rows = append(rows, dto.NewUnplacedRow(student))
		}
	}

	return rows, nil
}

func (s *placementService) ListAssignments(ctx context.Context, internshipID uint) ([]dto.AssignmentResponse, error) {
	if _, err := s.internships.GetByID(ctx, internshipID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}

	assignments, err := s.assignments.ListByInternship(ctx, internshipID)
	if err != nil {
		return nil, err
	}

	return dto.NewAssignmentResponseSlice(assignments), nil
}

// Assign creates a preceptor assignment. Assigning a new primary implicitly
// ends the current active primary, keeping at most one per internship.
func (s *placementService) Assign(ctx context.Context, internshipID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.internships.GetByID(ctx, internshipID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrInternshipNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if _, err := s.preceptors.GetByID(ctx, payload.PreceptorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrPreceptorNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	startDate, err := parseDate(payload.StartDate)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	if startDate == nil {
		start := s.now()
		startDate = &start
	}

	if payload.Role == models.RolePrimary {
		if err := s.demoteActivePrimary(ctx, internshipID, *startDate); err != nil {
			return dto.AssignmentResponse{}, err
		}
	}

	assignment := models.PreceptorAssignment{
		InternshipID: internshipID,
		PreceptorID:  payload.PreceptorID,
		Role:         payload.Role,
		StartDate:    startDate,
		Active:       true,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().
		Uint("internship_id", internshipID).
		Uint("preceptor_id", payload.PreceptorID).
		Str("role", payload.Role).
		Msg("preceptor assigned")

	created, err := s.assignments.GetByID(ctx, assignment.ID)
	if err != nil {
		return dto.NewAssignmentResponse(assignment), nil
	}
	return dto.NewAssignmentResponse(created), nil
}

func (s *placementService) EndAssignment(ctx context.Context, id uint, payload dto.AssignmentEndRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	endDate, err := parseDate(payload.EndDate)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	if endDate == nil {
		end := s.now()
		endDate = &end
	}

	assignment.EndDate = endDate
	assignment.Active = false

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("preceptor assignment ended")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *placementService) RemoveAssignment(ctx context.Context, id uint) error {
	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.logger.Info().Uint("assignment_id", id).Msg("preceptor assignment removed")
	return nil
}

func (s *placementService) demoteActivePrimary(ctx context.Context, internshipID uint, endDate time.Time) error {
	current, err := s.assignments.ActivePrimary(ctx, internshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	current.Active = false
	current.EndDate = &endDate
	if err := s.assignments.Update(ctx, &current); err != nil {
		return err
	}

	s.logger.Info().Uint("assignment_id", current.ID).Msg("previous primary assignment ended")
	return nil
}
