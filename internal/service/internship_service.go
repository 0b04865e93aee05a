package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

// ErrInternshipNotFound indicates the requested internship does not exist.
var ErrInternshipNotFound = errors.New("internship not found")

// ErrStudentNotFound indicates the referenced student does not exist.
var ErrStudentNotFound = errors.New("student not found")

// ErrDuplicateInternship indicates the student already has a placement record.
var ErrDuplicateInternship = errors.New("student already has an internship record")

// ErrInvalidPhase indicates an unknown phase value.
var ErrInvalidPhase = errors.New("invalid phase")

// ErrPhaseRegression indicates a transition that moves the phase backwards.
var ErrPhaseRegression = errors.New("phase cannot move backwards")

// ErrUnknownField indicates a single-field patch named a field that cannot be toggled.
var ErrUnknownField = errors.New("unknown toggle field")

// InternshipService exposes internship record use cases.
type InternshipService interface {
	List(ctx context.Context, req dto.InternshipListRequest) (dto.InternshipListResponse, error)
	Get(ctx context.Context, id uint) (dto.InternshipResponse, error)
	Create(ctx context.Context, payload dto.InternshipCreateRequest) (dto.InternshipResponse, error)
	Update(ctx context.Context, id uint, payload dto.InternshipUpdateRequest) (dto.InternshipResponse, error)
	PatchField(ctx context.Context, id uint, payload dto.InternshipFieldPatchRequest) (dto.InternshipResponse, error)
	Transition(ctx context.Context, id uint, payload dto.PhaseTransitionRequest) (dto.InternshipResponse, error)
	SetExtension(ctx context.Context, id uint, payload dto.ExtensionRequest) (dto.InternshipResponse, error)
}

type internshipService struct {
	repo      repository.InternshipRepository
	students  repository.StudentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewInternshipService builds a new internship service.
func NewInternshipService(repo repository.InternshipRepository, students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) InternshipService {
	return &internshipService{
		repo:      repo,
		students:  students,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "internship_service").Logger(),
		now:       time.Now,
	}
}

func (s *internshipService) List(ctx context.Context, req dto.InternshipListRequest) (dto.InternshipListResponse, error) {
	filter := repository.InternshipFilter{
		CohortID: req.CohortID,
		Phase:    req.Phase,
		Status:   req.Status,
		AgencyID: req.AgencyID,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	internships, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.InternshipListResponse{}, err
	}

	return dto.InternshipListResponse{
		Items:      dto.NewInternshipResponseSlice(internships),
		Pagination: dto.NewPaginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *internshipService) Get(ctx context.Context, id uint) (dto.InternshipResponse, error) {
	internship, err := s.getRecord(ctx, id)
	if err != nil {
		return dto.InternshipResponse{}, err
	}
	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Create(ctx context.Context, payload dto.InternshipCreateRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.InternshipResponse{}, ErrStudentNotFound
		}
		return dto.InternshipResponse{}, err
	}

	if _, err := s.repo.GetByStudent(ctx, payload.StudentID); err == nil {
		return dto.InternshipResponse{}, ErrDuplicateInternship
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.InternshipResponse{}, err
	}

	orientation, err := parseDate(payload.OrientationDate)
	if err != nil {
		return dto.InternshipResponse{}, err
	}
	phase1Start, err := parseDate(payload.Phase1StartDate)
	if err != nil {
		return dto.InternshipResponse{}, err
	}
	expectedEnd, err := parseDate(payload.ExpectedEndDate)
	if err != nil {
		return dto.InternshipResponse{}, err
	}

	internship := models.Internship{
		StudentID:       payload.StudentID,
		CohortID:        payload.CohortID,
		AgencyID:        payload.AgencyID,
		PreceptorID:     payload.PreceptorID,
		ShiftType:       payload.ShiftType,
		CurrentPhase:    models.PhasePreInternship,
		Status:          models.StatusOnTrack,
		OrientationDate: orientation,
		Phase1StartDate: phase1Start,
		ExpectedEndDate: expectedEnd,
		Notes:           s.cleanNotes(payload.Notes),
	}

	if err := s.repo.Create(ctx, &internship); err != nil {
		return dto.InternshipResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internship.ID).Uint("student_id", internship.StudentID).Msg("internship created")

	created, err := s.getRecord(ctx, internship.ID)
	if err != nil {
		return dto.NewInternshipResponse(internship), nil
	}
	return dto.NewInternshipResponse(created), nil
}

func (s *internshipService) Update(ctx context.Context, id uint, payload dto.InternshipUpdateRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}

	internship, err := s.getRecord(ctx, id)
	if err != nil {
		return dto.InternshipResponse{}, err
	}

	if payload.CohortID != nil {
		internship.CohortID = payload.CohortID
	}
	if payload.AgencyID != nil {
		internship.AgencyID = payload.AgencyID
	}
	if payload.PreceptorID != nil {
		internship.PreceptorID = payload.PreceptorID
	}
	if payload.ShiftType != nil {
		internship.ShiftType = *payload.ShiftType
	}
	if payload.Status != nil {
		internship.Status = *payload.Status
	}
	if payload.Notes != nil {
		internship.Notes = s.cleanNotes(*payload.Notes)
	}

	dateFields := []struct {
		input  *string
		target **time.Time
	}{
		{payload.OrientationDate, &internship.OrientationDate},
		{payload.Phase1StartDate, &internship.Phase1StartDate},
		{payload.Phase1EvalScheduled, &internship.Phase1EvalScheduled},
		{payload.Phase2StartDate, &internship.Phase2StartDate},
		{payload.Phase2EvalScheduled, &internship.Phase2EvalScheduled},
		{payload.ExpectedEndDate, &internship.ExpectedEndDate},
		{payload.ActualEndDate, &internship.ActualEndDate},
		{payload.CloseoutMeetingDate, &internship.CloseoutMeetingDate},
		{payload.CompletionDate, &internship.CompletionDate},
	}
	for _, field := range dateFields {
		if field.input == nil {
			continue
		}
		parsed, err := parseDate(field.input)
		if err != nil {
			return dto.InternshipResponse{}, err
		}
		*field.target = parsed
	}

	if err := s.repo.Update(ctx, &internship); err != nil {
		return dto.InternshipResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internship.ID).Msg("internship updated")

	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) PatchField(ctx context.Context, id uint, payload dto.InternshipFieldPatchRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}

	internship, err := s.getRecord(ctx, id)
	if err != nil {
		return dto.InternshipResponse{}, err
	}

	date, err := parseDate(payload.Date)
	if err != nil {
		return dto.InternshipResponse{}, err
	}
	if date == nil && payload.Value {
		today := s.now()
		midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
		date = &midnight
	}

	switch payload.Field {
	case "liability_form_signed":
		internship.LiabilityFormSigned = payload.Value
	case "background_check":
		internship.BackgroundCheck = payload.Value
	case "drug_screen":
		internship.DrugScreen = payload.Value
	case "immunizations":
		internship.Immunizations = payload.Value
	case "cpr_current":
		internship.CPRCurrent = payload.Value
	case "nremt_cleared":
		internship.NREMTCleared = payload.Value
	case "phase1_eval_completed":
		internship.Phase1EvalCompleted = payload.Value
		if payload.Value {
			internship.Phase1EvalDate = date
		} else {
			internship.Phase1EvalDate = nil
		}
	case "phase2_eval_completed":
		internship.Phase2EvalCompleted = payload.Value
		if payload.Value {
			internship.Phase2EvalDate = date
		} else {
			internship.Phase2EvalDate = nil
		}
	case "closeout_meeting_completed":
		internship.CloseoutMeetingCompleted = payload.Value
		if payload.Value && internship.CloseoutMeetingDate == nil {
			internship.CloseoutMeetingDate = date
		}
	default:
		return dto.InternshipResponse{}, ErrUnknownField
	}

	if err := s.repo.Update(ctx, &internship); err != nil {
		return dto.InternshipResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internship.ID).Str("field", payload.Field).Bool("value", payload.Value).Msg("internship field toggled")

	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) Transition(ctx context.Context, id uint, payload dto.PhaseTransitionRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}
	if !models.ValidPhase(payload.Phase) {
		return dto.InternshipResponse{}, ErrInvalidPhase
	}

	internship, err := s.getRecord(ctx, id)
	if err != nil {
		return dto.InternshipResponse{}, err
	}

	if !models.PhaseAdvances(internship.CurrentPhase, payload.Phase) {
		return dto.InternshipResponse{}, ErrPhaseRegression
	}

	internship.CurrentPhase = payload.Phase
	if payload.Phase == models.PhaseCompleted && internship.CompletionDate == nil {
		completed := s.now()
		internship.CompletionDate = &completed
	}

	if err := s.repo.Update(ctx, &internship); err != nil {
		return dto.InternshipResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internship.ID).Str("phase", payload.Phase).Msg("internship phase transitioned")

	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) SetExtension(ctx context.Context, id uint, payload dto.ExtensionRequest) (dto.InternshipResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.InternshipResponse{}, err
	}

	internship, err := s.getRecord(ctx, id)
	if err != nil {
		return dto.InternshipResponse{}, err
	}

	if payload.Extended {
		until, err := parseDate(payload.Until)
		if err != nil {
			return dto.InternshipResponse{}, err
		}
		internship.Phase1Extended = true
		internship.Phase1ExtendedUntil = until
		internship.Phase1ExtensionNote = s.cleanNotes(payload.Reason)
	} else {
		internship.Phase1Extended = false
		internship.Phase1ExtendedUntil = nil
		internship.Phase1ExtensionNote = ""
	}

	if err := s.repo.Update(ctx, &internship); err != nil {
		return dto.InternshipResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internship.ID).Bool("extended", payload.Extended).Msg("phase 1 extension updated")

	return dto.NewInternshipResponse(internship), nil
}

func (s *internshipService) getRecord(ctx context.Context, id uint) (models.Internship, error) {
	internship, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Internship{}, ErrInternshipNotFound
		}
		return models.Internship{}, err
	}
	return internship, nil
}

func (s *internshipService) cleanNotes(notes string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(notes))
}
