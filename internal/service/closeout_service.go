package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/milestone"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

// ErrDocumentNotFound indicates the requested closeout document does not exist.
var ErrDocumentNotFound = errors.New("closeout document not found")

// ErrVerificationNotFound indicates no employment verification exists yet.
var ErrVerificationNotFound = errors.New("employment verification not found")

// ErrInvalidDocType indicates an unknown document discriminator.
var ErrInvalidDocType = errors.New("invalid document type")

// ErrDocumentTooLarge indicates the uploaded file exceeds the size limit.
var ErrDocumentTooLarge = errors.New("document exceeds size limit")

// ErrDocumentTypeNotAllowed indicates the detected content type is unsupported.
var ErrDocumentTypeNotAllowed = errors.New("document content type not allowed")

// DocumentStorage abstracts the external object store for closeout files.
type DocumentStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// CloseoutService manages closeout documents, surveys and employment verification.
type CloseoutService interface {
	Summary(ctx context.Context, internshipID uint) (dto.CloseoutSummaryResponse, error)
	ListDocuments(ctx context.Context, internshipID uint) ([]dto.DocumentResponse, error)
	UploadDocument(ctx context.Context, internshipID uint, docType, uploadedBy string, file *multipart.FileHeader) (dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id uint) error
	ListSurveys(ctx context.Context, internshipID uint) ([]dto.SurveyResponse, error)
	CreateSurvey(ctx context.Context, internshipID uint, payload dto.SurveyCreateRequest) (dto.SurveyResponse, error)
	GetVerification(ctx context.Context, internshipID uint) (dto.VerificationResponse, error)
	SaveVerification(ctx context.Context, internshipID uint, payload dto.VerificationUpsertRequest) (dto.VerificationResponse, error)
}

type closeoutService struct {
	repo        repository.CloseoutRepository
	internships repository.InternshipRepository
	storage     DocumentStorage
	validator   *validator.Validate
	maxSize     int64
	logger      zerolog.Logger
	now         func() time.Time
}

// NewCloseoutService builds the closeout service.
func NewCloseoutService(repo repository.CloseoutRepository, internships repository.InternshipRepository, storage DocumentStorage, validate *validator.Validate, maxSizeMB int64, logger zerolog.Logger) CloseoutService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}

	return &closeoutService{
		repo:        repo,
		internships: internships,
		storage:     storage,
		validator:   validate,
		maxSize:     maxSizeMB << 20,
		logger:      logger.With().Str("component", "closeout_service").Logger(),
		now:         time.Now,
	}
}

func (s *closeoutService) Summary(ctx context.Context, internshipID uint) (dto.CloseoutSummaryResponse, error) {
	internship, err := s.getInternship(ctx, internshipID)
	if err != nil {
		return dto.CloseoutSummaryResponse{}, err
	}

	documents, err := s.repo.ListDocuments(ctx, internshipID)
	if err != nil {
		return dto.CloseoutSummaryResponse{}, err
	}

	surveys, err := s.repo.ListSurveys(ctx, internshipID)
	if err != nil {
		return dto.CloseoutSummaryResponse{}, err
	}

	verified := false
	if verification, err := s.repo.GetVerification(ctx, internshipID); err == nil {
		verified = verification.Verified
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CloseoutSummaryResponse{}, err
	}

	items := CloseoutChecklist(internship)
	items = append(items,
		milestone.Item{Key: "closeout_documents", Label: "Closeout documents uploaded", Required: true, Complete: len(documents) > 0},
		milestone.Item{Key: "exit_survey", Label: "Exit survey received", Required: true, Complete: len(surveys) > 0},
		milestone.Item{Key: "employment_verified", Label: "Employment verified", Required: false, Complete: verified},
	)

	return dto.CloseoutSummaryResponse{
		InternshipID: internshipID,
		Checklist:    milestone.Summarize(items),
		Documents:    len(documents),
		Surveys:      len(surveys),
		Verified:     verified,
	}, nil
}

func (s *closeoutService) ListDocuments(ctx context.Context, internshipID uint) ([]dto.DocumentResponse, error) {
	if _, err := s.getInternship(ctx, internshipID); err != nil {
		return nil, err
	}

	documents, err := s.repo.ListDocuments(ctx, internshipID)
	if err != nil {
		return nil, err
	}

	return dto.NewDocumentResponseSlice(documents), nil
}

func (s *closeoutService) UploadDocument(ctx context.Context, internshipID uint, docType, uploadedBy string, file *multipart.FileHeader) (dto.DocumentResponse, error) {
	if !models.ValidDocType(docType) {
		return dto.DocumentResponse{}, ErrInvalidDocType
	}

	if _, err := s.getInternship(ctx, internshipID); err != nil {
		return dto.DocumentResponse{}, err
	}

	if file.Size > s.maxSize {
		return dto.DocumentResponse{}, ErrDocumentTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.DocumentResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.DocumentResponse{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		return dto.DocumentResponse{}, ErrDocumentTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	if !allowedDocumentMime(mime.String()) {
		return dto.DocumentResponse{}, ErrDocumentTypeNotAllowed
	}

	url, err := s.storage.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return dto.DocumentResponse{}, err
	}

	document := models.CloseoutDocument{
		InternshipID: internshipID,
		DocType:      docType,
		FileName:     file.Filename,
		FileURL:      url,
		UploadedBy:   uploadedBy,
	}

	if err := s.repo.CreateDocument(ctx, &document); err != nil {
		return dto.DocumentResponse{}, err
	}

	s.logger.Info().
		Uint("internship_id", internshipID).
		Str("doc_type", docType).
		Str("mime", mime.String()).
		Msg("closeout document uploaded")

	return dto.NewDocumentResponse(document), nil
}

func (s *closeoutService) DeleteDocument(ctx context.Context, id uint) error {
	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return err
	}

	s.logger.Info().Uint("document_id", id).Msg("closeout document deleted")
	return nil
}

func (s *closeoutService) ListSurveys(ctx context.Context, internshipID uint) ([]dto.SurveyResponse, error) {
	if _, err := s.getInternship(ctx, internshipID); err != nil {
		return nil, err
	}

	surveys, err := s.repo.ListSurveys(ctx, internshipID)
	if err != nil {
		return nil, err
	}

	return dto.NewSurveyResponseSlice(surveys), nil
}

func (s *closeoutService) CreateSurvey(ctx context.Context, internshipID uint, payload dto.SurveyCreateRequest) (dto.SurveyResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SurveyResponse{}, err
	}

	if _, err := s.getInternship(ctx, internshipID); err != nil {
		return dto.SurveyResponse{}, err
	}

	submitted := s.now()
	survey := models.CloseoutSurvey{
		InternshipID: internshipID,
		Respondent:   payload.Respondent,
		Responses:    datatypes.JSON(payload.Responses),
		SubmittedAt:  &submitted,
	}

	if err := s.repo.CreateSurvey(ctx, &survey); err != nil {
		return dto.SurveyResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internshipID).Str("respondent", payload.Respondent).Msg("closeout survey recorded")

	return dto.NewSurveyResponse(survey), nil
}

func (s *closeoutService) GetVerification(ctx context.Context, internshipID uint) (dto.VerificationResponse, error) {
	if _, err := s.getInternship(ctx, internshipID); err != nil {
		return dto.VerificationResponse{}, err
	}

	verification, err := s.repo.GetVerification(ctx, internshipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.VerificationResponse{}, ErrVerificationNotFound
		}
		return dto.VerificationResponse{}, err
	}

	return dto.NewVerificationResponse(verification), nil
}

func (s *closeoutService) SaveVerification(ctx context.Context, internshipID uint, payload dto.VerificationUpsertRequest) (dto.VerificationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.VerificationResponse{}, err
	}

	if _, err := s.getInternship(ctx, internshipID); err != nil {
		return dto.VerificationResponse{}, err
	}

	hireDate, err := parseDate(payload.HireDate)
	if err != nil {
		return dto.VerificationResponse{}, err
	}

	verification := models.EmploymentVerification{
		InternshipID: internshipID,
		Employer:     payload.Employer,
		Position:     payload.Position,
		HireDate:     hireDate,
		Verified:     payload.Verified,
	}
	if payload.Verified {
		verified := s.now()
		verification.VerifiedDate = &verified
	}

	if err := s.repo.SaveVerification(ctx, &verification); err != nil {
		return dto.VerificationResponse{}, err
	}

	s.logger.Info().Uint("internship_id", internshipID).Bool("verified", payload.Verified).Msg("employment verification saved")

	return dto.NewVerificationResponse(verification), nil
}

func (s *closeoutService) getInternship(ctx context.Context, id uint) (models.Internship, error) {
	internship, err := s.internships.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Internship{}, ErrInternshipNotFound
		}
		return models.Internship{}, err
	}
	return internship, nil
}

func allowedDocumentMime(mime string) bool {
	switch mime {
	case "application/pdf", "image/png", "image/jpeg":
		return true
	default:
		return false
	}
}
