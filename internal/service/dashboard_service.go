package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/milestone"
	"github.com/emscoord/internship-api/internal/models"
	"github.com/emscoord/internship-api/internal/repository"
)

const alertCacheKey = "dashboard:alerts"

// DashboardService produces the classified milestone alert view.
type DashboardService interface {
	Alerts(ctx context.Context) (dto.AlertDashboardResponse, error)
}

type dashboardService struct {
	internships repository.InternshipRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewDashboardService builds the alert dashboard aggregator.
func NewDashboardService(internships repository.InternshipRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		internships: internships,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
		now:         time.Now,
	}
}

func (s *dashboardService) Alerts(ctx context.Context) (dto.AlertDashboardResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, alertCacheKey).Result(); err == nil {
			var response dto.AlertDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				s.logger.Debug().Msg("alert dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read alert dashboard cache")
		}
	}

	internships, err := s.internships.ListActive(ctx)
	if err != nil {
		return dto.AlertDashboardResponse{}, err
	}

	today := s.now()
	records := MilestoneRecords(internships)

	response := dto.AlertDashboardResponse{
		GeneratedAt: today.UTC(),
		Total:       len(records),
		Alerts:      milestone.ClassifyAll(records, today),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, alertCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store alert dashboard cache")
			}
		}
	}

	return response, nil
}

// MilestoneRecords projects internships into the evaluator's record shape.
func MilestoneRecords(internships []models.Internship) []milestone.Record {
	records := make([]milestone.Record, 0, len(internships))
	for _, internship := range internships {
		records = append(records, milestone.Record{
			InternshipID:        internship.ID,
			StudentName:         internship.Student.FullName(),
			Status:              internship.Status,
			Phase1EvalScheduled: internship.Phase1EvalScheduled,
			Phase1EvalCompleted: internship.Phase1EvalCompleted,
			Phase2EvalScheduled: internship.Phase2EvalScheduled,
			Phase2EvalCompleted: internship.Phase2EvalCompleted,
			ExpectedEndDate:     internship.ExpectedEndDate,
			Phase1Extension: milestone.Extension{
				Extended: internship.Phase1Extended,
				Until:    internship.Phase1ExtendedUntil,
				Reason:   internship.Phase1ExtensionNote,
			},
		})
	}
	return records
}
