package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/emscoord/internship-api/internal/dto"
	"github.com/emscoord/internship-api/internal/milestone"
	"github.com/emscoord/internship-api/internal/observability"
	"github.com/emscoord/internship-api/internal/repository"
)

const reminderGatePrefix = "reminders:sent:"

// ReminderMailer sends coordinator reminder emails.
type ReminderMailer interface {
	Send(to []string, subject, body string) error
}

// ReminderService runs the best-effort daily milestone reminder trigger.
// The gate is a redis day key with no server-side cross-device dedup; a
// double send across browsers is accepted.
type ReminderService interface {
	Run(ctx context.Context) (dto.ReminderRunResponse, error)
}

type reminderService struct {
	internships repository.InternshipRepository
	redis       *redis.Client
	nats        *nats.Conn
	natsSubject string
	mailer      ReminderMailer
	recipients  []string
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

type reminderEvent struct {
	DayKey   string    `json:"day_key"`
	Critical int       `json:"critical"`
	Action   int       `json:"action"`
	Upcoming int       `json:"upcoming"`
	SentAt   time.Time `json:"sent_at"`
}

// NewReminderService constructs the reminder trigger.
func NewReminderService(internships repository.InternshipRepository, redisClient *redis.Client, natsConn *nats.Conn, natsSubject string, mailer ReminderMailer, recipients []string, logger zerolog.Logger) ReminderService {
	return &reminderService{
		internships: internships,
		redis:       redisClient,
		nats:        natsConn,
		natsSubject: natsSubject,
		mailer:      mailer,
		recipients:  recipients,
		logger:      logger.With().Str("component", "reminder_service").Logger(),
		tracer:      otel.Tracer("github.com/emscoord/internship-api/internal/service/reminder"),
		now:         time.Now,
	}
}

func (s *reminderService) Run(ctx context.Context) (dto.ReminderRunResponse, error) {
	today := s.now()
	dayKey := today.Format("2006-01-02")

	spanCtx, span := s.tracer.Start(ctx, "reminders.run", trace.WithAttributes(
		attribute.String("reminder.day_key", dayKey),
	))
	defer span.End()

	if s.redis != nil {
		until := milestone.Midnight(today).AddDate(0, 0, 1).Sub(today)
		acquired, err := s.redis.SetNX(spanCtx, reminderGatePrefix+dayKey, "1", until).Result()
		if err != nil {
			// The gate is best effort; a broken redis must not block the run.
			s.logger.Warn().Err(err).Msg("reminder gate check failed")
		} else if !acquired {
			s.logger.Debug().Str("day_key", dayKey).Msg("reminders already sent today")
			return dto.ReminderRunResponse{Deduplicated: true, DayKey: dayKey}, nil
		}
	}

	internships, err := s.internships.ListActive(spanCtx)
	if err != nil {
		span.RecordError(err)
		return dto.ReminderRunResponse{}, err
	}

	partition := milestone.ClassifyAll(MilestoneRecords(internships), today)
	response := dto.ReminderRunResponse{
		Ran:      true,
		Critical: len(partition.Critical),
		Action:   len(partition.Action),
		Upcoming: len(partition.Upcoming),
		DayKey:   dayKey,
	}

	span.SetAttributes(
		attribute.Int("reminder.critical", response.Critical),
		attribute.Int("reminder.action", response.Action),
		attribute.Int("reminder.upcoming", response.Upcoming),
	)

	s.deliver(spanCtx, partition, dayKey)
	observability.RemindersSent().Inc()

	return response, nil
}

// deliver fans the digest out to mail and the broker. Both channels are side
// channels: failures are logged and swallowed so they never interrupt the
// caller's flow.
func (s *reminderService) deliver(ctx context.Context, partition milestone.Partition, dayKey string) {
	if s.mailer != nil && len(s.recipients) > 0 && len(partition.Critical)+len(partition.Action) > 0 {
		subject := fmt.Sprintf("Internship alerts for %s", dayKey)
		if err := s.mailer.Send(s.recipients, subject, reminderBody(partition)); err != nil {
			s.logger.Warn().Err(err).Msg("reminder email failed")
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		event := reminderEvent{
			DayKey:   dayKey,
			Critical: len(partition.Critical),
			Action:   len(partition.Action),
			Upcoming: len(partition.Upcoming),
			SentAt:   s.now().UTC(),
		}
		if payload, err := json.Marshal(event); err == nil {
			if err := s.nats.Publish(s.natsSubject, payload); err != nil {
				s.logger.Warn().Err(err).Msg("reminder event publish failed")
			}
		}
	}
}

func reminderBody(partition milestone.Partition) string {
	body := "Coordinator action needed:\n\n"
	for _, alert := range partition.Critical {
		body += fmt.Sprintf("CRITICAL  %s - %s\n", alert.StudentName, alert.Reason)
	}
	for _, alert := range partition.Action {
		body += fmt.Sprintf("ACTION    %s - %s\n", alert.StudentName, alert.Reason)
	}
	return body
}
