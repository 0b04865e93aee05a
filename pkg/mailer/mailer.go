package mailer

import (
	"fmt"

	mail "github.com/go-mail/mail/v2"
	"github.com/rs/zerolog"
)

// Config holds the SMTP settings for outbound coordinator mail.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends plain-text email over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	from   string
	logger zerolog.Logger
}

// New constructs the SMTP mailer.
func New(cfg Config, logger zerolog.Logger) (*Mailer, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and sender address must be provided")
	}

	return &Mailer{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger.With().Str("component", "mailer").Logger(),
	}, nil
}

// Send delivers a plain-text message to the given recipients.
func (m *Mailer) Send(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.logger.Info().Int("recipients", len(to)).Str("subject", subject).Msg("email sent")

	return nil
}
