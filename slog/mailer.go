package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rathodv/maya"
)

// Ensure LoggingMailer implements maya.Mailer.
var _ maya.Mailer = (*LoggingMailer)(nil)

// LoggingMailer wraps a Mailer with per-delivery logging. OTP codes are
// never logged.
type LoggingMailer struct {
	next   maya.Mailer
	logger *slog.Logger
}

// NewLoggingMailer creates a new LoggingMailer.
func NewLoggingMailer(next maya.Mailer, logger *slog.Logger) *LoggingMailer {
	return &LoggingMailer{next: next, logger: logger}
}

// Send delegates to the wrapped mailer and logs the delivery.
func (m *LoggingMailer) Send(ctx context.Context, to, subject, htmlBody string) (err error) {
	defer func(begin time.Time) {
		m.logger.Info("email send",
			"to", to,
			"subject", subject,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Send(ctx, to, subject, htmlBody)
}

// SendOTP delegates to the wrapped mailer and logs the delivery without
// the code.
func (m *LoggingMailer) SendOTP(ctx context.Context, to, code string) (err error) {
	defer func(begin time.Time) {
		m.logger.Info("email send",
			"to", to,
			"kind", "otp",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.SendOTP(ctx, to, code)
}

// SendWelcome delegates to the wrapped mailer and logs the delivery.
func (m *LoggingMailer) SendWelcome(ctx context.Context, to string) (err error) {
	defer func(begin time.Time) {
		m.logger.Info("email send",
			"to", to,
			"kind", "welcome",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.SendWelcome(ctx, to)
}
