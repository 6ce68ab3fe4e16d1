package mock

import (
	"context"

	"github.com/rathodv/maya"
)

var _ maya.Responder = (*Responder)(nil)

// Responder is a mock implementation of maya.Responder.
type Responder struct {
	RespondFn func(ctx context.Context, message string, cc maya.ChatContext) (string, error)
}

func (r *Responder) Respond(ctx context.Context, message string, cc maya.ChatContext) (string, error) {
	return r.RespondFn(ctx, message, cc)
}

var _ maya.IntentExtractor = (*IntentExtractor)(nil)

// IntentExtractor is a mock implementation of maya.IntentExtractor.
type IntentExtractor struct {
	ExtractIntentFn func(ctx context.Context, text string) (*maya.ParsedReminder, error)
}

func (e *IntentExtractor) ExtractIntent(ctx context.Context, text string) (*maya.ParsedReminder, error) {
	return e.ExtractIntentFn(ctx, text)
}

var _ maya.Mailer = (*Mailer)(nil)

// Mailer is a mock implementation of maya.Mailer.
type Mailer struct {
	SendFn        func(ctx context.Context, to, subject, htmlBody string) error
	SendOTPFn     func(ctx context.Context, to, code string) error
	SendWelcomeFn func(ctx context.Context, to string) error
}

func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	return m.SendFn(ctx, to, subject, htmlBody)
}

func (m *Mailer) SendOTP(ctx context.Context, to, code string) error {
	return m.SendOTPFn(ctx, to, code)
}

func (m *Mailer) SendWelcome(ctx context.Context, to string) error {
	return m.SendWelcomeFn(ctx, to)
}
