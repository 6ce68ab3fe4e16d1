package maya

import "context"

// Mailer sends transactional email.
type Mailer interface {
	// Send delivers an HTML email to a single recipient.
	// Returns EUNAVAILABLE when no mail provider is configured.
	Send(ctx context.Context, to, subject, htmlBody string) error

	// SendOTP delivers a one-time password. The code expires after
	// OTPTTL; the message says so.
	SendOTP(ctx context.Context, to, code string) error

	// SendWelcome delivers the post-registration welcome message.
	SendWelcome(ctx context.Context, to string) error
}
