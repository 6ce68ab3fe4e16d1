// Package brevo provides the maya.Mailer implementation backed by the
// Brevo transactional email API.
package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rathodv/maya"
)

const defaultBaseURL = "https://api.brevo.com/v3/smtp/email"

// DefaultSendTimeout bounds a single API call.
const DefaultSendTimeout = 10 * time.Second

// Ensure Mailer implements maya.Mailer at compile time.
var _ maya.Mailer = (*Mailer)(nil)

// Mailer sends transactional email through Brevo. With no API key
// configured every send returns EUNAVAILABLE, which callers treat as
// "email disabled" rather than a failure.
type Mailer struct {
	apiKey     string
	baseURL    string
	senderName string
	sender     string
	client     *http.Client
}

// Option configures a Mailer.
type Option func(*Mailer)

// WithBaseURL overrides the API endpoint, for tests.
func WithBaseURL(u string) Option {
	return func(m *Mailer) {
		m.baseURL = u
	}
}

// WithSender sets the from address and display name.
func WithSender(name, email string) Option {
	return func(m *Mailer) {
		m.senderName = name
		m.sender = email
	}
}

// NewMailer creates a new Mailer.
func NewMailer(apiKey string, opts ...Option) *Mailer {
	m := &Mailer{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		senderName: "Maya",
		sender:     "maya@example.com",
		client:     &http.Client{Timeout: DefaultSendTimeout},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// sendRequest is the Brevo transactional email payload.
type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Send delivers an HTML email to a single recipient.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.apiKey == "" {
		return maya.Errorf(maya.EUNAVAILABLE, "mail provider not configured")
	}
	if to == "" {
		return maya.Errorf(maya.EINVALID, "recipient required")
	}

	payload, err := json.Marshal(sendRequest{
		Sender:      party{Name: m.senderName, Email: m.sender},
		To:          []party{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Api-Key", m.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return maya.Errorf(maya.EUNAVAILABLE, "mail provider unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return maya.Errorf(maya.EINTERNAL, "mail send failed: HTTP %d: %s", resp.StatusCode, body)
	}
	return nil
}

// SendOTP delivers a one-time password.
func (m *Mailer) SendOTP(ctx context.Context, to, code string) error {
	minutes := int(maya.OTPTTL.Minutes())
	body := fmt.Sprintf(
		`<p>Your Maya verification code is:</p><h2>%s</h2><p>It expires in %d minutes. If you didn't request this, you can ignore this email.</p>`,
		code, minutes)
	return m.Send(ctx, to, "Your Maya verification code", body)
}

// SendWelcome delivers the post-registration welcome message.
func (m *Mailer) SendWelcome(ctx context.Context, to string) error {
	body := `<p>Hi! I'm Maya, your personal assistant.</p>` +
		`<p>Ask me anything, set reminders in plain language, and I'll keep an eye on the news for you.</p>`
	return m.Send(ctx, to, "Welcome to Maya", body)
}
