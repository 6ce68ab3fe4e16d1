// Package gemini provides Google Gemini implementations of the
// assistant's language-model surfaces: reply generation and intent
// extraction.
package gemini

import (
	"context"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"

	"github.com/rathodv/maya"
)

const model = "gemini-2.5-flash"

// defaultCooldown is how long the responder sits out after the API
// reports quota exhaustion or an outage.
const defaultCooldown = 2 * time.Minute

// defaultRetryDelays is the backoff schedule for transient API errors
// before the responder gives up and starts a cooldown.
var defaultRetryDelays = []time.Duration{250 * time.Millisecond, 500 * time.Millisecond}

// Ensure Responder implements maya.Responder at compile time.
var _ maya.Responder = (*Responder)(nil)

// Responder generates assistant replies using Google Gemini. Transient
// API errors are retried with backoff; once the retries are exhausted
// the responder refuses further calls for a cooldown period so callers
// fall back to the offline reply immediately instead of waiting out the
// API timeout on every message.
type Responder struct {
	client      *genai.Client
	cooldown    time.Duration
	retryDelays []time.Duration

	// now and generateFn are swapped out in tests.
	now        func() time.Time
	generateFn func(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)

	mu           sync.Mutex
	coolOffUntil time.Time
}

// ResponderOption configures a Responder.
type ResponderOption func(*Responder)

// WithCooldown overrides how long the responder sits out after
// exhausting its retries on a transient error.
func WithCooldown(d time.Duration) ResponderOption {
	return func(r *Responder) { r.cooldown = d }
}

// WithRetryDelays overrides the backoff schedule for transient API
// errors. An empty schedule disables retries.
func WithRetryDelays(delays ...time.Duration) ResponderOption {
	return func(r *Responder) { r.retryDelays = delays }
}

// NewResponder creates a new Responder.
func NewResponder(client *genai.Client, opts ...ResponderOption) *Responder {
	r := &Responder{
		client:      client,
		cooldown:    defaultCooldown,
		retryDelays: defaultRetryDelays,
		now:         time.Now,
	}
	r.generateFn = r.generate
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond produces a reply to the message given the context. The raw
// model output is scrubbed of past-reference phrasing and followed by
// up to two tone-adapted suggestions.
func (r *Responder) Respond(ctx context.Context, message string, cc maya.ChatContext) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", maya.Errorf(maya.EINVALID, "message required")
	}
	if r.coolingOff() {
		return "", maya.Errorf(maya.EUNAVAILABLE, "model backend on cooldown")
	}

	prompt := BuildUserPrompt(message, cc)
	config := BuildConfig(cc.Name, cc.Tone)

	reply, err := r.generateWithRetry(ctx, prompt, config)
	if err != nil {
		if isTransient(err) {
			r.startCooldown()
			return "", maya.Errorf(maya.EUNAVAILABLE, "model backend unavailable: %v", err)
		}
		return "", err
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", maya.Errorf(maya.EINTERNAL, "gemini returned empty reply")
	}

	return maya.ShapeReply(reply, message, cc.Tone), nil
}

// generateWithRetry calls the model, retrying transient errors per the
// backoff schedule. Non-transient errors are returned immediately.
func (r *Responder) generateWithRetry(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	var lastErr error
	for attempt := 0; attempt < len(r.retryDelays)+1; attempt++ {
		reply, err := r.generateFn(ctx, prompt, config)
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if !isTransient(err) || attempt >= len(r.retryDelays) {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(r.retryDelays[attempt]):
		}
	}
	return "", lastErr
}

func (r *Responder) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	result, err := r.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", maya.Errorf(maya.EINTERNAL, "gemini returned nil result")
	}
	return result.Text(), nil
}

func (r *Responder) coolingOff() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.now().Before(r.coolOffUntil)
}

func (r *Responder) startCooldown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coolOffUntil = r.now().Add(r.cooldown)
}

// isTransient reports whether the API error is quota exhaustion or an
// outage worth a cooldown, as opposed to a bad request.
func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"quota", "rate limit", "resource_exhausted", "resource exhausted",
		"429", "503", "500", "unavailable", "overloaded", "deadline exceeded",
		"connection refused", "timeout",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
