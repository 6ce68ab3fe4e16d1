package gemini

import (
	"context"
	"encoding/json"
	"strings"

	"google.golang.org/genai"

	"github.com/rathodv/maya"
)

// Ensure IntentExtractor implements maya.IntentExtractor at compile time.
var _ maya.IntentExtractor = (*IntentExtractor)(nil)

// IntentExtractor classifies free text into assistant intents using
// Gemini with strict JSON output. Messages containing "remind me" skip
// the model entirely, and any model failure falls back to the local
// rule-based parser, so intent extraction never errors the chat flow.
type IntentExtractor struct {
	client *genai.Client
}

// NewIntentExtractor creates a new IntentExtractor.
func NewIntentExtractor(client *genai.Client) *IntentExtractor {
	return &IntentExtractor{client: client}
}

const intentInstruction = `Classify the user's message. Respond with ONLY a JSON object, no prose:
{"intent": "<reminder|play_media|smalltalk|cancel_reminder|edit_reminder|other>", "task_description": "<what to do, empty unless reminder>", "time_expression": "<when, empty unless reminder>"}

Examples:
"remind me to call mom at 6pm" -> {"intent": "reminder", "task_description": "call mom", "time_expression": "at 6pm"}
"cancel my dentist reminder" -> {"intent": "cancel_reminder", "task_description": "", "time_expression": ""}
"play some jazz" -> {"intent": "play_media", "task_description": "", "time_expression": ""}
"how was your day" -> {"intent": "smalltalk", "task_description": "", "time_expression": ""}`

// ExtractIntent interprets free text into an intent plus reminder
// fields.
func (e *IntentExtractor) ExtractIntent(ctx context.Context, text string) (*maya.ParsedReminder, error) {
	// Explicit reminder phrasing does not need a model round-trip.
	if strings.Contains(strings.ToLower(text), "remind me") {
		return maya.ParseReminderText(text), nil
	}
	if e.client == nil {
		return maya.ParseReminderText(text), nil
	}

	temp := float32(0.0)
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: intentInstruction}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		config,
	)
	if err != nil || result == nil {
		return maya.ParseReminderText(text), nil
	}

	parsed, ok := decodeIntent(result.Text())
	if !ok {
		return maya.ParseReminderText(text), nil
	}
	return parsed, nil
}

// decodeIntent parses the model's JSON output, tolerating code fences.
func decodeIntent(raw string) (*maya.ParsedReminder, bool) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var parsed maya.ParsedReminder
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, false
	}

	switch parsed.Intent {
	case maya.IntentReminder, maya.IntentPlayMedia, maya.IntentSmalltalk,
		maya.IntentCancelReminder, maya.IntentEditReminder, maya.IntentOther:
		return &parsed, true
	}
	return nil, false
}
