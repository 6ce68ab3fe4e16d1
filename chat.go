package maya

import (
	"context"
	"strings"
)

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatContext carries everything the responder may weave into a reply
// besides the message itself. All fields are optional.
type ChatContext struct {
	// History holds recent turns, oldest first.
	History []ChatMessage

	// Memory is a preformatted block of stored facts about the user.
	Memory string

	// WebContext is the formatted output of the search pipeline.
	WebContext string

	// Profile feeds the persona: the user's name and preferred tone.
	Name string
	Tone string
}

// Responder generates assistant replies.
type Responder interface {
	// Respond produces a reply to the message given the context.
	// Returns EUNAVAILABLE when no model backend is reachable; callers
	// degrade to OfflineReply rather than failing the conversation.
	Respond(ctx context.Context, message string, cc ChatContext) (string, error)
}

// OfflineReply is the degraded response used when every model attempt
// has failed. It acknowledges the mode instead of surfacing an outage
// banner.
func OfflineReply(message string) string {
	snippet := strings.Join(strings.Fields(message), " ")
	if len(snippet) > 200 {
		snippet = snippet[:197] + "..."
	}
	if snippet == "" {
		return "I'm responding without external AI access right now. Let's keep it simple."
	}
	return "I can't reach the AI provider at the moment, so I'll answer without using the web.\n\n" +
		"You said: " + snippet
}
