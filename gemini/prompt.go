package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/rathodv/maya"
)

// Character budgets keep the composed prompt predictable regardless of
// how much history or memory has accumulated.
const (
	historyBudget = 3200
	memoryBudget  = 600
	profileBudget = 260

	// historyTurns is how many recent turns are considered before the
	// character budget applies.
	historyTurns = 5
)

// BuildConfig returns the GenerateContentConfig for reply generation.
// The system instruction carries the assistant persona and the user's
// preferred tone.
func BuildConfig(name, tone string) *genai.GenerateContentConfig {
	temp := float32(0.7)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction(name, tone)}},
		},
		Temperature: &temp,
	}
}

func systemInstruction(name, tone string) string {
	var sb strings.Builder
	sb.WriteString("You are Maya, a warm and capable personal assistant. ")
	sb.WriteString("Answer directly and conversationally. ")
	sb.WriteString("Never claim to remember past conversations unless facts about the user are provided below. ")
	sb.WriteString("When real-time web information is provided, ground your answer in it and mention sources naturally.")

	if name != "" {
		fmt.Fprintf(&sb, " The user's name is %s.", name)
	}
	switch tone {
	case "formal":
		sb.WriteString(" Use a polite, professional register.")
	case "concise":
		sb.WriteString(" Keep replies short and to the point.")
	case "playful":
		sb.WriteString(" Keep the register light; a little humor is welcome.")
	}
	return sb.String()
}

// BuildUserPrompt composes the user prompt from the message and its
// context, applying per-section character budgets.
func BuildUserPrompt(message string, cc maya.ChatContext) string {
	var sections []string

	if profile := profileSection(cc); profile != "" {
		sections = append(sections, profile)
	}
	if cc.Memory != "" {
		sections = append(sections, "Known facts about the user:\n"+clip(cc.Memory, memoryBudget))
	}
	if cc.WebContext != "" {
		sections = append(sections, cc.WebContext)
	}
	if history := historySection(cc.History); history != "" {
		sections = append(sections, "Recent conversation:\n"+history)
	}

	sections = append(sections, "User: "+message)
	return strings.Join(sections, "\n\n")
}

func profileSection(cc maya.ChatContext) string {
	var parts []string
	if cc.Name != "" {
		parts = append(parts, "name: "+cc.Name)
	}
	if cc.Tone != "" {
		parts = append(parts, "preferred tone: "+cc.Tone)
	}
	if len(parts) == 0 {
		return ""
	}
	return clip("User profile: "+strings.Join(parts, ", "), profileBudget)
}

func historySection(history []maya.ChatMessage) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}

	var lines []string
	for _, m := range history {
		role := "User"
		if m.Role == maya.RoleAssistant {
			role = "Maya"
		}
		lines = append(lines, role+": "+m.Text)
	}
	return clip(strings.Join(lines, "\n"), historyBudget)
}

// clip truncates s to the budget, cutting on a line boundary where
// possible.
func clip(s string, budget int) string {
	if len(s) <= budget {
		return s
	}
	cut := s[:budget]
	if idx := strings.LastIndex(cut, "\n"); idx > budget/2 {
		return cut[:idx]
	}
	return cut
}
