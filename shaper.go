package maya

import (
	"regexp"
	"strings"
)

// SuggestionPrefix marks follow-up suggestion lines in a reply.
const SuggestionPrefix = "➝"

// maxSuggestions caps suggestion lines per reply.
const maxSuggestions = 2

// bannedPhrases match model output that references past turns. The
// system prompt forbids these; scrubbing is the backstop.
var bannedPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)last time we discussed[^.]*\.?`),
	regexp.MustCompile(`(?i)as (?:we|I) (?:discussed|mentioned)(?: before| earlier)?[^.]*\.?`),
	regexp.MustCompile(`(?i)as mentioned (?:before|earlier|previously)[^.]*\.?`),
	regexp.MustCompile(`(?i)in our (?:last|previous) conversation[^.]*\.?`),
	regexp.MustCompile(`(?i)we talked about[^.]*\.?`),
	regexp.MustCompile(`(?i)(?:the |your )?(?:last|previous|earlier) message[^.]*\.?`),
	regexp.MustCompile(`(?i)how are you feeling right now\??`),
	regexp.MustCompile(`(?i)just checking in[^.]*\.?`),
	regexp.MustCompile(`(?i)hey there[!.?]?`),
}

// suppressionPhrases in the user message disable suggestions.
var suppressionPhrases = []string{
	"no suggestions", "stop suggestions", "don't give suggestions", "dont give suggestions",
}

// ScrubReply removes phrasing that references prior conversations or
// injects unwanted check-ins, then normalizes whitespace.
func ScrubReply(text string) string {
	cleaned := text
	for _, re := range bannedPhrases {
		cleaned = re.ReplaceAllString(cleaned, "")
	}

	// Collapse the gaps scrubbing leaves behind.
	lines := strings.Split(cleaned, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// LimitSuggestions drops suggestion lines beyond maxSuggestions.
func LimitSuggestions(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	count := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), SuggestionPrefix) {
			if count >= maxSuggestions {
				continue
			}
			count++
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// Suggestions returns up to two follow-up suggestions for a reply, or
// nil when the user asked for none or the reply already carries some.
// The tone preference lightly adapts phrasing.
func Suggestions(reply, userMessage, tone string) []string {
	lowMsg := strings.ToLower(userMessage)
	for _, p := range suppressionPhrases {
		if strings.Contains(lowMsg, p) {
			return nil
		}
	}
	if strings.Contains(reply, SuggestionPrefix) {
		return nil
	}

	short := len(strings.TrimSpace(reply)) < 220

	var candidates []string
	switch {
	case containsAny(lowMsg, "how do i", "steps", "guide", "tutorial"):
		if short {
			candidates = []string{"Want a detailed step-by-step checklist?", "Need a quick rationale for each step?"}
		} else {
			candidates = []string{"Want a concise summary of the steps?", "Need a minimal checklist version?"}
		}
	case containsAny(lowMsg, "what is", "explain", "define", "meaning of"):
		if short {
			candidates = []string{"Want a deeper breakdown with examples?", "Should I compare it to a related concept?"}
		} else {
			candidates = []string{"Want a quick summary version?", "Need a real-world analogy?"}
		}
	case containsAny(lowMsg, "recommend", "suggest", "movie", "book", "music", "playlist"):
		candidates = []string{"Want more options in another style?", "Should I save these preferences for later?"}
	default:
		if short {
			candidates = []string{"Want me to expand this?", "Need related tips or resources?"}
		} else {
			candidates = []string{"Want a concise summary?", "Need an example to solidify it?"}
		}
	}

	var out []string
	for _, c := range candidates {
		if len(out) >= maxSuggestions {
			break
		}
		out = append(out, SuggestionPrefix+" "+adaptTone(c, tone))
	}
	return out
}

// ShapeReply applies the full shaping pass: scrub banned phrasing, cap
// existing suggestions, and append fresh ones when missing.
func ShapeReply(reply, userMessage, tone string) string {
	shaped := ScrubReply(reply)
	if strings.Contains(shaped, SuggestionPrefix) {
		return LimitSuggestions(shaped)
	}
	suggestions := Suggestions(shaped, userMessage, tone)
	if len(suggestions) == 0 {
		return shaped
	}
	return strings.TrimRight(shaped, "\n") + "\n" + strings.Join(suggestions, "\n")
}

// adaptTone rewrites a suggestion for the user's preferred tone.
func adaptTone(phrase, tone string) string {
	switch strings.ToLower(tone) {
	case "formal":
		out := phrase
		for from, to := range map[string]string{
			"Want a":   "Would you like a",
			"Want an":  "Would you like an",
			"Want":     "Would you like",
			"Need":     "Would you like",
			"Should I": "Shall I",
		} {
			if strings.HasPrefix(out, from) {
				out = to + strings.TrimPrefix(out, from)
				break
			}
		}
		if !strings.HasSuffix(out, "?") {
			out += "?"
		}
		return out
	case "concise":
		out := strings.ReplaceAll(phrase, "Would you like", "Want")
		if len(out) > 55 {
			out = strings.TrimRight(out[:55], " .,")
		}
		if !strings.HasSuffix(out, "?") {
			out += "?"
		}
		return out
	default:
		return phrase
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
