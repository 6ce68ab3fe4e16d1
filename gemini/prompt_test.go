package gemini_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rathodv/maya"
	"github.com/rathodv/maya/gemini"
)

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("Priya", "formal")

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	text := config.SystemInstruction.Parts[0].Text
	assert.Contains(t, text, "You are Maya")
	assert.Contains(t, text, "Priya")
	assert.Contains(t, text, "professional register")
}

func TestBuildConfig_SetsTemperature(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig("", "")

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.7, *config.Temperature, 0.001)
}

func TestBuildUserPrompt_ContainsAllSections(t *testing.T) {
	t.Parallel()

	cc := maya.ChatContext{
		History: []maya.ChatMessage{
			{Role: maya.RoleUser, Text: "hi"},
			{Role: maya.RoleAssistant, Text: "hello!"},
		},
		Memory:     "Likes espresso.",
		WebContext: "Real-Time Web Info:\n[Result 1]\nTitle: Something",
		Name:       "Priya",
		Tone:       "concise",
	}

	prompt := gemini.BuildUserPrompt("what's the news?", cc)

	assert.Contains(t, prompt, "User profile: name: Priya")
	assert.Contains(t, prompt, "Known facts about the user:\nLikes espresso.")
	assert.Contains(t, prompt, "Real-Time Web Info:")
	assert.Contains(t, prompt, "Recent conversation:\nUser: hi\nMaya: hello!")
	assert.True(t, strings.HasSuffix(prompt, "User: what's the news?"))
}

func TestBuildUserPrompt_EmptyContext(t *testing.T) {
	t.Parallel()

	prompt := gemini.BuildUserPrompt("hello", maya.ChatContext{})
	assert.Equal(t, "User: hello", prompt)
}

func TestBuildUserPrompt_KeepsOnlyRecentTurns(t *testing.T) {
	t.Parallel()

	var history []maya.ChatMessage
	for i := 0; i < 10; i++ {
		history = append(history, maya.ChatMessage{Role: maya.RoleUser, Text: "turn"})
	}
	history[0].Text = "the very first turn"
	history[9].Text = "the very last turn"

	prompt := gemini.BuildUserPrompt("msg", maya.ChatContext{History: history})

	assert.NotContains(t, prompt, "the very first turn")
	assert.Contains(t, prompt, "the very last turn")
}

func TestBuildUserPrompt_ClipsMemory(t *testing.T) {
	t.Parallel()

	cc := maya.ChatContext{Memory: strings.Repeat("fact. ", 500)}
	prompt := gemini.BuildUserPrompt("msg", cc)

	assert.Less(t, len(prompt), 1000, "oversized memory should be clipped")
}
