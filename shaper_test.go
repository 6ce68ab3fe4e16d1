package maya_test

import (
	"strings"
	"testing"

	"github.com/rathodv/maya"
	"github.com/stretchr/testify/assert"
)

func TestScrubReply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"removes past conversation reference",
			"Last time we discussed your trip. Paris is lovely in spring.",
			"Paris is lovely in spring.",
		},
		{
			"removes check-in question",
			"The capital is Lima. How are you feeling right now?",
			"The capital is Lima.",
		},
		{
			"removes greeting",
			"Hey there! The answer is 42.",
			"The answer is 42.",
		},
		{
			"leaves clean text alone",
			"Go is a statically typed language.",
			"Go is a statically typed language.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, maya.ScrubReply(tt.in))
		})
	}
}

func TestLimitSuggestions(t *testing.T) {
	t.Parallel()

	in := strings.Join([]string{
		"Main answer.",
		maya.SuggestionPrefix + " one?",
		maya.SuggestionPrefix + " two?",
		maya.SuggestionPrefix + " three?",
	}, "\n")

	got := maya.LimitSuggestions(in)

	assert.Equal(t, 2, strings.Count(got, maya.SuggestionPrefix))
	assert.NotContains(t, got, "three?")
}

func TestSuggestions(t *testing.T) {
	t.Parallel()

	t.Run("suppressed by user request", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, maya.Suggestions("answer", "explain pointers, no suggestions please", ""))
	})

	t.Run("skipped when reply already has some", func(t *testing.T) {
		t.Parallel()
		reply := "answer\n" + maya.SuggestionPrefix + " existing?"
		assert.Nil(t, maya.Suggestions(reply, "explain pointers", ""))
	})

	t.Run("returns at most two", func(t *testing.T) {
		t.Parallel()
		got := maya.Suggestions("short answer", "how do i bake bread", "")
		assert.Len(t, got, 2)
		for _, s := range got {
			assert.True(t, strings.HasPrefix(s, maya.SuggestionPrefix))
		}
	})

	t.Run("formal tone rephrases", func(t *testing.T) {
		t.Parallel()
		got := maya.Suggestions("short answer", "explain goroutines", "formal")
		assert.NotEmpty(t, got)
		joined := strings.Join(got, " ")
		assert.NotContains(t, joined, maya.SuggestionPrefix+" Want")
	})
}

func TestShapeReply(t *testing.T) {
	t.Parallel()

	t.Run("scrubs and appends suggestions", func(t *testing.T) {
		t.Parallel()
		got := maya.ShapeReply("Hey there! Bread needs yeast.", "how do i bake bread", "")
		assert.NotContains(t, got, "Hey there")
		assert.Contains(t, got, "Bread needs yeast.")
		assert.Equal(t, 2, strings.Count(got, maya.SuggestionPrefix))
	})

	t.Run("keeps existing suggestions capped", func(t *testing.T) {
		t.Parallel()
		in := "Answer.\n" + maya.SuggestionPrefix + " a?\n" + maya.SuggestionPrefix + " b?\n" + maya.SuggestionPrefix + " c?"
		got := maya.ShapeReply(in, "question", "")
		assert.Equal(t, 2, strings.Count(got, maya.SuggestionPrefix))
	})
}
