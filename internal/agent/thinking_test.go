package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitThinking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		in           string
		wantThinking string
		wantClean    string
	}{
		{"no tags", "just a plain answer", "", "just a plain answer"},
		{
			"tags before answer",
			"<thinking>private plan</thinking>Cooperate",
			"private plan",
			"Cooperate",
		},
		{
			"tags spanning lines",
			"<thinking>line one\nline two</thinking>\nDefect",
			"line one\nline two",
			"Defect",
		},
		{
			"entire answer wrapped",
			"<thinking>I will cooperate</thinking>",
			"I will cooperate",
			"I will cooperate",
		},
		{"empty input", "", "", ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			thinking, clean := splitThinking(tc.in)
			assert.Equal(t, tc.wantThinking, thinking)
			assert.Equal(t, tc.wantClean, clean)
		})
	}
}
