package ai

import (
	"testing"

	"github.com/theayoodukoya/devclean-ai/internal/risk"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantScore int
		wantClass risk.Class
		wantErr   bool
	}{
		{
			name:      "plain json",
			input:     `{"score": 8, "reasons": ["Active VCS history", "Recent commits"]}`,
			wantScore: 8,
			wantClass: risk.ClassCritical,
		},
		{
			name:      "fenced with language tag",
			input:     "```json\n{\"score\": 3, \"reasons\": [\"Tutorial naming\"]}\n```",
			wantScore: 3,
			wantClass: risk.ClassBurner,
		},
		{
			name:      "fenced without tag",
			input:     "```\n{\"score\": 5, \"reasons\": []}\n```",
			wantScore: 5,
			wantClass: risk.ClassActive,
		},
		{
			name:      "score above range clamps",
			input:     `{"score": 15, "reasons": ["x"]}`,
			wantScore: 10,
			wantClass: risk.ClassCritical,
		},
		{
			name:      "negative score clamps",
			input:     `{"score": -3, "reasons": ["x"]}`,
			wantScore: 0,
			wantClass: risk.ClassBurner,
		},
		{
			name:    "not json",
			input:   "I think this project looks important.",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePayload(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePayload: %v", err)
			}
			if got.Score != tc.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tc.wantScore)
			}
			if got.Class != tc.wantClass {
				t.Errorf("class = %s, want %s", got.Class, tc.wantClass)
			}
			if got.Source != risk.SourceExternal {
				t.Errorf("source = %s, want external", got.Source)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"{\"a\":1}", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tc := range tests {
		if got := stripCodeFence(tc.input); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
