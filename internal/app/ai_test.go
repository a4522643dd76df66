package app

import "testing"

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"AIzaSyExampleExample1234", "(…1234)"},
		{"abcd", "(****)"},
		{"", "(****)"},
	}

	for _, tc := range tests {
		if got := maskKey(tc.key); got != tc.want {
			t.Errorf("maskKey(%q) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestAICommandRegistered(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "ai" {
			return
		}
	}
	t.Error("ai subcommand not registered")
}
