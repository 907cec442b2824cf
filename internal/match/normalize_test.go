package match

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"LogLevel", "loglevel"},
		{"log_level", "loglevel"},
		{"log-level", "loglevel"},
		{"LOG.LEVEL", "loglevel"},
		{"Log Level", "loglevel"},
		{"", ""},
		{"A", "a"},
		{"Größe", "größe"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
