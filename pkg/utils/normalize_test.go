package utils

import "testing"

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Landscape", "landscape"},
		{"  BW  ", "bw"},
		{"golden   hour", "golden hour"},
		{"", ""},
		{"   ", ""},
		{"NIGHT", "night"},
	}

	for _, tt := range tests {
		if got := NormalizeTag(tt.input); got != tt.expected {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
