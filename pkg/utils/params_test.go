package utils

import (
	"reflect"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{
			name:     "absent parameter",
			values:   nil,
			expected: []string{},
		},
		{
			name:     "single tag",
			values:   []string{"landscape"},
			expected: []string{"landscape"},
		},
		{
			name:     "multiple tags keep order",
			values:   []string{"night", "landscape", "bw"},
			expected: []string{"night", "landscape", "bw"},
		},
		{
			name:     "duplicates are kept",
			values:   []string{"landscape", "landscape"},
			expected: []string{"landscape", "landscape"},
		},
		{
			name:     "case folding and trimming",
			values:   []string{"  Landscape ", "NIGHT"},
			expected: []string{"landscape", "night"},
		},
		{
			name:     "inner whitespace collapsed",
			values:   []string{"golden   hour"},
			expected: []string{"golden hour"},
		},
		{
			name:     "blank values dropped",
			values:   []string{"", "   ", "street"},
			expected: []string{"street"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.values)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeTags(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}

func TestNormalizeSearchTerms(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected []string
	}{
		{
			name:     "absent parameter",
			values:   nil,
			expected: []string{},
		},
		{
			name:     "blank parameter",
			values:   []string{"   "},
			expected: []string{},
		},
		{
			name:     "single term",
			values:   []string{"evening"},
			expected: []string{"evening"},
		},
		{
			name:     "phrase split on whitespace runs",
			values:   []string{"evening  street   party"},
			expected: []string{"evening", "street", "party"},
		},
		{
			name:     "repeated values rejoined with a space",
			values:   []string{"evening", "street"},
			expected: []string{"evening", "street"},
		},
		{
			name:     "leading and trailing whitespace trimmed",
			values:   []string{"  harbor sunset  "},
			expected: []string{"harbor", "sunset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeSearchTerms(tt.values)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NormalizeSearchTerms(%v) = %v, want %v", tt.values, got, tt.expected)
			}
		})
	}
}
