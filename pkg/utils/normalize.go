package utils

import (
	"strings"
)

// NormalizeTag folds a tag name into its canonical stored form: trimmed,
// lowercase, inner whitespace collapsed to single spaces. Tag names are
// unique per user after folding.
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	return strings.Join(strings.Fields(tag), " ")
}
