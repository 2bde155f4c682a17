package utils

import (
	"strings"
)

// NormalizeTags coerces the repeated "tags" query parameter into an ordered
// slice of canonical tag names. Values are trimmed and case-folded; empties
// are dropped. Duplicates are kept as-is — the search predicate is a DISTINCT
// membership test, so a repeated name is redundant but harmless.
func NormalizeTags(values []string) []string {
	tags := []string{}
	for _, v := range values {
		if normalized := NormalizeTag(v); normalized != "" {
			tags = append(tags, normalized)
		}
	}
	return tags
}

// NormalizeSearchTerms coerces the repeated "searchTerm" query parameter into
// individual free-text terms. Multiple values are joined with a single space
// to recover the original phrase, then the phrase is split on runs of
// whitespace. An absent or blank parameter yields an empty slice.
func NormalizeSearchTerms(values []string) []string {
	phrase := strings.TrimSpace(strings.Join(values, " "))
	if phrase == "" {
		return []string{}
	}
	return strings.Fields(phrase)
}
