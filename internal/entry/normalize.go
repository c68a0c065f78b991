package entry

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeTag trims a tag and collapses internal whitespace to single
// spaces. Casing is preserved; tags are compared case-insensitively.
func NormalizeTag(s string) string {
	s = strings.TrimSpace(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

// NormalizeTags normalizes each tag, drops empties, and deduplicates
// case-insensitively keeping the first-seen casing and order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	result := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, t)
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// NormalizeMood trims a mood label. Moods are free-form; an emoji-prefixed
// label and a plain word are both valid values.
func NormalizeMood(s string) string {
	return strings.TrimSpace(s)
}
