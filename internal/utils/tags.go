package utils

import (
	"strings"
	"unicode"
)

// ExtractTags pulls #hashtags out of free-form text, lowercased,
// deduplicated, in order of first appearance.
func ExtractTags(text string) []string {
	var tags []string
	seen := make(map[string]bool)

	fields := strings.Fields(text)
	for _, field := range fields {
		if !strings.HasPrefix(field, "#") || len(field) < 2 {
			continue
		}
		tag := strings.TrimFunc(field[1:], func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_'
		})
		if tag == "" {
			continue
		}
		tag = strings.ToLower(tag)
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	return tags
}
