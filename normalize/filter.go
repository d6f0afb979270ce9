package normalize

import (
	"strings"
	"unicode/utf8"

	"trendpulse/types"
)

// Filter drops rows failing language or length policy. A row passes when
// no language restriction is configured, or its language is empty, or its
// language is in the allowed set; and its stripped text length meets
// minTextLen. Row order is preserved.
func Filter(rows []types.Row, languages []string, minTextLen int) []types.Row {
	langSet := make(map[string]bool, len(languages))
	for _, l := range languages {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			langSet[l] = true
		}
	}

	filtered := make([]types.Row, 0, len(rows))
	for _, r := range rows {
		lang := strings.ToLower(r.Language)
		if len(langSet) > 0 && lang != "" && !langSet[lang] {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(r.Text)) < minTextLen {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}
