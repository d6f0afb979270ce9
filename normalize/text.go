package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"trendpulse/config"
)

var (
	whitespaceRE = regexp.MustCompile(`[ \t]+`)
	linebreakRE  = regexp.MustCompile(`\s*\n\s*`)
	hashtagRE    = regexp.MustCompile(`#(\w+)`)
)

// cleanText normalizes whitespace and truncates to the canonical text limit.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	text = linebreakRE.ReplaceAllString(text, "\n")
	text = whitespaceRE.ReplaceAllString(text, " ")
	if utf8.RuneCountInString(text) > config.MaxTextLen {
		text = string([]rune(text)[:config.MaxTextLen])
	}
	return strings.TrimSpace(text)
}

// joinText combines title and body, skipping empty parts, then cleans the
// result.
func joinText(title, body string) string {
	parts := make([]string, 0, 2)
	for _, seg := range []string{title, body} {
		if seg = strings.TrimSpace(seg); seg != "" {
			parts = append(parts, seg)
		}
	}
	return cleanText(strings.Join(parts, "\n\n"))
}

// safeCount parses a numeric field into a non-negative integer. Anything
// unparseable, non-finite or negative coerces to 0 rather than failing
// the row. ParseFloat accepts "NaN" and "Inf" spellings, so those need an
// explicit check before the int conversion.
func safeCount(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return int(f)
}

// safeStr trims a raw field, mapping common CSV null markers to empty.
func safeStr(value string) string {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "nan", "none", "null":
		return ""
	}
	return value
}

// datetimeLayouts covers the timestamp shapes seen across raw exports.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// parseDatetime converts a raw timestamp into RFC3339 UTC. Unparseable
// values resolve to the empty string, never an error.
func parseDatetime(value string) string {
	value = safeStr(value)
	if value == "" {
		return ""
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}

// epochToISO converts a Unix timestamp (seconds, possibly fractional) into
// RFC3339 UTC, or empty when unparseable.
func epochToISO(value string) string {
	value = safeStr(value)
	if value == "" {
		return ""
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return time.Unix(int64(f), 0).UTC().Format(time.RFC3339)
}

// extractHashtags returns the lowercased #word tokens found in text, in
// order of first appearance.
func extractHashtags(text string) []string {
	matches := hashtagRE.FindAllStringSubmatch(text, -1)
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, strings.ToLower(m[1]))
	}
	return tags
}

// splitTags accepts either a pipe-delimited string or a single tag and
// returns lowercased non-empty segments.
func splitTags(field string) []string {
	field = safeStr(field)
	if field == "" {
		return nil
	}
	parts := strings.Split(field, "|")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
