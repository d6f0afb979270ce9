package normalize

import (
	"trendpulse/types"
)

// RawRecord is one header-keyed row of a raw platform export.
type RawRecord map[string]string

// Get returns the trimmed value for the first key that is present and
// non-empty.
func (r RawRecord) Get(keys ...string) string {
	for _, k := range keys {
		if v := safeStr(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// Adapter maps raw platform records into canonical rows. Implementations
// are total over well-formed input: a malformed field degrades to its
// default value for that field only, and no record is ever dropped because
// of a single bad field.
type Adapter interface {
	Platform() types.Platform
	Normalize(records []RawRecord) []types.Row
}

// baseRow returns a canonical row with every field at its default.
func baseRow(platform types.Platform) types.Row {
	return types.Row{Platform: platform, EngagementRate: 0.0}
}

// Registry returns one adapter per platform in canonical order.
func Registry() []Adapter {
	return []Adapter{
		VideoAdapter{},
		MicroblogAdapter{},
		ForumAdapter{},
		PinboardAdapter{},
		TrendAdapter{},
	}
}
