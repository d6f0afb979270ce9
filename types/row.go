package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Platform identifies the source a row was normalized from.
type Platform string

const (
	PlatformVideo     Platform = "youtube"
	PlatformMicroblog Platform = "twitter"
	PlatformForum     Platform = "reddit"
	PlatformPinboard  Platform = "pinterest"
	PlatformTrend     Platform = "google_trends"
)

// Platforms lists every supported platform in canonical order.
var Platforms = []Platform{
	PlatformVideo,
	PlatformMicroblog,
	PlatformForum,
	PlatformPinboard,
	PlatformTrend,
}

// ParsePlatform maps a platform name to its enum value.
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "youtube", "video":
		return PlatformVideo, true
	case "twitter", "microblog", "x":
		return PlatformMicroblog, true
	case "reddit", "forum":
		return PlatformForum, true
	case "pinterest", "pinboard":
		return PlatformPinboard, true
	case "google_trends", "trends", "trend":
		return PlatformTrend, true
	}
	return "", false
}

// Row is the canonical representation of one content item regardless of
// source platform. Column order of the csv tags matches the combined
// dataset layout.
type Row struct {
	Platform     Platform `csv:"platform" json:"platform"`
	PostID       string   `csv:"post_id" json:"post_id"`
	AuthorID     string   `csv:"author_id" json:"author_id"`
	AuthorName   string   `csv:"author_name" json:"author_name"`
	PostedAt     string   `csv:"posted_at" json:"posted_at"` // RFC3339 UTC or empty
	Text         string   `csv:"text" json:"text"`
	URL          string   `csv:"url" json:"url"`
	LikeCount    int      `csv:"like_count" json:"like_count"`
	CommentCount int      `csv:"comment_count" json:"comment_count"`
	ShareCount   int      `csv:"share_count" json:"share_count"`
	ViewCount    int      `csv:"view_count" json:"view_count"`
	Tags         string   `csv:"tags" json:"tags"` // pipe-delimited lowercase set
	Language     string   `csv:"language" json:"language"`
	FetchTS      string   `csv:"fetch_ts" json:"fetch_ts"`
	SourceMeta   string   `csv:"source_meta" json:"source_meta"` // opaque JSON blob

	// Derived fields, populated by the enricher only.
	TextLen        int     `csv:"text_len" json:"text_len"`
	EngagementSum  int     `csv:"engagement_sum" json:"engagement_sum"`
	EngagementRate float64 `csv:"engagement_rate" json:"engagement_rate"`
	DaysSincePost  string  `csv:"days_since_post" json:"days_since_post"` // integer days or empty
	Sentiment      string  `csv:"sentiment" json:"sentiment"`

	// Followers is the audience-size denominator for engagement_rate when
	// the platform exposes it. Carried through the pipeline but not part of
	// the combined dataset columns.
	Followers int `csv:"-" json:"-"`
}

// IdentityKey is the (platform, post_id) uniqueness key.
func (r *Row) IdentityKey() string {
	return string(r.Platform) + "\x00" + r.PostID
}

// Fingerprint hashes (platform, text, posted_at) to a short stable hex
// string. It guards against re-ingested duplicates lacking a stable id.
func (r *Row) Fingerprint() string {
	h := sha256.Sum256([]byte(string(r.Platform) + "\x00" + r.Text + "\x00" + r.PostedAt))
	return hex.EncodeToString(h[:])[:16]
}

// TagList splits the pipe-delimited tags field into a slice, dropping
// empty segments.
func (r *Row) TagList() []string {
	if r.Tags == "" {
		return nil
	}
	parts := strings.Split(r.Tags, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
