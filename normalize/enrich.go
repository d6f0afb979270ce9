package normalize

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"trendpulse/types"
)

// Enrich computes the derived numeric fields on a filtered, deduplicated
// row set: text_len, engagement_sum, engagement_rate and days_since_post.
// Row identity is unchanged.
func Enrich(rows []types.Row) []types.Row {
	return enrichAt(rows, time.Now().UTC())
}

// enrichAt is the clock-injected variant used by tests.
func enrichAt(rows []types.Row, now time.Time) []types.Row {
	enriched := make([]types.Row, 0, len(rows))
	for _, r := range rows {
		// Character length, not bytes: multi-byte text measures the same
		// as it reads.
		r.TextLen = utf8.RuneCountInString(strings.TrimSpace(r.Text))
		r.EngagementSum = r.LikeCount + r.CommentCount + r.ShareCount

		if r.Followers > 0 {
			rate := float64(r.EngagementSum) / math.Max(1, float64(r.Followers))
			r.EngagementRate = math.Round(rate*1e6) / 1e6
		} else {
			r.EngagementRate = 0.0
		}

		r.DaysSincePost = ""
		if r.PostedAt != "" {
			if posted, err := time.Parse(time.RFC3339, r.PostedAt); err == nil {
				// Floor, not truncate: a future-dated post counts as -1
				// days, not 0.
				days := int(math.Floor(now.Sub(posted).Hours() / 24))
				r.DaysSincePost = strconv.Itoa(days)
			}
		}
		enriched = append(enriched, r)
	}
	return enriched
}
