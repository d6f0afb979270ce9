package normalize

import (
	"encoding/json"
	"strings"

	"trendpulse/types"
)

// MicroblogAdapter normalizes Twitter/X recent-search exports. Hashtags are
// extracted from the raw text, share_count combines retweets and quotes,
// and the author's follower count is carried forward so the enricher can
// compute an engagement rate.
type MicroblogAdapter struct{}

func (MicroblogAdapter) Platform() types.Platform { return types.PlatformMicroblog }

func (MicroblogAdapter) Normalize(records []RawRecord) []types.Row {
	rows := make([]types.Row, 0, len(records))
	for _, rec := range records {
		out := baseRow(types.PlatformMicroblog)
		tweetID := rec.Get("tweet_id", "id")
		username := rec.Get("author_username", "username")
		out.PostID = tweetID
		out.AuthorID = rec.Get("author_id")
		out.AuthorName = username
		if out.AuthorName == "" {
			out.AuthorName = rec.Get("author_name")
		}
		out.PostedAt = parseDatetime(rec.Get("created_at"))

		text := rec["text"]
		out.Text = cleanText(text)
		if tweetID != "" && username != "" {
			out.URL = "https://twitter.com/" + username + "/status/" + tweetID
		}
		out.LikeCount = safeCount(rec["like_count"])
		out.CommentCount = safeCount(rec["reply_count"])
		out.ShareCount = safeCount(rec["retweet_count"]) + safeCount(rec["quote_count"])
		out.Tags = strings.Join(extractHashtags(strings.ToLower(text)), "|")
		out.Language = strings.ToLower(rec.Get("lang", "language"))
		out.FetchTS = rec.Get("fetch_ts")

		out.Followers = safeCount(rec["author_followers"])
		meta, _ := json.Marshal(map[string]int{"followers": out.Followers})
		out.SourceMeta = string(meta)
		rows = append(rows, out)
	}
	return rows
}
