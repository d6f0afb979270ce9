package normalize

import (
	"encoding/json"
	"strings"

	"trendpulse/types"
)

// ForumAdapter normalizes Reddit exports. Timestamps arrive as Unix
// epochs, share_count falls back to the crosspost list length, and an
// absent view_count is backfilled as max(derived engagement, 1) so
// downstream rate computations never divide by zero.
type ForumAdapter struct{}

func (ForumAdapter) Platform() types.Platform { return types.PlatformForum }

func (ForumAdapter) Normalize(records []RawRecord) []types.Row {
	rows := make([]types.Row, 0, len(records))
	for _, rec := range records {
		out := baseRow(types.PlatformForum)
		out.PostID = rec.Get("id", "post_id")
		author := rec.Get("author")
		out.AuthorID = author
		out.AuthorName = author
		out.PostedAt = epochToISO(rec.Get("created_utc"))
		out.Text = joinText(rec["title"], rec["selftext"])
		out.URL = rec.Get("url", "permalink")

		out.LikeCount = safeCount(rec["ups"])
		out.CommentCount = safeCount(rec["num_comments"])
		out.ShareCount = safeCount(rec["num_crossposts"])
		if out.ShareCount == 0 {
			out.ShareCount = crosspostListLen(rec["crosspost_parent_list"])
		}

		derived := out.LikeCount + out.CommentCount + out.ShareCount
		out.ViewCount = safeCount(rec["view_count"])
		if out.ViewCount == 0 {
			out.ViewCount = max(derived, 1)
		}

		subreddit := rec.Get("subreddit")
		tags := make([]string, 0, 4)
		if subreddit != "" {
			tags = append(tags, "subreddit:"+strings.ToLower(subreddit))
		}
		tags = append(tags, extractHashtags(safeStr(rec["selftext"]))...)
		out.Tags = strings.Join(tags, "|")
		out.Language = strings.ToLower(rec.Get("language"))
		out.FetchTS = rec.Get("fetch_ts")

		meta, _ := json.Marshal(map[string]string{"subreddit": subreddit})
		out.SourceMeta = string(meta)
		rows = append(rows, out)
	}
	return rows
}

// crosspostListLen counts entries of a serialized crosspost parent list.
// The raw export stores it as a JSON array; anything else counts as zero.
func crosspostListLen(field string) int {
	field = strings.TrimSpace(field)
	if field == "" || field == "[]" {
		return 0
	}
	var list []json.RawMessage
	if err := json.Unmarshal([]byte(field), &list); err != nil {
		return 0
	}
	return len(list)
}
