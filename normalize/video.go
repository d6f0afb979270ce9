package normalize

import (
	"encoding/json"
	"strings"

	"trendpulse/types"
)

// VideoAdapter normalizes YouTube search exports. Text is the title and
// description joined; the watch URL is synthesized from the video id when
// the export lacks one.
type VideoAdapter struct{}

func (VideoAdapter) Platform() types.Platform { return types.PlatformVideo }

func (VideoAdapter) Normalize(records []RawRecord) []types.Row {
	rows := make([]types.Row, 0, len(records))
	for _, rec := range records {
		out := baseRow(types.PlatformVideo)
		vid := rec.Get("video_id")
		out.PostID = vid
		out.AuthorID = rec.Get("channel_id")
		out.AuthorName = rec.Get("channel_title")
		out.PostedAt = parseDatetime(rec.Get("publish_date", "published_at"))
		out.Text = joinText(rec["title"], rec["description"])
		out.URL = rec.Get("video_url")
		if out.URL == "" && vid != "" {
			out.URL = "https://www.youtube.com/watch?v=" + vid
		}
		out.LikeCount = safeCount(rec["like_count"])
		out.CommentCount = safeCount(rec["comment_count"])
		out.ViewCount = safeCount(rec["view_count"])
		out.Tags = strings.Join(splitTags(rec["tags"]), "|")
		out.Language = strings.ToLower(rec.Get("language"))
		out.FetchTS = rec.Get("fetch_ts")

		meta, _ := json.Marshal(map[string]string{
			"thumbnail_url": rec.Get("thumbnail_url"),
			"category_id":   rec.Get("category_id"),
		})
		out.SourceMeta = string(meta)
		rows = append(rows, out)
	}
	return rows
}
