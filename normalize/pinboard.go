package normalize

import (
	"strings"

	"trendpulse/types"
)

// PinboardAdapter normalizes Pinterest exports. Pinterest exposes no like
// or view counts upstream, so those stay at zero; repins count as shares
// and hashtags come from the pin description.
type PinboardAdapter struct{}

func (PinboardAdapter) Platform() types.Platform { return types.PlatformPinboard }

func (PinboardAdapter) Normalize(records []RawRecord) []types.Row {
	rows := make([]types.Row, 0, len(records))
	for _, rec := range records {
		out := baseRow(types.PlatformPinboard)
		out.PostID = rec.Get("pin_id", "id")
		author := rec.Get("author")
		out.AuthorID = author
		out.AuthorName = author
		out.PostedAt = parseDatetime(rec.Get("created_at"))
		out.Text = joinText(rec["title"], rec["description"])
		out.URL = rec.Get("link", "url")
		out.CommentCount = safeCount(rec["comment_count"])
		out.ShareCount = safeCount(rec["repin_count"])

		tags := splitTags(rec["tags"])
		if len(tags) == 0 {
			tags = extractHashtags(safeStr(rec["description"]))
		}
		out.Tags = strings.Join(tags, "|")
		out.Language = strings.ToLower(rec.Get("language"))
		out.FetchTS = rec.Get("fetch_ts")
		out.SourceMeta = "{}"
		rows = append(rows, out)
	}
	return rows
}
