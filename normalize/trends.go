package normalize

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"trendpulse/types"
)

// TrendAdapter normalizes Google Trends interest tables. Exports come in
// two shapes: long form with an explicit keyword column, or wide form with
// one column per tracked keyword. Each (keyword, date) pair becomes one
// synthetic row with the interest value recorded as both like and view
// counts.
type TrendAdapter struct{}

func (TrendAdapter) Platform() types.Platform { return types.PlatformTrend }

func (TrendAdapter) Normalize(records []RawRecord) []types.Row {
	rows := make([]types.Row, 0, len(records))
	for _, rec := range records {
		if kw := rec.Get("keyword", "term", "query"); kw != "" {
			interest := safeCount(rec.Get("interest", "value", "score", "popularity", "traffic"))
			rows = append(rows, trendRow(kw, rec.Get("date", "time", "week"), interest, rec.Get("fetch_ts", "fetch_time")))
			continue
		}
		rows = append(rows, meltWideRecord(rec)...)
	}
	return rows
}

// meltWideRecord turns a wide-form record (date column plus one value
// column per keyword) into one row per keyword.
func meltWideRecord(rec RawRecord) []types.Row {
	date := rec.Get("date", "time", "week")
	if date == "" {
		return nil
	}
	fetchTS := rec.Get("fetch_ts", "fetch_time")

	skip := map[string]bool{
		"date": true, "time": true, "week": true,
		"ispartial": true, "partial": true,
		"fetch_ts": true, "fetch_time": true,
	}
	keywords := make([]string, 0, len(rec))
	for k := range rec {
		if !skip[strings.ToLower(k)] {
			keywords = append(keywords, k)
		}
	}
	// Map iteration order is random; keep the melt deterministic.
	sort.Strings(keywords)

	rows := make([]types.Row, 0, len(keywords))
	for _, kw := range keywords {
		rows = append(rows, trendRow(kw, date, safeCount(rec[kw]), fetchTS))
	}
	return rows
}

func trendRow(keyword, rawDate string, interest int, fetchTS string) types.Row {
	out := baseRow(types.PlatformTrend)
	out.PostID = keyword + ":" + rawDate
	out.AuthorID = "google_trends"
	out.AuthorName = "Google Trends"
	out.PostedAt = parseDatetime(rawDate)
	out.Text = cleanText(fmt.Sprintf("Google Trends interest for %q on %s is %d.", keyword, rawDate, interest))
	out.LikeCount = interest
	out.ViewCount = interest
	out.Tags = strings.ToLower(keyword)
	out.Language = "en"
	out.FetchTS = fetchTS

	meta, _ := json.Marshal(map[string]any{
		"keyword":  keyword,
		"interest": interest,
		"raw_date": rawDate,
	})
	out.SourceMeta = string(meta)
	return out
}
