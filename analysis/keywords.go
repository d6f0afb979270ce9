// Package analysis derives aggregate signal tables from the combined
// dataset: keyword engagement stats, hashtag side tables and sentiment
// summaries. These tables prime downstream text generation.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"trendpulse/types"
)

var (
	keywordRE = regexp.MustCompile(`\b[a-zA-Z]{3,}\b`)
	hashtagRE = regexp.MustCompile(`#\w+`)
)

// stopwords is a compact English stopword set covering the function words
// that dominate social copy.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the and for are but not you all any can had her was one our out his
		has have him this that with they from she will would there their what
		about which when make like just know take into your some could them
		than then now only over also its who did get may very after most
		other where much before too more these been being because while does
		each few how own same off under again further once here why between
		both during down until above below such hers himself herself itself
		themselves myself yourself ourselves nor against
	`) {
		stopwords[w] = struct{}{}
	}
}

// ExtractKeywords returns the lowercase words of length three or more with
// stopwords removed. Duplicates are kept so frequency counts stay honest.
func ExtractKeywords(text string) []string {
	words := keywordRE.FindAllString(strings.ToLower(text), -1)
	out := words[:0]
	for _, w := range words {
		if _, skip := stopwords[w]; !skip {
			out = append(out, w)
		}
	}
	return out
}

// ExtractHashtags returns the lowercase hashtags in text.
func ExtractHashtags(text string) []string {
	return hashtagRE.FindAllString(strings.ToLower(text), -1)
}

// BuildHashtagRecords explodes rows into (platform, post_id, hashtag)
// triples for the per-platform side tables.
func BuildHashtagRecords(rows []types.Row) []types.HashtagRecord {
	var records []types.HashtagRecord
	for _, row := range rows {
		for _, tag := range ExtractHashtags(analysisText(row)) {
			records = append(records, types.HashtagRecord{
				Platform: row.Platform,
				PostID:   row.PostID,
				Hashtag:  tag,
			})
		}
	}
	return records
}

// TopKeywords picks the `limit` most frequent keywords across all rows and
// reports each one's mean engagement rate over the rows mentioning it,
// sorted by that rate descending.
func TopKeywords(rows []types.Row, limit int) []types.KeywordStat {
	perRow := keywordsPerRow(rows)

	counts := make(map[string]int)
	for _, kws := range perRow {
		for _, kw := range kws {
			counts[kw]++
		}
	}

	top := topByCount(counts, limit)

	stats := make([]types.KeywordStat, 0, len(top))
	for _, word := range top {
		var sum float64
		var n int
		for i, kws := range perRow {
			if containsWord(kws, word) {
				sum += engagementRate(rows[i])
				n++
			}
		}
		var avg float64
		if n > 0 {
			avg = sum / float64(n)
		}
		stats = append(stats, types.KeywordStat{
			Keyword:           word,
			AvgEngagementRate: avg,
			Count:             counts[word],
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].AvgEngagementRate > stats[j].AvgEngagementRate
	})
	return stats
}

// PlatformKeywords is TopKeywords grouped by platform, `limit` keywords
// each, in canonical platform order.
func PlatformKeywords(rows []types.Row, limit int) []types.PlatformKeywordStat {
	byPlatform := make(map[types.Platform][]types.Row)
	for _, row := range rows {
		byPlatform[row.Platform] = append(byPlatform[row.Platform], row)
	}

	var stats []types.PlatformKeywordStat
	for _, platform := range types.Platforms {
		group, ok := byPlatform[platform]
		if !ok {
			continue
		}
		for _, s := range TopKeywords(group, limit) {
			stats = append(stats, types.PlatformKeywordStat{
				Platform:          platform,
				Keyword:           s.Keyword,
				AvgEngagementRate: s.AvgEngagementRate,
				Count:             s.Count,
			})
		}
	}
	return stats
}

// analysisText blanks trend rows: their synthetic text would otherwise
// dominate the keyword counts with boilerplate.
func analysisText(row types.Row) string {
	if row.Platform == types.PlatformTrend {
		return ""
	}
	return row.Text
}

// engagementRate recomputes the rate over views, the denominator the
// aggregate tables use. Rows without views contribute zero.
func engagementRate(row types.Row) float64 {
	total := row.LikeCount + row.CommentCount + row.ShareCount
	if row.ViewCount == 0 {
		return 0
	}
	return float64(total) / float64(row.ViewCount)
}

func keywordsPerRow(rows []types.Row) [][]string {
	perRow := make([][]string, len(rows))
	for i, row := range rows {
		perRow[i] = ExtractKeywords(analysisText(row))
	}
	return perRow
}

// topByCount returns up to limit keywords ordered by frequency, ties
// broken alphabetically so output is stable.
func topByCount(counts map[string]int, limit int) []string {
	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
