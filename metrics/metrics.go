// Package metrics joins ranked variants with sentiment annotations and
// platform engagement aggregates into the performance-metrics table.
package metrics

import (
	"fmt"
	"log"
	"math"
	"sort"

	"trendpulse/dataset"
	"trendpulse/types"
)

// PlatformEngagement aggregates the combined dataset for one platform.
type PlatformEngagement struct {
	Platform        types.Platform
	TotalEngagement int
	MeanRate        float64
	Rows            int
}

// rowRate is the engagement rate the metrics table uses: interactions
// over views with a +1 view floor, rounded to 4 decimal places.
func rowRate(row types.Row) float64 {
	total := row.LikeCount + row.CommentCount + row.ShareCount
	return math.Round(float64(total)/float64(row.ViewCount+1)*10000) / 10000
}

// AggregateByPlatform folds combined rows into per-platform engagement
// aggregates, sorted by mean rate descending.
func AggregateByPlatform(rows []types.Row) []PlatformEngagement {
	sums := make(map[types.Platform]*PlatformEngagement)
	for _, row := range rows {
		agg, ok := sums[row.Platform]
		if !ok {
			agg = &PlatformEngagement{Platform: row.Platform}
			sums[row.Platform] = agg
		}
		agg.TotalEngagement += row.LikeCount + row.CommentCount + row.ShareCount
		agg.MeanRate += rowRate(row)
		agg.Rows++
	}

	out := make([]PlatformEngagement, 0, len(sums))
	for _, agg := range sums {
		agg.MeanRate = math.Round(agg.MeanRate/float64(agg.Rows)*10000) / 10000
		out = append(out, *agg)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MeanRate != out[j].MeanRate {
			return out[i].MeanRate > out[j].MeanRate
		}
		return out[i].Platform < out[j].Platform
	})
	return out
}

// Build joins optimized variants with sentiment annotations (by topic) and
// platform engagement aggregates (topic matched against platform names),
// keeping the best-scoring variant per topic.
func Build(variants []types.ScoredVariant, sentiments []types.SentimentPost, rows []types.Row) []types.PostMetrics {
	sentimentByTopic := make(map[string]float64)
	for _, s := range sentiments {
		if _, ok := sentimentByTopic[s.Topic]; !ok {
			sentimentByTopic[s.Topic] = s.SentimentScore
		}
	}

	engByPlatform := make(map[types.Platform]PlatformEngagement)
	for _, agg := range AggregateByPlatform(rows) {
		engByPlatform[agg.Platform] = agg
	}

	best := make(map[string]types.PostMetrics)
	order := make([]string, 0)
	for _, v := range variants {
		m := types.PostMetrics{
			Topic:          v.Topic,
			Tone:           v.Tone,
			VariationNo:    v.VariationNo,
			Text:           v.Text,
			Score:          v.FinalScore,
			SentimentScore: sentimentByTopic[v.Topic],
		}
		if platform, ok := types.ParsePlatform(v.Topic); ok {
			if agg, ok := engByPlatform[platform]; ok {
				m.EngagementRate = agg.MeanRate
				m.TotalEngagement = agg.TotalEngagement
			}
		}

		prev, seen := best[v.Topic]
		if !seen {
			order = append(order, v.Topic)
			best[v.Topic] = m
		} else if m.Score > prev.Score {
			best[v.Topic] = m
		}
	}

	out := make([]types.PostMetrics, 0, len(order))
	for _, topic := range order {
		out = append(out, best[topic])
	}
	return out
}

// Correlation is the Pearson correlation between sentiment score and
// engagement rate across metrics rows. Degenerate inputs yield 0.
func Correlation(rows []types.PostMetrics) float64 {
	if len(rows) < 2 {
		return 0
	}
	var sumX, sumY float64
	for _, r := range rows {
		sumX += r.SentimentScore
		sumY += r.EngagementRate
	}
	meanX := sumX / float64(len(rows))
	meanY := sumY / float64(len(rows))

	var cov, varX, varY float64
	for _, r := range rows {
		dx := r.SentimentScore - meanX
		dy := r.EngagementRate - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// Run reads the three inputs, builds the metrics table and persists it.
func Run(optimizedPath, analyzedPath, combinedPath, outputPath string) ([]types.PostMetrics, error) {
	variants, err := dataset.ReadTable[types.ScoredVariant](optimizedPath)
	if err != nil {
		return nil, fmt.Errorf("read optimized posts: %w", err)
	}

	sentiments, err := dataset.ReadTable[types.SentimentPost](analyzedPath)
	if err != nil {
		log.Printf("Warning: could not read analyzed posts: %v", err)
		sentiments = nil
	}

	rows, err := dataset.ReadCombined(combinedPath)
	if err != nil {
		log.Printf("Warning: could not read combined dataset: %v", err)
		rows = nil
	}

	table := Build(variants, sentiments, rows)
	if err := dataset.WriteTable(outputPath, table); err != nil {
		return nil, fmt.Errorf("write metrics table: %w", err)
	}

	log.Printf("Metrics table written: %d topics, sentiment/engagement correlation %.3f", len(table), Correlation(table))
	return table, nil
}
