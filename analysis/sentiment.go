package analysis

import (
	"sort"

	"trendpulse/scoring"
	"trendpulse/types"
)

// Dataset rows get the coarse lowercase labels the summary table uses;
// generated posts get the finer capitalized labels with emotion bands.
const (
	datasetThreshold = 0.05
	postThreshold    = 0.2
)

// DatasetLabel classifies a dataset row's polarity.
func DatasetLabel(polarity float64) string {
	switch {
	case polarity >= datasetThreshold:
		return "positive"
	case polarity <= -datasetThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

// PostLabel classifies a generated post's polarity.
func PostLabel(polarity float64) string {
	switch {
	case polarity > postThreshold:
		return "Positive"
	case polarity < -postThreshold:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Emotion maps polarity to a dominant-emotion band.
func Emotion(polarity float64) string {
	switch {
	case polarity > 0.5:
		return "Joy"
	case polarity > 0.1:
		return "Optimism"
	case polarity >= -0.1:
		return "Calm"
	case polarity >= -0.5:
		return "Frustration"
	default:
		return "Anger"
	}
}

// LabelRows annotates each row's sentiment column in place.
func LabelRows(rows []types.Row, analyzer scoring.SentimentAnalyzer) {
	for i := range rows {
		rows[i].Sentiment = DatasetLabel(analyzer.Polarity(rows[i].Text))
	}
}

// SummarizeSentiment labels every row and reports the mean engagement
// rate per label, sorted by rate descending.
func SummarizeSentiment(rows []types.Row, analyzer scoring.SentimentAnalyzer) []types.SentimentSummary {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range rows {
		label := rows[i].Sentiment
		if label == "" {
			label = DatasetLabel(analyzer.Polarity(rows[i].Text))
		}
		sums[label] += engagementRate(rows[i])
		counts[label]++
	}

	summary := make([]types.SentimentSummary, 0, len(sums))
	for label, sum := range sums {
		summary = append(summary, types.SentimentSummary{
			SentimentLabel: label,
			EngagementRate: sum / float64(counts[label]),
		})
	}
	sort.SliceStable(summary, func(i, j int) bool {
		if summary[i].EngagementRate != summary[j].EngagementRate {
			return summary[i].EngagementRate > summary[j].EngagementRate
		}
		return summary[i].SentimentLabel < summary[j].SentimentLabel
	})
	return summary
}

// AnalyzePosts annotates generated posts with polarity, label and
// dominant emotion.
func AnalyzePosts(posts []types.GeneratedPost, analyzer scoring.SentimentAnalyzer) []types.SentimentPost {
	out := make([]types.SentimentPost, 0, len(posts))
	for _, p := range posts {
		polarity := analyzer.Polarity(p.Text)
		out = append(out, types.SentimentPost{
			Topic:           p.Topic,
			Tone:            p.Tone,
			VariationNo:     p.VariationNo,
			Text:            p.Text,
			SentimentScore:  polarity,
			SentimentLabel:  PostLabel(polarity),
			DominantEmotion: Emotion(polarity),
		})
	}
	return out
}
