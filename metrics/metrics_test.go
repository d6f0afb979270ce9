package metrics

import (
	"math"
	"path/filepath"
	"testing"

	"trendpulse/dataset"
	"trendpulse/types"
)

func TestRowRate(t *testing.T) {
	row := types.Row{LikeCount: 5, CommentCount: 3, ShareCount: 2, ViewCount: 99}
	// 10 / (99+1) = 0.1
	if got := rowRate(row); got != 0.1 {
		t.Fatalf("rowRate = %v, want 0.1", got)
	}

	zero := types.Row{LikeCount: 7}
	// View floor keeps the denominator positive.
	if got := rowRate(zero); got != 7.0 {
		t.Fatalf("rowRate(no views) = %v, want 7.0", got)
	}
}

func TestAggregateByPlatform(t *testing.T) {
	rows := []types.Row{
		{Platform: types.PlatformMicroblog, LikeCount: 10, ViewCount: 99},
		{Platform: types.PlatformMicroblog, LikeCount: 30, ViewCount: 99},
		{Platform: types.PlatformForum, LikeCount: 1, ViewCount: 9},
	}

	aggs := AggregateByPlatform(rows)
	if len(aggs) != 2 {
		t.Fatalf("got %d aggregates, want 2", len(aggs))
	}
	if aggs[0].Platform != types.PlatformMicroblog {
		t.Errorf("top platform = %s, want twitter", aggs[0].Platform)
	}
	// Rates 0.1 and 0.3, mean 0.2; totals 40.
	if aggs[0].MeanRate != 0.2 || aggs[0].TotalEngagement != 40 {
		t.Errorf("microblog aggregate = %+v", aggs[0])
	}
}

func TestBuildKeepsBestVariantPerTopic(t *testing.T) {
	variants := []types.ScoredVariant{
		{Topic: "ai marketing", Tone: "Positive", VariationNo: 1, Text: "weak", FinalScore: 2.1},
		{Topic: "ai marketing", Tone: "Positive", VariationNo: 2, Text: "strong", FinalScore: 5.4},
		{Topic: "growth", Tone: "Neutral", VariationNo: 1, Text: "only", FinalScore: 3.3},
	}
	sentiments := []types.SentimentPost{
		{Topic: "ai marketing", SentimentScore: 0.42},
	}

	table := Build(variants, sentiments, nil)
	if len(table) != 2 {
		t.Fatalf("got %d rows, want 2", len(table))
	}
	if table[0].Topic != "ai marketing" || table[0].VariationNo != 2 {
		t.Errorf("best variant = %+v, want variation 2", table[0])
	}
	if table[0].SentimentScore != 0.42 {
		t.Errorf("sentiment not joined: %+v", table[0])
	}
	if table[1].Topic != "growth" {
		t.Errorf("topic order not preserved: %+v", table[1])
	}
}

func TestBuildJoinsPlatformEngagement(t *testing.T) {
	variants := []types.ScoredVariant{
		{Topic: "twitter", VariationNo: 1, Text: "platform topic", FinalScore: 4.0},
		{Topic: "ai tools", VariationNo: 1, Text: "free topic", FinalScore: 4.0},
	}
	rows := []types.Row{
		{Platform: types.PlatformMicroblog, LikeCount: 10, ViewCount: 99},
	}

	table := Build(variants, nil, rows)
	if table[0].EngagementRate != 0.1 || table[0].TotalEngagement != 10 {
		t.Errorf("platform topic not joined: %+v", table[0])
	}
	if table[1].EngagementRate != 0 || table[1].TotalEngagement != 0 {
		t.Errorf("non-platform topic should stay zero: %+v", table[1])
	}
}

func TestCorrelation(t *testing.T) {
	perfect := []types.PostMetrics{
		{SentimentScore: 0.1, EngagementRate: 0.01},
		{SentimentScore: 0.2, EngagementRate: 0.02},
		{SentimentScore: 0.3, EngagementRate: 0.03},
	}
	if got := Correlation(perfect); math.Abs(got-1) > 1e-9 {
		t.Errorf("Correlation(linear) = %v, want 1", got)
	}

	if got := Correlation(perfect[:1]); got != 0 {
		t.Errorf("Correlation(single row) = %v, want 0", got)
	}

	flat := []types.PostMetrics{
		{SentimentScore: 0.1, EngagementRate: 0.02},
		{SentimentScore: 0.2, EngagementRate: 0.02},
	}
	if got := Correlation(flat); got != 0 {
		t.Errorf("Correlation(zero variance) = %v, want 0", got)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	optimizedPath := filepath.Join(dir, "optimized.csv")
	analyzedPath := filepath.Join(dir, "analyzed.csv")
	combinedPath := filepath.Join(dir, "combined.csv")
	outputPath := filepath.Join(dir, "metrics.csv")

	variants := []types.ScoredVariant{
		{Topic: "twitter", Tone: "Positive", VariationNo: 1, Text: "hello", FinalScore: 4.2},
	}
	if err := dataset.WriteTable(optimizedPath, variants); err != nil {
		t.Fatal(err)
	}
	sentiments := []types.SentimentPost{{Topic: "twitter", SentimentScore: 0.3}}
	if err := dataset.WriteTable(analyzedPath, sentiments); err != nil {
		t.Fatal(err)
	}
	rows := []types.Row{{Platform: types.PlatformMicroblog, PostID: "1", LikeCount: 4, ViewCount: 7}}
	if err := dataset.WriteCombined(combinedPath, rows); err != nil {
		t.Fatal(err)
	}

	table, err := Run(optimizedPath, analyzedPath, combinedPath, outputPath)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(table) != 1 || table[0].SentimentScore != 0.3 {
		t.Fatalf("table = %+v", table)
	}

	persisted, err := dataset.ReadTable[types.PostMetrics](outputPath)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if len(persisted) != 1 || persisted[0].Topic != "twitter" {
		t.Fatalf("persisted = %+v", persisted)
	}
}

func TestRunMissingOptimized(t *testing.T) {
	dir := t.TempDir()
	if _, err := Run(filepath.Join(dir, "nope.csv"), "", "", filepath.Join(dir, "out.csv")); err == nil {
		t.Fatal("expected error for missing optimized table")
	}
}
