package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"trendpulse/dataset"
	"trendpulse/types"
)

type fixedAnalyzer struct {
	scores map[string]float64
}

func (f fixedAnalyzer) Polarity(text string) float64 { return f.scores[text] }

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("The AI tools are great for content marketing, not just ads")
	want := []string{"tools", "great", "content", "marketing", "ads"}
	if len(got) != len(want) {
		t.Fatalf("ExtractKeywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keyword[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExtractKeywordsShortAndStopwords(t *testing.T) {
	if got := ExtractKeywords("it is an ad"); len(got) != 0 {
		t.Errorf("ExtractKeywords(short/stopwords) = %v, want none", got)
	}
}

func TestExtractHashtags(t *testing.T) {
	got := ExtractHashtags("Big news! #AI #MarketingTips2025 end")
	if len(got) != 2 || got[0] != "#ai" || got[1] != "#marketingtips2025" {
		t.Fatalf("ExtractHashtags = %v", got)
	}
}

func TestTopKeywords(t *testing.T) {
	rows := []types.Row{
		{Platform: types.PlatformMicroblog, PostID: "1", Text: "great tools for growth", LikeCount: 10, ViewCount: 100},
		{Platform: types.PlatformMicroblog, PostID: "2", Text: "growth hacking tools", LikeCount: 30, ViewCount: 100},
		{Platform: types.PlatformForum, PostID: "3", Text: "slow quarter", LikeCount: 1, ViewCount: 100},
	}

	stats := TopKeywords(rows, 50)
	byWord := make(map[string]types.KeywordStat, len(stats))
	for _, s := range stats {
		byWord[s.Keyword] = s
	}

	growth := byWord["growth"]
	if growth.Count != 2 {
		t.Errorf("growth count = %d, want 2", growth.Count)
	}
	// Rows 1 and 2: rates 0.1 and 0.3, mean 0.2.
	if diff := growth.AvgEngagementRate - 0.2; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("growth avg rate = %v, want 0.2", growth.AvgEngagementRate)
	}

	for i := 1; i < len(stats); i++ {
		if stats[i].AvgEngagementRate > stats[i-1].AvgEngagementRate {
			t.Fatalf("stats not sorted by rate at %d", i)
		}
	}
}

func TestTopKeywordsSkipsTrendRows(t *testing.T) {
	rows := []types.Row{
		{Platform: types.PlatformTrend, PostID: "t", Text: "interest for keyword marketing", ViewCount: 50, LikeCount: 50},
	}
	if stats := TopKeywords(rows, 10); len(stats) != 0 {
		t.Errorf("trend rows produced keywords: %v", stats)
	}
}

func TestPlatformKeywordsGrouping(t *testing.T) {
	rows := []types.Row{
		{Platform: types.PlatformMicroblog, PostID: "1", Text: "alpha best tools", ViewCount: 10, LikeCount: 1},
		{Platform: types.PlatformForum, PostID: "2", Text: "beta worst tools", ViewCount: 10, LikeCount: 1},
	}
	stats := PlatformKeywords(rows, 10)

	platforms := make(map[types.Platform]bool)
	for _, s := range stats {
		platforms[s.Platform] = true
	}
	if !platforms[types.PlatformMicroblog] || !platforms[types.PlatformForum] {
		t.Fatalf("missing platform groups in %v", stats)
	}
}

func TestBuildHashtagRecords(t *testing.T) {
	rows := []types.Row{
		{Platform: types.PlatformMicroblog, PostID: "1", Text: "go go #ai #Growth"},
		{Platform: types.PlatformPinboard, PostID: "2", Text: "no tags here"},
	}
	recs := BuildHashtagRecords(rows)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[1].Hashtag != "#growth" {
		t.Errorf("hashtag not lowercased: %q", recs[1].Hashtag)
	}
}

func TestSentimentLabels(t *testing.T) {
	tests := []struct {
		polarity float64
		dataset  string
		post     string
		emotion  string
	}{
		{0.6, "positive", "Positive", "Joy"},
		{0.3, "positive", "Positive", "Optimism"},
		{0.1, "positive", "Neutral", "Calm"},
		{0.0, "neutral", "Neutral", "Calm"},
		{-0.3, "negative", "Negative", "Frustration"},
		{-0.7, "negative", "Negative", "Anger"},
	}
	for _, tt := range tests {
		if got := DatasetLabel(tt.polarity); got != tt.dataset {
			t.Errorf("DatasetLabel(%v) = %q, want %q", tt.polarity, got, tt.dataset)
		}
		if got := PostLabel(tt.polarity); got != tt.post {
			t.Errorf("PostLabel(%v) = %q, want %q", tt.polarity, got, tt.post)
		}
		if got := Emotion(tt.polarity); got != tt.emotion {
			t.Errorf("Emotion(%v) = %q, want %q", tt.polarity, got, tt.emotion)
		}
	}
}

func TestSummarizeSentiment(t *testing.T) {
	analyzer := fixedAnalyzer{scores: map[string]float64{
		"happy text":   0.5,
		"angry text":   -0.5,
		"neutral text": 0.0,
	}}
	rows := []types.Row{
		{Text: "happy text", LikeCount: 30, ViewCount: 100},
		{Text: "angry text", LikeCount: 10, ViewCount: 100},
		{Text: "neutral text", LikeCount: 20, ViewCount: 100},
	}

	summary := SummarizeSentiment(rows, analyzer)
	if len(summary) != 3 {
		t.Fatalf("got %d labels, want 3", len(summary))
	}
	if summary[0].SentimentLabel != "positive" {
		t.Errorf("top label = %q, want positive", summary[0].SentimentLabel)
	}
	for i := 1; i < len(summary); i++ {
		if summary[i].EngagementRate > summary[i-1].EngagementRate {
			t.Fatalf("summary not sorted at %d", i)
		}
	}
}

func TestAnalyzePosts(t *testing.T) {
	analyzer := fixedAnalyzer{scores: map[string]float64{"upbeat": 0.8}}
	posts := []types.GeneratedPost{{Topic: "ai", Tone: "Positive", VariationNo: 1, Text: "upbeat"}}

	out := AnalyzePosts(posts, analyzer)
	if len(out) != 1 {
		t.Fatalf("got %d analyzed posts, want 1", len(out))
	}
	if out[0].SentimentLabel != "Positive" || out[0].DominantEmotion != "Joy" {
		t.Errorf("analyzed = %+v", out[0])
	}
}

func TestReportRun(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		CombinedPath:         filepath.Join(dir, "combined.csv"),
		KeywordsPath:         filepath.Join(dir, "eda_top_keywords.csv"),
		PlatformKeywordsPath: filepath.Join(dir, "eda_platform_keywords.csv"),
		SentimentPath:        filepath.Join(dir, "eda_sentiment_summary.csv"),
		HashtagsDir:          filepath.Join(dir, "hashtags"),
	}

	rows := []types.Row{
		{Platform: types.PlatformMicroblog, PostID: "1", Text: "great tools for #growth teams", LikeCount: 5, ViewCount: 50},
		{Platform: types.PlatformForum, PostID: "2", Text: "terrible broken tools everywhere", LikeCount: 1, ViewCount: 50},
	}
	if err := dataset.WriteCombined(paths.CombinedPath, rows); err != nil {
		t.Fatal(err)
	}

	if err := NewReport(paths, nil).Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, p := range []string{paths.KeywordsPath, paths.PlatformKeywordsPath, paths.SentimentPath} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %s: %v", p, err)
		}
	}

	kws, err := dataset.ReadTable[types.KeywordStat](paths.KeywordsPath)
	if err != nil {
		t.Fatalf("read keywords: %v", err)
	}
	if len(kws) == 0 {
		t.Fatal("keyword table is empty")
	}

	tags := dataset.ReadHashtagTables(paths.HashtagsDir)
	if len(tags) != 1 || tags[0].Hashtag != "#growth" {
		t.Errorf("hashtag tables = %v", tags)
	}
}

func TestReportRunEmptyDataset(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{CombinedPath: filepath.Join(dir, "combined.csv")}
	if err := dataset.WriteCombined(paths.CombinedPath, nil); err != nil {
		t.Fatal(err)
	}
	if err := NewReport(paths, nil).Run(); err == nil {
		t.Fatal("expected error for empty dataset")
	}
}
