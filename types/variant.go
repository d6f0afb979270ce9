package types

// GeneratedPost is one LLM-generated text candidate before scoring.
type GeneratedPost struct {
	Topic        string  `csv:"topic" json:"topic"`
	Tone         string  `csv:"tone" json:"tone"`
	KeywordsUsed string  `csv:"keywords_used" json:"keywords_used"`
	HashtagsPool string  `csv:"hashtags_pool" json:"hashtags_pool"`
	VariationNo  int     `csv:"variation_no" json:"variation_no"`
	Text         string  `csv:"generated_text" json:"generated_text"`
	GeneratedAt  string  `csv:"generated_at" json:"generated_at"`
	Score        float64 `csv:"score" json:"score"`
}

// ScoredVariant is a generated post together with its decomposed sub-score
// bundle. Immutable once produced; variants sharing a topic are ranked by
// FinalScore descending.
type ScoredVariant struct {
	Topic        string `csv:"topic" json:"topic"`
	Tone         string `csv:"tone" json:"tone"`
	KeywordsUsed string `csv:"keywords_used" json:"keywords_used"`
	VariationNo  int    `csv:"variation_no" json:"variation_no"`
	Text         string `csv:"generated_text" json:"generated_text"`

	WordCount        int     `csv:"word_count" json:"word_count"`
	Hashtags         int     `csv:"hashtags" json:"hashtags"`
	Sentiment        float64 `csv:"sentiment" json:"sentiment"`
	KeywordHits      int     `csv:"keyword_hits" json:"keyword_hits"`
	ReadabilityBonus float64 `csv:"readability_bonus" json:"readability_bonus"`
	LengthBonus      float64 `csv:"length_bonus" json:"length_bonus"`
	HashtagBonus     float64 `csv:"hashtag_bonus" json:"hashtag_bonus"`
	FinalScore       float64 `csv:"score" json:"score"`

	GeneratedAt string `csv:"generated_at" json:"generated_at"`
}

// PostMetrics is one record of the performance-metrics table, deduplicated
// to the best-scoring variant per topic.
type PostMetrics struct {
	Topic           string  `csv:"topic" json:"topic"`
	Tone            string  `csv:"tone" json:"tone"`
	VariationNo     int     `csv:"variation_no" json:"variation_no"`
	Text            string  `csv:"generated_text" json:"generated_text"`
	Score           float64 `csv:"score" json:"score"`
	SentimentScore  float64 `csv:"sentiment_score" json:"sentiment_score"`
	EngagementRate  float64 `csv:"engagement_rate" json:"engagement_rate"`
	TotalEngagement int     `csv:"total_engagement" json:"total_engagement"`
}

// GenerationContext is the derived signal bundle used to prime external
// text generation.
type GenerationContext struct {
	TopKeywords    []string `json:"top_keywords"`
	BestTone       string   `json:"best_tone"`
	PromptHashtags []string `json:"prompt_hashtags"`
}

// HashtagRecord is one (post, hashtag) pair of a per-platform side table.
type HashtagRecord struct {
	Platform Platform `csv:"platform" json:"platform"`
	PostID   string   `csv:"post_id" json:"post_id"`
	Hashtag  string   `csv:"hashtag" json:"hashtag"`
}

// KeywordStat is one row of the top-keywords aggregate table.
type KeywordStat struct {
	Keyword           string  `csv:"keyword" json:"keyword"`
	AvgEngagementRate float64 `csv:"avg_engagement_rate" json:"avg_engagement_rate"`
	Count             int     `csv:"count" json:"count"`
}

// PlatformKeywordStat is one row of the per-platform keyword aggregate.
type PlatformKeywordStat struct {
	Platform          Platform `csv:"platform" json:"platform"`
	Keyword           string   `csv:"keyword" json:"keyword"`
	AvgEngagementRate float64  `csv:"avg_engagement_rate" json:"avg_engagement_rate"`
	Count             int      `csv:"count" json:"count"`
}

// SentimentSummary is one row of the sentiment aggregate table: mean
// engagement rate per sentiment label.
type SentimentSummary struct {
	SentimentLabel string  `csv:"sentiment_label" json:"sentiment_label"`
	EngagementRate float64 `csv:"engagement_rate" json:"engagement_rate"`
}

// SentimentPost is a generated post annotated with sentiment analysis.
type SentimentPost struct {
	Topic           string  `csv:"topic" json:"topic"`
	Tone            string  `csv:"tone" json:"tone"`
	VariationNo     int     `csv:"variation_no" json:"variation_no"`
	Text            string  `csv:"generated_text" json:"generated_text"`
	SentimentScore  float64 `csv:"sentiment_score" json:"sentiment_score"`
	SentimentLabel  string  `csv:"sentiment_label" json:"sentiment_label"`
	DominantEmotion string  `csv:"dominant_emotion" json:"dominant_emotion"`
}
