package config

// Normalization Constants
const (
	// MaxTextLen is the truncation limit applied to canonical row text
	MaxTextLen = 3000

	// DefaultMinTextLen is the minimum stripped text length a row must have
	// to pass the filter
	DefaultMinTextLen = 15
)

// Generation Constants
const (
	// DefaultVariations is the number of text candidates generated per topic
	DefaultVariations = 3

	// DefaultMaxWords caps the word budget given to the generator
	DefaultMaxWords = 150

	// DefaultTopic is used when a generation request omits the topic
	DefaultTopic = "AI in Content Marketing"
)

// Aggregation Constants
const (
	// TopKeywordLimit is how many keywords the aggregate table keeps
	TopKeywordLimit = 50

	// PlatformKeywordLimit is how many keywords each per-platform
	// aggregate keeps
	PlatformKeywordLimit = 10
)

// Default file locations relative to the data directory
const (
	DefaultCombinedPath  = "data/processed/combined_engagement_data.csv"
	DefaultKeywordsPath  = "data/processed/eda_top_keywords.csv"
	DefaultSentimentPath = "data/processed/eda_sentiment_summary.csv"
	DefaultHashtagsDir   = "data/processed/hashtags"
	DefaultGeneratedPath = "data/processed/generated_posts.csv"
	DefaultOptimizedPath = "data/processed/optimized_posts.csv"
	DefaultMetricsPath   = "data/metrics/post_performance_metrics.csv"
	DefaultAnalyzedPath  = "data/sentiment_analyzed/sentiment_analyzed_posts.csv"
)

// Default raw input locations per platform
const (
	DefaultRawYouTube   = "data/raw/youtube_search_results.csv"
	DefaultRawTwitter   = "data/raw/twitter_search_results.csv"
	DefaultRawReddit    = "data/raw/reddit_search_results.csv"
	DefaultRawPinterest = "data/raw/pinterest_posts_detailed.csv"
	DefaultRawTrends    = "data/raw/google_trends_selected.csv"
)
