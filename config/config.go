package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"trendpulse/types"
)

// Config collects every runtime option read from the environment. Values
// fall back to sensible defaults so a bare invocation still works against
// local CSV files.
type Config struct {
	// Normalization
	Languages  []string // allow-list for the row filter; empty disables the check
	MinTextLen int
	RawPaths   map[types.Platform]string
	OutputPath string

	// Derived tables
	KeywordsPath  string
	SentimentPath string
	HashtagsDir   string
	GeneratedPath string
	OptimizedPath string
	MetricsPath   string
	AnalyzedPath  string

	// Generation
	CohereAPIKey string
	CohereModel  string

	// Ingestion
	YouTubeAPIKey      string
	YouTubeServiceFile string // service-account JSON; used when the API key is empty
	TwitterBearerToken string
	TrendsFeedURL      string
	Subreddit          string
	SearchQuery        string

	// Kafka (optional; disabled when brokers is empty)
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	// Redis bloom fingerprint filter (optional; disabled when addr is empty)
	RedisAddr     string
	RedisPassword string
	BloomKey      string
	BloomTTL      time.Duration

	// S3 upload (optional; disabled when bucket is empty)
	S3Bucket string
	S3Prefix string
	S3Region string

	// HTTP
	Port string
}

// Load reads configuration from the environment. Call godotenv.Load first
// if a .env file should be honored.
func Load() *Config {
	cfg := &Config{
		Languages:  splitList(getEnv("LANGUAGES", "en")),
		MinTextLen: getEnvInt("MIN_TEXT_LEN", DefaultMinTextLen),
		RawPaths: map[types.Platform]string{
			types.PlatformVideo:     getEnv("RAW_YOUTUBE_PATH", DefaultRawYouTube),
			types.PlatformMicroblog: getEnv("RAW_TWITTER_PATH", DefaultRawTwitter),
			types.PlatformForum:     getEnv("RAW_REDDIT_PATH", DefaultRawReddit),
			types.PlatformPinboard:  getEnv("RAW_PINTEREST_PATH", DefaultRawPinterest),
			types.PlatformTrend:     getEnv("RAW_TRENDS_PATH", DefaultRawTrends),
		},
		OutputPath: getEnv("OUTPUT_PATH", DefaultCombinedPath),

		KeywordsPath:  getEnv("KEYWORDS_PATH", DefaultKeywordsPath),
		SentimentPath: getEnv("SENTIMENT_PATH", DefaultSentimentPath),
		HashtagsDir:   getEnv("HASHTAGS_DIR", DefaultHashtagsDir),
		GeneratedPath: getEnv("GENERATED_PATH", DefaultGeneratedPath),
		OptimizedPath: getEnv("OPTIMIZED_PATH", DefaultOptimizedPath),
		MetricsPath:   getEnv("METRICS_PATH", DefaultMetricsPath),
		AnalyzedPath:  getEnv("ANALYZED_PATH", DefaultAnalyzedPath),

		CohereAPIKey: os.Getenv("COHERE_API_KEY"),
		CohereModel:  getEnv("COHERE_MODEL", "command-r"),

		YouTubeAPIKey:      os.Getenv("YOUTUBE_API_KEY"),
		YouTubeServiceFile: os.Getenv("YOUTUBE_SERVICE_ACCOUNT_FILE"),
		TwitterBearerToken: os.Getenv("BEARER_TOKEN"),
		TrendsFeedURL:      getEnv("TRENDS_FEED_URL", "https://trends.google.com/trends/trendingsearches/daily/rss?geo=US"),
		Subreddit:          getEnv("SUBREDDIT", "marketing"),
		SearchQuery:        getEnv("SEARCH_QUERY", "content generation"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "canonical-rows"),
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", "trendpulse-feeder"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASS"),
		BloomKey:      getEnv("BLOOM_KEY", "rows:bloom"),
		BloomTTL:      time.Duration(getEnvInt("BLOOM_TTL_SECONDS", 86400)) * time.Second,

		S3Bucket: os.Getenv("S3_BUCKET"),
		S3Prefix: getEnv("S3_PREFIX", "trendpulse"),
		S3Region: os.Getenv("S3_REGION"),

		Port: getEnv("PORT", "8080"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
