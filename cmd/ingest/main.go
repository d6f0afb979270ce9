package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"trendpulse/config"
	"trendpulse/ingest"
	"trendpulse/types"
)

// Fetches the configured upstream sources into the raw per-platform CSV
// tables the normalization pipeline consumes. Sources without credentials
// are skipped with a warning so partial runs stay useful.
func main() {
	_ = godotenv.Load()

	var (
		query = flag.String("query", "", "search query (defaults to SEARCH_QUERY)")
		count = flag.Int("count", 100, "max records per source")
	)
	flag.Parse()

	cfg := config.Load()
	if *query == "" {
		*query = cfg.SearchQuery
	}
	ctx := context.Background()

	if cfg.YouTubeAPIKey != "" || cfg.YouTubeServiceFile != "" {
		fetcher, err := ingest.NewYouTubeFetcher(ctx, cfg.YouTubeAPIKey, cfg.YouTubeServiceFile)
		if err != nil {
			log.Printf("Warning: YouTube fetcher init failed: %v", err)
		} else if path, ok := cfg.RawPaths[types.PlatformVideo]; ok {
			n, err := fetcher.FetchToCSV(ctx, *query, *count, path)
			if err != nil {
				log.Printf("Warning: YouTube fetch failed: %v", err)
			} else {
				log.Printf("Wrote %d video records to %s", n, path)
			}
		}
	} else {
		log.Println("Skipping YouTube: no API key or service-account file configured")
	}

	if cfg.TwitterBearerToken != "" {
		fetcher := ingest.NewTwitterFetcher(cfg.TwitterBearerToken)
		if path, ok := cfg.RawPaths[types.PlatformMicroblog]; ok {
			n, err := fetcher.FetchToCSV(ctx, *query, *count, path)
			if err != nil {
				log.Printf("Warning: Twitter fetch failed: %v", err)
			} else {
				log.Printf("Wrote %d tweet records to %s", n, path)
			}
		}
	} else {
		log.Println("Skipping Twitter: BEARER_TOKEN not configured")
	}

	if cfg.Subreddit != "" {
		fetcher := ingest.NewRedditFetcher(cfg.Subreddit)
		if path, ok := cfg.RawPaths[types.PlatformForum]; ok {
			n, err := fetcher.FetchToCSV(ctx, *query, *count, path)
			if err != nil {
				log.Printf("Warning: Reddit fetch failed: %v", err)
			} else {
				log.Printf("Wrote %d forum records to %s", n, path)
			}
		}
	} else {
		log.Println("Skipping Reddit: SUBREDDIT not configured")
	}

	if cfg.TrendsFeedURL != "" {
		fetcher := ingest.NewTrendsFetcher(cfg.TrendsFeedURL)
		if path, ok := cfg.RawPaths[types.PlatformTrend]; ok {
			n, err := fetcher.FetchToCSV(*count, path)
			if err != nil {
				log.Printf("Warning: trends fetch failed: %v", err)
			} else {
				log.Printf("Wrote %d trend records to %s", n, path)
			}
		}
	} else {
		log.Println("Skipping trends: TRENDS_FEED_URL not configured")
	}
}
