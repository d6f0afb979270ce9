package main

import (
	"context"
	"log"
	"net/http"
	"path/filepath"

	"github.com/joho/godotenv"

	"trendpulse/analysis"
	"trendpulse/api"
	"trendpulse/config"
	"trendpulse/dedup"
	"trendpulse/generation"
	"trendpulse/kafka"
	"trendpulse/metrics"
	"trendpulse/normalize"
	"trendpulse/scoring"
	"trendpulse/storage"
	"trendpulse/types"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	scorer := scoring.NewScorer(nil, nil)

	server := &api.Server{
		Pipeline:    buildPipeline(ctx, cfg),
		Scorer:      scorer,
		Runner:      buildRunner(cfg, scorer),
		LoadContext: contextLoader(cfg),
		Analysis: analysis.NewReport(analysis.Paths{
			CombinedPath:         cfg.OutputPath,
			KeywordsPath:         cfg.KeywordsPath,
			PlatformKeywordsPath: filepath.Join(filepath.Dir(cfg.KeywordsPath), "eda_platform_keywords.csv"),
			SentimentPath:        cfg.SentimentPath,
			HashtagsDir:          cfg.HashtagsDir,
			AnalyzedPath:         cfg.AnalyzedPath,
		}, nil),
		BuildMetrics: func() ([]types.PostMetrics, error) {
			return metrics.Run(cfg.OptimizedPath, cfg.AnalyzedPath, cfg.OutputPath, cfg.MetricsPath)
		},
		CombinedPath: cfg.OutputPath,
	}

	addr := ":" + cfg.Port
	r := api.NewRouter(server)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/pipeline/run")
	log.Println("  POST /api/score")
	log.Println("  POST /api/generate")
	log.Println("  POST /api/analysis/run")
	log.Println("  POST /api/metrics/run")
	log.Println("  GET  /api/dataset/summary")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildPipeline wires the normalization pipeline with whichever backing
// services are configured. Missing Redis, Kafka, or S3 settings disable
// the corresponding stage rather than failing startup.
func buildPipeline(ctx context.Context, cfg *config.Config) api.PipelineRunner {
	var store normalize.FingerprintStore
	if cfg.RedisAddr != "" {
		bloom, err := dedup.NewRedisBloomFromConfig(cfg)
		if err != nil {
			log.Printf("Warning: bloom filter unavailable, falling back to in-run dedupe: %v", err)
		} else {
			store = bloom
		}
	}

	var publisher normalize.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Printf("Warning: Kafka producer unavailable, rows will not be published: %v", err)
		} else {
			publisher = producer
		}
	}

	var uploader normalize.Uploader
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewS3(ctx, storage.S3Config{
			Region: cfg.S3Region,
			Bucket: cfg.S3Bucket,
			Prefix: cfg.S3Prefix,
		})
		if err != nil {
			log.Printf("Warning: S3 unavailable, combined dataset stays local: %v", err)
		} else {
			uploader = s3Client
		}
	}

	return normalize.NewPipeline(normalize.PipelineConfig{
		Languages:  cfg.Languages,
		MinTextLen: cfg.MinTextLen,
		RawPaths:   cfg.RawPaths,
		OutputPath: cfg.OutputPath,
	}, store, publisher, uploader)
}

func buildRunner(cfg *config.Config, scorer *scoring.Scorer) api.VariantRunner {
	if cfg.CohereAPIKey == "" {
		log.Println("Warning: COHERE_API_KEY not set, /api/generate is disabled")
		return nil
	}
	generator := generation.NewCohereGenerator(cfg.CohereAPIKey, cfg.CohereModel)
	return generation.NewRunner(generator, scorer, cfg.GeneratedPath, cfg.OptimizedPath)
}

func contextLoader(cfg *config.Config) api.ContextLoader {
	return func() (*types.GenerationContext, error) {
		return generation.LoadContext(cfg.KeywordsPath, cfg.SentimentPath, cfg.HashtagsDir, generation.ContextOptions{})
	}
}
