package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"trendpulse/generation"
	"trendpulse/normalize"
	"trendpulse/types"
)

// PipelineRunner runs one normalization cycle over the raw tables.
type PipelineRunner interface {
	Run(ctx context.Context) (*normalize.Stats, error)
}

// VariantRunner generates and ranks copy variations for a topic.
type VariantRunner interface {
	Run(ctx context.Context, topic string, gctx *types.GenerationContext, opts generation.RunOptions) ([]types.GeneratedPost, []types.ScoredVariant, error)
}

// ContextLoader supplies the generation context from the derived tables.
// It runs at request time so a fresh analysis pass is picked up without a
// restart.
type ContextLoader func() (*types.GenerationContext, error)

// AnalysisRunner rebuilds the derived keyword, hashtag and sentiment
// tables from the combined dataset.
type AnalysisRunner interface {
	Run() error
}

// MetricsBuilder builds and persists the performance-metrics table.
type MetricsBuilder func() ([]types.PostMetrics, error)

// Server holds the handler dependencies.
type Server struct {
	Pipeline     PipelineRunner
	Scorer       Scorer
	Runner       VariantRunner
	LoadContext  ContextLoader
	Analysis     AnalysisRunner
	BuildMetrics MetricsBuilder

	CombinedPath string
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	g := r.Group("/api")
	g.GET("/health", s.handleHealth)
	g.POST("/pipeline/run", s.handlePipelineRun)
	g.POST("/score", s.handleScore)
	g.POST("/generate", s.handleGenerate)
	g.POST("/analysis/run", s.handleAnalysisRun)
	g.POST("/metrics/run", s.handleMetricsRun)
	g.GET("/dataset/summary", s.handleDatasetSummary)
	return r
}
