package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"trendpulse/analysis"
	"trendpulse/dataset"
	"trendpulse/generation"
	"trendpulse/metrics"
	"trendpulse/scoring"
	"trendpulse/types"
)

// Scorer is the subset of the scoring API the handlers need.
type Scorer interface {
	Score(text string, keywords []string) float64
	Optimize(text string, keywords []string) scoring.Features
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// handlePipelineRun triggers a normalization run. It runs asynchronously
// and returns 202 Accepted immediately.
func (s *Server) handlePipelineRun(c *gin.Context) {
	if s.Pipeline == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pipeline not configured"})
		return
	}

	go func() {
		stats, err := s.Pipeline.Run(context.Background())
		if err != nil {
			log.Printf("Warning: pipeline run failed: %v", err)
			return
		}
		log.Printf("Pipeline run complete: %d rows written", stats.Written)
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "pipeline run started"})
}

// ScoreRequest scores a single text against an optional keyword list.
type ScoreRequest struct {
	Text     string   `json:"text" binding:"required"`
	Keywords []string `json:"keywords"`
}

func (s *Server) handleScore(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"score":    s.Scorer.Score(req.Text, req.Keywords),
		"features": s.Scorer.Optimize(req.Text, req.Keywords),
	})
}

// GenerateRequest asks for ranked copy variations on a topic.
type GenerateRequest struct {
	Topic      string   `json:"topic" binding:"required"`
	Tone       string   `json:"tone"`
	Keywords   []string `json:"keywords"`
	Hashtags   []string `json:"hashtags"`
	Variations int      `json:"variations"`
	MaxWords   int      `json:"max_words"`
	Persist    bool     `json:"persist"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.Runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generator not configured"})
		return
	}

	var gctx *types.GenerationContext
	if s.LoadContext != nil {
		loaded, err := s.LoadContext()
		if err != nil {
			log.Printf("Warning: generation context unavailable, using request values only: %v", err)
		} else {
			gctx = loaded
		}
	}

	posts, variants, err := s.Runner.Run(c.Request.Context(), req.Topic, gctx, generation.RunOptions{
		Tone:       req.Tone,
		Keywords:   req.Keywords,
		Hashtags:   req.Hashtags,
		Variations: req.Variations,
		MaxWords:   req.MaxWords,
		Persist:    req.Persist,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "generation failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"topic":    req.Topic,
		"posts":    posts,
		"variants": variants,
	})
}

// handleAnalysisRun rebuilds the derived tables synchronously; the run is
// a quick in-memory pass over the combined dataset.
func (s *Server) handleAnalysisRun(c *gin.Context) {
	if s.Analysis == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis not configured"})
		return
	}
	if err := s.Analysis.Run(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "analysis complete"})
}

func (s *Server) handleMetricsRun(c *gin.Context) {
	if s.BuildMetrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics not configured"})
		return
	}
	table, err := s.BuildMetrics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "metrics build failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"topics":      len(table),
		"correlation": metrics.Correlation(table),
		"metrics":     table,
	})
}

// handleDatasetSummary reports row counts, engagement, and sentiment
// aggregates over the combined dataset.
func (s *Server) handleDatasetSummary(c *gin.Context) {
	rows, err := dataset.ReadCombined(s.CombinedPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read combined dataset: " + err.Error()})
		return
	}

	perPlatform := make(map[types.Platform]int)
	totalEngagement := 0
	for _, row := range rows {
		perPlatform[row.Platform]++
		totalEngagement += row.EngagementSum
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":             len(rows),
		"per_platform":     perPlatform,
		"total_engagement": totalEngagement,
		"sentiment":        analysis.SummarizeSentiment(rows, scoring.LexiconAnalyzer{}),
	})
}
