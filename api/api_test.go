package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"trendpulse/dataset"
	"trendpulse/generation"
	"trendpulse/normalize"
	"trendpulse/scoring"
	"trendpulse/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePipeline struct {
	runs int
	err  error
}

func (f *fakePipeline) Run(ctx context.Context) (*normalize.Stats, error) {
	f.runs++
	if f.err != nil {
		return nil, f.err
	}
	return &normalize.Stats{Written: 5}, nil
}

type fakeRunner struct {
	gotTopic string
	gotOpts  generation.RunOptions
	gotCtx   *types.GenerationContext
	err      error
}

func (f *fakeRunner) Run(ctx context.Context, topic string, gctx *types.GenerationContext, opts generation.RunOptions) ([]types.GeneratedPost, []types.ScoredVariant, error) {
	f.gotTopic = topic
	f.gotOpts = opts
	f.gotCtx = gctx
	if f.err != nil {
		return nil, nil, f.err
	}
	posts := []types.GeneratedPost{{Topic: topic, VariationNo: 1, Text: "hello", Score: 4.5}}
	variants := []types.ScoredVariant{{Topic: topic, VariationNo: 1, Text: "hello", FinalScore: 4.5}}
	return posts, variants, nil
}

func newTestServer() (*Server, *fakePipeline, *fakeRunner) {
	pipeline := &fakePipeline{}
	runner := &fakeRunner{}
	s := &Server{
		Pipeline: pipeline,
		Scorer:   scoring.NewScorer(nil, nil),
		Runner:   runner,
		LoadContext: func() (*types.GenerationContext, error) {
			return &types.GenerationContext{BestTone: "positive"}, nil
		},
	}
	return s, pipeline, runner
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s, _, _ := newTestServer()
	w := doRequest(NewRouter(s), http.MethodGet, "/api/health", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestScore(t *testing.T) {
	s, _, _ := newTestServer()
	r := NewRouter(s)

	w := doRequest(r, http.MethodPost, "/api/score",
		`{"text": "Discover our new analytics platform #data", "keywords": ["analytics"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Score    float64          `json:"score"`
		Features scoring.Features `json:"features"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Score <= 0 {
		t.Errorf("score = %v, want > 0", resp.Score)
	}
	if resp.Features.KeywordHits != 1 {
		t.Errorf("keyword hits = %d, want 1", resp.Features.KeywordHits)
	}
	if resp.Features.Hashtags != 1 {
		t.Errorf("hashtags = %d, want 1", resp.Features.Hashtags)
	}
}

func TestScoreRejectsMissingText(t *testing.T) {
	s, _, _ := newTestServer()
	w := doRequest(NewRouter(s), http.MethodPost, "/api/score", `{"keywords": ["x"]}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGenerate(t *testing.T) {
	s, _, runner := newTestServer()
	r := NewRouter(s)

	w := doRequest(r, http.MethodPost, "/api/generate",
		`{"topic": "fitness", "variations": 2, "max_words": 50}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	if runner.gotTopic != "fitness" {
		t.Errorf("topic = %q, want fitness", runner.gotTopic)
	}
	if runner.gotOpts.Variations != 2 || runner.gotOpts.MaxWords != 50 {
		t.Errorf("opts = %+v", runner.gotOpts)
	}
	if runner.gotCtx == nil || runner.gotCtx.BestTone != "positive" {
		t.Errorf("context = %+v, want loaded context", runner.gotCtx)
	}

	var resp struct {
		Topic    string                `json:"topic"`
		Posts    []types.GeneratedPost `json:"posts"`
		Variants []types.ScoredVariant `json:"variants"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Posts) != 1 || len(resp.Variants) != 1 {
		t.Errorf("posts = %d, variants = %d, want 1 each", len(resp.Posts), len(resp.Variants))
	}
}

func TestGenerateFailurePropagates(t *testing.T) {
	s, _, runner := newTestServer()
	runner.err = errors.New("model unavailable")

	w := doRequest(NewRouter(s), http.MethodPost, "/api/generate", `{"topic": "fitness"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestGenerateWithoutContextLoader(t *testing.T) {
	s, _, runner := newTestServer()
	s.LoadContext = func() (*types.GenerationContext, error) {
		return nil, errors.New("derived tables missing")
	}

	w := doRequest(NewRouter(s), http.MethodPost, "/api/generate",
		`{"topic": "fitness", "tone": "urgent"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite missing context", w.Code)
	}
	if runner.gotCtx != nil {
		t.Errorf("context = %+v, want nil fallback", runner.gotCtx)
	}
	if runner.gotOpts.Tone != "urgent" {
		t.Errorf("tone = %q, want urgent", runner.gotOpts.Tone)
	}
}

func TestDatasetSummary(t *testing.T) {
	dir := t.TempDir()
	combined := filepath.Join(dir, "combined.csv")
	rows := []types.Row{
		{PostID: "a1", Platform: types.PlatformVideo, Text: "great launch everyone loved it", EngagementSum: 10, ViewCount: 100},
		{PostID: "a2", Platform: types.PlatformVideo, Text: "terrible rollout awful experience", EngagementSum: 4, ViewCount: 50},
		{PostID: "b1", Platform: types.PlatformForum, Text: "schedule posted", EngagementSum: 2},
	}
	if err := dataset.WriteCombined(combined, rows); err != nil {
		t.Fatalf("write combined: %v", err)
	}

	s, _, _ := newTestServer()
	s.CombinedPath = combined

	w := doRequest(NewRouter(s), http.MethodGet, "/api/dataset/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Rows            int            `json:"rows"`
		PerPlatform     map[string]int `json:"per_platform"`
		TotalEngagement int            `json:"total_engagement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Rows != 3 {
		t.Errorf("rows = %d, want 3", resp.Rows)
	}
	if resp.PerPlatform["youtube"] != 2 || resp.PerPlatform["reddit"] != 1 {
		t.Errorf("per_platform = %v", resp.PerPlatform)
	}
	if resp.TotalEngagement != 16 {
		t.Errorf("total_engagement = %d, want 16", resp.TotalEngagement)
	}
}

func TestDatasetSummaryMissingFile(t *testing.T) {
	s, _, _ := newTestServer()
	s.CombinedPath = filepath.Join(t.TempDir(), "nope.csv")

	w := doRequest(NewRouter(s), http.MethodGet, "/api/dataset/summary", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

type fakeAnalysis struct {
	runs int
	err  error
}

func (f *fakeAnalysis) Run() error {
	f.runs++
	return f.err
}

func TestAnalysisRun(t *testing.T) {
	s, _, _ := newTestServer()
	report := &fakeAnalysis{}
	s.Analysis = report

	w := doRequest(NewRouter(s), http.MethodPost, "/api/analysis/run", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if report.runs != 1 {
		t.Errorf("runs = %d, want 1", report.runs)
	}

	report.err = errors.New("combined dataset missing")
	w = doRequest(NewRouter(s), http.MethodPost, "/api/analysis/run", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestMetricsRun(t *testing.T) {
	s, _, _ := newTestServer()
	s.BuildMetrics = func() ([]types.PostMetrics, error) {
		return []types.PostMetrics{
			{Topic: "youtube", Score: 5.1, SentimentScore: 0.3, EngagementRate: 0.04},
			{Topic: "reddit", Score: 4.2, SentimentScore: -0.1, EngagementRate: 0.01},
		}, nil
	}

	w := doRequest(NewRouter(s), http.MethodPost, "/api/metrics/run", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Topics      int                 `json:"topics"`
		Correlation float64             `json:"correlation"`
		Metrics     []types.PostMetrics `json:"metrics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Topics != 2 || len(resp.Metrics) != 2 {
		t.Errorf("topics = %d, metrics = %d, want 2 each", resp.Topics, len(resp.Metrics))
	}
	// Two points always correlate perfectly unless one axis is constant.
	if resp.Correlation < 0.999 {
		t.Errorf("correlation = %v, want 1", resp.Correlation)
	}
}

func TestMetricsRunUnconfigured(t *testing.T) {
	s, _, _ := newTestServer()
	w := doRequest(NewRouter(s), http.MethodPost, "/api/metrics/run", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestPipelineRunAccepted(t *testing.T) {
	s, pipeline, _ := newTestServer()
	w := doRequest(NewRouter(s), http.MethodPost, "/api/pipeline/run", "")

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	_ = pipeline
}

func TestPipelineRunUnconfigured(t *testing.T) {
	s, _, _ := newTestServer()
	s.Pipeline = nil

	w := doRequest(NewRouter(s), http.MethodPost, "/api/pipeline/run", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}
