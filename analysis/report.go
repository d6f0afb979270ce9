package analysis

import (
	"fmt"
	"log"
	"path/filepath"

	"trendpulse/config"
	"trendpulse/dataset"
	"trendpulse/scoring"
	"trendpulse/types"
)

// Paths locates the inputs and outputs of an analysis run.
type Paths struct {
	CombinedPath         string
	KeywordsPath         string
	PlatformKeywordsPath string
	SentimentPath        string
	HashtagsDir          string
	AnalyzedPath         string
}

// DefaultPaths derives the analysis paths the way Config.Load does.
func DefaultPaths() Paths {
	return Paths{
		CombinedPath:         config.DefaultCombinedPath,
		KeywordsPath:         config.DefaultKeywordsPath,
		PlatformKeywordsPath: filepath.Join(filepath.Dir(config.DefaultKeywordsPath), "eda_platform_keywords.csv"),
		SentimentPath:        config.DefaultSentimentPath,
		HashtagsDir:          config.DefaultHashtagsDir,
		AnalyzedPath:         config.DefaultAnalyzedPath,
	}
}

// Report runs the full analysis stage over the combined dataset and
// persists the derived tables generation depends on.
type Report struct {
	paths    Paths
	analyzer scoring.SentimentAnalyzer
}

func NewReport(paths Paths, analyzer scoring.SentimentAnalyzer) *Report {
	if analyzer == nil {
		analyzer = scoring.LexiconAnalyzer{}
	}
	return &Report{paths: paths, analyzer: analyzer}
}

// Run reads the combined dataset and writes the keyword, hashtag and
// sentiment tables.
func (r *Report) Run() error {
	rows, err := dataset.ReadCombined(r.paths.CombinedPath)
	if err != nil {
		return fmt.Errorf("read combined dataset: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("combined dataset %s has no rows", r.paths.CombinedPath)
	}

	if err := dataset.WriteHashtagTables(r.paths.HashtagsDir, BuildHashtagRecords(rows)); err != nil {
		return fmt.Errorf("write hashtag tables: %w", err)
	}

	top := TopKeywords(rows, config.TopKeywordLimit)
	if err := dataset.WriteTable(r.paths.KeywordsPath, top); err != nil {
		return fmt.Errorf("write top keywords: %w", err)
	}

	if r.paths.PlatformKeywordsPath != "" {
		perPlatform := PlatformKeywords(rows, config.PlatformKeywordLimit)
		if err := dataset.WriteTable(r.paths.PlatformKeywordsPath, perPlatform); err != nil {
			return fmt.Errorf("write platform keywords: %w", err)
		}
	}

	LabelRows(rows, r.analyzer)
	summary := SummarizeSentiment(rows, r.analyzer)
	if err := dataset.WriteTable(r.paths.SentimentPath, summary); err != nil {
		return fmt.Errorf("write sentiment summary: %w", err)
	}

	log.Printf("Analysis complete: %d rows, %d keywords, %d sentiment labels", len(rows), len(top), len(summary))
	return nil
}

// AnnotateGenerated labels previously generated posts and persists the
// annotated table. Missing input is a warning, not an error: generation
// may simply not have run yet.
func (r *Report) AnnotateGenerated(generatedPath string) []types.SentimentPost {
	posts, err := dataset.ReadTable[types.GeneratedPost](generatedPath)
	if err != nil {
		log.Printf("Warning: could not read generated posts: %v", err)
		return nil
	}
	analyzed := AnalyzePosts(posts, r.analyzer)
	if r.paths.AnalyzedPath != "" {
		if err := dataset.WriteTable(r.paths.AnalyzedPath, analyzed); err != nil {
			log.Printf("Warning: could not write analyzed posts: %v", err)
		}
	}
	return analyzed
}
