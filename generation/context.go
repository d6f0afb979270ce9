// Package generation turns analysis signals into prompts for an external
// text generator and ranks the variants it returns.
package generation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"trendpulse/dataset"
	"trendpulse/types"
)

// ContextOptions bound the size of a loaded generation context. Zero means
// unbounded.
type ContextOptions struct {
	TopNKeywords      int
	MaxPromptHashtags int
}

// LoadContext reads the top-keywords table, the sentiment summary and the
// per-platform hashtag tables into a GenerationContext. Unlike the
// tolerant pipeline stages this loader is strict: a missing input file or
// a missing required column is an error, because generating copy from a
// partial context silently degrades output quality.
func LoadContext(keywordsPath, sentimentPath, hashtagsDir string, opts ContextOptions) (*types.GenerationContext, error) {
	keywords, err := loadKeywords(keywordsPath, opts.TopNKeywords)
	if err != nil {
		return nil, err
	}

	bestTone, err := loadBestTone(sentimentPath)
	if err != nil {
		return nil, err
	}

	hashtags := loadHashtagPool(hashtagsDir, opts.MaxPromptHashtags)

	return &types.GenerationContext{
		TopKeywords:    keywords,
		BestTone:       bestTone,
		PromptHashtags: hashtags,
	}, nil
}

func loadKeywords(path string, topN int) ([]string, error) {
	records, err := dataset.ReadRaw(path)
	if err != nil {
		return nil, fmt.Errorf("read top keywords: %w", err)
	}
	if err := requireColumns(records, path, "keyword", "avg_engagement_rate"); err != nil {
		return nil, err
	}

	type kw struct {
		word string
		rate float64
	}
	ranked := make([]kw, 0, len(records))
	for _, rec := range records {
		word := strings.TrimSpace(rec["keyword"])
		if word == "" {
			continue
		}
		rate, _ := strconv.ParseFloat(rec["avg_engagement_rate"], 64)
		ranked = append(ranked, kw{word: word, rate: rate})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].rate > ranked[j].rate })

	keywords := make([]string, 0, len(ranked))
	for _, k := range ranked {
		keywords = append(keywords, k.word)
	}
	if topN > 0 && len(keywords) > topN {
		keywords = keywords[:topN]
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("no keywords available for generation in %s", path)
	}
	return keywords, nil
}

// loadBestTone returns the sentiment label with the highest mean engagement
// rate. Ties go to the label listed first.
func loadBestTone(path string) (string, error) {
	records, err := dataset.ReadRaw(path)
	if err != nil {
		return "", fmt.Errorf("read sentiment summary: %w", err)
	}
	if err := requireColumns(records, path, "sentiment_label", "engagement_rate"); err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", fmt.Errorf("sentiment summary %s is empty", path)
	}

	best := records[0]["sentiment_label"]
	bestRate, _ := strconv.ParseFloat(records[0]["engagement_rate"], 64)
	for _, rec := range records[1:] {
		rate, _ := strconv.ParseFloat(rec["engagement_rate"], 64)
		if rate > bestRate {
			best = rec["sentiment_label"]
			bestRate = rate
		}
	}
	return best, nil
}

// loadHashtagPool unions every *_hashtags.csv under dir into a sorted,
// deduplicated pool. Unreadable files are skipped; hashtags are optional
// context, not a hard requirement.
func loadHashtagPool(dir string, limit int) []string {
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	paths, _ := filepath.Glob(filepath.Join(dir, "*_hashtags.csv"))
	for _, p := range paths {
		records, err := dataset.ReadRaw(p)
		if err != nil {
			continue
		}
		col := "hashtag"
		if len(records) > 0 {
			if _, ok := records[0][col]; !ok {
				col = "hashtags"
			}
		}
		for _, rec := range records {
			if tag := strings.TrimSpace(rec[col]); tag != "" {
				seen[tag] = struct{}{}
			}
		}
	}

	pool := make([]string, 0, len(seen))
	for tag := range seen {
		pool = append(pool, tag)
	}
	sort.Strings(pool)
	if limit > 0 && len(pool) > limit {
		pool = pool[:limit]
	}
	return pool
}

func requireColumns(records []map[string]string, path string, cols ...string) error {
	if len(records) == 0 {
		// Header-only files still satisfy the contract as far as the
		// map reader can tell; column checks need at least one record.
		return nil
	}
	for _, c := range cols {
		if _, ok := records[0][c]; !ok {
			return fmt.Errorf("%s must contain a %q column", path, c)
		}
	}
	return nil
}
