package generation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"trendpulse/config"
	"trendpulse/dataset"
	"trendpulse/scoring"
	"trendpulse/types"
)

// RunOptions override the generation context for a single run. Zero values
// fall back to the context or the defaults.
type RunOptions struct {
	Tone       string
	Keywords   []string
	Hashtags   []string
	Variations int
	MaxWords   int
	Persist    bool
}

// Runner drives one generation cycle: N variations from the generator,
// simple scores for ranking, the feature bundle for the optimized table,
// and append-with-dedupe persistence of both.
type Runner struct {
	generator Generator
	scorer    *scoring.Scorer

	generatedPath string
	optimizedPath string
}

func NewRunner(generator Generator, scorer *scoring.Scorer, generatedPath, optimizedPath string) *Runner {
	return &Runner{
		generator:     generator,
		scorer:        scorer,
		generatedPath: generatedPath,
		optimizedPath: optimizedPath,
	}
}

// Run generates and ranks variations for a topic. Both returned slices are
// sorted by score descending.
func (r *Runner) Run(ctx context.Context, topic string, gctx *types.GenerationContext, opts RunOptions) ([]types.GeneratedPost, []types.ScoredVariant, error) {
	tone := opts.Tone
	if tone == "" && gctx != nil {
		tone = gctx.BestTone
	}
	keywords := opts.Keywords
	if len(keywords) == 0 && gctx != nil {
		keywords = gctx.TopKeywords
	}
	hashtags := opts.Hashtags
	if len(hashtags) == 0 && gctx != nil {
		hashtags = gctx.PromptHashtags
	}
	variations := opts.Variations
	if variations <= 0 {
		variations = config.DefaultVariations
	}
	maxWords := opts.MaxWords
	if maxWords <= 0 {
		maxWords = config.DefaultMaxWords
	}

	// One timestamp per run so every variation of a batch shares it.
	timestamp := time.Now().UTC().Format(time.RFC3339)

	posts := make([]types.GeneratedPost, 0, variations)
	for i := 0; i < variations; i++ {
		text, err := r.generator.Generate(ctx, topic, tone, maxWords, keywords, hashtags)
		if err != nil {
			return nil, nil, fmt.Errorf("generate variation %d: %w", i+1, err)
		}
		posts = append(posts, types.GeneratedPost{
			Topic:        topic,
			Tone:         tone,
			KeywordsUsed: strings.Join(keywords, ", "),
			HashtagsPool: strings.Join(hashtags, ", "),
			VariationNo:  i + 1,
			Text:         strings.TrimSpace(text),
			GeneratedAt:  timestamp,
		})
	}

	for i := range posts {
		posts[i].Score = r.scorer.Score(posts[i].Text, keywords)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].Score > posts[j].Score })

	variants := make([]types.ScoredVariant, 0, len(posts))
	for _, p := range posts {
		f := r.scorer.Optimize(p.Text, keywords)
		variants = append(variants, types.ScoredVariant{
			Topic:            p.Topic,
			Tone:             p.Tone,
			KeywordsUsed:     p.KeywordsUsed,
			VariationNo:      p.VariationNo,
			Text:             p.Text,
			WordCount:        f.WordCount,
			Hashtags:         f.Hashtags,
			Sentiment:        f.Sentiment,
			KeywordHits:      f.KeywordHits,
			ReadabilityBonus: f.ReadabilityBonus,
			LengthBonus:      f.LengthBonus,
			HashtagBonus:     f.HashtagBonus,
			FinalScore:       f.FinalScore,
			GeneratedAt:      p.GeneratedAt,
		})
	}
	sort.SliceStable(variants, func(i, j int) bool { return variants[i].FinalScore > variants[j].FinalScore })

	if opts.Persist {
		if _, err := dataset.AppendWithDedupe(r.generatedPath, posts, func(p types.GeneratedPost) string { return p.Text }); err != nil {
			return nil, nil, fmt.Errorf("persist generated posts: %w", err)
		}
		if _, err := dataset.AppendWithDedupe(r.optimizedPath, variants, func(v types.ScoredVariant) string { return v.Text }); err != nil {
			return nil, nil, fmt.Errorf("persist optimized posts: %w", err)
		}
	}

	return posts, variants, nil
}
