package normalize

import (
	"context"
	"log"
	"os"

	"trendpulse/dataset"
	"trendpulse/types"
)

// Publisher emits enriched canonical rows to downstream consumers.
type Publisher interface {
	PublishRows(ctx context.Context, rows []types.Row) error
}

// Uploader copies a written artifact to remote storage.
type Uploader interface {
	UploadFile(ctx context.Context, path string) error
}

// PipelineConfig carries the options the normalization run recognizes.
type PipelineConfig struct {
	Languages  []string
	MinTextLen int
	RawPaths   map[types.Platform]string
	OutputPath string
}

// Stats summarizes one pipeline run.
type Stats struct {
	PerPlatform     map[types.Platform]int `json:"per_platform"`
	Normalized      int                    `json:"normalized"`
	Filtered        int                    `json:"filtered"`
	Deduped         int                    `json:"deduped"`
	Written         int                    `json:"written"`
	MissingPostedAt int                    `json:"missing_posted_at"`
	EmptyText       int                    `json:"empty_text"`
}

// Pipeline runs the full normalization flow: raw per-platform tables →
// adapters → filter → dedupe → enrich → combined dataset. Each stage fully
// consumes its input before the next starts; there is no shared mutable
// state across stages.
type Pipeline struct {
	cfg       PipelineConfig
	adapters  []Adapter
	store     FingerprintStore
	publisher Publisher
	uploader  Uploader
}

// NewPipeline wires a pipeline with the default adapter registry. The
// fingerprint store, publisher and uploader are optional; pass nil to
// disable them.
func NewPipeline(cfg PipelineConfig, store FingerprintStore, publisher Publisher, uploader Uploader) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		adapters:  Registry(),
		store:     store,
		publisher: publisher,
		uploader:  uploader,
	}
}

// Run executes one batch. A missing raw file contributes an empty set with
// a logged warning rather than aborting the run; publish and upload
// failures are likewise non-fatal.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{PerPlatform: make(map[types.Platform]int)}

	var rows []types.Row
	for _, adapter := range p.adapters {
		platform := adapter.Platform()
		path, ok := p.cfg.RawPaths[platform]
		if !ok || path == "" {
			continue
		}
		records, err := loadRawRecords(path)
		if err != nil {
			log.Printf("Warning: skipping %s input: %v", platform, err)
			continue
		}
		normalized := adapter.Normalize(records)
		stats.PerPlatform[platform] = len(normalized)
		rows = append(rows, normalized...)
	}
	stats.Normalized = len(rows)

	rows = Filter(rows, p.cfg.Languages, p.cfg.MinTextLen)
	stats.Filtered = len(rows)

	rows = DedupeWithStore(rows, p.store)
	stats.Deduped = len(rows)

	rows = Enrich(rows)
	for _, r := range rows {
		if r.PostedAt == "" {
			stats.MissingPostedAt++
		}
		if r.TextLen == 0 {
			stats.EmptyText++
		}
	}

	if err := dataset.WriteCombined(p.cfg.OutputPath, rows); err != nil {
		return stats, err
	}
	stats.Written = len(rows)
	log.Printf("Saved combined dataset: %s with %d rows", p.cfg.OutputPath, len(rows))

	if p.publisher != nil {
		if err := p.publisher.PublishRows(ctx, rows); err != nil {
			log.Printf("Warning: row publish failed: %v", err)
		}
	}
	if p.uploader != nil {
		if err := p.uploader.UploadFile(ctx, p.cfg.OutputPath); err != nil {
			log.Printf("Warning: dataset upload failed: %v", err)
		}
	}
	return stats, nil
}

func loadRawRecords(path string) ([]RawRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	maps, err := dataset.ReadRaw(path)
	if err != nil {
		return nil, err
	}
	records := make([]RawRecord, len(maps))
	for i, m := range maps {
		records[i] = RawRecord(m)
	}
	return records, nil
}
