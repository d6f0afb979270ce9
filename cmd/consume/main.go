package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"trendpulse/config"
	"trendpulse/kafka"
	"trendpulse/types"
)

// Consumes enriched canonical rows from the pipeline topic and keeps
// running per-platform engagement tallies, the feed a downstream
// dashboard reads from its logs or scrapes.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if len(cfg.KafkaBrokers) == 0 {
		log.Fatal("KAFKA_BROKERS must be set to run the row consumer")
	}

	tallies := newTallyBoard()
	handler := &kafka.TypedMessageHandler[types.Row]{
		Validate: func(row *types.Row) bool {
			_, ok := types.ParsePlatform(string(row.Platform))
			return ok && row.PostID != ""
		},
		Process: func(ctx context.Context, row *types.Row) error {
			tallies.record(row)
			return nil
		},
		AlwaysMark: true,
	}

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
		Handler: handler,
	})
	if err != nil {
		log.Fatalf("Failed to create consumer: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("Failed to start consumer: %v", err)
	}

	<-ctx.Done()
	if err := consumer.Close(); err != nil {
		log.Printf("Warning: consumer close failed: %v", err)
	}
	tallies.logSummary()
}

// tallyBoard accumulates per-platform row counts and engagement sums.
type tallyBoard struct {
	mu         sync.Mutex
	rows       map[types.Platform]int
	engagement map[types.Platform]int
	total      int
}

func newTallyBoard() *tallyBoard {
	return &tallyBoard{
		rows:       make(map[types.Platform]int),
		engagement: make(map[types.Platform]int),
	}
}

func (t *tallyBoard) record(row *types.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows[row.Platform]++
	t.engagement[row.Platform] += row.EngagementSum
	t.total++
	if t.total%100 == 0 {
		t.logSummaryLocked()
	}
}

func (t *tallyBoard) logSummary() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.logSummaryLocked()
}

func (t *tallyBoard) logSummaryLocked() {
	log.Printf("Consumed %d rows total", t.total)
	for platform, count := range t.rows {
		log.Printf("  %s: %d rows, %d engagement", platform, count, t.engagement[platform])
	}
}
