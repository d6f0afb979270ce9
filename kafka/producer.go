// Package kafka publishes enriched canonical rows to a topic and exposes
// a consumer group with pluggable message handling for downstream
// services (dashboard feeders, alerting).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"

	"trendpulse/types"
)

// Producer publishes canonical rows as JSON messages keyed by the row's
// identity.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewProducer creates a synchronous producer. A failed publish surfaces
// as one error for the batch instead of silently dropping rows.
func NewProducer(brokers []string, topic string) (*Producer, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &Producer{producer: producer, topic: topic}, nil
}

// PublishRows sends each row as one message. Publishing stops at the
// first delivery error.
func (p *Producer) PublishRows(ctx context.Context, rows []types.Row) error {
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := json.Marshal(&rows[i])
		if err != nil {
			return fmt.Errorf("marshal row %s: %w", rows[i].PostID, err)
		}
		msg := &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(rows[i].IdentityKey()),
			Value: sarama.ByteEncoder(payload),
		}
		if _, _, err := p.producer.SendMessage(msg); err != nil {
			return fmt.Errorf("publish row %s: %w", rows[i].PostID, err)
		}
	}
	log.Printf("Published %d rows to topic %s", len(rows), p.topic)
	return nil
}

// Close shuts the underlying producer down.
func (p *Producer) Close() error {
	return p.producer.Close()
}
