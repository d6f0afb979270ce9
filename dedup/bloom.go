// Package dedup provides the cross-run fingerprint store backed by
// RedisBloom. The filter may report false positives but never false
// negatives inside its retention window.
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"trendpulse/config"
)

// BloomConfig configures the RedisBloom connection and filter key.
type BloomConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	TTL      time.Duration
	// Capacity sets the initial BF.RESERVE capacity (number of items)
	Capacity int
	// ErrorRate sets the desired false positive probability (e.g. 0.001)
	ErrorRate float64
	// If true, BF.RESERVE NONSCALING flag will be used
	NonScaling bool
}

// RedisBloom is a minimal Redis-backed bloom wrapper over the RedisBloom
// module commands. It implements the pipeline's fingerprint store.
type RedisBloom struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisBloomFromConfig builds a bloom store from the application
// config, with the standard capacity and error-rate defaults.
func NewRedisBloomFromConfig(cfg *config.Config) (*RedisBloom, error) {
	return NewRedisBloom(BloomConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		Key:       cfg.BloomKey,
		TTL:       cfg.BloomTTL,
		Capacity:  100000,
		ErrorRate: 0.001,
	})
}

// NewRedisBloom creates a RedisBloom wrapper and verifies connectivity.
func NewRedisBloom(cfg BloomConfig) (*RedisBloom, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	rb := &RedisBloom{client: client, key: cfg.Key, ttl: cfg.TTL}

	// If the key does not exist, attempt BF.RESERVE with the configured
	// capacity and error rate. If the RedisBloom module is missing or the
	// reserve fails, BF.ADD may still auto-create the filter, so this is
	// not treated as fatal.
	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		args := []interface{}{"BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity}
		if cfg.NonScaling {
			args = append(args, "NONSCALING")
		}
		_ = client.Do(ctx, args...).Err()
	}

	return rb, nil
}

// Close closes the underlying Redis client.
func (r *RedisBloom) Close() error {
	return r.client.Close()
}

// Exists checks whether a row fingerprint is present in the filter using
// BF.EXISTS.
func (r *RedisBloom) Exists(fingerprint string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.client.Do(ctx, "BF.EXISTS", r.key, fingerprint).Result()
	if err != nil {
		return false, err
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Add inserts a row fingerprint and refreshes the key TTL. The expire is
// reset on each add so the filter stays alive for `ttl` after the most
// recent insertion.
func (r *RedisBloom) Add(fingerprint string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Do(ctx, "BF.ADD", r.key, fingerprint).Err(); err != nil {
		return err
	}
	if err := r.client.Expire(ctx, r.key, r.ttl).Err(); err != nil {
		return err
	}
	return nil
}
