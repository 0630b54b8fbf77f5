// Package redis caches transaction records for the lookup endpoint.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibbank/leapneo/internal/domain/model"
	"github.com/bibbank/leapneo/internal/domain/port"
	"github.com/bibbank/leapneo/internal/domain/valueobject"
)

var _ port.TransactionRecordCache = (*RecordCache)(nil)

const keyPrefix = "leapneo:txn:"

// RecordCache stores records as JSON under leapneo:txn:<id>:<operation>.
type RecordCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecordCache(client *redis.Client, ttl time.Duration) *RecordCache {
	return &RecordCache{client: client, ttl: ttl}
}

func cacheKey(transactionID string, op valueobject.Operation) string {
	return keyPrefix + model.RecordKey(transactionID, op)
}

func (c *RecordCache) Put(ctx context.Context, rec model.TransactionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal transaction record: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(rec.TransactionID, rec.Operation), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache transaction record: %w", err)
	}
	return nil
}

// Get returns port.ErrRecordNotFound on a miss.
func (c *RecordCache) Get(ctx context.Context, transactionID string, op valueobject.Operation) (model.TransactionRecord, error) {
	payload, err := c.client.Get(ctx, cacheKey(transactionID, op)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.TransactionRecord{}, port.ErrRecordNotFound
	}
	if err != nil {
		return model.TransactionRecord{}, fmt.Errorf("read cached transaction record: %w", err)
	}

	var rec model.TransactionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return model.TransactionRecord{}, fmt.Errorf("unmarshal cached transaction record: %w", err)
	}
	return rec, nil
}

// Ping reports whether redis is reachable.
func (c *RecordCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// NewClient opens a client and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}
