// Package cache stores computed group balances in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fkhayef/splitledger/internal/balance"
	"github.com/fkhayef/splitledger/pkg/money"
)

// Connect opens a Redis client for url and checks it answers a PING.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	slog.Info("redis connected", "addr", opts.Addr)
	return client, nil
}

// Balances caches balance snapshots as JSON objects of user ID to cents.
type Balances struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBalances creates a balance cache that expires entries after ttl.
func NewBalances(client *redis.Client, ttl time.Duration) *Balances {
	return &Balances{client: client, ttl: ttl}
}

// Get returns the snapshot stored under key. A missing key is not an error.
func (c *Balances) Get(ctx context.Context, key string) (balance.Balances, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	b, err := decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return b, true, nil
}

// Set stores a snapshot under key.
func (c *Balances) Set(ctx context.Context, key string, b balance.Balances) error {
	raw, err := encode(b)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Nop never stores anything. It is used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, string) (balance.Balances, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, string, balance.Balances) error         { return nil }

func encode(b balance.Balances) ([]byte, error) {
	m := make(map[string]int64, len(b))
	for id, net := range b {
		m[id.String()] = net.Cents()
	}
	return json.Marshal(m)
}

func decode(raw []byte) (balance.Balances, error) {
	var m map[string]int64
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	b := make(balance.Balances, len(m))
	for k, cents := range m {
		id, err := uuid.Parse(k)
		if err != nil {
			return nil, err
		}
		b[id] = money.Amount(cents)
	}
	return b, nil
}
