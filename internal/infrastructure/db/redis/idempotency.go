package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyTTL = 24 * time.Hour
	// pendingTTL bounds how long a crashed request can hold a key.
	pendingTTL    = time.Minute
	pendingMarker = "pending"
)

// IdempotencyStore remembers which order an Idempotency-Key produced.
// Key format: idem:pedido:<cliente_id>:<key>
type IdempotencyStore struct {
	client     *redis.Client
	ttl        time.Duration
	pendingTTL time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL, pendingTTL: pendingTTL}
}

// Reserve sets a pending marker with SETNX. When the key is already taken it
// returns the stored order id, or "" if the marker is still pending.
func (s *IdempotencyStore) Reserve(ctx context.Context, clientID, key string) (string, bool, error) {
	k := s.key(clientID, key)

	ok, err := s.client.SetNX(ctx, k, pendingMarker, s.pendingTTL).Result()
	if err != nil {
		return "", false, fmt.Errorf("idempotency reserve: %w", err)
	}
	if ok {
		return "", true, nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// Expired between SETNX and GET; the holder may still be running.
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	if val == pendingMarker {
		return "", false, nil
	}
	return val, false, nil
}

// Remember replaces the pending marker with orderID (expires after idempotencyTTL).
func (s *IdempotencyStore) Remember(ctx context.Context, clientID, key, orderID string) error {
	return s.client.Set(ctx, s.key(clientID, key), orderID, s.ttl).Err()
}

// Release deletes the key so the request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, clientID, key string) error {
	return s.client.Del(ctx, s.key(clientID, key)).Err()
}

func (s *IdempotencyStore) key(clientID, k string) string {
	return fmt.Sprintf("idem:pedido:%s:%s", clientID, k)
}
