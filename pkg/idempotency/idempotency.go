// Package idempotency remembers the outcome of keyed requests so a client
// retry returns the first response instead of repeating the side effect.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrInFlight = errors.New("idempotency: request with this key is still in flight")

const pendingMarker = "\x00pending"

type Store interface {
	// Begin reserves key. found is true when a completed response is
	// already stored for it; ErrInFlight means another request holds it.
	Begin(ctx context.Context, key string) (cached []byte, found bool, err error)
	Complete(ctx context.Context, key string, body []byte) error
	Release(ctx context.Context, key string) error
}

type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "idem:"}
}

func (s *RedisStore) Begin(ctx context.Context, key string) ([]byte, bool, error) {
	k := s.prefix + key

	ok, err := s.rdb.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if ok {
		return nil, false, nil
	}

	val, err := s.rdb.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		// Expired or released between SETNX and GET; the holder is gone.
		return nil, false, ErrInFlight
	}
	if err != nil {
		return nil, false, fmt.Errorf("read idempotency key: %w", err)
	}
	if string(val) == pendingMarker {
		return nil, false, ErrInFlight
	}
	return val, true, nil
}

func (s *RedisStore) Complete(ctx context.Context, key string, body []byte) error {
	return s.rdb.Set(ctx, s.prefix+key, body, s.ttl).Err()
}

func (s *RedisStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, s.prefix+key).Err()
}
