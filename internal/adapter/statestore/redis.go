package statestore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/redis/go-redis/v9"
)

var _ port.StateSlot = (*RedisSlot)(nil)

const redisKeyPrefix = "storefront:"

// A RedisSlot stores each snapshot as a plain string value without expiry.
type RedisSlot struct {
	cl *redis.Client
}

// NewRedisSlot parses a redis:// url. The connection is checked by Ping.
func NewRedisSlot(url string) (RedisSlot, error) {
	const op = "NewRedisSlot"

	opt, err := redis.ParseURL(url)
	if err != nil {
		return RedisSlot{}, fmt.Errorf("%s: invalid url: %w", op, err)
	}
	return RedisSlot{redis.NewClient(opt)}, nil
}

func (s RedisSlot) Ping(ctx context.Context) error {
	const op = "RedisSlot.Ping"
	if err := s.cl.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: redis unavailable: %w", op, err)
	}
	slog.Info("redis is available", "op", op)
	return nil
}

func (s RedisSlot) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "RedisSlot.Load"

	data, err := s.cl.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, port.ErrSlotEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (s RedisSlot) Save(ctx context.Context, key string, data []byte) error {
	const op = "RedisSlot.Save"

	if err := s.cl.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s RedisSlot) Close() {
	const op = "RedisSlot.Close"
	log := slog.With("op", op)

	if err := s.cl.Close(); err != nil {
		log.Error("failed to close client", "err", err)
		return
	}
	log.Info("redis client is closed")
}
