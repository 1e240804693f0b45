package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

// A persisted writes a full snapshot to its slot after every mutation and
// reads the slot once when a store is built.
type persisted[T any] struct {
	slot  port.StateSlot
	key   string
	codec schema.Codec[T]
}

func newPersisted[T any](
	slot port.StateSlot, key string, codec schema.Codec[T],
) persisted[T] {
	return persisted[T]{slot: slot, key: key, codec: codec}
}

// load reports false when the slot is empty or unreadable; the caller
// starts from its empty default then.
func (p persisted[T]) load(ctx context.Context) (T, bool) {
	const op = "persisted.load"
	log := slog.With("op", op, "key", p.key)

	var zero T

	data, err := p.slot.Load(ctx, p.key)
	if err != nil {
		if !errors.Is(err, port.ErrSlotEmpty) {
			log.Warn("failed to read slot, using empty state", "err", err)
		}
		return zero, false
	}

	v, err := p.codec.Decode(data)
	if err != nil {
		log.Warn("failed to decode snapshot, using empty state", "err", err)
		return zero, false
	}
	return v, true
}

func (p persisted[T]) save(ctx context.Context, v T) {
	const op = "persisted.save"
	log := slog.With("op", op, "key", p.key)

	data, err := p.codec.Encode(v)
	if err != nil {
		log.Error("failed to encode snapshot", "err", err)
		return
	}

	// The mutation is already applied in memory, so the write must outlive
	// the caller going away.
	if err := p.slot.Save(context.WithoutCancel(ctx), p.key, data); err != nil {
		log.Error("failed to write snapshot", "err", err)
	}
}
