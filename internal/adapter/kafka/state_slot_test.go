package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lovoo/goka"
	"github.com/lovoo/goka/tester"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStream = "storefront-state-snapshots"
	testGroup  = "storefront-state"
)

func newTestStateSlot(t *testing.T, gkt *tester.Tester) *StateSlot {
	t.Helper()

	slot, err := newStateSlot(
		StateSlotConfig{Stream: testStream, Group: testGroup},
		gokaOpts{
			proc:    []goka.ProcessorOption{goka.WithTester(gkt)},
			view:    []goka.ViewOption{goka.WithViewTester(gkt)},
			emitter: []goka.EmitterOption{goka.WithEmitterTester(gkt)},
		},
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = slot.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return slot
}

func TestStateSlotKeepsLatestSnapshot(t *testing.T) {
	gkt := tester.New(t)
	slot := newTestStateSlot(t, gkt)
	table := goka.GroupTable(goka.Group(testGroup))

	gkt.Consume(testStream, "cart-storage", []byte(`{"version":0}`))
	gkt.Consume(testStream, "cart-storage", []byte(`{"version":1}`))

	assert.Eventually(t, func() bool {
		v, _ := gkt.TableValue(table, "cart-storage").([]byte)
		return string(v) == `{"version":1}`
	}, time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		data, err := slot.Load(t.Context(), "cart-storage")
		return err == nil && string(data) == `{"version":1}`
	}, time.Second, 10*time.Millisecond)
}

func TestStateSlotLoadEmpty(t *testing.T) {
	gkt := tester.New(t)
	slot := newTestStateSlot(t, gkt)

	assert.Eventually(t, func() bool {
		_, err := slot.Load(t.Context(), "wishlist-storage")
		return errors.Is(err, port.ErrSlotEmpty)
	}, time.Second, 10*time.Millisecond)
}

func TestStateSlotSaveCanceled(t *testing.T) {
	gkt := tester.New(t)
	slot := newTestStateSlot(t, gkt)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, slot.Save(ctx, "cart-storage", []byte("{}")), context.Canceled)
}
