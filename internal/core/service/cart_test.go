package service_test

import (
	"context"
	"testing"

	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCart(t *testing.T, slot *fakeSlot) *service.CartStore {
	t.Helper()
	codec, err := schema.NewCartCodec(schema.CodecJSON)
	require.NoError(t, err)
	return service.NewCartStore(t.Context(), slot, codec)
}

func TestCartStoreAddItem(t *testing.T) {
	cart := newCart(t, newFakeSlot())

	for n := 1; n <= 5; n++ {
		cart.AddItem(t.Context(), headphones())
		e, ok := cart.Entry(headphones().ID)
		require.True(t, ok)
		assert.Equal(t, n, e.Quantity)
	}
	assert.Len(t, cart.Entries(), 1)
	assert.Equal(t, 5, cart.ItemCount())
}

func TestCartStoreAddItemRefreshesSnapshot(t *testing.T) {
	cart := newCart(t, newFakeSlot())

	cart.AddItem(t.Context(), headphones())
	updated := headphones()
	updated.Price = 149.99
	cart.AddItem(t.Context(), updated)

	e, _ := cart.Entry(updated.ID)
	assert.Equal(t, 149.99, e.Product.Price)
	assert.Equal(t, 2, e.Quantity)
}

func TestCartStoreUpdateQuantity(t *testing.T) {
	t.Run("NonPositiveRemoves", func(t *testing.T) {
		for _, q := range []int{0, -1, -100} {
			cart := newCart(t, newFakeSlot())
			cart.AddItem(t.Context(), headphones())
			cart.UpdateQuantity(t.Context(), headphones().ID, q)
			_, ok := cart.Entry(headphones().ID)
			assert.False(t, ok, "quantity %d", q)
		}
	})

	t.Run("PositiveSetsExactly", func(t *testing.T) {
		cart := newCart(t, newFakeSlot())
		cart.AddItem(t.Context(), headphones())

		cart.UpdateQuantity(t.Context(), headphones().ID, 7)
		cart.UpdateQuantity(t.Context(), headphones().ID, 7)

		e, ok := cart.Entry(headphones().ID)
		require.True(t, ok)
		assert.Equal(t, 7, e.Quantity)
	})

	t.Run("NoClampAgainstStock", func(t *testing.T) {
		cart := newCart(t, newFakeSlot())
		cart.AddItem(t.Context(), candles())
		cart.UpdateQuantity(t.Context(), candles().ID, 100)
		e, _ := cart.Entry(candles().ID)
		assert.Equal(t, 100, e.Quantity)
	})

	t.Run("AbsentIsNoop", func(t *testing.T) {
		slot := newFakeSlot()
		cart := newCart(t, slot)
		cart.UpdateQuantity(t.Context(), 42, 3)
		assert.Empty(t, cart.Entries())
		assert.Zero(t, slot.writes)
	})
}

func TestCartStoreRemoveAndClear(t *testing.T) {
	cart := newCart(t, newFakeSlot())
	cart.AddItem(t.Context(), headphones())
	cart.AddItem(t.Context(), candles())

	cart.RemoveItem(t.Context(), 999)
	assert.Len(t, cart.Entries(), 2)

	cart.RemoveItem(t.Context(), headphones().ID)
	assert.Len(t, cart.Entries(), 1)

	cart.ClearCart(t.Context())
	assert.Empty(t, cart.Entries())
	assert.Zero(t, cart.ItemCount())
}

func TestCartStoreEntriesOrderedByID(t *testing.T) {
	cart := newCart(t, newFakeSlot())
	cart.AddItem(t.Context(), skincare())
	cart.AddItem(t.Context(), headphones())
	cart.AddItem(t.Context(), candles())

	entries := cart.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Product.ID)
	assert.Equal(t, 4, entries[1].Product.ID)
	assert.Equal(t, 5, entries[2].Product.ID)
}

func TestCartStorePersistence(t *testing.T) {
	slot := newFakeSlot()
	cart := newCart(t, slot)

	cart.AddItem(t.Context(), headphones())
	cart.AddItem(t.Context(), headphones())
	cart.AddItem(t.Context(), candles())
	assert.Equal(t, 3, slot.writes)
	assert.Contains(t, slot.data, service.CartStorageKey)

	restored := newCart(t, slot)
	assert.Equal(t, cart.Entries(), restored.Entries())

	cart.ClearCart(t.Context())
	assert.Empty(t, newCart(t, slot).Entries())
}

func TestCartStoreCorruptSlot(t *testing.T) {
	slot := newFakeSlot()
	slot.data[service.CartStorageKey] = []byte("{not json")

	cart := newCart(t, slot)
	assert.Empty(t, cart.Entries())

	cart.AddItem(t.Context(), candles())
	assert.Len(t, newCart(t, slot).Entries(), 1)
}

func TestCartStoreSubtotal(t *testing.T) {
	cart := newCart(t, newFakeSlot())
	assert.Equal(t, "0.00", cart.Subtotal().StringFixed(2))

	cart.AddItem(t.Context(), candles())
	cart.AddItem(t.Context(), candles())
	cart.AddItem(t.Context(), headphones())

	assert.Equal(t, "299.97", cart.Subtotal().StringFixed(2))
}

func TestCartStorePersistsWhenCallerGone(t *testing.T) {
	slot := newFakeSlot()
	cart := newCart(t, slot)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	cart.AddItem(ctx, candles())
	cart.UpdateQuantity(ctx, candles().ID, 3)

	restored := newCart(t, slot)
	e, ok := restored.Entry(candles().ID)
	require.True(t, ok)
	assert.Equal(t, 3, e.Quantity)
}
