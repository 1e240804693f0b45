package statestore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/niksmo/storefront/internal/adapter/statestore"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlot(t *testing.T, slot port.StateSlot) {
	t.Helper()
	ctx := t.Context()

	_, err := slot.Load(ctx, "cart-storage")
	require.ErrorIs(t, err, port.ErrSlotEmpty)

	require.NoError(t, slot.Save(ctx, "cart-storage", []byte(`{"version":0}`)))
	require.NoError(t, slot.Save(ctx, "cart-storage", []byte(`{"version":1}`)))
	require.NoError(t, slot.Save(ctx, "wishlist-storage", []byte(`[]`)))

	data, err := slot.Load(ctx, "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))

	data, err = slot.Load(ctx, "wishlist-storage")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestMemorySlot(t *testing.T) {
	testSlot(t, statestore.NewMemorySlot())
}

func TestMemorySlotCopiesData(t *testing.T) {
	slot := statestore.NewMemorySlot()
	data := []byte("abc")
	require.NoError(t, slot.Save(t.Context(), "k", data))
	data[0] = 'x'

	got, err := slot.Load(t.Context(), "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileSlot(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	slot, err := statestore.NewFileSlot(dir)
	require.NoError(t, err)

	testSlot(t, slot)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files are left behind")

	reopened, err := statestore.NewFileSlot(dir)
	require.NoError(t, err)
	data, err := reopened.Load(t.Context(), "cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))
}

func TestFileSlotInvalidKey(t *testing.T) {
	slot, err := statestore.NewFileSlot(t.TempDir())
	require.NoError(t, err)

	err = slot.Save(t.Context(), "../escape", []byte("x"))
	assert.ErrorIs(t, err, statestore.ErrInvalidKey)

	_, err = slot.Load(t.Context(), "")
	assert.ErrorIs(t, err, statestore.ErrInvalidKey)
}

func TestFileSlotCanceled(t *testing.T) {
	slot, err := statestore.NewFileSlot(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.ErrorIs(t, slot.Save(ctx, "k", nil), context.Canceled)
}

func TestRedisSlot(t *testing.T) {
	mr := miniredis.RunT(t)

	slot, err := statestore.NewRedisSlot("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(slot.Close)

	require.NoError(t, slot.Ping(t.Context()))
	testSlot(t, slot)

	got, err := mr.Get("storefront:cart-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, got)
}

func TestRedisSlotUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	slot, err := statestore.NewRedisSlot("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(slot.Close)

	mr.Close()
	assert.Error(t, slot.Ping(t.Context()))
}

func TestNewRedisSlotInvalidURL(t *testing.T) {
	_, err := statestore.NewRedisSlot("http://nope")
	assert.Error(t, err)
}
