package service

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/shopspring/decimal"
)

const CartStorageKey = "cart-storage"

var _ port.CartStore = (*CartStore)(nil)

// A CartStore keeps at most one entry per product id, each with
// quantity >= 1.
type CartStore struct {
	mu    sync.Mutex
	items map[int]domain.CartEntry
	state persisted[schema.CartStateV1]
}

// NewCartStore restores the cart from slot, falling back to an empty cart.
func NewCartStore(
	ctx context.Context, slot port.StateSlot, codec schema.Codec[schema.CartStateV1],
) *CartStore {
	s := &CartStore{
		items: make(map[int]domain.CartEntry),
		state: newPersisted(slot, CartStorageKey, codec),
	}

	snapshot, ok := s.state.load(ctx)
	if !ok {
		return s
	}
	for _, item := range snapshot.Items {
		if item.Quantity <= 0 {
			continue
		}
		s.items[item.Product.ID] = domain.CartEntry{
			Product:  schema.ProductFromV1(item.Product),
			Quantity: item.Quantity,
		}
	}
	return s
}

func (s *CartStore) AddItem(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity := 1
	if current, ok := s.items[p.ID]; ok {
		quantity = current.Quantity + 1
	}
	s.items[p.ID] = domain.CartEntry{Product: p, Quantity: quantity}
	s.persist(ctx)
}

func (s *CartStore) RemoveItem(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, productID)
	s.persist(ctx)
}

// UpdateQuantity removes the entry when quantity <= 0, otherwise sets it
// exactly. Upper bounds against stock are the caller's concern.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		delete(s.items, productID)
		s.persist(ctx)
		return
	}

	entry, ok := s.items[productID]
	if !ok {
		return
	}
	entry.Quantity = quantity
	s.items[productID] = entry
	s.persist(ctx)
}

func (s *CartStore) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.items)
	s.persist(ctx)
}

// Entries returns the entries ordered by product id.
func (s *CartStore) Entries() []domain.CartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries()
}

func (s *CartStore) Entry(productID int) (domain.CartEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[productID]
	return e, ok
}

// ItemCount is the sum of all quantities.
func (s *CartStore) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, e := range s.items {
		n += e.Quantity
	}
	return n
}

// Subtotal is the sum of line totals rounded to cents.
func (s *CartStore) Subtotal() decimal.Decimal {
	return domain.ComputeTotals(s.Entries()).Subtotal
}

func (s *CartStore) entries() []domain.CartEntry {
	ids := slices.Sorted(maps.Keys(s.items))
	out := make([]domain.CartEntry, len(ids))
	for i, id := range ids {
		out[i] = s.items[id]
	}
	return out
}

// persist must be called with mu held.
func (s *CartStore) persist(ctx context.Context) {
	entries := s.entries()
	snapshot := schema.CartStateV1{Items: make([]schema.CartItemV1, len(entries))}
	for i, e := range entries {
		snapshot.Items[i] = schema.CartItemV1{
			Product:  schema.ProductToV1(e.Product),
			Quantity: e.Quantity,
		}
	}
	s.state.save(ctx, snapshot)
}
