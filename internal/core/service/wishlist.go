package service

import (
	"context"
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

const WishlistStorageKey = "wishlist-storage"

var _ port.WishlistStore = (*WishlistStore)(nil)

// A WishlistStore is an insertion ordered set of products keyed by id.
type WishlistStore struct {
	mu    sync.Mutex
	items []domain.Product
	state persisted[schema.WishlistStateV1]
}

func NewWishlistStore(
	ctx context.Context, slot port.StateSlot, codec schema.Codec[schema.WishlistStateV1],
) *WishlistStore {
	s := &WishlistStore{
		state: newPersisted(slot, WishlistStorageKey, codec),
	}

	snapshot, ok := s.state.load(ctx)
	if !ok {
		return s
	}
	for _, p := range snapshot.Items {
		if s.indexOf(p.ID) < 0 {
			s.items = append(s.items, schema.ProductFromV1(p))
		}
	}
	return s
}

// AddItem appends p unless a product with the same id is present.
func (s *WishlistStore) AddItem(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(p.ID) >= 0 {
		return
	}
	s.items = append(s.items, p)
	s.persist(ctx)
}

func (s *WishlistStore) RemoveItem(ctx context.Context, productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(productID)
	s.persist(ctx)
}

// Toggle removes p when present, otherwise adds it. It reports whether p
// is in the wishlist afterwards.
func (s *WishlistStore) Toggle(ctx context.Context, p domain.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer s.persist(ctx)
	if s.indexOf(p.ID) >= 0 {
		s.remove(p.ID)
		return false
	}
	s.items = append(s.items, p)
	return true
}

func (s *WishlistStore) IsInWishlist(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productID) >= 0
}

func (s *WishlistStore) ClearWishlist(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
}

// Items returns the products in insertion order.
func (s *WishlistStore) Items() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

func (s *WishlistStore) indexOf(productID int) int {
	return slices.IndexFunc(s.items, func(p domain.Product) bool {
		return p.ID == productID
	})
}

func (s *WishlistStore) remove(productID int) {
	s.items = slices.DeleteFunc(s.items, func(p domain.Product) bool {
		return p.ID == productID
	})
}

func (s *WishlistStore) persist(ctx context.Context) {
	snapshot := schema.WishlistStateV1{Items: make([]schema.ProductV1, len(s.items))}
	for i, p := range s.items {
		snapshot.Items[i] = schema.ProductToV1(p)
	}
	s.state.save(ctx, snapshot)
}
