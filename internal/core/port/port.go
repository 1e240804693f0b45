package port

import (
	"context"
	"errors"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ErrSlotEmpty is returned by [StateSlot.Load] when nothing was saved yet.
var ErrSlotEmpty = errors.New("state slot is empty")

// A ProductsReader reads the whole catalog. No paging, no query.
type ProductsReader interface {
	ReadProducts(context.Context) ([]domain.Product, error)
}

// A CatalogFetcher is the storefront side of the catalog retrieval.
type CatalogFetcher interface {
	FetchProducts(context.Context) ([]domain.Product, error)
}

// A StateSlot is a durable key-value slot holding full-document snapshots.
type StateSlot interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type OrderPublisher interface {
	PublishOrder(context.Context, domain.Order) error
}

type CartStore interface {
	AddItem(context.Context, domain.Product)
	RemoveItem(ctx context.Context, productID int)
	UpdateQuantity(ctx context.Context, productID, quantity int)
	ClearCart(context.Context)
	Entries() []domain.CartEntry
	Entry(productID int) (domain.CartEntry, bool)
	ItemCount() int
}

type WishlistStore interface {
	AddItem(context.Context, domain.Product)
	RemoveItem(ctx context.Context, productID int)
	Toggle(context.Context, domain.Product) bool
	IsInWishlist(productID int) bool
	ClearWishlist(context.Context)
	Items() []domain.Product
}

type FilterStore interface {
	SetSearch(string)
	SetPriceRange(domain.PriceRange)
	ToggleCategory(string)
	SetSortBy(domain.SortKey)
	Reset()
	Criteria() domain.FilterCriteria
}

type Checkout interface {
	Stage() domain.CheckoutStage
	Entries() []domain.CartEntry
	Totals() domain.Totals
	LastOrder() (domain.Order, bool)
	Continue(context.Context) domain.CheckoutStage
	Back() domain.CheckoutStage
	Restart() domain.CheckoutStage
	Increase(ctx context.Context, productID int) error
	Decrease(ctx context.Context, productID int) error
	Remove(ctx context.Context, productID int) error
}

type runner interface {
	Run(context.Context) error
}

type closer interface {
	Close()
}

type waiter interface {
	WaitReady(context.Context) error
}

// A StateSlotRunner is a slot backed by a component that must be running
// and ready before Load can observe saved snapshots.
type StateSlotRunner interface {
	StateSlot
	runner
	waiter
	closer
}
