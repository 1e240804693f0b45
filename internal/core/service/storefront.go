package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/listing"
	"github.com/niksmo/storefront/internal/core/port"
)

type (
	HomeView struct {
		Products    []domain.Product
		Matched     int
		HasMore     bool
		Recommended []domain.Product
	}

	ProductView struct {
		Product    domain.Product
		InWishlist bool
		Related    []domain.Product
	}
)

// A Storefront composes the catalog with the stores for the listing
// surfaces. It owns no state of its own.
type Storefront struct {
	catalog  Catalog
	cart     port.CartStore
	wishlist port.WishlistStore
	filter   port.FilterStore
}

func NewStorefront(
	catalog Catalog,
	cart port.CartStore,
	wishlist port.WishlistStore,
	filter port.FilterStore,
) Storefront {
	return Storefront{
		catalog:  catalog,
		cart:     cart,
		wishlist: wishlist,
		filter:   filter,
	}
}

// Home returns the infinite scroll window of the filtered catalog.
func (s Storefront) Home(ctx context.Context, page int) HomeView {
	ps := s.catalog.Load(ctx)
	visible := listing.Apply(ps, s.filter.Criteria())
	window, hasMore := listing.Page(visible, page, listing.HomePageSize)
	return HomeView{
		Products:    window,
		Matched:     len(visible),
		HasMore:     hasMore,
		Recommended: listing.Recommended(ps),
	}
}

func (s Storefront) Shop(ctx context.Context) []domain.Product {
	return listing.Apply(s.catalog.Load(ctx), s.filter.Criteria())
}

// Category applies the current criteria within one category.
func (s Storefront) Category(ctx context.Context, name string) []domain.Product {
	inCategory := listing.InCategory(s.catalog.Load(ctx), name)
	return listing.Apply(inCategory, s.filter.Criteria())
}

func (s Storefront) Categories(ctx context.Context) []listing.CategorySummary {
	return listing.Categories(s.catalog.Load(ctx))
}

func (s Storefront) Product(ctx context.Context, id int) (ProductView, error) {
	const op = "Storefront.Product"

	ps := s.catalog.Load(ctx)
	p, err := domain.FindProduct(ps, id)
	if err != nil {
		return ProductView{}, fmt.Errorf("%s: %w", op, err)
	}
	return ProductView{
		Product:    p,
		InWishlist: s.wishlist.IsInWishlist(id),
		Related:    listing.Related(ps, p),
	}, nil
}

// AddToCart adds quantity units of the product, clamped to
// [1, MaxPurchasable]. It returns the number of units added.
func (s Storefront) AddToCart(ctx context.Context, id, quantity int) (int, error) {
	const op = "Storefront.AddToCart"

	p, err := domain.FindProduct(s.catalog.Load(ctx), id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	quantity = min(max(quantity, 1), p.MaxPurchasable())
	for range quantity {
		s.cart.AddItem(ctx, p)
	}
	return quantity, nil
}

func (s Storefront) AddToWishlist(ctx context.Context, id int) error {
	const op = "Storefront.AddToWishlist"

	p, err := domain.FindProduct(s.catalog.Load(ctx), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.wishlist.AddItem(ctx, p)
	return nil
}

// ToggleWishlist reports whether the product is wishlisted afterwards.
// A wishlisted product that left the catalog can still be removed.
func (s Storefront) ToggleWishlist(ctx context.Context, id int) (bool, error) {
	const op = "Storefront.ToggleWishlist"

	p, err := domain.FindProduct(s.catalog.Load(ctx), id)
	if err == nil {
		return s.wishlist.Toggle(ctx, p), nil
	}
	if s.wishlist.IsInWishlist(id) {
		s.wishlist.RemoveItem(ctx, id)
		return false, nil
	}
	return false, fmt.Errorf("%s: %w", op, err)
}
