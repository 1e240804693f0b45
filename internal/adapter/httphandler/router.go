package httphandler

import (
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
)

type StorefrontDeps struct {
	Storefront service.Storefront
	Cart       port.CartStore
	Wishlist   port.WishlistStore
	Filter     port.FilterStore
	Checkout   port.Checkout
}

func NewStorefrontRouter(d StorefrontDeps) http.Handler {
	mux := http.NewServeMux()
	RegisterListing(mux, d.Storefront)
	RegisterCart(mux, d.Cart, d.Storefront)
	RegisterWishlist(mux, d.Wishlist, d.Storefront)
	RegisterFilter(mux, d.Filter)
	RegisterCheckout(mux, d.Checkout)
	return LogRequests(AllowJSON(mux))
}

func NewCatalogRouter(reader port.ProductsReader, latency time.Duration) http.Handler {
	mux := http.NewServeMux()
	RegisterCatalog(mux, reader, latency)
	return LogRequests(mux)
}
