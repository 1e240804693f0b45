package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/listing"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/shopspring/decimal"
)

// GET / ?page=N (200 OK)
// GET /api/shop (200 OK)
// GET /api/categories (200 OK)
// GET /api/categories/{category} (200 OK)
// GET /api/products/{id} (200 OK, 303 See other to / when unknown)

type storefront interface {
	Home(ctx context.Context, page int) service.HomeView
	Shop(context.Context) []domain.Product
	Category(ctx context.Context, name string) []domain.Product
	Categories(context.Context) []listing.CategorySummary
	Product(ctx context.Context, id int) (service.ProductView, error)
}

type ListingHandler struct {
	storefront storefront
}

func RegisterListing(mux *http.ServeMux, s storefront) {
	h := ListingHandler{s}
	mux.HandleFunc("GET /{$}", h.GetHome)
	mux.HandleFunc("GET /api/shop", h.GetShop)
	mux.HandleFunc("GET /api/categories", h.GetCategories)
	mux.HandleFunc("GET /api/categories/{category}", h.GetCategory)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
}

func (h ListingHandler) GetHome(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "invalid page", http.StatusBadRequest)
			return
		}
		page = n
	}

	view := h.storefront.Home(r.Context(), page)
	writeJSON(w, http.StatusOK, Home{
		Products:    toProducts(view.Products),
		Page:        page,
		Count:       view.Matched,
		HasMore:     view.HasMore,
		Recommended: toProducts(view.Recommended),
	})
}

func (h ListingHandler) GetShop(w http.ResponseWriter, r *http.Request) {
	ps := h.storefront.Shop(r.Context())
	writeJSON(w, http.StatusOK, ProductList{
		Products: toProducts(ps),
		Count:    len(ps),
	})
}

func (h ListingHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCategories(h.storefront.Categories(r.Context())))
}

func (h ListingHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("category")
	ps := h.storefront.Category(r.Context(), name)
	writeJSON(w, http.StatusOK, ProductList{
		Category: name,
		Products: toProducts(ps),
		Count:    len(ps),
	})
}

func (h ListingHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ListingHandler.GetProduct"

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		redirectHome(w, r)
		return
	}

	view, err := h.storefront.Product(r.Context(), id)
	if errors.Is(err, domain.ErrProductNotFound) {
		slog.Debug("product not found", "op", op, "id", id)
		redirectHome(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load product", http.StatusInternalServerError)
		slog.Error("failed to load product", "op", op, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, ProductDetail{
		Product:         schema.ProductToV1(view.Product),
		DiscountedPrice: decimal.NewFromFloat(view.Product.DiscountedPrice()).StringFixed(2),
		MaxPurchasable:  view.Product.MaxPurchasable(),
		InWishlist:      view.InWishlist,
		Related:         toProducts(view.Related),
	})
}
