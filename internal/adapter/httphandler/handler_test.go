package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/adapter/catalog"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/statestore"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fetcherFunc func(context.Context) ([]domain.Product, error)

func (f fetcherFunc) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	return f(ctx)
}

type fixture struct {
	handler  http.Handler
	cart     *service.CartStore
	checkout *service.Checkout
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	slot := statestore.NewMemorySlot()
	cartCodec, err := schema.NewCartCodec(schema.CodecJSON)
	require.NoError(t, err)
	wishlistCodec, err := schema.NewWishlistCodec(schema.CodecJSON)
	require.NoError(t, err)

	cart := service.NewCartStore(t.Context(), slot, cartCodec)
	wishlist := service.NewWishlistStore(t.Context(), slot, wishlistCodec)
	filter := service.NewFilterStore()
	checkout := service.NewCheckout(cart, nil)

	reader := catalog.NewMemoryReader(catalog.SeedProducts())
	fetcher := fetcherFunc(reader.ReadProducts)

	storefront := service.NewStorefront(service.NewCatalog(fetcher), cart, wishlist, filter)

	return fixture{
		handler: httphandler.NewStorefrontRouter(httphandler.StorefrontDeps{
			Storefront: storefront,
			Cart:       cart,
			Wishlist:   wishlist,
			Filter:     filter,
			Checkout:   checkout,
		}),
		cart:     cart,
		checkout: checkout,
	}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func productIDs(ps []schema.ProductV1) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestHome(t *testing.T) {
	f := newFixture(t)

	home := decode[httphandler.Home](t, f.do(t, http.MethodGet, "/", nil))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, productIDs(home.Products))
	assert.Equal(t, 6, home.Count)
	assert.False(t, home.HasMore)
	assert.Equal(t, []int{1, 2, 3, 4}, productIDs(home.Recommended))

	rec := f.do(t, http.MethodGet, "/?page=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShopFollowsFilter(t *testing.T) {
	f := newFixture(t)

	decode[httphandler.Filter](t, f.do(t, http.MethodPut, "/api/filter/sort",
		httphandler.SortRequest{SortBy: "price-low-high"}))
	filter := decode[httphandler.Filter](t, f.do(t, http.MethodPut, "/api/filter/price-range",
		httphandler.PriceRange{Min: 0, Max: 150}))
	assert.Equal(t, httphandler.PriceRange{Min: 0, Max: 150}, filter.PriceRange)

	shop := decode[httphandler.ProductList](t, f.do(t, http.MethodGet, "/api/shop", nil))
	assert.Equal(t, []int{4, 5, 3, 6}, productIDs(shop.Products))
	assert.Equal(t, 4, shop.Count)

	filter = decode[httphandler.Filter](t, f.do(t, http.MethodPost,
		"/api/filter/categories/Electronics/toggle", nil))
	assert.Equal(t, []string{"Electronics"}, filter.Categories)

	shop = decode[httphandler.ProductList](t, f.do(t, http.MethodGet, "/api/shop", nil))
	assert.Equal(t, []int{3}, productIDs(shop.Products))

	filter = decode[httphandler.Filter](t, f.do(t, http.MethodDelete, "/api/filter", nil))
	assert.Equal(t, "featured", filter.SortBy)
	assert.Empty(t, filter.Categories)
}

func TestFilterRejectsUnknownSortKey(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut, "/api/filter/sort", httphandler.SortRequest{SortBy: "newest"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAllowJSON(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPut, "/api/filter/search", bytes.NewBufferString("search=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/filter/search", bytes.NewBufferString(`{"search":"x"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCategories(t *testing.T) {
	f := newFixture(t)

	cs := decode[[]httphandler.CategorySummary](t, f.do(t, http.MethodGet, "/api/categories", nil))
	require.NotEmpty(t, cs)
	assert.Equal(t, httphandler.CategorySummary{Name: "Electronics", Count: 2}, cs[0])

	list := decode[httphandler.ProductList](t, f.do(t, http.MethodGet, "/api/categories/electronics", nil))
	assert.Equal(t, "electronics", list.Category)
	assert.Equal(t, []int{1, 3}, productIDs(list.Products))
}

func TestProductDetail(t *testing.T) {
	f := newFixture(t)

	d := decode[httphandler.ProductDetail](t, f.do(t, http.MethodGet, "/api/products/1", nil))
	assert.Equal(t, "Premium Wireless Headphones", d.Product.Name)
	assert.Equal(t, "169.99", d.DiscountedPrice)
	assert.Equal(t, 23, d.MaxPurchasable)
	assert.False(t, d.InWishlist)
	assert.Equal(t, []int{3}, productIDs(d.Related))

	for _, path := range []string{"/api/products/404", "/api/products/abc"} {
		rec := f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}
}

func TestCart(t *testing.T) {
	f := newFixture(t)

	cart := decode[httphandler.Cart](t, f.do(t, http.MethodPost, "/api/cart/items",
		httphandler.AddCartItemRequest{ProductID: 4, Quantity: 2}))
	assert.Equal(t, 2, cart.ItemCount)
	assert.Equal(t, "99.98", cart.Totals.Subtotal)
	assert.Equal(t, "0.00", cart.Totals.Shipping)

	cart = decode[httphandler.Cart](t, f.do(t, http.MethodPatch, "/api/cart/items/4",
		httphandler.UpdateQuantityRequest{Quantity: 1}))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, "49.99", cart.Items[0].LineTotal)
	assert.Equal(t, "9.99", cart.Totals.Shipping)

	cart = decode[httphandler.Cart](t, f.do(t, http.MethodDelete, "/api/cart/items/4", nil))
	assert.Empty(t, cart.Items)

	rec := f.do(t, http.MethodPost, "/api/cart/items",
		httphandler.AddCartItemRequest{ProductID: 404, Quantity: 1})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = f.do(t, http.MethodPatch, "/api/cart/items/x", httphandler.UpdateQuantityRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartAddClampsQuantity(t *testing.T) {
	f := newFixture(t)

	cart := decode[httphandler.Cart](t, f.do(t, http.MethodPost, "/api/cart/items",
		httphandler.AddCartItemRequest{ProductID: 2, Quantity: 100}))
	assert.Equal(t, 12, cart.ItemCount)

	cart = decode[httphandler.Cart](t, f.do(t, http.MethodDelete, "/api/cart", nil))
	assert.Zero(t, cart.ItemCount)
}

func TestWishlist(t *testing.T) {
	f := newFixture(t)

	wl := decode[httphandler.Wishlist](t, f.do(t, http.MethodPost, "/api/wishlist/items",
		httphandler.AddWishlistItemRequest{ProductID: 5}))
	assert.Equal(t, []int{5}, productIDs(wl.Items))

	wl = decode[httphandler.Wishlist](t, f.do(t, http.MethodPost, "/api/wishlist/items/2/toggle", nil))
	assert.Equal(t, []int{5, 2}, productIDs(wl.Items))

	d := decode[httphandler.ProductDetail](t, f.do(t, http.MethodGet, "/api/products/2", nil))
	assert.True(t, d.InWishlist)

	wl = decode[httphandler.Wishlist](t, f.do(t, http.MethodPost, "/api/wishlist/items/5/toggle", nil))
	assert.Equal(t, []int{2}, productIDs(wl.Items))

	wl = decode[httphandler.Wishlist](t, f.do(t, http.MethodDelete, "/api/wishlist/items/2", nil))
	assert.Empty(t, wl.Items)

	rec := f.do(t, http.MethodPost, "/api/wishlist/items/404/toggle", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	wl = decode[httphandler.Wishlist](t, f.do(t, http.MethodDelete, "/api/wishlist", nil))
	assert.Zero(t, wl.Count)
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t)

	co := decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/continue", nil))
	assert.Equal(t, "cart", co.Stage, "empty cart cannot advance")

	decode[httphandler.Cart](t, f.do(t, http.MethodPost, "/api/cart/items",
		httphandler.AddCartItemRequest{ProductID: 1, Quantity: 1}))

	co = decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/items/1/increase", nil))
	require.Len(t, co.Entries, 1)
	assert.Equal(t, 2, co.Entries[0].Quantity)

	co = decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/items/1/decrease", nil))
	assert.Equal(t, 1, co.Entries[0].Quantity)
	co = decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/items/1/decrease", nil))
	assert.Equal(t, 1, co.Entries[0].Quantity, "quantity floors at 1")

	rec := f.do(t, http.MethodPost, "/api/checkout/items/9/increase", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	co = decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/continue", nil))
	assert.Equal(t, "shipping", co.Stage)

	rec = f.do(t, http.MethodPost, "/api/checkout/items/1/increase", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	co = decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/back", nil))
	assert.Equal(t, "cart", co.Stage)

	decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/continue", nil))
	decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/continue", nil))
	co = decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/continue", nil))

	assert.Equal(t, "confirmation", co.Stage)
	assert.Empty(t, co.Entries)
	require.NotNil(t, co.Order)
	assert.Regexp(t, `^ORD-\d{4}$`, co.Order.Number)
	assert.Equal(t, "199.99", co.Order.Totals.Subtotal)
	assert.Equal(t, "16.00", co.Order.Totals.Tax)
	assert.Equal(t, "215.99", co.Order.Totals.Total)
	assert.Zero(t, f.cart.ItemCount())

	co = decode[httphandler.Checkout](t, f.do(t, http.MethodPost, "/api/checkout/restart", nil))
	assert.Equal(t, "cart", co.Stage)
	assert.Nil(t, co.Order)
}

func TestCatalogRouter(t *testing.T) {
	h := httphandler.NewCatalogRouter(catalog.NewMemoryReader(catalog.SeedProducts()), 0)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	ps := decode[[]schema.ProductV1](t, rec)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, productIDs(ps))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCatalogRouterLatency(t *testing.T) {
	h := httphandler.NewCatalogRouter(
		catalog.NewMemoryReader(catalog.SeedProducts()), 30*time.Millisecond,
	)

	start := time.Now()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestCatalogRouterClientGone(t *testing.T) {
	h := httphandler.NewCatalogRouter(
		catalog.NewMemoryReader(catalog.SeedProducts()), time.Hour,
	)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	req := httptest.NewRequestWithContext(ctx, http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Body.String())
}
