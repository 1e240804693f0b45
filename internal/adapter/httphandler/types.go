package httphandler

import (
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/listing"
	"github.com/niksmo/storefront/pkg/schema"
)

// Money amounts are decimal strings with two fractional digits.
type (
	Totals struct {
		Subtotal string `json:"subtotal"`
		Shipping string `json:"shipping"`
		Tax      string `json:"tax"`
		Total    string `json:"total"`
	}

	CartEntry struct {
		Product   schema.ProductV1 `json:"product"`
		Quantity  int              `json:"quantity"`
		LineTotal string           `json:"lineTotal"`
	}

	Cart struct {
		Items     []CartEntry `json:"items"`
		ItemCount int         `json:"itemCount"`
		Totals    Totals      `json:"totals"`
	}

	Wishlist struct {
		Items []schema.ProductV1 `json:"items"`
		Count int                `json:"count"`
	}

	PriceRange struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	}

	Filter struct {
		Search     string     `json:"search"`
		PriceRange PriceRange `json:"priceRange"`
		Categories []string   `json:"categories"`
		SortBy     string     `json:"sortBy"`
	}

	Home struct {
		Products    []schema.ProductV1 `json:"products"`
		Page        int                `json:"page"`
		Count       int                `json:"count"`
		HasMore     bool               `json:"hasMore"`
		Recommended []schema.ProductV1 `json:"recommended"`
	}

	ProductList struct {
		Category string             `json:"category,omitempty"`
		Products []schema.ProductV1 `json:"products"`
		Count    int                `json:"count"`
	}

	CategorySummary struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	ProductDetail struct {
		Product         schema.ProductV1   `json:"product"`
		DiscountedPrice string             `json:"discountedPrice"`
		MaxPurchasable  int                `json:"maxPurchasable"`
		InWishlist      bool               `json:"inWishlist"`
		Related         []schema.ProductV1 `json:"related"`
	}

	Order struct {
		ID       string      `json:"id"`
		Number   string      `json:"number"`
		PlacedAt time.Time   `json:"placedAt"`
		Items    []CartEntry `json:"items"`
		Totals   Totals      `json:"totals"`
	}

	Checkout struct {
		Stage   string      `json:"stage"`
		Entries []CartEntry `json:"entries"`
		Totals  Totals      `json:"totals"`
		Order   *Order      `json:"order,omitempty"`
	}
)

// Request bodies.
type (
	AddCartItemRequest struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}

	UpdateQuantityRequest struct {
		Quantity int `json:"quantity"`
	}

	AddWishlistItemRequest struct {
		ProductID int `json:"productId"`
	}

	SearchRequest struct {
		Search string `json:"search"`
	}

	SortRequest struct {
		SortBy string `json:"sortBy"`
	}
)

func toProducts(ps []domain.Product) []schema.ProductV1 {
	out := make([]schema.ProductV1, len(ps))
	for i, p := range ps {
		out[i] = schema.ProductToV1(p)
	}
	return out
}

func toTotals(t domain.Totals) Totals {
	return Totals{
		Subtotal: t.Subtotal.StringFixed(2),
		Shipping: t.Shipping.StringFixed(2),
		Tax:      t.Tax.StringFixed(2),
		Total:    t.Total.StringFixed(2),
	}
}

func toCartEntries(es []domain.CartEntry) []CartEntry {
	out := make([]CartEntry, len(es))
	for i, e := range es {
		out[i] = CartEntry{
			Product:   schema.ProductToV1(e.Product),
			Quantity:  e.Quantity,
			LineTotal: e.LineTotal().StringFixed(2),
		}
	}
	return out
}

// toCart derives every field from one entries read.
func toCart(es []domain.CartEntry) Cart {
	var n int
	for _, e := range es {
		n += e.Quantity
	}
	return Cart{
		Items:     toCartEntries(es),
		ItemCount: n,
		Totals:    toTotals(domain.ComputeTotals(es)),
	}
}

func toFilter(c domain.FilterCriteria) Filter {
	return Filter{
		Search:     c.Search,
		PriceRange: PriceRange{Min: c.PriceRange.Min, Max: c.PriceRange.Max},
		Categories: c.Categories,
		SortBy:     string(c.SortBy),
	}
}

func toCategories(cs []listing.CategorySummary) []CategorySummary {
	out := make([]CategorySummary, len(cs))
	for i, c := range cs {
		out[i] = CategorySummary{Name: c.Name, Count: c.Count}
	}
	return out
}

func toOrder(o domain.Order) *Order {
	return &Order{
		ID:       o.ID,
		Number:   o.Number,
		PlacedAt: o.PlacedAt,
		Items:    toCartEntries(o.Entries),
		Totals:   toTotals(o.Totals),
	}
}
