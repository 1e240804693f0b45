// Package listing derives the visible product lists from the catalog.
//
// Every function is pure: the input slice is never reordered or mutated,
// identical inputs give identical outputs.
package listing

import (
	"cmp"
	"slices"
	"strings"

	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	HomePageSize         = 8
	RecommendedMinRating = 4.5
	RecommendedLimit     = 4
	RelatedProductsLimit = 4
)

// Apply filters ps by c and sorts the result by c.SortBy.
func Apply(ps []domain.Product, c domain.FilterCriteria) []domain.Product {
	return Sort(Filter(ps, c), c.SortBy)
}

// Filter keeps products matching the search text, the price range and the
// category set. The three predicates are independent of each other.
func Filter(ps []domain.Product, c domain.FilterCriteria) []domain.Product {
	search := strings.ToLower(c.Search)
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if matchesSearch(p, search) &&
			c.PriceRange.Contains(p.Price) &&
			matchesCategory(p, c.Categories) {
			out = append(out, p)
		}
	}
	return out
}

func matchesSearch(p domain.Product, lowerSearch string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerSearch) ||
		strings.Contains(strings.ToLower(p.Description), lowerSearch)
}

func matchesCategory(p domain.Product, categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	return p.HasCategory() && slices.Contains(categories, p.Category)
}

// Sort returns a stably sorted copy. Featured and unknown keys keep the
// catalog order.
func Sort(ps []domain.Product, key domain.SortKey) []domain.Product {
	out := slices.Clone(ps)

	var less func(a, b domain.Product) int
	switch key {
	case domain.SortPriceLowHigh:
		less = func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceHighLow:
		less = func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortRating:
		less = func(a, b domain.Product) int { return cmp.Compare(b.Rating, a.Rating) }
	default:
		return out
	}

	slices.SortStableFunc(out, less)
	return out
}

// Page returns the first page×size products and whether more remain.
func Page(ps []domain.Product, page, size int) ([]domain.Product, bool) {
	page, size = max(page, 1), max(size, 1)
	n := len(ps)
	if page <= len(ps)/size {
		n = page * size
	}
	return slices.Clone(ps[:n]), n < len(ps)
}

// Recommended picks the first highly rated products in catalog order.
func Recommended(ps []domain.Product) []domain.Product {
	out := make([]domain.Product, 0, RecommendedLimit)
	for _, p := range ps {
		if len(out) == RecommendedLimit {
			break
		}
		if p.Rating >= RecommendedMinRating {
			out = append(out, p)
		}
	}
	return out
}

// Related picks other products of the same category as p.
func Related(ps []domain.Product, p domain.Product) []domain.Product {
	out := make([]domain.Product, 0, RelatedProductsLimit)
	for _, other := range ps {
		if len(out) == RelatedProductsLimit {
			break
		}
		if other.ID != p.ID && other.Category == p.Category {
			out = append(out, other)
		}
	}
	return out
}

// InCategory keeps products whose category equals name, ignoring case.
func InCategory(ps []domain.Product, name string) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		if p.HasCategory() && strings.EqualFold(p.Category, name) {
			out = append(out, p)
		}
	}
	return out
}

type CategorySummary struct {
	Name  string
	Count int
}

// Categories counts products per category in first-seen order.
func Categories(ps []domain.Product) []CategorySummary {
	var out []CategorySummary
	index := make(map[string]int)
	for _, p := range ps {
		if !p.HasCategory() {
			continue
		}
		i, ok := index[p.Category]
		if !ok {
			i = len(out)
			index[p.Category] = i
			out = append(out, CategorySummary{Name: p.Category})
		}
		out[i].Count++
	}
	return out
}
