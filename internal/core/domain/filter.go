package domain

import (
	"errors"
	"fmt"
	"slices"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

type SortKey string

const (
	SortFeatured     SortKey = "featured"
	SortPriceLowHigh SortKey = "price-low-high"
	SortPriceHighLow SortKey = "price-high-low"
	SortRating       SortKey = "rating"
)

func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case SortFeatured, SortPriceLowHigh, SortPriceHighLow, SortRating:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

const (
	DefaultPriceMin = 0
	DefaultPriceMax = 1000
)

type PriceRange struct {
	Min float64
	Max float64
}

// NewPriceRange keeps both endpoints non-negative and ordered.
func NewPriceRange(min, max float64) PriceRange {
	min, max = nonNegative(min), nonNegative(max)
	if min > max {
		min, max = max, min
	}
	return PriceRange{Min: min, Max: max}
}

func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

type FilterCriteria struct {
	Search     string
	PriceRange PriceRange
	Categories []string
	SortBy     SortKey
}

func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		Search:     "",
		PriceRange: PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
		Categories: []string{},
		SortBy:     SortFeatured,
	}
}

func (c FilterCriteria) HasCategory(category string) bool {
	return slices.Contains(c.Categories, category)
}

// Clone returns a copy that shares no memory with c.
func (c FilterCriteria) Clone() FilterCriteria {
	c.Categories = slices.Clone(c.Categories)
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return c
}
