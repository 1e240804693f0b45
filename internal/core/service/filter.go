package service

import (
	"slices"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.FilterStore = (*FilterStore)(nil)

// A FilterStore holds the listing criteria of the running process only.
// It is never persisted.
type FilterStore struct {
	mu       sync.Mutex
	criteria domain.FilterCriteria
}

func NewFilterStore() *FilterStore {
	return &FilterStore{criteria: domain.DefaultFilterCriteria()}
}

func (s *FilterStore) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Search = search
}

func (s *FilterStore) SetPriceRange(r domain.PriceRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.PriceRange = domain.NewPriceRange(r.Min, r.Max)
}

// ToggleCategory adds category when absent and removes it when present.
func (s *FilterStore) ToggleCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.criteria.HasCategory(category) {
		s.criteria.Categories = slices.DeleteFunc(
			s.criteria.Categories,
			func(c string) bool { return c == category },
		)
		return
	}
	s.criteria.Categories = append(s.criteria.Categories, category)
}

func (s *FilterStore) SetSortBy(key domain.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.SortBy = key
}

func (s *FilterStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = domain.DefaultFilterCriteria()
}

func (s *FilterStore) Criteria() domain.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.Clone()
}
