package schema

import (
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
)

// ProductToV1 copies the slices, so the record does not alias v.
func ProductToV1(v domain.Product) (s ProductV1) {
	s.ID = v.ID
	s.Name = v.Name
	s.Images = slices.Clone(v.Images)
	s.Price = v.Price
	s.Rating = v.Rating
	s.Description = v.Description
	s.Category = v.Category
	s.DiscountPercentage = v.DiscountPercentage
	s.Stock = v.Stock
	s.Tags = slices.Clone(v.Tags)
	return
}

func ProductFromV1(s ProductV1) (v domain.Product) {
	v.ID = s.ID
	v.Name = s.Name
	v.Images = s.Images
	v.Price = s.Price
	v.Rating = s.Rating
	v.Description = s.Description
	v.Category = s.Category
	v.DiscountPercentage = s.DiscountPercentage
	v.Stock = s.Stock
	v.Tags = s.Tags
	return
}
