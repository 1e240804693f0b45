package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// defaultMaxPurchasable caps the quantity selector when stock is unknown.
const defaultMaxPurchasable = 10

type Product struct {
	ID                 int
	Name               string
	Images             []string
	Price              float64
	Rating             float64
	Description        string
	Category           string
	DiscountPercentage float64
	Stock              int
	Tags               []string
}

// DiscountedPrice returns the price after DiscountPercentage is applied.
func (p Product) DiscountedPrice() float64 {
	if p.DiscountPercentage <= 0 {
		return p.Price
	}
	return p.Price * (1 - p.DiscountPercentage/100)
}

// MaxPurchasable returns the upper bound of the quantity selector.
func (p Product) MaxPurchasable() int {
	if p.Stock > 0 {
		return p.Stock
	}
	return defaultMaxPurchasable
}

func (p Product) HasCategory() bool {
	return p.Category != ""
}

// FindProduct returns the product with the given id.
func FindProduct(ps []Product, id int) (Product, error) {
	for _, p := range ps {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}
