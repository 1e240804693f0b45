package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.ProductsReader = (*MemoryReader)(nil)

type MemoryReader struct {
	products []domain.Product
}

func NewMemoryReader(ps []domain.Product) MemoryReader {
	return MemoryReader{slices.Clone(ps)}
}

func (r MemoryReader) ReadProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "MemoryReader.ReadProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return slices.Clone(r.products), nil
}
