package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// A Catalog loads the product list once per page view.
//
// There are no retries: a failed fetch is logged and yields an empty list.
// The fetch is bound to ctx, so a response arriving after the requesting
// view went away is dropped instead of being applied.
type Catalog struct {
	fetcher port.CatalogFetcher
}

func NewCatalog(fetcher port.CatalogFetcher) Catalog {
	return Catalog{fetcher}
}

func (c Catalog) Load(ctx context.Context) []domain.Product {
	const op = "Catalog.Load"
	log := slog.With("op", op)

	ps, err := c.fetcher.FetchProducts(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Debug("fetch abandoned by the requesting view")
		} else {
			log.Error("failed to fetch products", "err", err)
		}
		return []domain.Product{}
	}
	return ps
}
