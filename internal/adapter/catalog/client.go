package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
)

const ProductsPath = "/api/products"

var ErrUnexpectedStatus = errors.New("unexpected response status")

var _ port.CatalogFetcher = (*HTTPFetcher)(nil)

// An HTTPFetcher loads the catalog from the provider endpoint. It does not
// retry and sets no timeout of its own: the request lives as long as ctx.
type HTTPFetcher struct {
	endpoint string
	cl       *http.Client
}

// NewHTTPFetcher uses http.DefaultClient when cl is nil.
func NewHTTPFetcher(baseURL string, cl *http.Client) (HTTPFetcher, error) {
	const op = "NewHTTPFetcher"

	endpoint, err := url.JoinPath(baseURL, ProductsPath)
	if err != nil {
		return HTTPFetcher{}, fmt.Errorf("%s: %w", op, err)
	}
	if cl == nil {
		cl = http.DefaultClient
	}
	return HTTPFetcher{endpoint: endpoint, cl: cl}, nil
}

func (f HTTPFetcher) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "HTTPFetcher.FetchProducts"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := f.cl.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: %d", op, ErrUnexpectedStatus, res.StatusCode)
	}

	var records []schema.ProductV1
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%s: failed to decode: %w", op, err)
	}

	ps := make([]domain.Product, len(records))
	for i, r := range records {
		ps[i] = schema.ProductFromV1(r)
	}
	return ps, nil
}
