package httphandler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
)

// GET /api/products (200 OK, 503 Service unavailable)

type CatalogHandler struct {
	reader  port.ProductsReader
	latency time.Duration
}

// RegisterCatalog serves the whole catalog after latency, which simulates a
// slow upstream.
func RegisterCatalog(
	mux *http.ServeMux, reader port.ProductsReader, latency time.Duration,
) {
	h := CatalogHandler{reader: reader, latency: latency}
	mux.HandleFunc("GET /api/products", h.GetProducts)
}

func (h CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "CatalogHandler.GetProducts"
	log := slog.With("op", op)

	ctx := r.Context()
	if err := sleep(ctx, h.latency); err != nil {
		log.Debug("client went away", "err", err)
		return
	}

	ps, err := h.reader.ReadProducts(ctx)
	if err != nil {
		http.Error(w, "failed to read products", http.StatusServiceUnavailable)
		log.Error("failed to read products", "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toProducts(ps))
	log.Debug("served", "nProducts", len(ps))
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
