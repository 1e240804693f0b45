package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET /api/checkout (200 OK)
// POST /api/checkout/continue (200 OK)
// POST /api/checkout/back (200 OK)
// POST /api/checkout/restart (200 OK)
// POST /api/checkout/items/{id}/increase (200 OK, 404 Not found, 409 Conflict)
// POST /api/checkout/items/{id}/decrease (200 OK, 404 Not found, 409 Conflict)
// DELETE /api/checkout/items/{id} (200 OK, 409 Conflict)

type CheckoutHandler struct {
	checkout port.Checkout
}

func RegisterCheckout(mux *http.ServeMux, checkout port.Checkout) {
	h := CheckoutHandler{checkout}
	mux.HandleFunc("GET /api/checkout", h.GetCheckout)
	mux.HandleFunc("POST /api/checkout/continue", h.PostContinue)
	mux.HandleFunc("POST /api/checkout/back", h.PostBack)
	mux.HandleFunc("POST /api/checkout/restart", h.PostRestart)
	mux.HandleFunc("POST /api/checkout/items/{id}/increase", h.edit(h.checkout.Increase))
	mux.HandleFunc("POST /api/checkout/items/{id}/decrease", h.edit(h.checkout.Decrease))
	mux.HandleFunc("DELETE /api/checkout/items/{id}", h.edit(h.checkout.Remove))
}

func (h CheckoutHandler) GetCheckout(w http.ResponseWriter, _ *http.Request) {
	h.writeCheckout(w)
}

func (h CheckoutHandler) PostContinue(w http.ResponseWriter, r *http.Request) {
	h.checkout.Continue(r.Context())
	h.writeCheckout(w)
}

func (h CheckoutHandler) PostBack(w http.ResponseWriter, _ *http.Request) {
	h.checkout.Back()
	h.writeCheckout(w)
}

func (h CheckoutHandler) PostRestart(w http.ResponseWriter, _ *http.Request) {
	h.checkout.Restart()
	h.writeCheckout(w)
}

func (h CheckoutHandler) edit(
	fn func(ctx context.Context, productID int) error,
) http.HandlerFunc {
	const op = "CheckoutHandler.edit"

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		err := fn(r.Context(), id)
		switch {
		case err == nil:
			h.writeCheckout(w)
		case errors.Is(err, domain.ErrCartLocked):
			http.Error(w, "cart is locked", http.StatusConflict)
		case errors.Is(err, domain.ErrProductNotFound):
			http.Error(w, "not in cart", http.StatusNotFound)
		default:
			http.Error(w, "failed to update cart", http.StatusInternalServerError)
			slog.Error("failed to update cart", "op", op, "err", err)
		}
	}
}

func (h CheckoutHandler) writeCheckout(w http.ResponseWriter) {
	res := Checkout{
		Stage:   string(h.checkout.Stage()),
		Entries: toCartEntries(h.checkout.Entries()),
		Totals:  toTotals(h.checkout.Totals()),
	}
	if o, ok := h.checkout.LastOrder(); ok {
		res.Order = toOrder(o)
	}
	writeJSON(w, http.StatusOK, res)
}
