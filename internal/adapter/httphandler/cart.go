package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET /api/cart (200 OK)
// POST /api/cart/items JSON {"productId" int, "quantity" int} (200 OK, 303 See other to / when unknown)
// PATCH /api/cart/items/{id} JSON {"quantity" int} (200 OK)
// DELETE /api/cart/items/{id} (200 OK)
// DELETE /api/cart (200 OK)

type cartAdder interface {
	AddToCart(ctx context.Context, id, quantity int) (int, error)
}

type CartHandler struct {
	cart  port.CartStore
	adder cartAdder
}

func RegisterCart(mux *http.ServeMux, cart port.CartStore, adder cartAdder) {
	h := CartHandler{cart: cart, adder: adder}
	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("POST /api/cart/items", h.PostItem)
	mux.HandleFunc("PATCH /api/cart/items/{id}", h.PatchItem)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /api/cart", h.DeleteCart)
}

func (h CartHandler) GetCart(w http.ResponseWriter, _ *http.Request) {
	h.writeCart(w)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var req AddCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	added, err := h.adder.AddToCart(r.Context(), req.ProductID, req.Quantity)
	if errors.Is(err, domain.ErrProductNotFound) {
		redirectHome(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to add to cart", http.StatusInternalServerError)
		log.Error("failed to add to cart", "err", err)
		return
	}

	log.Info("added to cart", "productID", req.ProductID, "quantity", added)
	h.writeCart(w)
}

func (h CartHandler) PatchItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	h.cart.UpdateQuantity(r.Context(), id, req.Quantity)
	h.writeCart(w)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.cart.RemoveItem(r.Context(), id)
	h.writeCart(w)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	h.writeCart(w)
}

func (h CartHandler) writeCart(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, toCart(h.cart.Entries()))
}
