package httphandler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET /api/wishlist (200 OK)
// POST /api/wishlist/items JSON {"productId" int} (200 OK, 303 See other to / when unknown)
// POST /api/wishlist/items/{id}/toggle (200 OK, 303 See other to / when unknown)
// DELETE /api/wishlist/items/{id} (200 OK)
// DELETE /api/wishlist (200 OK)

type wishlistEditor interface {
	AddToWishlist(ctx context.Context, id int) error
	ToggleWishlist(ctx context.Context, id int) (bool, error)
}

type WishlistHandler struct {
	wishlist port.WishlistStore
	editor   wishlistEditor
}

func RegisterWishlist(
	mux *http.ServeMux, wishlist port.WishlistStore, editor wishlistEditor,
) {
	h := WishlistHandler{wishlist: wishlist, editor: editor}
	mux.HandleFunc("GET /api/wishlist", h.GetWishlist)
	mux.HandleFunc("POST /api/wishlist/items", h.PostItem)
	mux.HandleFunc("POST /api/wishlist/items/{id}/toggle", h.ToggleItem)
	mux.HandleFunc("DELETE /api/wishlist/items/{id}", h.DeleteItem)
	mux.HandleFunc("DELETE /api/wishlist", h.DeleteWishlist)
}

func (h WishlistHandler) GetWishlist(w http.ResponseWriter, _ *http.Request) {
	h.writeWishlist(w)
}

func (h WishlistHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.PostItem"

	var req AddWishlistItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.editor.AddToWishlist(r.Context(), req.ProductID)
	if !h.handleEditErr(w, r, op, err) {
		return
	}
	h.writeWishlist(w)
}

func (h WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	const op = "WishlistHandler.ToggleItem"

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	_, err := h.editor.ToggleWishlist(r.Context(), id)
	if !h.handleEditErr(w, r, op, err) {
		return
	}
	h.writeWishlist(w)
}

func (h WishlistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.wishlist.RemoveItem(r.Context(), id)
	h.writeWishlist(w)
}

func (h WishlistHandler) DeleteWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.ClearWishlist(r.Context())
	h.writeWishlist(w)
}

// handleEditErr answers the request itself unless err is nil.
func (h WishlistHandler) handleEditErr(
	w http.ResponseWriter, r *http.Request, op string, err error,
) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrProductNotFound):
		redirectHome(w, r)
	default:
		http.Error(w, "failed to update wishlist", http.StatusInternalServerError)
		slog.Error("failed to update wishlist", "op", op, "err", err)
	}
	return false
}

func (h WishlistHandler) writeWishlist(w http.ResponseWriter) {
	items := h.wishlist.Items()
	writeJSON(w, http.StatusOK, Wishlist{
		Items: toProducts(items),
		Count: len(items),
	})
}
