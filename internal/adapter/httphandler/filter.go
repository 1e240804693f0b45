package httphandler

import (
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

// GET /api/filter (200 OK)
// PUT /api/filter/search JSON {"search" string} (200 OK)
// PUT /api/filter/price-range JSON {"min" float, "max" float} (200 OK)
// POST /api/filter/categories/{category}/toggle (200 OK)
// PUT /api/filter/sort JSON {"sortBy" string} (200 OK, 400 Bad request)
// DELETE /api/filter (200 OK)

type FilterHandler struct {
	filter port.FilterStore
}

func RegisterFilter(mux *http.ServeMux, filter port.FilterStore) {
	h := FilterHandler{filter}
	mux.HandleFunc("GET /api/filter", h.GetFilter)
	mux.HandleFunc("PUT /api/filter/search", h.PutSearch)
	mux.HandleFunc("PUT /api/filter/price-range", h.PutPriceRange)
	mux.HandleFunc("POST /api/filter/categories/{category}/toggle", h.ToggleCategory)
	mux.HandleFunc("PUT /api/filter/sort", h.PutSort)
	mux.HandleFunc("DELETE /api/filter", h.DeleteFilter)
}

func (h FilterHandler) GetFilter(w http.ResponseWriter, _ *http.Request) {
	h.writeFilter(w)
}

func (h FilterHandler) PutSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.filter.SetSearch(req.Search)
	h.writeFilter(w)
}

func (h FilterHandler) PutPriceRange(w http.ResponseWriter, r *http.Request) {
	var req PriceRange
	if !decodeJSON(w, r, &req) {
		return
	}
	h.filter.SetPriceRange(domain.PriceRange{Min: req.Min, Max: req.Max})
	h.writeFilter(w)
}

func (h FilterHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	h.filter.ToggleCategory(r.PathValue("category"))
	h.writeFilter(w)
}

func (h FilterHandler) PutSort(w http.ResponseWriter, r *http.Request) {
	var req SortRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	key, err := domain.ParseSortKey(req.SortBy)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.filter.SetSortBy(key)
	h.writeFilter(w)
}

func (h FilterHandler) DeleteFilter(w http.ResponseWriter, _ *http.Request) {
	h.filter.Reset()
	h.writeFilter(w)
}

func (h FilterHandler) writeFilter(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, toFilter(h.filter.Criteria()))
}
