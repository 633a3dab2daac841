package handlers

import (
	"net/http"
	"strconv"

	"github.com/contra19/book-search/service"
)

type SearchHandler struct {
	Catalog *service.CatalogClient
}

// Search proxies the external book catalog. Public: saving a result is what
// needs a login, not finding it.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, CodeBadUserInput, "query parameter q required")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, CodeBadUserInput, "limit must be a number")
			return
		}
		limit = n
	}

	books, err := h.Catalog.Search(r.Context(), query, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, CodeUpstream, "catalog search failed")
		return
	}
	writeJSON(w, http.StatusOK, books)
}
