package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

const listLimit = 25

// ItemsHandler serves read-only listing endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

// List handles GET /api/items?q=&status=.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))

	items, err := store.SearchItems(r.Context(), h.DB, query, status, listLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search items")
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}. Unlike the web detail page, a malformed
// id is reported as a bad request rather than folded into not-found.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.DB, mux.Vars(r)["id"])
	if errors.Is(err, store.ErrInvalidID) {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to get item")
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}
