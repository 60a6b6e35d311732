package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// Limits on the listing pages.
const (
	homeLimit   = 10
	searchLimit = 25
)

// Home handles GET /.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	items, err := store.ListRecentItems(r.Context(), s.DB, homeLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recent items")
		s.renderServerError(w, err)
		return
	}

	s.Templates.Render(w, "index.html", &struct {
		PageData
		Items []model.Item
	}{
		PageData: PageData{Title: "Lost & Found", User: claims},
		Items:    items,
	})
}

// Detail handles GET /item/{id}. A malformed id renders the same not-found
// page as an unknown one.
func (s *Server) Detail(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	item, err := store.GetItem(r.Context(), s.DB, mux.Vars(r)["id"])
	if errors.Is(err, store.ErrInvalidID) {
		s.renderNotFound(w)
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to get item")
		s.renderServerError(w, err)
		return
	}
	if item == nil {
		s.renderNotFound(w)
		return
	}

	canEdit := claims != nil && item.OwnedBy(claims.UserID)

	s.Templates.Render(w, "detail.html", &struct {
		PageData
		Item    *model.Item
		BackURL string
		CanEdit bool
	}{
		PageData: PageData{Title: item.Title, User: claims},
		Item:     item,
		BackURL:  returnTarget(r),
		CanEdit:  canEdit,
	})
}

// Search handles GET /search?q=&status=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))

	items, err := store.SearchItems(r.Context(), s.DB, query, status, searchLimit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search items")
		s.renderServerError(w, err)
		return
	}

	// Detail pages opened from here link back to this result set.
	rememberReturnTarget(w, r.URL.RequestURI())

	s.Templates.Render(w, "search.html", &struct {
		PageData
		Items  []model.Item
		Query  string
		Status string
	}{
		PageData: PageData{Title: "Search", User: claims},
		Items:    items,
		Query:    query,
		Status:   status,
	})
}
