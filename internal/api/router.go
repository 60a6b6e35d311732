package api

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/erazemk/najdeno/internal/config"
)

// NewRouter creates the JSON API router. The API exposes read-only listing
// access plus login; mutations go through the web flows.
func NewRouter(db *sql.DB, cfg *config.Config, offline bool) http.Handler {
	itemsHandler := &ItemsHandler{DB: db}
	authHandler := &AuthHandler{DB: db, SessionSecret: cfg.SessionSecret}

	r := mux.NewRouter()

	r.HandleFunc("/api/health", healthHandler(offline)).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/items", itemsHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/api/items/{id}", itemsHandler.Get).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		jsonError(w, http.StatusNotFound, "not found")
	})

	return offlineGate(offline, r)
}

// offlineGate fails every API call with 503 when the store was unreachable
// at startup, mirroring the web offline page.
func offlineGate(offline bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if offline && r.URL.Path != "/api/health" {
			jsonError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func healthHandler(offline bool) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if offline {
			jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "offline"})
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
