package web

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/erazemk/najdeno/internal/config"
	webembed "github.com/erazemk/najdeno/web"
)

// NewRouter creates the web page router with all page routes registered.
// When offline is set, every request renders the degraded offline page.
func NewRouter(db *sql.DB, cfg *config.Config, offline bool) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:            db,
		Templates:     templates,
		SessionSecret: cfg.SessionSecret,
		Verbose:       cfg.Development(),
		Offline:       offline,
	}

	r := mux.NewRouter()
	r.Use(s.Session)

	// Static assets.
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Listings.
	r.HandleFunc("/", s.Home).Methods(http.MethodGet)
	r.HandleFunc("/report", s.ReportPage).Methods(http.MethodGet)
	r.HandleFunc("/report", s.ReportSubmit).Methods(http.MethodPost)
	r.HandleFunc("/search", s.Search).Methods(http.MethodGet)
	r.HandleFunc("/item/{id}", s.Detail).Methods(http.MethodGet)
	r.HandleFunc("/item/{id}/edit", s.EditPage).Methods(http.MethodGet)
	r.HandleFunc("/item/{id}/edit", s.EditSubmit).Methods(http.MethodPost)

	// Accounts and sessions.
	r.HandleFunc("/signup", s.SignupPage).Methods(http.MethodGet)
	r.HandleFunc("/signup", s.SignupSubmit).Methods(http.MethodPost)
	r.HandleFunc("/login", s.LoginPage).Methods(http.MethodGet)
	r.HandleFunc("/login", s.LoginSubmit).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.Logout).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.errorPage(w, http.StatusNotFound, "Page not found")
	})

	return s.Recover(s.OfflineGate(r)), nil
}
