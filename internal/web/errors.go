package web

import (
	"fmt"
	"net/http"
)

// errorPage renders the generic error template with the given status.
func (s *Server) errorPage(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	s.Templates.Render(w, "error.html", &PageData{
		Title: "Error",
		Error: message,
	})
}

func (s *Server) renderNotFound(w http.ResponseWriter) {
	s.errorPage(w, http.StatusNotFound, "Item not found")
}

func (s *Server) renderForbidden(w http.ResponseWriter) {
	s.errorPage(w, http.StatusForbidden, "You don't have permission to edit this report.")
}

func (s *Server) renderOffline(w http.ResponseWriter) {
	w.WriteHeader(http.StatusServiceUnavailable)
	s.Templates.Render(w, "offline.html", &PageData{Title: "Offline"})
}

// renderServerError renders a 500 page. The underlying error is only shown
// in development mode.
func (s *Server) renderServerError(w http.ResponseWriter, err error) {
	message := "Something went wrong. Please try again later."
	if s.Verbose {
		message = fmt.Sprintf("%T: %v", err, err)
	}
	s.errorPage(w, http.StatusInternalServerError, message)
}

// renderPanic is renderServerError for recovered panic values.
func (s *Server) renderPanic(w http.ResponseWriter, v any) {
	message := "Something went wrong. Please try again later."
	if s.Verbose {
		message = fmt.Sprintf("%T: %v", v, v)
	}
	s.errorPage(w, http.StatusInternalServerError, message)
}
