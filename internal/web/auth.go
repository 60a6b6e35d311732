package web

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/store"
)

// The login failure message is identical for unknown emails and wrong
// passwords so accounts can't be enumerated.
const invalidLoginMessage = "Invalid email or password."

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &PageData{Title: "Sign up"})
}

// SignupSubmit handles POST /signup.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if name == "" || email == "" || password == "" {
		s.Templates.Render(w, "signup.html", &PageData{
			Title: "Sign up",
			Error: "Name, email, and password are required.",
		})
		return
	}

	user, err := store.CreateUser(r.Context(), s.DB, name, email, password)
	if err == store.ErrDuplicateEmail {
		s.Templates.Render(w, "signup.html", &PageData{
			Title: "Sign up",
			Error: "That email is already registered.",
		})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		s.renderServerError(w, err)
		return
	}

	log.Info().Str("user", user.ID).Msg("Account created")

	// Log the new account in right away.
	if err := s.setSessionCookie(w, user.ID, user.Name, user.Email); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := store.VerifyCredentials(r.Context(), s.DB, email, password)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: invalidLoginMessage,
		})
		return
	}

	if err := s.setSessionCookie(w, user.ID, user.Name, user.Email); err != nil {
		log.Error().Err(err).Msg("Failed to establish session")
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Log in",
			Error: "Login failed. Please try again.",
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout. The token's JTI is revoked server-side so the
// cleared cookie can't be replayed.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.SessionSecret, cookie.Value); err == nil && claims.ID != "" {
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
				log.Error().Err(err).Msg("Failed to revoke token")
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, userID, name, email string) error {
	token, err := auth.GenerateToken(s.SessionSecret, userID, name, email)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry.Seconds()),
	})
	return nil
}
