package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/store"
)

// AuthHandler serves token-based login for API clients.
type AuthHandler struct {
	DB            *sql.DB
	SessionSecret string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. The error body is identical for
// unknown emails and wrong passwords.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := store.VerifyCredentials(r.Context(), h.DB, req.Email, req.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		jsonError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to verify credentials")
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(h.SessionSecret, user.ID, user.Name, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token")
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}
