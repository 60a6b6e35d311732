package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/erazemk/najdeno/internal/auth"
	"github.com/erazemk/najdeno/internal/store"
)

type webContextKey string

const webClaimsKey webContextKey = "webclaims"

const returnTargetCookie = "return_to"

// Session resolves the caller's identity from the session cookie. Requests
// without a valid, unrevoked token proceed anonymously; a broken cookie is
// cleared instead of failing the request.
func (s *Server) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := auth.ValidateToken(s.SessionSecret, cookie.Value)
		if err != nil {
			clearAuthCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		if claims.ID != "" {
			revoked, err := store.IsTokenRevoked(r.Context(), s.DB, claims.ID)
			if err != nil {
				log.Error().Err(err).Msg("Failed to check token revocation")
				clearAuthCookie(w)
				next.ServeHTTP(w, r)
				return
			}
			if revoked {
				clearAuthCookie(w)
				next.ServeHTTP(w, r)
				return
			}
		}

		ctx := context.WithValue(r.Context(), webClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// clearAuthCookie clears the authentication cookie with consistent attributes.
func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// GetWebClaims retrieves the session claims from the request context, or nil
// for anonymous callers.
func GetWebClaims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(webClaimsKey).(*auth.Claims)
	return claims
}

// rememberReturnTarget stores the URL that "back" links on the detail page
// should lead to.
func rememberReturnTarget(w http.ResponseWriter, url string) {
	http.SetCookie(w, &http.Cookie{
		Name:     returnTargetCookie,
		Value:    url,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// returnTarget resolves the back-navigation target for the current request:
// the remembered listing URL, then the Referer header, then the home page.
// Only same-site paths are accepted to keep the redirect target local.
func returnTarget(r *http.Request) string {
	if cookie, err := r.Cookie(returnTargetCookie); err == nil && localPath(cookie.Value) {
		return cookie.Value
	}
	if ref, err := url.Parse(r.Header.Get("Referer")); err == nil && localPath(ref.Path) &&
		(ref.Host == "" || ref.Host == r.Host) {
		return ref.RequestURI()
	}
	return "/"
}

func localPath(url string) bool {
	return len(url) > 0 && url[0] == '/' && (len(url) == 1 || url[1] != '/')
}

// OfflineGate serves the degraded offline page for every request when the
// backing store was unreachable at startup.
func (s *Server) OfflineGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Offline {
			s.renderOffline(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Recover turns panics into the generic error page instead of a dropped
// connection.
func (s *Server) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				log.Error().
					Interface("error", v).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Msg("Panic recovered")
				s.renderPanic(w, v)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
