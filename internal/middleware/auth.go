package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"taskvault/internal/auth"
	"taskvault/internal/domain"
	"taskvault/internal/httputil"
	"taskvault/internal/permission"
)

const bearerPrefix = "Bearer "

// Auth verifies the bearer token on every request and stores the
// resulting actor in the request context. Signup, login and the health
// check stay public; everything else requires a valid token.
func Auth(verifier auth.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				httputil.RespondError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}

			claims, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				var httpErr domain.HTTPError
				if errors.As(err, &httpErr) {
					httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
					return
				}
				httputil.RespondError(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
				return
			}

			actorID, err := uuid.Parse(claims.UserID)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
				return
			}

			actor := permission.Actor{
				ID:          actorID,
				Username:    claims.GetUsername(),
				IsSuperuser: claims.IsSuperuser,
			}

			next.ServeHTTP(w, r.WithContext(permission.WithActor(r.Context(), actor)))
		})
	}
}

// isPublic reports whether the route is reachable without a token.
func isPublic(r *http.Request) bool {
	path := strings.TrimSuffix(r.URL.Path, "/")
	switch {
	case r.Method == http.MethodGet && path == "/health":
		return true
	case r.Method == http.MethodPost && path == "/auth/token":
		return true
	case r.Method == http.MethodPost && path == "/api/v1/users":
		// Signup
		return true
	}
	return false
}
