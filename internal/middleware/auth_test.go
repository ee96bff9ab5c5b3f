package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
	"taskvault/internal/permission"
)

type fakeVerifier struct {
	claims *models.AccessClaims
	err    error
}

func (f *fakeVerifier) Verify(tokenString string) (*models.AccessClaims, error) {
	return f.claims, f.err
}

func validClaims(userID uuid.UUID, superuser bool) *models.AccessClaims {
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "clint_est"},
		UserID:           userID.String(),
		IsSuperuser:      superuser,
	}
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		method     string
		path       string
		header     string
		verifier   *fakeVerifier
		wantStatus int
		wantDetail string
		wantActor  bool
	}{
		{
			name:       "health check is public",
			method:     http.MethodGet,
			path:       "/health",
			verifier:   &fakeVerifier{err: domain.ErrUnauthenticated},
			wantStatus: http.StatusOK,
		},
		{
			name:       "login is public",
			method:     http.MethodPost,
			path:       "/auth/token",
			verifier:   &fakeVerifier{err: domain.ErrUnauthenticated},
			wantStatus: http.StatusOK,
		},
		{
			name:       "signup is public",
			method:     http.MethodPost,
			path:       "/api/v1/users",
			verifier:   &fakeVerifier{err: domain.ErrUnauthenticated},
			wantStatus: http.StatusOK,
		},
		{
			name:       "signup with trailing slash is public",
			method:     http.MethodPost,
			path:       "/api/v1/users/",
			verifier:   &fakeVerifier{err: domain.ErrUnauthenticated},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			method:     http.MethodGet,
			path:       "/api/v1/folders",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Not authenticated",
		},
		{
			name:       "wrong scheme",
			method:     http.MethodGet,
			path:       "/api/v1/folders",
			header:     "Basic dXNlcjpwYXNz",
			verifier:   &fakeVerifier{},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Not authenticated",
		},
		{
			name:       "invalid token",
			method:     http.MethodGet,
			path:       "/api/v1/folders",
			header:     "Bearer bad-token",
			verifier:   &fakeVerifier{err: domain.ErrUnauthenticated},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Could not validate user",
		},
		{
			name:       "expired token",
			method:     http.MethodGet,
			path:       "/api/v1/folders",
			header:     "Bearer expired-token",
			verifier:   &fakeVerifier{err: domain.ErrTokenExpired},
			wantStatus: http.StatusForbidden,
			wantDetail: "Token expired!",
		},
		{
			name:       "token without expiry",
			method:     http.MethodGet,
			path:       "/api/v1/folders",
			header:     "Bearer no-exp-token",
			verifier:   &fakeVerifier{err: domain.ErrNoTokenExpiry},
			wantStatus: http.StatusBadRequest,
			wantDetail: "No access token supplied",
		},
		{
			name:   "claims with malformed user id",
			method: http.MethodGet,
			path:   "/api/v1/folders",
			header: "Bearer token",
			verifier: &fakeVerifier{claims: &models.AccessClaims{
				RegisteredClaims: jwt.RegisteredClaims{Subject: "clint_est"},
				UserID:           "not-a-uuid",
			}},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Could not validate user",
		},
		{
			name:       "valid token reaches the handler",
			method:     http.MethodGet,
			path:       "/api/v1/folders",
			header:     "Bearer good-token",
			verifier:   &fakeVerifier{claims: validClaims(userID, true)},
			wantStatus: http.StatusOK,
			wantActor:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotActor *permission.Actor
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if actor, ok := permission.ActorFromContext(r.Context()); ok {
					gotActor = &actor
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantDetail != "" && !strings.Contains(rec.Body.String(), tt.wantDetail) {
				t.Errorf("body = %s, want detail %q", rec.Body.String(), tt.wantDetail)
			}
			if tt.wantActor {
				if gotActor == nil {
					t.Fatal("actor missing from context")
				}
				if gotActor.ID != userID {
					t.Errorf("actor id = %v, want %v", gotActor.ID, userID)
				}
				if gotActor.Username != "clint_est" {
					t.Errorf("actor username = %q", gotActor.Username)
				}
				if !gotActor.IsSuperuser {
					t.Error("actor superuser flag lost")
				}
			}
		})
	}
}
