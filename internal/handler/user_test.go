package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
	"taskvault/internal/permission"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withActor injects an authenticated actor the way the auth middleware
// would.
func withActor(actor permission.Actor, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r.WithContext(permission.WithActor(r.Context(), actor)))
	})
}

type fakeUserService struct {
	createFn func(ctx context.Context, req *models.CreateUserRequest) (*models.UserView, error)
	showFn   func(ctx context.Context, idOrUsername string) (*models.UserView, error)
	updateFn func(ctx context.Context, actor permission.Actor, userID uuid.UUID, req *models.UpdateUserRequest) (*models.UserView, error)
	deleteFn func(ctx context.Context, actor permission.Actor, userID uuid.UUID) error
}

func (f *fakeUserService) Create(ctx context.Context, req *models.CreateUserRequest) (*models.UserView, error) {
	return f.createFn(ctx, req)
}

func (f *fakeUserService) Show(ctx context.Context, idOrUsername string) (*models.UserView, error) {
	return f.showFn(ctx, idOrUsername)
}

func (f *fakeUserService) Update(ctx context.Context, actor permission.Actor, userID uuid.UUID, req *models.UpdateUserRequest) (*models.UserView, error) {
	return f.updateFn(ctx, actor, userID, req)
}

func (f *fakeUserService) Delete(ctx context.Context, actor permission.Actor, userID uuid.UUID) error {
	return f.deleteFn(ctx, actor, userID)
}

func newUserMux(svc UserService, actor permission.Actor) http.Handler {
	h := NewUserHandler(svc, testLogger())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/users", h.CreateUser)
	mux.HandleFunc("GET /api/v1/users/{id_or_username}", h.ShowUser)
	mux.HandleFunc("PUT /api/v1/users/{user_id}", h.UpdateUser)
	mux.HandleFunc("DELETE /api/v1/users/{user_id}", h.DeleteUser)
	return withActor(actor, mux)
}

func decodeEnvelope(t *testing.T, body io.Reader) (json.RawMessage, int, string) {
	t.Helper()
	var envelope struct {
		Data       json.RawMessage `json:"data"`
		StatusCode int             `json:"status_code"`
		Detail     string          `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope.Data, envelope.StatusCode, envelope.Detail
}

func decodeDetail(t *testing.T, body io.Reader) string {
	t.Helper()
	var e struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&e))
	return e.Detail
}

func TestCreateUserHandler(t *testing.T) {
	t.Run("signup succeeds", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, req *models.CreateUserRequest) (*models.UserView, error) {
				require.Equal(t, "clint_est", req.Username)
				require.Equal(t, "clint@east.com", req.Email)
				return &models.UserView{
					ID:       uuid.New(),
					Email:    req.Email,
					Username: req.Username,
					Role:     models.RoleUser,
					IsActive: true,
				}, nil
			},
		}
		mux := newUserMux(svc, permission.Actor{})

		body := `{"email":"clint@east.com","username":"clint_est","raw_password":"creyiwi7"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		data, statusCode, detail := decodeEnvelope(t, rec.Body)
		assert.Equal(t, http.StatusCreated, statusCode)
		assert.Equal(t, "Successful", detail)

		var view models.UserView
		require.NoError(t, json.Unmarshal(data, &view))
		assert.Equal(t, "clint_est", view.Username)
	})

	t.Run("duplicate username", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, req *models.CreateUserRequest) (*models.UserView, error) {
				return nil, domain.ErrUsernameTaken
			},
		}
		mux := newUserMux(svc, permission.Actor{})

		body := `{"email":"other@east.com","username":"clint_est","raw_password":"creyiwi7"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "This username is already taken", decodeDetail(t, rec.Body))
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := &fakeUserService{}
		mux := newUserMux(svc, permission.Actor{})

		req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestShowUserHandler(t *testing.T) {
	actor := permission.Actor{ID: uuid.New(), Username: "clint_est"}

	t.Run("lookup by username", func(t *testing.T) {
		svc := &fakeUserService{
			showFn: func(ctx context.Context, idOrUsername string) (*models.UserView, error) {
				require.Equal(t, "brad_pitt", idOrUsername)
				return &models.UserView{ID: uuid.New(), Username: "brad_pitt"}, nil
			},
		}
		mux := newUserMux(svc, actor)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/brad_pitt", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data, _, _ := decodeEnvelope(t, rec.Body)

		var view models.UserView
		require.NoError(t, json.Unmarshal(data, &view))
		assert.Equal(t, "brad_pitt", view.Username)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := &fakeUserService{
			showFn: func(ctx context.Context, idOrUsername string) (*models.UserView, error) {
				return nil, domain.ErrUserNotFound
			},
		}
		mux := newUserMux(svc, actor)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/users/nobody_here", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "An user with given id doesn't exist", decodeDetail(t, rec.Body))
	})
}

func TestUpdateUserHandler(t *testing.T) {
	targetID := uuid.New()
	actor := permission.Actor{ID: targetID, Username: "clint_est"}

	t.Run("update succeeds", func(t *testing.T) {
		svc := &fakeUserService{
			updateFn: func(ctx context.Context, a permission.Actor, userID uuid.UUID, req *models.UpdateUserRequest) (*models.UserView, error) {
				require.Equal(t, actor.ID, a.ID)
				require.Equal(t, targetID, userID)
				require.NotNil(t, req.Fullname)
				return &models.UserView{ID: userID, Username: "clint_est", Fullname: req.Fullname}, nil
			},
		}
		mux := newUserMux(svc, actor)

		body := `{"fullname":"Clint Westwood"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+targetID.String(), strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		_, _, detail := decodeEnvelope(t, rec.Body)
		assert.Equal(t, "User has been successfully updated", detail)
	})

	t.Run("malformed path id", func(t *testing.T) {
		svc := &fakeUserService{}
		mux := newUserMux(svc, actor)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/users/not-a-uuid", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("admin peer denial", func(t *testing.T) {
		svc := &fakeUserService{
			updateFn: func(ctx context.Context, a permission.Actor, userID uuid.UUID, req *models.UpdateUserRequest) (*models.UserView, error) {
				return nil, domain.AdminPeerForbidden("update")
			},
		}
		mux := newUserMux(svc, permission.Actor{ID: uuid.New(), IsSuperuser: true})

		body := `{"fullname":"Someone Else"}`
		req := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+targetID.String(), strings.NewReader(body))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "You can't update other admin's data", decodeDetail(t, rec.Body))
	})
}

func TestDeleteUserHandler(t *testing.T) {
	targetID := uuid.New()
	actor := permission.Actor{ID: targetID, Username: "clint_est"}

	t.Run("delete confirms without payload", func(t *testing.T) {
		svc := &fakeUserService{
			deleteFn: func(ctx context.Context, a permission.Actor, userID uuid.UUID) error {
				require.Equal(t, targetID, userID)
				return nil
			},
		}
		mux := newUserMux(svc, actor)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+targetID.String(), nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		raw := rec.Body.String()
		_, statusCode, detail := decodeEnvelope(t, strings.NewReader(raw))
		assert.Equal(t, http.StatusOK, statusCode)
		assert.Equal(t, "User has been successfully deleted", detail)
		assert.NotContains(t, raw, `"data"`)
	})

	t.Run("already deleted", func(t *testing.T) {
		svc := &fakeUserService{
			deleteFn: func(ctx context.Context, a permission.Actor, userID uuid.UUID) error {
				return domain.ErrAlreadyInactive
			},
		}
		mux := newUserMux(svc, actor)

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/"+targetID.String(), nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "User already has been deleted", decodeDetail(t, rec.Body))
	})
}
