package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
	usersvc "github.com/pema-project/pema/internal/service/user"
	"github.com/pema-project/pema/internal/token"
)

type stubUserService struct {
	user models.User
	err  error
}

func (s *stubUserService) Create(_ context.Context, _, _, _ string) (models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Authenticate(_ context.Context, _, _ string) (models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) List(_ context.Context, req models.PageRequest) (models.Page[models.User], error) {
	return models.NewPage([]models.User{s.user}, 1, req), s.err
}

func (s *stubUserService) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	if s.err == nil && id != s.user.ID {
		return models.User{}, apperrors.ErrNotFound
	}
	return s.user, s.err
}

func (s *stubUserService) Update(_ context.Context, _ uuid.UUID, _ usersvc.UpdateParams) (models.User, error) {
	return s.user, s.err
}

func (s *stubUserService) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func TestUserRouter(t *testing.T) {
	t.Parallel()

	manager, err := token.New(token.Config{SecretKey: "test-secret"})
	require.NoError(t, err)

	user := models.User{
		ID:           uuid.New(),
		Username:     "kim",
		Email:        "kim@example.com",
		PasswordHash: "super-secret-hash",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	newServer := func(t *testing.T, svc userService) *httptest.Server {
		srv := httptest.NewServer(NewUserRouter(svc, manager, testRouterConfig()))
		t.Cleanup(srv.Close)
		return srv
	}

	t.Run("create never leaks the password hash", func(t *testing.T) {
		srv := newServer(t, &stubUserService{user: user})

		resp, err := http.Post(srv.URL+"/api/users/", "application/json",
			strings.NewReader(`{"username": "kim", "email": "kim@example.com", "password": "password123"}`))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
		assert.Equal(t, "kim", raw["username"])
		assert.NotContains(t, raw, "password_hash")
		assert.NotContains(t, raw, "password")
	})

	t.Run("create with short password is 400", func(t *testing.T) {
		srv := newServer(t, &stubUserService{user: user})

		resp, err := http.Post(srv.URL+"/api/users/", "application/json",
			strings.NewReader(`{"username": "kim", "email": "kim@example.com", "password": "short"}`))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create duplicate is 409", func(t *testing.T) {
		srv := newServer(t, &stubUserService{err: apperrors.ErrDuplicateEntry})

		resp, err := http.Post(srv.URL+"/api/users/", "application/json",
			strings.NewReader(`{"username": "kim", "email": "kim@example.com", "password": "password123"}`))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("login returns a signed token", func(t *testing.T) {
		srv := newServer(t, &stubUserService{user: user})

		resp, err := http.Post(srv.URL+"/api/users/login", "application/json",
			strings.NewReader(`{"username": "kim", "password": "password123"}`))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotEmpty(t, body.Token)

		claims, err := manager.Validate(body.Token)
		require.NoError(t, err, "login must hand out a token our own validator accepts")
		assert.Equal(t, user.ID.String(), claims.Subject)
	})

	t.Run("login with bad credentials is 401", func(t *testing.T) {
		srv := newServer(t, &stubUserService{err: apperrors.ErrInvalidCredentials})

		resp, err := http.Post(srv.URL+"/api/users/login", "application/json",
			strings.NewReader(`{"username": "kim", "password": "wrong"}`))
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["message"])
	})

	t.Run("me requires a token", func(t *testing.T) {
		srv := newServer(t, &stubUserService{user: user})

		resp, err := http.Get(srv.URL + "/api/users/me")
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("me returns the authenticated user", func(t *testing.T) {
		srv := newServer(t, &stubUserService{user: user})

		issued, err := manager.Generate(user.ID.String())
		require.NoError(t, err)

		req, err := http.NewRequest("GET", srv.URL+"/api/users/me", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+issued.Value)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close() //nolint:errcheck

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got models.User
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, "kim", got.Username)
	})
}
