package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/handlers/userctx"
	"github.com/pema-project/pema/internal/models"
	"github.com/pema-project/pema/internal/token"
)

type stubUserGetter struct {
	user models.User
}

func (s stubUserGetter) GetByID(_ context.Context, id uuid.UUID) (models.User, error) {
	if id != s.user.ID {
		return models.User{}, apperrors.ErrNotFound
	}
	return s.user, nil
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	manager, err := token.New(token.Config{SecretKey: "test-secret"})
	require.NoError(t, err)

	user := models.User{ID: uuid.New(), Username: "authed"}
	users := stubUserGetter{user: user}

	var gotUser models.User
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotOK = userctx.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := Auth(manager, users)(next)

	do := func(t *testing.T, authHeader string) *httptest.ResponseRecorder {
		gotUser, gotOK = models.User{}, false
		req := httptest.NewRequest("GET", "/protected", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("valid token passes user into context", func(t *testing.T) {
		issued, err := manager.Generate(user.ID.String())
		require.NoError(t, err)

		rec := do(t, "Bearer "+issued.Value)

		require.Equal(t, http.StatusOK, rec.Code)
		require.True(t, gotOK, "user should be in context")
		require.Equal(t, user.ID, gotUser.ID)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := do(t, "")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.False(t, gotOK)
	})

	t.Run("wrong scheme rejected", func(t *testing.T) {
		rec := do(t, "Basic dXNlcjpwYXNz")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		rec := do(t, "Bearer not-a-jwt")

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token for unknown user rejected", func(t *testing.T) {
		issued, err := manager.Generate(uuid.NewString())
		require.NoError(t, err)

		rec := do(t, "Bearer "+issued.Value)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("subject that is not a uuid rejected", func(t *testing.T) {
		issued, err := manager.Generate("some-legacy-subject")
		require.NoError(t, err)

		rec := do(t, "Bearer "+issued.Value)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
