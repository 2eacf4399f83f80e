package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/testutil"
)

func Test_UserRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	createParams := CreateUserParams{
		Username:     "resu",
		Email:        "resu@example.com",
		PasswordHash: "not-a-real-hash",
	}

	t.Run("create and lookup", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			created, err := repo.Create(t.Context(), createParams)
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, created.ID)

			byID, err := repo.GetByID(t.Context(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, byID)

			byUsername, err := repo.GetByUsername(t.Context(), "resu")
			require.NoError(t, err)
			assert.Equal(t, created, byUsername)
		})
	})

	t.Run("duplicate username", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.Create(t.Context(), createParams)
			require.NoError(t, err)

			dup := createParams
			dup.Email = "other@example.com"
			_, err = repo.Create(t.Context(), dup)

			require.ErrorIs(t, err, apperrors.ErrDuplicateEntry)
		})
	})

	t.Run("duplicate email", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.Create(t.Context(), createParams)
			require.NoError(t, err)

			dup := createParams
			dup.Username = "other"
			_, err = repo.Create(t.Context(), dup)

			require.ErrorIs(t, err, apperrors.ErrDuplicateEntry)
		})
	})

	t.Run("unknown username", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			repo := UserRepo{DB: tx}

			_, err := repo.GetByUsername(t.Context(), "nobody")

			require.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	})
}
