package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
)

type UserRepo struct {
	DB DBTX
}

const createUser = `-- name: CreateUser
INSERT INTO users (id, username, email, password_hash)
VALUES ($1, $2, $3, $4)
RETURNING id, username, email, password_hash, created_at, updated_at
`

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
}

func (r *UserRepo) Create(ctx context.Context, arg CreateUserParams) (models.User, error) {
	rows, _ := r.DB.Query(ctx, createUser, uuid.New(), arg.Username, arg.Email, arg.PasswordHash)
	user, err := pgx.CollectOneRow(rows, rowToUser)
	if err != nil {
		return user, mapDBError(err)
	}

	return user, nil
}

const countUsers = `-- name: CountUsers
SELECT count(*) FROM users
`

const listUsers = `-- name: ListUsers
SELECT id, username, email, password_hash, created_at, updated_at FROM users
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

func (r *UserRepo) List(ctx context.Context, req models.PageRequest) (models.Page[models.User], error) {
	return collectPage(ctx, r.DB, countUsers, listUsers, req, rowToUser)
}

const getUserByID = `-- name: GetUserByID
SELECT id, username, email, password_hash, created_at, updated_at FROM users
WHERE id = $1
`

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByID, id)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrNotFound
	default:
		return user, mapDBError(err)
	}
}

const getUserByUsername = `-- name: GetUserByUsername
SELECT id, username, email, password_hash, created_at, updated_at FROM users
WHERE username = $1
`

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByUsername, username)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrNotFound
	default:
		return user, mapDBError(err)
	}
}

// Single atomic statement: only supplied columns overwrite stored
// values, so concurrent partial updates cannot clobber each other
const updateUser = `-- name: UpdateUser
UPDATE users
SET username = COALESCE($2, username),
    email = COALESCE($3, email),
    password_hash = COALESCE($4, password_hash),
    updated_at = now()
WHERE id = $1
RETURNING id, username, email, password_hash, created_at, updated_at
`

type UpdateUserParams struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

func (r *UserRepo) Update(ctx context.Context, id uuid.UUID, arg UpdateUserParams) (models.User, error) {
	rows, _ := r.DB.Query(ctx, updateUser, id, arg.Username, arg.Email, arg.PasswordHash)
	user, err := pgx.CollectOneRow(rows, rowToUser)
	if err != nil {
		return user, mapDBError(err)
	}

	return user, nil
}

const deleteUser = `-- name: DeleteUser
DELETE FROM users WHERE id = $1
`

// Delete is idempotent: removing an id that is already gone succeeds
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.Exec(ctx, deleteUser, id); err != nil {
		return mapDBError(err)
	}

	return nil
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
