package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
	"github.com/pema-project/pema/internal/repository/postgres"
)

// Repo is the storage surface the service relies on
type Repo interface {
	Create(ctx context.Context, params postgres.CreateUserParams) (models.User, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.User], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	Update(ctx context.Context, id uuid.UUID, params postgres.UpdateUserParams) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UpdateParams carries optional field changes. Nil fields stay untouched.
type UpdateParams struct {
	Username *string
	Email    *string
	Password *string
}

type UserService struct {
	hasher PasswordHasher
	repo   Repo
}

func NewService(hasher PasswordHasher, repo Repo) *UserService {
	if hasher == nil {
		hasher = DefaultHasher
	}

	return &UserService{
		hasher: hasher,
		repo:   repo,
	}
}

func (s *UserService) Create(ctx context.Context, username string, email string, password string) (models.User, error) {
	var user models.User
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user, fmt.Errorf("can't use this as password, Err: %w", err)
	}

	user, err = s.repo.Create(ctx, postgres.CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return user, fmt.Errorf("can't create user. Err: %w", err)
	}

	return user, nil
}

// Authenticate checks the username and password pair.
// Any failure collapses into ErrInvalidCredentials so callers can't
// tell an unknown user from a wrong password.
func (s *UserService) Authenticate(ctx context.Context, username string, password string) (models.User, error) {
	// Ignore lookup error: comparing against the empty hash below
	// fails the same way and keeps timing close for both cases
	user, _ := s.repo.GetByUsername(ctx, username)

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return models.User{}, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, req models.PageRequest) (models.Page[models.User], error) {
	return s.repo.List(ctx, req)
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (models.User, error) {
	repoParams := postgres.UpdateUserParams{
		Username: params.Username,
		Email:    params.Email,
	}

	if params.Password != nil {
		hash, err := s.hasher.Hash(*params.Password)
		if err != nil {
			return models.User{}, fmt.Errorf("can't use this as password, Err: %w", err)
		}
		repoParams.PasswordHash = &hash
	}

	return s.repo.Update(ctx, id, repoParams)
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
