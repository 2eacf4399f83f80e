package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pema-project/pema/internal/apperrors"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx, so repos
// work the same way inside and outside a transaction
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Storage aggregates the per table repositories over one connection source
type Storage struct {
	db DBTX
}

func NewStorage(db DBTX) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Users() *UserRepo {
	return &UserRepo{DB: s.db}
}

func (s *Storage) Products() *ProductRepo {
	return &ProductRepo{DB: s.db}
}

func (s *Storage) Orders() *OrderRepo {
	return &OrderRepo{DB: s.db}
}

func (s *Storage) Inventory() *InventoryRepo {
	return &InventoryRepo{DB: s.db}
}

func (s *Storage) Payments() *PaymentRepo {
	return &PaymentRepo{DB: s.db}
}

func (s *Storage) Vendors() *VendorRepo {
	return &VendorRepo{DB: s.db}
}

func (s *Storage) Notifications() *NotificationRepo {
	return &NotificationRepo{DB: s.db}
}

// mapDBError converts driver errors to the shared error kinds.
// Anything unrecognized is wrapped and surfaces as an internal error.
func mapDBError(err error) error {
	var pgErr *pgconn.PgError

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrNotFound
	case errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation:
		return apperrors.ErrDuplicateEntry
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
