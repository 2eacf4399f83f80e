package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
)

type PaymentRepo struct {
	DB DBTX
}

const createPayment = `-- name: CreatePayment
INSERT INTO payments (id, order_id, amount, status, transaction_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, order_id, amount, status, transaction_id, created_at, updated_at
`

// Status and TransactionID are stamped by the payment service, the
// caller never supplies them
type CreatePaymentParams struct {
	OrderID       uuid.UUID
	Amount        decimal.Decimal
	Status        string
	TransactionID string
}

func (r *PaymentRepo) Create(ctx context.Context, arg CreatePaymentParams) (models.Payment, error) {
	rows, _ := r.DB.Query(ctx, createPayment, uuid.New(), arg.OrderID, arg.Amount, arg.Status, arg.TransactionID)
	payment, err := pgx.CollectOneRow(rows, rowToPayment)
	if err != nil {
		return payment, mapDBError(err)
	}

	return payment, nil
}

const countPayments = `-- name: CountPayments
SELECT count(*) FROM payments
`

const listPayments = `-- name: ListPayments
SELECT id, order_id, amount, status, transaction_id, created_at, updated_at FROM payments
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

func (r *PaymentRepo) List(ctx context.Context, req models.PageRequest) (models.Page[models.Payment], error) {
	return collectPage(ctx, r.DB, countPayments, listPayments, req, rowToPayment)
}

const getPaymentByID = `-- name: GetPaymentByID
SELECT id, order_id, amount, status, transaction_id, created_at, updated_at FROM payments
WHERE id = $1
`

func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Payment, error) {
	rows, _ := r.DB.Query(ctx, getPaymentByID, id)
	payment, err := pgx.CollectOneRow(rows, rowToPayment)

	switch {
	case err == nil:
		return payment, nil
	case errors.Is(err, pgx.ErrNoRows):
		return payment, apperrors.ErrNotFound
	default:
		return payment, mapDBError(err)
	}
}

const updatePayment = `-- name: UpdatePayment
UPDATE payments
SET status = COALESCE($2, status),
    updated_at = now()
WHERE id = $1
RETURNING id, order_id, amount, status, transaction_id, created_at, updated_at
`

// Only the status may change after a payment is recorded
type UpdatePaymentParams struct {
	Status *string
}

func (r *PaymentRepo) Update(ctx context.Context, id uuid.UUID, arg UpdatePaymentParams) (models.Payment, error) {
	rows, _ := r.DB.Query(ctx, updatePayment, id, arg.Status)
	payment, err := pgx.CollectOneRow(rows, rowToPayment)
	if err != nil {
		return payment, mapDBError(err)
	}

	return payment, nil
}

const deletePayment = `-- name: DeletePayment
DELETE FROM payments WHERE id = $1
`

func (r *PaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.Exec(ctx, deletePayment, id); err != nil {
		return mapDBError(err)
	}

	return nil
}

func rowToPayment(row pgx.CollectableRow) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.Amount, &p.Status, &p.TransactionID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
