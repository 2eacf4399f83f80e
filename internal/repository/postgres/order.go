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

type OrderRepo struct {
	DB DBTX
}

const createOrder = `-- name: CreateOrder
INSERT INTO orders (id, user_id, status, total_amount)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, status, total_amount, created_at, updated_at
`

type CreateOrderParams struct {
	UserID      uuid.UUID
	TotalAmount decimal.Decimal
}

// Create inserts a new order. Status is always "pending" at creation,
// transitions happen through Update only.
func (r *OrderRepo) Create(ctx context.Context, arg CreateOrderParams) (models.Order, error) {
	rows, _ := r.DB.Query(ctx, createOrder, uuid.New(), arg.UserID, models.OrderStatusPending, arg.TotalAmount)
	order, err := pgx.CollectOneRow(rows, rowToOrder)
	if err != nil {
		return order, mapDBError(err)
	}

	return order, nil
}

const countOrders = `-- name: CountOrders
SELECT count(*) FROM orders
`

const listOrders = `-- name: ListOrders
SELECT id, user_id, status, total_amount, created_at, updated_at FROM orders
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

func (r *OrderRepo) List(ctx context.Context, req models.PageRequest) (models.Page[models.Order], error) {
	return collectPage(ctx, r.DB, countOrders, listOrders, req, rowToOrder)
}

const getOrderByID = `-- name: GetOrderByID
SELECT id, user_id, status, total_amount, created_at, updated_at FROM orders
WHERE id = $1
`

func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Order, error) {
	rows, _ := r.DB.Query(ctx, getOrderByID, id)
	order, err := pgx.CollectOneRow(rows, rowToOrder)

	switch {
	case err == nil:
		return order, nil
	case errors.Is(err, pgx.ErrNoRows):
		return order, apperrors.ErrNotFound
	default:
		return order, mapDBError(err)
	}
}

const updateOrder = `-- name: UpdateOrder
UPDATE orders
SET status = COALESCE($2, status),
    total_amount = COALESCE($3, total_amount),
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, status, total_amount, created_at, updated_at
`

type UpdateOrderParams struct {
	Status      *string
	TotalAmount *decimal.Decimal
}

func (r *OrderRepo) Update(ctx context.Context, id uuid.UUID, arg UpdateOrderParams) (models.Order, error) {
	rows, _ := r.DB.Query(ctx, updateOrder, id, arg.Status, arg.TotalAmount)
	order, err := pgx.CollectOneRow(rows, rowToOrder)
	if err != nil {
		return order, mapDBError(err)
	}

	return order, nil
}

const deleteOrder = `-- name: DeleteOrder
DELETE FROM orders WHERE id = $1
`

func (r *OrderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.Exec(ctx, deleteOrder, id); err != nil {
		return mapDBError(err)
	}

	return nil
}

func rowToOrder(row pgx.CollectableRow) (models.Order, error) {
	var o models.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}
