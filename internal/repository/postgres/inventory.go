package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
)

type InventoryRepo struct {
	DB DBTX
}

const createInventoryItem = `-- name: CreateInventoryItem
INSERT INTO inventory_items (id, product_id, quantity, location)
VALUES ($1, $2, $3, $4)
RETURNING id, product_id, quantity, location, created_at, updated_at
`

type CreateInventoryItemParams struct {
	ProductID uuid.UUID
	Quantity  int32
	Location  string
}

func (r *InventoryRepo) Create(ctx context.Context, arg CreateInventoryItemParams) (models.InventoryItem, error) {
	rows, _ := r.DB.Query(ctx, createInventoryItem, uuid.New(), arg.ProductID, arg.Quantity, arg.Location)
	item, err := pgx.CollectOneRow(rows, rowToInventoryItem)
	if err != nil {
		return item, mapDBError(err)
	}

	return item, nil
}

const countInventoryItems = `-- name: CountInventoryItems
SELECT count(*) FROM inventory_items
`

const listInventoryItems = `-- name: ListInventoryItems
SELECT id, product_id, quantity, location, created_at, updated_at FROM inventory_items
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

func (r *InventoryRepo) List(ctx context.Context, req models.PageRequest) (models.Page[models.InventoryItem], error) {
	return collectPage(ctx, r.DB, countInventoryItems, listInventoryItems, req, rowToInventoryItem)
}

const getInventoryItemByID = `-- name: GetInventoryItemByID
SELECT id, product_id, quantity, location, created_at, updated_at FROM inventory_items
WHERE id = $1
`

func (r *InventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (models.InventoryItem, error) {
	rows, _ := r.DB.Query(ctx, getInventoryItemByID, id)
	item, err := pgx.CollectOneRow(rows, rowToInventoryItem)

	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, pgx.ErrNoRows):
		return item, apperrors.ErrNotFound
	default:
		return item, mapDBError(err)
	}
}

const updateInventoryItem = `-- name: UpdateInventoryItem
UPDATE inventory_items
SET quantity = COALESCE($2, quantity),
    location = COALESCE($3, location),
    updated_at = now()
WHERE id = $1
RETURNING id, product_id, quantity, location, created_at, updated_at
`

type UpdateInventoryItemParams struct {
	Quantity *int32
	Location *string
}

func (r *InventoryRepo) Update(ctx context.Context, id uuid.UUID, arg UpdateInventoryItemParams) (models.InventoryItem, error) {
	rows, _ := r.DB.Query(ctx, updateInventoryItem, id, arg.Quantity, arg.Location)
	item, err := pgx.CollectOneRow(rows, rowToInventoryItem)
	if err != nil {
		return item, mapDBError(err)
	}

	return item, nil
}

const deleteInventoryItem = `-- name: DeleteInventoryItem
DELETE FROM inventory_items WHERE id = $1
`

func (r *InventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.Exec(ctx, deleteInventoryItem, id); err != nil {
		return mapDBError(err)
	}

	return nil
}

func rowToInventoryItem(row pgx.CollectableRow) (models.InventoryItem, error) {
	var i models.InventoryItem
	err := row.Scan(&i.ID, &i.ProductID, &i.Quantity, &i.Location, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}
