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

type ProductRepo struct {
	DB DBTX
}

const createProduct = `-- name: CreateProduct
INSERT INTO products (id, name, description, price, stock, category, vendor_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, name, description, price, stock, category, vendor_id, created_at, updated_at
`

type CreateProductParams struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int32
	Category    string
	VendorID    *uuid.UUID
}

func (r *ProductRepo) Create(ctx context.Context, arg CreateProductParams) (models.Product, error) {
	if arg.Category == "" {
		arg.Category = models.ProductCategoryDefault
	}

	rows, _ := r.DB.Query(ctx, createProduct, uuid.New(), arg.Name, arg.Description, arg.Price, arg.Stock, arg.Category, arg.VendorID)
	product, err := pgx.CollectOneRow(rows, rowToProduct)
	if err != nil {
		return product, mapDBError(err)
	}

	return product, nil
}

const countProducts = `-- name: CountProducts
SELECT count(*) FROM products
`

const listProducts = `-- name: ListProducts
SELECT id, name, description, price, stock, category, vendor_id, created_at, updated_at FROM products
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

func (r *ProductRepo) List(ctx context.Context, req models.PageRequest) (models.Page[models.Product], error) {
	return collectPage(ctx, r.DB, countProducts, listProducts, req, rowToProduct)
}

const getProductByID = `-- name: GetProductByID
SELECT id, name, description, price, stock, category, vendor_id, created_at, updated_at FROM products
WHERE id = $1
`

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Product, error) {
	rows, _ := r.DB.Query(ctx, getProductByID, id)
	product, err := pgx.CollectOneRow(rows, rowToProduct)

	switch {
	case err == nil:
		return product, nil
	case errors.Is(err, pgx.ErrNoRows):
		return product, apperrors.ErrNotFound
	default:
		return product, mapDBError(err)
	}
}

const updateProduct = `-- name: UpdateProduct
UPDATE products
SET name = COALESCE($2, name),
    description = COALESCE($3, description),
    price = COALESCE($4, price),
    stock = COALESCE($5, stock),
    updated_at = now()
WHERE id = $1
RETURNING id, name, description, price, stock, category, vendor_id, created_at, updated_at
`

type UpdateProductParams struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int32
}

func (r *ProductRepo) Update(ctx context.Context, id uuid.UUID, arg UpdateProductParams) (models.Product, error) {
	rows, _ := r.DB.Query(ctx, updateProduct, id, arg.Name, arg.Description, arg.Price, arg.Stock)
	product, err := pgx.CollectOneRow(rows, rowToProduct)
	if err != nil {
		return product, mapDBError(err)
	}

	return product, nil
}

const deleteProduct = `-- name: DeleteProduct
DELETE FROM products WHERE id = $1
`

func (r *ProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.Exec(ctx, deleteProduct, id); err != nil {
		return mapDBError(err)
	}

	return nil
}

func rowToProduct(row pgx.CollectableRow) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.VendorID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
