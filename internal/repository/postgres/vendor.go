package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
)

type VendorRepo struct {
	DB DBTX
}

const createVendor = `-- name: CreateVendor
INSERT INTO vendors (id, name, contact_person, email, phone, address)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, name, contact_person, email, phone, address, created_at, updated_at
`

type CreateVendorParams struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

func (r *VendorRepo) Create(ctx context.Context, arg CreateVendorParams) (models.Vendor, error) {
	rows, _ := r.DB.Query(ctx, createVendor, uuid.New(), arg.Name, arg.ContactPerson, arg.Email, arg.Phone, arg.Address)
	vendor, err := pgx.CollectOneRow(rows, rowToVendor)
	if err != nil {
		return vendor, mapDBError(err)
	}

	return vendor, nil
}

const countVendors = `-- name: CountVendors
SELECT count(*) FROM vendors
`

const listVendors = `-- name: ListVendors
SELECT id, name, contact_person, email, phone, address, created_at, updated_at FROM vendors
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

func (r *VendorRepo) List(ctx context.Context, req models.PageRequest) (models.Page[models.Vendor], error) {
	return collectPage(ctx, r.DB, countVendors, listVendors, req, rowToVendor)
}

const getVendorByID = `-- name: GetVendorByID
SELECT id, name, contact_person, email, phone, address, created_at, updated_at FROM vendors
WHERE id = $1
`

func (r *VendorRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Vendor, error) {
	rows, _ := r.DB.Query(ctx, getVendorByID, id)
	vendor, err := pgx.CollectOneRow(rows, rowToVendor)

	switch {
	case err == nil:
		return vendor, nil
	case errors.Is(err, pgx.ErrNoRows):
		return vendor, apperrors.ErrNotFound
	default:
		return vendor, mapDBError(err)
	}
}

const updateVendor = `-- name: UpdateVendor
UPDATE vendors
SET name = COALESCE($2, name),
    contact_person = COALESCE($3, contact_person),
    email = COALESCE($4, email),
    phone = COALESCE($5, phone),
    address = COALESCE($6, address),
    updated_at = now()
WHERE id = $1
RETURNING id, name, contact_person, email, phone, address, created_at, updated_at
`

type UpdateVendorParams struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

func (r *VendorRepo) Update(ctx context.Context, id uuid.UUID, arg UpdateVendorParams) (models.Vendor, error) {
	rows, _ := r.DB.Query(ctx, updateVendor, id, arg.Name, arg.ContactPerson, arg.Email, arg.Phone, arg.Address)
	vendor, err := pgx.CollectOneRow(rows, rowToVendor)
	if err != nil {
		return vendor, mapDBError(err)
	}

	return vendor, nil
}

const deleteVendor = `-- name: DeleteVendor
DELETE FROM vendors WHERE id = $1
`

func (r *VendorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.Exec(ctx, deleteVendor, id); err != nil {
		return mapDBError(err)
	}

	return nil
}

func rowToVendor(row pgx.CollectableRow) (models.Vendor, error) {
	var v models.Vendor
	err := row.Scan(&v.ID, &v.Name, &v.ContactPerson, &v.Email, &v.Phone, &v.Address, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}
