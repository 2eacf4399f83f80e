package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
)

type NotificationRepo struct {
	DB DBTX
}

const createNotification = `-- name: CreateNotification
INSERT INTO notifications (id, user_id, message, notification_type)
VALUES ($1, $2, $3, $4)
RETURNING id, user_id, message, notification_type, is_read, created_at, updated_at
`

type CreateNotificationParams struct {
	UserID           uuid.UUID
	Message          string
	NotificationType string
}

// Create inserts an unread notification
func (r *NotificationRepo) Create(ctx context.Context, arg CreateNotificationParams) (models.Notification, error) {
	rows, _ := r.DB.Query(ctx, createNotification, uuid.New(), arg.UserID, arg.Message, arg.NotificationType)
	notification, err := pgx.CollectOneRow(rows, rowToNotification)
	if err != nil {
		return notification, mapDBError(err)
	}

	return notification, nil
}

const countNotifications = `-- name: CountNotifications
SELECT count(*) FROM notifications
`

const listNotifications = `-- name: ListNotifications
SELECT id, user_id, message, notification_type, is_read, created_at, updated_at FROM notifications
ORDER BY created_at DESC, id
LIMIT $1 OFFSET $2
`

func (r *NotificationRepo) List(ctx context.Context, req models.PageRequest) (models.Page[models.Notification], error) {
	return collectPage(ctx, r.DB, countNotifications, listNotifications, req, rowToNotification)
}

const getNotificationByID = `-- name: GetNotificationByID
SELECT id, user_id, message, notification_type, is_read, created_at, updated_at FROM notifications
WHERE id = $1
`

func (r *NotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (models.Notification, error) {
	rows, _ := r.DB.Query(ctx, getNotificationByID, id)
	notification, err := pgx.CollectOneRow(rows, rowToNotification)

	switch {
	case err == nil:
		return notification, nil
	case errors.Is(err, pgx.ErrNoRows):
		return notification, apperrors.ErrNotFound
	default:
		return notification, mapDBError(err)
	}
}

const updateNotification = `-- name: UpdateNotification
UPDATE notifications
SET message = COALESCE($2, message),
    notification_type = COALESCE($3, notification_type),
    is_read = COALESCE($4, is_read),
    updated_at = now()
WHERE id = $1
RETURNING id, user_id, message, notification_type, is_read, created_at, updated_at
`

type UpdateNotificationParams struct {
	Message          *string
	NotificationType *string
	IsRead           *bool
}

func (r *NotificationRepo) Update(ctx context.Context, id uuid.UUID, arg UpdateNotificationParams) (models.Notification, error) {
	rows, _ := r.DB.Query(ctx, updateNotification, id, arg.Message, arg.NotificationType, arg.IsRead)
	notification, err := pgx.CollectOneRow(rows, rowToNotification)
	if err != nil {
		return notification, mapDBError(err)
	}

	return notification, nil
}

const deleteNotification = `-- name: DeleteNotification
DELETE FROM notifications WHERE id = $1
`

func (r *NotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.DB.Exec(ctx, deleteNotification, id); err != nil {
		return mapDBError(err)
	}

	return nil
}

func rowToNotification(row pgx.CollectableRow) (models.Notification, error) {
	var n models.Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Message, &n.NotificationType, &n.IsRead, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}
