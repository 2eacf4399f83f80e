package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pema-project/pema/internal/handlers/render"
	"github.com/pema-project/pema/internal/logger"
	"github.com/pema-project/pema/internal/models"
	"github.com/pema-project/pema/internal/repository/postgres"
)

type notificationStore interface {
	Create(ctx context.Context, params postgres.CreateNotificationParams) (models.Notification, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.Notification], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Notification, error)
	Update(ctx context.Context, id uuid.UUID, params postgres.UpdateNotificationParams) (models.Notification, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type NotificationHandler struct {
	notifications notificationStore
	logger        logger.Logger
}

func NewNotificationRouter(notifications notificationStore, cfg RouterConfig) http.Handler {
	h := &NotificationHandler{notifications: notifications, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/notifications", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}

func (h *NotificationHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		UserID           uuid.UUID `json:"user_id" validate:"required"`
		Message          string    `json:"message" validate:"required"`
		NotificationType string    `json:"notification_type" validate:"required,max=50"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	notification, err := h.notifications.Create(r.Context(), postgres.CreateNotificationParams{
		UserID:           data.UserID,
		Message:          data.Message,
		NotificationType: data.NotificationType,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSONWithStatus(w, notification, http.StatusCreated)
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.notifications.List(r.Context(), pageRequest(r))
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, page)
}

func (h *NotificationHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	notification, err := h.notifications.GetByID(r.Context(), id)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, notification)
}

func (h *NotificationHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Message          *string `json:"message"`
		NotificationType *string `json:"notification_type" validate:"omitempty,max=50"`
		IsRead           *bool   `json:"is_read"`
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	notification, err := h.notifications.Update(r.Context(), id, postgres.UpdateNotificationParams{
		Message:          data.Message,
		NotificationType: data.NotificationType,
		IsRead:           data.IsRead,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, notification)
}

func (h *NotificationHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.notifications.Delete(r.Context(), id); err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.NoContent(w)
}
