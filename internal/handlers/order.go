package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pema-project/pema/internal/handlers/render"
	"github.com/pema-project/pema/internal/logger"
	"github.com/pema-project/pema/internal/models"
	"github.com/pema-project/pema/internal/repository/postgres"
)

type orderStore interface {
	Create(ctx context.Context, params postgres.CreateOrderParams) (models.Order, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.Order], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Order, error)
	Update(ctx context.Context, id uuid.UUID, params postgres.UpdateOrderParams) (models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderHandler struct {
	orders orderStore
	logger logger.Logger
}

func NewOrderRouter(orders orderStore, cfg RouterConfig) http.Handler {
	h := &OrderHandler{orders: orders, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}

func (h *OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		UserID      uuid.UUID       `json:"user_id" validate:"required"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	order, err := h.orders.Create(r.Context(), postgres.CreateOrderParams{
		UserID:      data.UserID,
		TotalAmount: data.TotalAmount,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSONWithStatus(w, order, http.StatusCreated)
}

func (h *OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.orders.List(r.Context(), pageRequest(r))
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, page)
}

func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, order)
}

func (h *OrderHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Status      *string          `json:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
		TotalAmount *decimal.Decimal `json:"total_amount"`
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	order, err := h.orders.Update(r.Context(), id, postgres.UpdateOrderParams{
		Status:      data.Status,
		TotalAmount: data.TotalAmount,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, order)
}

func (h *OrderHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.NoContent(w)
}
