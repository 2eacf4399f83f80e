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
)

type paymentService interface {
	Process(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal) (models.Payment, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.Payment], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status *string) (models.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PaymentHandler struct {
	payments paymentService
	logger   logger.Logger
}

func NewPaymentRouter(payments paymentService, cfg RouterConfig) http.Handler {
	h := &PaymentHandler{payments: payments, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/payments", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}

func (h *PaymentHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		OrderID uuid.UUID       `json:"order_id" validate:"required"`
		Amount  decimal.Decimal `json:"amount"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	payment, err := h.payments.Process(r.Context(), data.OrderID, data.Amount)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSONWithStatus(w, payment, http.StatusCreated)
}

func (h *PaymentHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.payments.List(r.Context(), pageRequest(r))
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, page)
}

func (h *PaymentHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	payment, err := h.payments.GetByID(r.Context(), id)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, payment)
}

// Only the status may change after creation, amounts and the
// transaction id are immutable
func (h *PaymentHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Status *string `json:"status" validate:"omitempty,oneof=completed failed refunded"`
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	payment, err := h.payments.UpdateStatus(r.Context(), id, data.Status)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, payment)
}

func (h *PaymentHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.payments.Delete(r.Context(), id); err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.NoContent(w)
}
