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

type productStore interface {
	Create(ctx context.Context, params postgres.CreateProductParams) (models.Product, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.Product], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Product, error)
	Update(ctx context.Context, id uuid.UUID, params postgres.UpdateProductParams) (models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductHandler struct {
	products productStore
	logger   logger.Logger
}

func NewProductRouter(products productStore, cfg RouterConfig) http.Handler {
	h := &ProductHandler{products: products, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}

func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name        string          `json:"name" validate:"required,max=200"`
		Description *string         `json:"description"`
		Price       decimal.Decimal `json:"price"`
		Stock       int32           `json:"stock" validate:"min=0"`
		Category    string          `json:"category"`
		VendorID    *uuid.UUID      `json:"vendor_id"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	product, err := h.products.Create(r.Context(), postgres.CreateProductParams{
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Stock:       data.Stock,
		Category:    data.Category,
		VendorID:    data.VendorID,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSONWithStatus(w, product, http.StatusCreated)
}

func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.products.List(r.Context(), pageRequest(r))
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, page)
}

func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, product)
}

func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name        *string          `json:"name" validate:"omitempty,max=200"`
		Description *string          `json:"description"`
		Price       *decimal.Decimal `json:"price"`
		Stock       *int32           `json:"stock" validate:"omitempty,min=0"`
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	product, err := h.products.Update(r.Context(), id, postgres.UpdateProductParams{
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		Stock:       data.Stock,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, product)
}

func (h *ProductHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.NoContent(w)
}
