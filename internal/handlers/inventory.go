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

type inventoryStore interface {
	Create(ctx context.Context, params postgres.CreateInventoryItemParams) (models.InventoryItem, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.InventoryItem], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.InventoryItem, error)
	Update(ctx context.Context, id uuid.UUID, params postgres.UpdateInventoryItemParams) (models.InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type InventoryHandler struct {
	inventory inventoryStore
	logger    logger.Logger
}

func NewInventoryRouter(inventory inventoryStore, cfg RouterConfig) http.Handler {
	h := &InventoryHandler{inventory: inventory, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/inventory", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}

func (h *InventoryHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		ProductID uuid.UUID `json:"product_id" validate:"required"`
		Quantity  int32     `json:"quantity" validate:"min=0"`
		Location  string    `json:"location" validate:"required,max=200"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	item, err := h.inventory.Create(r.Context(), postgres.CreateInventoryItemParams{
		ProductID: data.ProductID,
		Quantity:  data.Quantity,
		Location:  data.Location,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSONWithStatus(w, item, http.StatusCreated)
}

func (h *InventoryHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.inventory.List(r.Context(), pageRequest(r))
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, page)
}

func (h *InventoryHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	item, err := h.inventory.GetByID(r.Context(), id)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, item)
}

func (h *InventoryHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Quantity *int32  `json:"quantity" validate:"omitempty,min=0"`
		Location *string `json:"location" validate:"omitempty,max=200"`
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	item, err := h.inventory.Update(r.Context(), id, postgres.UpdateInventoryItemParams{
		Quantity: data.Quantity,
		Location: data.Location,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, item)
}

func (h *InventoryHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.inventory.Delete(r.Context(), id); err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.NoContent(w)
}
