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

type vendorStore interface {
	Create(ctx context.Context, params postgres.CreateVendorParams) (models.Vendor, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.Vendor], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Vendor, error)
	Update(ctx context.Context, id uuid.UUID, params postgres.UpdateVendorParams) (models.Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type VendorHandler struct {
	vendors vendorStore
	logger  logger.Logger
}

func NewVendorRouter(vendors vendorStore, cfg RouterConfig) http.Handler {
	h := &VendorHandler{vendors: vendors, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/vendors", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})

	return r
}

func (h *VendorHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name          string `json:"name" validate:"required,max=200"`
		ContactPerson string `json:"contact_person" validate:"max=200"`
		Email         string `json:"email" validate:"omitempty,email"`
		Phone         string `json:"phone" validate:"max=50"`
		Address       string `json:"address" validate:"max=500"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	vendor, err := h.vendors.Create(r.Context(), postgres.CreateVendorParams{
		Name:          data.Name,
		ContactPerson: data.ContactPerson,
		Email:         data.Email,
		Phone:         data.Phone,
		Address:       data.Address,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSONWithStatus(w, vendor, http.StatusCreated)
}

func (h *VendorHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.vendors.List(r.Context(), pageRequest(r))
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, page)
}

func (h *VendorHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	vendor, err := h.vendors.GetByID(r.Context(), id)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, vendor)
}

func (h *VendorHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name          *string `json:"name" validate:"omitempty,max=200"`
		ContactPerson *string `json:"contact_person" validate:"omitempty,max=200"`
		Email         *string `json:"email" validate:"omitempty,email"`
		Phone         *string `json:"phone" validate:"omitempty,max=50"`
		Address       *string `json:"address" validate:"omitempty,max=500"`
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	vendor, err := h.vendors.Update(r.Context(), id, postgres.UpdateVendorParams{
		Name:          data.Name,
		ContactPerson: data.ContactPerson,
		Email:         data.Email,
		Phone:         data.Phone,
		Address:       data.Address,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, vendor)
}

func (h *VendorHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.vendors.Delete(r.Context(), id); err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.NoContent(w)
}
