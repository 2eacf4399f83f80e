package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/handlers/middleware"
	"github.com/pema-project/pema/internal/handlers/render"
	"github.com/pema-project/pema/internal/handlers/userctx"
	"github.com/pema-project/pema/internal/logger"
	"github.com/pema-project/pema/internal/models"
	usersvc "github.com/pema-project/pema/internal/service/user"
)

type userService interface {
	Create(ctx context.Context, username string, email string, password string) (models.User, error)
	Authenticate(ctx context.Context, username string, password string) (models.User, error)
	List(ctx context.Context, req models.PageRequest) (models.Page[models.User], error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	Update(ctx context.Context, id uuid.UUID, params usersvc.UpdateParams) (models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserHandler struct {
	users  userService
	tokens tokenManager
	logger logger.Logger
}

func NewUserRouter(users userService, tokens tokenManager, cfg RouterConfig) http.Handler {
	h := &UserHandler{users: users, tokens: tokens, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))

		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(5, 10))
			r.Post("/login", h.login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens, users))
			r.Get("/me", h.me)
		})
	})

	return r
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username" validate:"required,min=2,max=50"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	user, err := h.users.Create(r.Context(), data.Username, data.Email, data.Password)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSONWithStatus(w, user, http.StatusCreated)
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.List(r.Context(), pageRequest(r))
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, page)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, user)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username *string `json:"username" validate:"omitempty,min=2,max=50"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Password *string `json:"password" validate:"omitempty,min=8"`
	}

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	user, err := h.users.Update(r.Context(), id, usersvc.UpdateParams{
		Username: data.Username,
		Email:    data.Email,
		Password: data.Password,
	})
	if err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.JSON(w, user)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		renderStoreError(h.logger, w, err)
		return
	}

	render.NoContent(w)
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Token string `json:"token"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	user, err := h.users.Authenticate(r.Context(), data.Username, data.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			render.ServiceError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		renderStoreError(h.logger, w, err)
		return
	}

	issued, err := h.tokens.Generate(user.ID.String())
	if err != nil {
		h.logger.Error("token signing failed", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSON(w, response{Token: issued.Value})
}

func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSON(w, user)
}
