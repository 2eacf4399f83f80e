package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pema-project/pema/internal/handlers/render"
	"github.com/pema-project/pema/internal/logger"
	"github.com/pema-project/pema/internal/models"
)

type tokenManager interface {
	Generate(subject string) (models.IssuedToken, error)
	Validate(tokenString string) (models.Claims, error)
}

type TokenHandler struct {
	tokens tokenManager
	logger logger.Logger
}

// NewTokenRouter serves token issue and validate endpoints.
// Stateless: nothing is persisted, validity is proven by the
// signature and expiry alone.
func NewTokenRouter(tokens tokenManager, cfg RouterConfig) http.Handler {
	h := &TokenHandler{tokens: tokens, logger: cfg.Logger}

	r := newBase(cfg)
	r.Route("/api/token", func(r chi.Router) {
		r.Get("/health", handleHealth(cfg.ServiceName))
		r.Post("/generate", h.generate)
		r.Post("/validate", h.validate)
	})

	return r
}

func (h *TokenHandler) generate(w http.ResponseWriter, r *http.Request) {
	type request struct {
		UserID string `json:"user_id" validate:"required,uuid"`
	}
	type response struct {
		Token string `json:"token"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	issued, err := h.tokens.Generate(data.UserID)
	if err != nil {
		h.logger.Error("token signing failed", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSON(w, response{Token: issued.Value})
}

func (h *TokenHandler) validate(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Token string `json:"token" validate:"required"`
	}

	data, err := render.BindAndValidate[request](w, r)
	if err != nil {
		return
	}

	claims, err := h.tokens.Validate(data.Token)
	if err != nil {
		// Expired, tampered and malformed all collapse into 401,
		// the exact reason stays in the logs
		h.logger.Info("token rejected", "error", err)
		render.ServiceError(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	render.JSON(w, claims)
}
