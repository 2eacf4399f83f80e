package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/handlers/middleware"
	"github.com/pema-project/pema/internal/handlers/render"
	"github.com/pema-project/pema/internal/logger"
	"github.com/pema-project/pema/internal/models"
)

// RouterConfig carries the cross-cutting knobs every service router shares.
type RouterConfig struct {
	ServiceName    string
	Logger         logger.Logger
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// newBase builds a chi router with the common middleware chain applied.
func newBase(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	return r
}

func handleHealth(serviceName string) http.HandlerFunc {
	type response struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, response{Status: "healthy", Service: serviceName})
	}
}

// pageRequest reads ?page= and ?limit= query params. Anything that does
// not parse falls back to defaults, out-of-range values are clamped.
func pageRequest(r *http.Request) models.PageRequest {
	req := models.PageRequest{}

	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		req.Limit = limit
	}

	return req.Normalize()
}

// idParam parses the {id} path segment. Writes a 400 response and
// returns false when it is not a valid uuid.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.ServiceError(w, "Invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// renderStoreError maps storage errors to HTTP responses
func renderStoreError(l logger.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		render.ServiceError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		render.ServiceError(w, "Already exists", http.StatusConflict)
	default:
		l.Error("storage error", "error", err)
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
	}
}
