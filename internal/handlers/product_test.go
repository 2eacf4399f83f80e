package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pema-project/pema/internal/apperrors"
	"github.com/pema-project/pema/internal/models"
	"github.com/pema-project/pema/internal/repository/postgres"
)

// stubProductStore records calls and plays back canned results
type stubProductStore struct {
	product models.Product
	page    models.Page[models.Product]
	err     error

	gotPageReq      models.PageRequest
	gotUpdateParams postgres.UpdateProductParams
}

func (s *stubProductStore) Create(_ context.Context, _ postgres.CreateProductParams) (models.Product, error) {
	return s.product, s.err
}

func (s *stubProductStore) List(_ context.Context, req models.PageRequest) (models.Page[models.Product], error) {
	s.gotPageReq = req
	return s.page, s.err
}

func (s *stubProductStore) GetByID(_ context.Context, _ uuid.UUID) (models.Product, error) {
	return s.product, s.err
}

func (s *stubProductStore) Update(_ context.Context, _ uuid.UUID, params postgres.UpdateProductParams) (models.Product, error) {
	s.gotUpdateParams = params
	return s.product, s.err
}

func (s *stubProductStore) Delete(_ context.Context, _ uuid.UUID) error {
	return s.err
}

func TestProductRouter(t *testing.T) {
	t.Parallel()

	product := models.Product{
		ID:        uuid.New(),
		Name:      "Widget",
		Price:     decimal.NewFromFloat(9.99),
		Stock:     3,
		Category:  "general",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	newServer := func(t *testing.T, store *stubProductStore) *httptest.Server {
		srv := httptest.NewServer(NewProductRouter(store, testRouterConfig()))
		t.Cleanup(srv.Close)
		return srv
	}

	do := func(t *testing.T, method, url, body string) *http.Response {
		var req *http.Request
		var err error
		if body != "" {
			req, err = http.NewRequest(method, url, strings.NewReader(body))
		} else {
			req, err = http.NewRequest(method, url, nil)
		}
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() }) //nolint:errcheck
		return resp
	}

	t.Run("create returns 201 with record", func(t *testing.T) {
		srv := newServer(t, &stubProductStore{product: product})

		resp := do(t, "POST", srv.URL+"/api/products/", `{"name": "Widget", "price": 9.99, "stock": 3}`)

		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var got models.Product
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, product.ID, got.ID)
		assert.Equal(t, "Widget", got.Name)
	})

	t.Run("create without name is 400", func(t *testing.T) {
		srv := newServer(t, &stubProductStore{product: product})

		resp := do(t, "POST", srv.URL+"/api/products/", `{"price": 9.99}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("create with broken json is 400", func(t *testing.T) {
		srv := newServer(t, &stubProductStore{product: product})

		resp := do(t, "POST", srv.URL+"/api/products/", `{broken`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("list passes normalized paging and returns envelope", func(t *testing.T) {
		store := &stubProductStore{
			page: models.NewPage([]models.Product{product}, 1, models.PageRequest{Page: 1, Limit: 10}),
		}
		srv := newServer(t, store)

		resp := do(t, "GET", srv.URL+"/api/products/?page=0&limit=400", "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, store.gotPageReq.Page, "page below 1 should fall back to default")
		assert.Equal(t, models.MaxLimit, store.gotPageReq.Limit, "limit should be clamped")

		var got struct {
			Items       []models.Product `json:"items"`
			TotalItems  int64            `json:"total_items"`
			CurrentPage int              `json:"current_page"`
			TotalPages  int              `json:"total_pages"`
			Limit       int              `json:"limit"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Len(t, got.Items, 1)
		assert.Equal(t, int64(1), got.TotalItems)
		assert.Equal(t, 1, got.TotalPages)
	})

	t.Run("get unknown id is 404", func(t *testing.T) {
		srv := newServer(t, &stubProductStore{err: apperrors.ErrNotFound})

		resp := do(t, "GET", srv.URL+"/api/products/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("get with malformed id is 400", func(t *testing.T) {
		srv := newServer(t, &stubProductStore{product: product})

		resp := do(t, "GET", srv.URL+"/api/products/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("update forwards only supplied fields", func(t *testing.T) {
		store := &stubProductStore{product: product}
		srv := newServer(t, store)

		resp := do(t, "PUT", srv.URL+"/api/products/"+product.ID.String(), `{"price": 19.99}`)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NotNil(t, store.gotUpdateParams.Price)
		assert.True(t, store.gotUpdateParams.Price.Equal(decimal.NewFromFloat(19.99)))
		assert.Nil(t, store.gotUpdateParams.Name, "omitted field must stay nil")
		assert.Nil(t, store.gotUpdateParams.Stock, "omitted field must stay nil")
	})

	t.Run("delete is 204 with empty body", func(t *testing.T) {
		srv := newServer(t, &stubProductStore{})

		resp := do(t, "DELETE", srv.URL+"/api/products/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("storage failure is 500", func(t *testing.T) {
		srv := newServer(t, &stubProductStore{err: assert.AnError})

		resp := do(t, "GET", srv.URL+"/api/products/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
