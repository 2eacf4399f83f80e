package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("requests within burst pass", func(t *testing.T) {
		handler := RateLimit(1, 5)(nextHandler)

		for i := 0; i < 5; i++ {
			req := httptest.NewRequest("POST", "/login", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equalf(t, http.StatusOK, rec.Code, "request %d should pass", i)
		}
	})

	t.Run("request over burst is limited", func(t *testing.T) {
		handler := RateLimit(1, 1)(nextHandler)

		req := httptest.NewRequest("POST", "/login", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		// Burst of 1 is spent, the immediate second request must be rejected
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("limits are tracked per ip", func(t *testing.T) {
		handler := RateLimit(1, 1)(nextHandler)

		first := httptest.NewRequest("POST", "/login", nil)
		first.RemoteAddr = "10.0.0.3:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, first)
		assert.Equal(t, http.StatusOK, rec.Code)

		other := httptest.NewRequest("POST", "/login", nil)
		other.RemoteAddr = "10.0.0.4:1234"
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, other)
		assert.Equal(t, http.StatusOK, rec.Code, "different ip has its own bucket")
	})
}
