package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/pema-project/pema/internal/handlers/render"
)

type errorLogger interface {
	Error(msg string, args ...any)
}

func Recovery(l errorLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					l.Error("panic recovered",
						"error", fmt.Sprintf("%v", recovered),
						"stack", string(debug.Stack()),
					)
					render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
