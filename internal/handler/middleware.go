package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/boddenberg/fluxo-caixa-go/internal/infra/observability"
)

// requestStatusMiddleware counts API responses as success (< 400) or error.
func requestStatusMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() >= http.StatusBadRequest {
				metrics.IncrRequest("error")
				return
			}
			metrics.IncrRequest("success")
		})
	}
}
