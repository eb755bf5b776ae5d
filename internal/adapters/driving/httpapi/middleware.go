package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/custodia-labs/trawl/internal/core/ports/driving"
	"github.com/custodia-labs/trawl/internal/logger"
)

// RequestIDHeader carries the request id in and out. chi's RequestID
// middleware reads the same header by default.
const RequestIDHeader = "X-Request-Id"

// requestID hands the id chosen by middleware.RequestID to the core and
// echoes it back to the caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(driving.WithRequestID(r.Context(), id)))
	})
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.Debug("%s %s -> %d (%d bytes, %s) id=%s",
			r.Method, r.URL.RequestURI(), ww.Status(), ww.BytesWritten(),
			time.Since(start).Round(time.Millisecond), driving.RequestID(r.Context()))
	})
}

// corsPolicy lets any origin issue GET requests and read the request id.
func corsPolicy() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	})
}
