package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
)

type contextKey string

const requestIDKey contextKey = "requestId"

// RequestIDFromContext returns the request id injected by the middleware,
// empty when absent.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type MiddlewareProvider struct {
	logger primary.Logger
}

func NewMiddlewareProvider(logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{logger: logger}
}

// RequestID tags every request with a unique id, echoed in the X-Request-Id
// response header and available via RequestIDFromContext.
func (m *MiddlewareProvider) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// AccessLog logs method, path, status and duration of every request.
func (m *MiddlewareProvider) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.logger.Info("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"durationMs", time.Since(start).Milliseconds(),
			"requestId", RequestIDFromContext(r.Context()))
	})
}
