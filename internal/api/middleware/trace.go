// Package middleware holds the HTTP middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/cake-api/internal/api/shared"
	"github.com/phrazzld/cake-api/internal/platform/logger"
)

// maxTraceIDLength caps trace IDs accepted from clients.
const maxTraceIDLength = 128

// NewTraceMiddleware returns middleware that attaches a trace ID and a
// request-scoped logger to the request context. A trace ID sent by the client
// in X-Trace-ID is reused; otherwise a new one is generated. The ID is echoed
// back in the response header.
// This middleware should be applied early in the middleware chain to ensure
// that all subsequent handlers have access to the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(shared.TraceIDHeader)
			if len(traceID) > maxTraceIDLength {
				traceID = ""
			}

			ctx := shared.WithTraceID(r.Context(), traceID)
			traceID = shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
