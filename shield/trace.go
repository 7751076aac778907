// CLAUDE:SUMMARY Per-request trace and request IDs plus request-scoped structured loggers.
package shield

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/cavex/idgen"
	"github.com/hazyhaar/cavex/kit"
)

var requestIDs = idgen.Prefixed("req_", idgen.Default)

// TraceID generates a random trace ID and a request ID for each request and
// injects them into the context, response headers, and a per-request
// structured logger. The IDs are stored under kit.TraceIDKey and
// kit.RequestIDKey and the logger under LoggerKey.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := make([]byte, 4)
		rand.Read(id)
		traceID := hex.EncodeToString(id)
		reqID := requestIDs()

		ctx := kit.WithTraceID(r.Context(), traceID)
		ctx = kit.WithRequestID(ctx, reqID)
		w.Header().Set("X-Trace-ID", traceID)
		w.Header().Set("X-Request-ID", reqID)

		logger := slog.Default().With(
			"trace_id", traceID,
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		ctx = context.WithValue(ctx, LoggerKey, logger)
		logger.Info("request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
