// CLAUDE:SUMMARY Middleware that records every HTTP request into http_request_logs.
package observability

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/hazyhaar/cavex/kit"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLog returns middleware that records method, path, status, duration
// and the trace/request IDs set upstream for every request into the
// http_request_logs table. Insert failures are logged and otherwise ignored.
func RequestLog(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			_, err := db.Exec(`
				INSERT INTO http_request_logs (method, path, status_code, duration_ms, ip_address, user_agent, trace_id, request_id, created_at)
				VALUES (?,?,?,?,?,?,?,?,?)`,
				r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds(),
				r.RemoteAddr, r.UserAgent(),
				kit.GetTraceID(r.Context()), kit.GetRequestID(r.Context()),
				time.Now().Unix())
			if err != nil {
				slog.Warn("http request log failed", "error", err, "path", r.URL.Path)
			}
		})
	}
}
