// CLAUDE:SUMMARY HTTP security middleware stack for the extraction API — headers, body caps, tracing, rate limits.
// Package shield provides reusable HTTP security middleware for the
// extraction service. It consolidates security headers, upload size limits,
// request tracing and rate limiting into a single importable package.
//
// Usage:
//
//	r := chi.NewRouter()
//	r.Use(shield.SecurityHeaders(shield.DefaultHeaders()))
//	r.Use(shield.MaxUploadBody(64 << 20))
//	r.Use(shield.TraceID)
//	r.Use(shield.NewRateLimiter(db, "/health").Middleware)
//
// Or apply the default API stack in one call; the returned limiter needs
// its reloader started so rule changes and bucket GC happen after boot:
//
//	mws, rl := shield.DefaultAPIStack(db, 64<<20)
//	for _, mw := range mws {
//	    r.Use(mw)
//	}
//	rl.StartReloader(ctx.Done())
package shield

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
)

type contextKey string

// LoggerKey is the context key for the per-request structured logger.
const LoggerKey contextKey = "shield_logger"

// GetLogger retrieves the per-request logger from the context.
// Returns slog.Default() if no logger was set.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(LoggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// DefaultAPIStack returns the standard middleware stack for the extraction
// API plus the rate limiter it wires in, so the caller can start its
// reloader. Middleware is ordered: SecurityHeaders → MaxUploadBody →
// TraceID → RateLimiter. Health checks (/health) bypass rate limiting.
func DefaultAPIStack(db *sql.DB, maxUpload int64) ([]func(http.Handler) http.Handler, *RateLimiter) {
	rl := NewRateLimiter(db, "/health")
	return []func(http.Handler) http.Handler{
		SecurityHeaders(DefaultHeaders()),
		MaxUploadBody(maxUpload),
		TraceID,
		rl.Middleware,
	}, rl
}
