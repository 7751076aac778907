// CLAUDE:SUMMARY Extraction event recorder and retention cleanup for the observability tables.
package observability

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/cavex/idgen"
)

// ExtractionEvent records the outcome of processing one document.
type ExtractionEvent struct {
	CavityID     string
	Filename     string
	Pages        int
	Records      int
	Success      bool
	ErrorMessage string
	Duration     time.Duration
}

// EventRecorder writes extraction events and manages retention cleanup.
type EventRecorder struct {
	db    *sql.DB
	newID idgen.Generator
}

// EventRecorderOption configures an EventRecorder.
type EventRecorderOption func(*EventRecorder)

// WithEventIDGenerator sets a custom ID generator for event IDs.
func WithEventIDGenerator(gen idgen.Generator) EventRecorderOption {
	return func(r *EventRecorder) { r.newID = gen }
}

// NewEventRecorder creates a recorder backed by the given database.
func NewEventRecorder(db *sql.DB, opts ...EventRecorderOption) *EventRecorder {
	r := &EventRecorder{
		db:    db,
		newID: idgen.Prefixed("evt_", idgen.Default),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Record persists an extraction event. Errors are logged via slog but do
// not propagate, so a failing observability store never blocks extraction.
func (r *EventRecorder) Record(ctx context.Context, ev ExtractionEvent) {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO extraction_events (
			event_id, cavity_id, filename, pages, records,
			success, error_message, duration_ms, created_at
		) VALUES (?,?,?,?,?,?,?,?,?)`,
		r.newID(), ev.CavityID, ev.Filename, ev.Pages, ev.Records,
		ev.Success, ev.ErrorMessage, ev.Duration.Milliseconds(), time.Now().Unix())
	if err != nil {
		slog.Error("extraction event log failed", "error", err, "cavity_id", ev.CavityID)
	}
}

// RetentionConfig specifies per-table retention in days. Zero means no cleanup.
type RetentionConfig struct {
	HTTPLogsDays   int
	EventsDays     int
	HeartbeatsDays int
	RunVacuumAfter bool
}

// Cleanup deletes records exceeding the retention thresholds.
func Cleanup(ctx context.Context, db *sql.DB, cfg RetentionConfig) error {
	now := time.Now().Unix()

	type target struct {
		table  string
		column string
		days   int
	}
	targets := []target{
		{"http_request_logs", "created_at", cfg.HTTPLogsDays},
		{"extraction_events", "created_at", cfg.EventsDays},
		{"worker_heartbeats", "timestamp", cfg.HeartbeatsDays},
	}

	for _, t := range targets {
		if t.days <= 0 {
			continue
		}
		cutoff := now - int64(t.days*86400)
		q := fmt.Sprintf("DELETE FROM %s WHERE %s < ?", t.table, t.column)
		if _, err := db.ExecContext(ctx, q, cutoff); err != nil {
			return fmt.Errorf("cleanup %s: %w", t.table, err)
		}
	}

	if cfg.RunVacuumAfter {
		if _, err := db.ExecContext(ctx, "VACUUM"); err != nil {
			return fmt.Errorf("vacuum: %w", err)
		}
	}
	return nil
}
