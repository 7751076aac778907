// CLAUDE:SUMMARY Injected observability hook — the extraction core emits diagnostic events, never prints.
package measure

import (
	"context"
	"log/slog"

	"github.com/hazyhaar/cavex/kit"
)

// Event is one diagnostic emission from the extraction core.
type Event struct {
	Kind     string // "strategy_hit", "strategy_miss", "page_empty", "document_done"
	Document string // cavity_id or filename
	Page     int
	Strategy string
	Records  int
}

// Observer receives diagnostic events. Implementations must be cheap and
// must never fail the pipeline.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// NopObserver discards all events.
type NopObserver struct{}

func (NopObserver) Observe(context.Context, Event) {}

// SlogObserver forwards events to a structured logger at debug level, with
// document completions at info.
type SlogObserver struct {
	Logger *slog.Logger
}

func (o SlogObserver) Observe(ctx context.Context, ev Event) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{
		"document", ev.Document,
		"page", ev.Page,
		"strategy", ev.Strategy,
		"records", ev.Records,
		"transport", kit.GetTransport(ctx),
	}
	if ev.Kind == "document_done" {
		logger.InfoContext(ctx, "extraction "+ev.Kind, attrs...)
		return
	}
	logger.DebugContext(ctx, "extraction "+ev.Kind, attrs...)
}
