// CLAUDE:SUMMARY Strategy chain — ordered pure extraction strategies, first non-empty result wins per page.
package measure

import (
	"context"

	"github.com/hazyhaar/cavex/pdfdoc"
)

// PageView is the read-only slice of one page handed to strategies. Token
// data is borrowed from the decoder and never retained past the page.
type PageView struct {
	Index int
	Text  string
	Words []pdfdoc.Token
	Width float64
}

// Strategy turns one page into measurement records. Implementations are
// pure: same page in, same records out, no shared state.
type Strategy interface {
	Name() string
	Extract(p PageView) []Record
}

// chain runs strategies in preference order against one page, accepting the
// first strategy that yields at least one record. A page for which every
// strategy comes up empty contributes zero records; that is not an error.
func (e *Extractor) runChain(ctx context.Context, doc string, p PageView) []Record {
	for _, s := range e.strategies {
		recs := s.Extract(p)
		if len(recs) > 0 {
			e.observer.Observe(ctx, Event{
				Kind: "strategy_hit", Document: doc, Page: p.Index,
				Strategy: s.Name(), Records: len(recs),
			})
			return recs
		}
		e.observer.Observe(ctx, Event{
			Kind: "strategy_miss", Document: doc, Page: p.Index, Strategy: s.Name(),
		})
	}
	e.observer.Observe(ctx, Event{Kind: "page_empty", Document: doc, Page: p.Index})
	return nil
}
