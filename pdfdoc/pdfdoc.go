// CLAUDE:SUMMARY Document decoding contract for cavex — page count, page text, positioned tokens, page width.
// Package pdfdoc decodes inspection-report PDFs into the page primitives the
// measurement pipeline consumes: per-page plain text, per-page positioned
// word tokens, and page geometry.
//
// Two backends are available:
//   - ledongthuc/pdf — primary; yields positioned tokens for layout-aware
//     extraction strategies.
//   - pdfcpu — fallback; content-stream text only (no positions), used when
//     the primary backend cannot parse the file.
//
// Open tries them in that order. All backends decode from an in-memory byte
// buffer; nothing is written to disk.
package pdfdoc

import (
	"errors"
	"fmt"
)

// Token is one unit of text on a page with its bounding position.
// Coordinates are top-left origin: Y0 grows downward so that ascending Y0
// matches reading order.
type Token struct {
	X0   float64
	Y0   float64
	X1   float64
	Y1   float64
	Text string
}

// Document is the decoding handle consumed by the extraction core.
// Page indexes are 0-based. Close is idempotent.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageText returns the linearized reading-order text of a page.
	PageText(page int) string

	// PageWords returns the positioned tokens of a page. Token order is not
	// guaranteed meaningful; callers re-sort. Backends without positional
	// data return nil.
	PageWords(page int) []Token

	// PageWidth returns the page width in layout units (0 if unknown).
	PageWidth(page int) float64

	// Close releases decoder resources. Safe to call more than once.
	Close() error
}

// ErrNoPages is returned when a document decodes but contains no pages.
var ErrNoPages = errors.New("pdfdoc: document has no pages")

// Open decodes raw PDF bytes, preferring the positioned-token backend and
// falling back to the text-only backend.
func Open(raw []byte) (Document, error) {
	doc, lerr := openLedongthuc(raw)
	if lerr == nil {
		return doc, nil
	}
	doc, perr := openPdfcpu(raw)
	if perr == nil {
		return doc, nil
	}
	return nil, fmt.Errorf("pdfdoc: decode failed (ledongthuc: %v; pdfcpu: %w)", lerr, perr)
}
