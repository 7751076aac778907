// CLAUDE:SUMMARY Per-document extraction pipeline — strategy chain over pages, dedup/sort, header join.
package measure

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hazyhaar/cavex/pdfdoc"
)

// Config configures the extraction pipeline.
type Config struct {
	// YTolerance is the row grouper's vertical bucket size in layout units
	// (default 5.0; working templates sit between 2 and 10).
	YTolerance float64 `json:"y_tolerance" yaml:"y_tolerance"`

	// Strict makes every strategy require a vendor-measured value; rows
	// without one are dropped instead of emitted as partial records.
	Strict bool `json:"strict" yaml:"strict"`

	// Grid is the fixed-coordinate template for the last-resort strategy.
	Grid GridTemplate `json:"grid" yaml:"grid"`

	// MaxFileSize caps accepted uploads (default 32 MB). Oversize inputs
	// are rejected before decoding.
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// Logger for pipeline diagnostics.
	Logger *slog.Logger `json:"-" yaml:"-"`

	// Observer receives extraction events; defaults to logging through
	// Logger.
	Observer Observer `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.YTolerance <= 0 {
		c.YTolerance = DefaultYTolerance
	}
	if c.Grid.RowPitch <= 0 {
		c.Grid = DefaultGridTemplate()
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 32 * 1024 * 1024
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Observer == nil {
		c.Observer = SlogObserver{Logger: c.Logger}
	}
}

// Extractor is the measurement extraction engine. It is stateless across
// documents and safe for concurrent use.
type Extractor struct {
	cfg        Config
	observer   Observer
	strategies []Strategy
}

// New creates an Extractor with the given configuration.
func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{
		cfg:      cfg,
		observer: cfg.Observer,
		strategies: []Strategy{
			tokenStrategy{yTol: cfg.YTolerance, strict: cfg.Strict},
			headerAnchorStrategy{yTol: cfg.YTolerance, strict: cfg.Strict},
			textRegexStrategy{strict: cfg.Strict},
			gridStrategy{tpl: cfg.Grid, strict: cfg.Strict},
		},
	}
}

// MaxFileSize exposes the configured input cap for the transport layer.
func (e *Extractor) MaxFileSize() int64 { return e.cfg.MaxFileSize }

// cavityIDRe matches the cavity designator embedded in report filenames.
var cavityIDRe = regexp.MustCompile(`(?i)(CAV-\d+)`)

// CavityID derives the cavity identifier from a filename: the CAV-<digits>
// pattern when present, otherwise the filename without extension.
func CavityID(filename string) string {
	base := filepath.Base(filename)
	if m := cavityIDRe.FindString(base); m != "" {
		return strings.ToUpper(m)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExtractMeasurements runs the strategy chain over every page of an open
// document and returns the deduplicated, ordered measurement table. Pages
// are processed strictly in order; per-page failures contribute zero
// records and never abort the document.
func (e *Extractor) ExtractMeasurements(ctx context.Context, doc pdfdoc.Document, name string) []Record {
	var all []Record
	for page := 0; page < doc.PageCount(); page++ {
		view := PageView{
			Index: page,
			Text:  doc.PageText(page),
			Words: doc.PageWords(page),
			Width: doc.PageWidth(page),
		}
		all = append(all, e.runChain(ctx, name, view)...)
	}
	return dedupSort(all)
}

// ProcessDocument decodes raw PDF bytes and assembles the per-document
// result: cavity ID from the filename, header block from the first page,
// and the reconstructed measurement table from all pages.
func (e *Extractor) ProcessDocument(ctx context.Context, raw []byte, filename string) (*DocumentResult, error) {
	if int64(len(raw)) > e.cfg.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, len(raw), e.cfg.MaxFileSize)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		return nil, fmt.Errorf("%s: %w", filename, ErrNotPDF)
	}

	doc, err := pdfdoc.Open(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filename, err)
	}
	defer doc.Close()

	cavityID := CavityID(filename)
	result := &DocumentResult{
		CavityID:     cavityID,
		HeaderInfo:   ExtractHeader(doc.PageText(0)),
		Measurements: e.ExtractMeasurements(ctx, doc, cavityID),
		Pages:        doc.PageCount(),
	}
	if result.Measurements == nil {
		result.Measurements = []Record{}
	}

	e.observer.Observe(ctx, Event{
		Kind:     "document_done",
		Document: cavityID,
		Records:  len(result.Measurements),
	})
	return result, nil
}
