// CLAUDE:SUMMARY Primary PDF backend — ledongthuc/pdf content parsing into positioned word tokens.
package pdfdoc

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// Assembly tolerances for merging raw content-stream text items into word
// tokens. Items on the same baseline closer than wordGapX are one word.
const (
	wordGapX = 2.0
	lineTolY = 2.0
)

type ledongthucDoc struct {
	reader *lpdf.Reader
	pages  []ledongthucPage
	closed bool
}

type ledongthucPage struct {
	width  float64
	height float64
	text   string
	words  []Token
}

func openLedongthuc(raw []byte) (Document, error) {
	reader, err := lpdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("ledongthuc read: %w", err)
	}
	n := reader.NumPage()
	if n < 1 {
		return nil, ErrNoPages
	}

	doc := &ledongthucDoc{reader: reader, pages: make([]ledongthucPage, n)}
	for i := 1; i <= n; i++ {
		p, err := decodePage(reader, i)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		doc.pages[i-1] = p
	}
	return doc, nil
}

// decodePage reads one page's content eagerly. ledongthuc/pdf panics on some
// malformed content streams, so the read is fenced with a recover.
func decodePage(reader *lpdf.Reader, pageNr int) (p ledongthucPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content stream: %v", r)
		}
	}()

	page := reader.Page(pageNr)
	if page.V.IsNull() {
		return p, fmt.Errorf("null page object")
	}

	p.width, p.height = pageDims(page)

	content := page.Content()
	p.words = assembleWords(content.Text, p.height)
	p.text = linearize(p.words)
	return p, nil
}

// pageDims reads MediaBox, defaulting to US Letter when absent.
func pageDims(page lpdf.Page) (w, h float64) {
	w, h = 612, 792
	mb := page.V.Key("MediaBox")
	if mb.Kind() == lpdf.Array && mb.Len() == 4 {
		w = mb.Index(2).Float64() - mb.Index(0).Float64()
		h = mb.Index(3).Float64() - mb.Index(1).Float64()
	}
	return w, h
}

// assembleWords merges raw text items into word tokens. Items are grouped by
// baseline (PDF bottom-up Y), merged left-to-right while the horizontal gap
// stays under wordGapX, then flipped to top-left-origin coordinates.
func assembleWords(items []lpdf.Text, pageHeight float64) []Token {
	if len(items) == 0 {
		return nil
	}

	sorted := make([]lpdf.Text, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.S) == "" && it.S != " " {
			continue
		}
		sorted = append(sorted, it)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if abs(sorted[i].Y-sorted[j].Y) > lineTolY {
			return sorted[i].Y > sorted[j].Y // bottom-up Y: larger Y renders higher
		}
		return sorted[i].X < sorted[j].X
	})

	var words []Token
	var cur strings.Builder
	var curX0, curX1, curY, curSize float64
	flush := func() {
		text := strings.TrimSpace(cur.String())
		if text != "" {
			top := pageHeight - (curY + curSize)
			words = append(words, Token{
				X0:   curX0,
				Y0:   top,
				X1:   curX1,
				Y1:   top + curSize,
				Text: text,
			})
		}
		cur.Reset()
	}

	for i, it := range sorted {
		newLine := i > 0 && abs(it.Y-curY) > lineTolY
		newWord := i > 0 && !newLine && it.X-curX1 > wordGapX
		if i == 0 || newLine || newWord || it.S == " " {
			flush()
			if it.S == " " {
				curX1 = it.X + it.W
				continue
			}
			curX0, curY, curSize = it.X, it.Y, it.FontSize
		}
		cur.WriteString(it.S)
		curX1 = it.X + it.W
		if it.FontSize > curSize {
			curSize = it.FontSize
		}
	}
	flush()
	return words
}

// linearize renders tokens back to reading-order plain text, one visual line
// per output line. Tokens are already baseline-sorted by assembleWords.
func linearize(words []Token) string {
	var sb strings.Builder
	lastY := -1.0
	for i, w := range words {
		if i > 0 {
			if abs(w.Y0-lastY) > lineTolY {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(w.Text)
		lastY = w.Y0
	}
	return sb.String()
}

func (d *ledongthucDoc) PageCount() int { return len(d.pages) }

func (d *ledongthucDoc) PageText(page int) string {
	if page < 0 || page >= len(d.pages) {
		return ""
	}
	return d.pages[page].text
}

func (d *ledongthucDoc) PageWords(page int) []Token {
	if page < 0 || page >= len(d.pages) {
		return nil
	}
	return d.pages[page].words
}

func (d *ledongthucDoc) PageWidth(page int) float64 {
	if page < 0 || page >= len(d.pages) {
		return 0
	}
	return d.pages[page].width
}

func (d *ledongthucDoc) Close() error {
	// Pages are decoded eagerly; nothing is held open past construction.
	d.closed = true
	return nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
