// CLAUDE:SUMMARY Plain-text regex strategy — line-oriented fallback when no positional data is usable.
package measure

import (
	"regexp"
	"strings"
)

// measurementLineRe matches one rendered table row in linearized page text:
// ordinal, optional symbol, dimension with tolerances, optional position
// word, optional trailing vendor value.
var measurementLineRe = regexp.MustCompile(
	`^(\d+)\s+(Ø|ø|⌀|Φ|φ|BURR|[A-Za-z]{1,3})?\s*` + // no, optional sym
		`([+-]?\d[\d.,]*)\s+` + // dimension
		`([+-]\d[\d.,]*)\s+` + // upper
		`([+-]\d[\d.,]*)` + // lower
		`(?:\s+([A-Za-z][A-Za-z0-9-]*))?` + // optional pos
		`(?:\s+(\d[\d.,]*))?\s*$`, // optional measured value
)

// headerCaptions mark caption lines that must never be parsed as data.
var headerCaptions = []string{"NO.", "SYM.", "DIMENSION", "UPPER", "LOWER", "POS."}

// textRegexStrategy parses the page's linearized text line by line. It is
// the fallback for documents decoded without positional data.
type textRegexStrategy struct {
	strict bool
}

func (textRegexStrategy) Name() string { return "plain-text" }

func (s textRegexStrategy) Extract(p PageView) []Record {
	if p.Text == "" {
		return nil
	}

	var records []Record
	for _, line := range strings.Split(p.Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isCaptionLine(line) {
			continue
		}
		m := measurementLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rec := Record{
			No:               m[1],
			Sym:              m[2],
			Dimension:        normalizeNumeric(m[3]),
			Upper:            normalizeNumeric(m[4]),
			Lower:            normalizeNumeric(m[5]),
			Pos:              m[6],
			MeasuredByVendor: normalizeNumeric(m[7]),
			Page:             p.Index,
		}
		if s.strict && rec.MeasuredByVendor == "" {
			continue
		}
		if rec.Valid() {
			records = append(records, rec)
		}
	}
	return records
}

func isCaptionLine(line string) bool {
	upper := strings.ToUpper(line)
	for _, c := range headerCaptions {
		if strings.Contains(upper, c) {
			return true
		}
	}
	return false
}
