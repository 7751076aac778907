// CLAUDE:SUMMARY Header-anchored strategy — derives column x-positions from the literal column header row.
package measure

import (
	"strings"
)

// maxColumnDistance caps how far (in layout units) a data token may sit from
// its nearest column anchor before it is dropped as unassignable.
const maxColumnDistance = 40.0

// column field indexes, in canonical template order.
const (
	colNo = iota
	colSym
	colDimension
	colUpper
	colLower
	colPos
	colVendor
	colCount
)

// headerAnchorStrategy locates the printed column header row
// ("No. / Sym. / Dimension / Upper / Lower / Pos. / ...") and assigns each
// data-row token to the nearest column center.
type headerAnchorStrategy struct {
	yTol   float64
	strict bool
}

func (headerAnchorStrategy) Name() string { return "header-anchored" }

// columnForHeader maps a header caption to its field index, -1 if unknown.
func columnForHeader(text string) int {
	switch t := strings.ToLower(strings.Trim(text, ".:")); {
	case t == "no":
		return colNo
	case t == "sym" || t == "symbol":
		return colSym
	case strings.HasPrefix(t, "dimension") || t == "dim":
		return colDimension
	case t == "upper":
		return colUpper
	case t == "lower":
		return colLower
	case t == "pos" || t == "position":
		return colPos
	case strings.HasPrefix(t, "measured") || strings.HasPrefix(t, "vendor"):
		return colVendor
	}
	return -1
}

func (s headerAnchorStrategy) Extract(p PageView) []Record {
	if len(p.Words) == 0 {
		return nil
	}

	rows := groupRows(p.Words, s.yTol)

	// Find the header row: it must at least anchor No. and Dimension.
	anchors := make([]float64, colCount)
	headerIdx := -1
	for i, r := range rows {
		found := make([]bool, colCount)
		cand := make([]float64, colCount)
		for _, tok := range r.tokens {
			col := columnForHeader(tok.Text)
			if col >= 0 && !found[col] {
				found[col] = true
				cand[col] = (tok.X0 + tok.X1) / 2
			}
		}
		if found[colNo] && found[colDimension] {
			copy(anchors, cand)
			for c := range found {
				if !found[c] {
					anchors[c] = -1
				}
			}
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil
	}

	var records []Record
	for _, r := range rows[headerIdx+1:] {
		fields := make([]string, colCount)
		for _, tok := range r.tokens {
			center := (tok.X0 + tok.X1) / 2
			best, bestDist := -1, maxColumnDistance
			for c, x := range anchors {
				if x < 0 {
					continue
				}
				if d := abs(center - x); d < bestDist {
					best, bestDist = c, d
				}
			}
			if best >= 0 && fields[best] == "" {
				fields[best] = tok.Text
			}
		}

		if !isDigits(fields[colNo]) {
			continue
		}
		rec := Record{
			No:        fields[colNo],
			Sym:       fields[colSym],
			Dimension: numericOrEmpty(fields[colDimension]),
			Upper:     numericOrEmpty(fields[colUpper]),
			Lower:     numericOrEmpty(fields[colLower]),
			Pos:       fields[colPos],
			Page:      p.Index,
		}
		rec.MeasuredByVendor = numericOrEmpty(fields[colVendor])
		if s.strict && rec.MeasuredByVendor == "" {
			continue
		}
		if rec.Valid() {
			records = append(records, rec)
		}
	}
	return records
}

func numericOrEmpty(tok string) string {
	if isNumeric(tok) {
		return normalizeNumeric(tok)
	}
	return ""
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
