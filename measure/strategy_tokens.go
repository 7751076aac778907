// CLAUDE:SUMMARY Token-position strategy — grouper + classifier + assigner, with left/right vendor-table merge.
package measure

import (
	"github.com/hazyhaar/cavex/pdfdoc"
)

// DefaultYTolerance is the vertical bucket size for row grouping, in layout
// units. Working templates sit between 2 and 10: too small splits one visual
// row into two buckets, too large merges neighbouring rows.
const DefaultYTolerance = 5.0

// tokenStrategy reconstructs the table from positioned tokens. When the page
// carries a separate vendor-measured sub-table on its right half, vendor
// values are merged into the main records by matching ordinal.
type tokenStrategy struct {
	yTol   float64
	strict bool
}

func (tokenStrategy) Name() string { return "token-position" }

func (s tokenStrategy) Extract(p PageView) []Record {
	if len(p.Words) == 0 {
		return nil
	}

	records := recordsFromTokens(p.Words, p.Index, s.yTol, s.strict)

	// Main table confined to the left half with a vendor column alongside:
	// retry on the left tokens alone, then merge right-half vendor values.
	if len(records) == 0 && p.Width > 0 {
		left, _ := splitAtMidpoint(p.Words, p.Width)
		records = recordsFromTokens(left, p.Index, s.yTol, s.strict)
	}
	if len(records) > 0 && p.Width > 0 {
		_, right := splitAtMidpoint(p.Words, p.Width)
		mergeVendorValues(records, vendorPairs(right, s.yTol))
	}
	return records
}

func recordsFromTokens(tokens []pdfdoc.Token, page int, yTol float64, strict bool) []Record {
	var records []Record
	for _, r := range groupRows(tokens, yTol) {
		for _, candidate := range classifyRow(r.texts()) {
			if rec, ok := assignFields(candidate, page, strict); ok {
				records = append(records, rec)
			}
		}
	}
	return records
}

func splitAtMidpoint(tokens []pdfdoc.Token, width float64) (left, right []pdfdoc.Token) {
	mid := width / 2
	for _, t := range tokens {
		if t.X0 < mid {
			left = append(left, t)
		} else {
			right = append(right, t)
		}
	}
	return left, right
}

// vendorPairs reads a vendor sub-table as (ordinal, value) rows: the first
// digit-only token keys the row, the last numeric token is the measurement.
func vendorPairs(tokens []pdfdoc.Token, yTol float64) map[string]string {
	pairs := make(map[string]string)
	for _, r := range groupRows(tokens, yTol) {
		texts := r.texts()
		if len(texts) < 2 || !isDigits(texts[0]) {
			continue
		}
		for i := len(texts) - 1; i >= 1; i-- {
			if isNumeric(texts[i]) && !isDigits(texts[i]) {
				if _, seen := pairs[texts[0]]; !seen {
					pairs[texts[0]] = normalizeNumeric(texts[i])
				}
				break
			}
		}
	}
	return pairs
}

// mergeVendorValues fills empty vendor fields from the sub-table. A value
// already assigned by the field assigner is never overwritten.
func mergeVendorValues(records []Record, pairs map[string]string) {
	if len(pairs) == 0 {
		return
	}
	for i := range records {
		if records[i].MeasuredByVendor != "" {
			continue
		}
		if v, ok := pairs[records[i].No]; ok {
			records[i].MeasuredByVendor = v
		}
	}
}
