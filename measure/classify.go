// CLAUDE:SUMMARY Row classifier — decides whether a token row encodes zero, one, or two measurement records.
package measure

// Classification ranges. A row whose measurement-relevant token count falls
// in the single range is one record; the double range means two side-by-side
// tables rendered on one visual line. Anything else is skipped: false
// negatives are preferred over garbage records.
const (
	singleRowMin = 4
	singleRowMax = 8
	doubleRowMin = 12
	doubleRowMax = 14
)

// classifyRow splits one row's ordered token texts into record-candidate
// slices. The empty result means the row is a header, caption, or malformed.
func classifyRow(texts []string) [][]string {
	if len(texts) == 0 {
		return nil
	}
	// Data rows start with the row ordinal; anything else is a caption.
	if !isDigits(texts[0]) {
		return nil
	}

	relevant := make([]string, 0, len(texts))
	for _, t := range texts {
		if isRelevant(t) {
			relevant = append(relevant, t)
		}
	}

	n := len(relevant)
	switch {
	case n >= singleRowMin && n <= singleRowMax:
		return [][]string{relevant}
	case n >= doubleRowMin && n <= doubleRowMax:
		mid := n / 2
		left, right := relevant[:mid], relevant[mid:]
		out := make([][]string, 0, 2)
		if len(left) > 0 && isDigits(left[0]) {
			out = append(out, left)
		}
		if len(right) > 0 && isDigits(right[0]) {
			out = append(out, right)
		}
		return out
	default:
		return nil
	}
}
