// CLAUDE:SUMMARY Token grouper — buckets positioned tokens into visual rows by Y proximity.
package measure

import (
	"math"
	"sort"

	"github.com/hazyhaar/cavex/pdfdoc"
)

// row is one vertical bucket of tokens, ordered left-to-right.
type row struct {
	y      float64
	tokens []pdfdoc.Token
}

// texts returns the row's token texts in reading order.
func (r row) texts() []string {
	out := make([]string, len(r.tokens))
	for i, t := range r.tokens {
		out[i] = t.Text
	}
	return out
}

// groupRows buckets tokens by vertical position rounded to yTol and orders
// buckets top-to-bottom, tokens within a bucket left-to-right. Decorative
// noise tokens are not filtered here; downstream stages tolerate them.
func groupRows(tokens []pdfdoc.Token, yTol float64) []row {
	if len(tokens) == 0 {
		return nil
	}
	if yTol <= 0 {
		yTol = DefaultYTolerance
	}

	buckets := make(map[int][]pdfdoc.Token)
	for _, t := range tokens {
		key := int(math.Round(t.Y0 / yTol))
		buckets[key] = append(buckets[key], t)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	rows := make([]row, 0, len(keys))
	for _, k := range keys {
		toks := buckets[k]
		sort.Slice(toks, func(i, j int) bool { return toks[i].X0 < toks[j].X0 })
		rows = append(rows, row{y: float64(k) * yTol, tokens: toks})
	}
	return rows
}
