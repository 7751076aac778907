// CLAUDE:SUMMARY Deduplicator/sorter — collapses cross-page duplicates and fixes the final record order.
package measure

import (
	"sort"
	"strconv"
)

// dedupSort merges the per-page record accumulation into the final table:
// first-seen wins on the (no, sym, dimension) identity key, later duplicates
// are discarded (never merged), and the result is ordered ascending by the
// ordinal read as an integer. Ordinals that fail to parse sort to the front
// as zero rather than raising an error.
func dedupSort(records []Record) []Record {
	seen := make(map[identity]bool, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		key := r.identity()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return ordinal(out[i].No) < ordinal(out[j].No)
	})
	return out
}

func ordinal(no string) int {
	n, err := strconv.Atoi(no)
	if err != nil {
		return 0
	}
	return n
}
