// CLAUDE:SUMMARY Field assigner — maps a record-candidate token slice onto the fixed measurement field set.
package measure

// assignFields builds a Record from one record-candidate token slice. The
// first token is the row ordinal; the rest are distributed over
// {sym, dimension, upper, lower, pos, measured_by_vendor} by positional and
// type heuristics, tolerating absent optional fields.
//
// Returns false when the slice is too short to be meaningful or the ordinal
// is not digit-only.
func assignFields(texts []string, page int, strict bool) (Record, bool) {
	if len(texts) < 2 {
		return Record{}, false
	}
	if !isDigits(texts[0]) {
		return Record{}, false
	}

	rec := Record{No: texts[0], Page: page}
	rest := texts[1:]

	// Optional symbol sits right after the ordinal.
	if len(rest) > 0 && isSymbol(rest[0]) {
		rec.Sym = rest[0]
		rest = rest[1:]
	}

	// Dimension, upper, lower are consumed in order while tokens stay
	// numeric-shaped.
	numeric := []*string{&rec.Dimension, &rec.Upper, &rec.Lower}
	for len(rest) > 0 && len(numeric) > 0 && isNumeric(rest[0]) {
		*numeric[0] = normalizeNumeric(rest[0])
		numeric = numeric[1:]
		rest = rest[1:]
	}

	// A remaining non-numeric token is the position tag.
	if len(rest) > 0 && isPositionTag(rest[0]) {
		rec.Pos = rest[0]
		rest = rest[1:]
	}

	// A remaining numeric token is the vendor-measured value.
	if len(rest) > 0 && isNumeric(rest[0]) {
		rec.MeasuredByVendor = normalizeNumeric(rest[0])
	}

	if strict && rec.MeasuredByVendor == "" {
		return Record{}, false
	}
	if !rec.Valid() {
		return Record{}, false
	}
	return rec, true
}
