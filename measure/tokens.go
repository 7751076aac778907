// CLAUDE:SUMMARY Single source of truth for token classification — numeric, symbol, position tag.
package measure

import (
	"strconv"
	"strings"
	"unicode"
)

// symbolGlyphs are GD&T annotations that mark a dimension: diameter marks,
// burr callouts, and the Greek letters some templates use instead.
var symbolGlyphs = map[string]bool{
	"Ø":    true,
	"ø":    true,
	"⌀":    true,
	"Φ":    true,
	"φ":    true,
	"SØ":   true,
	"R":    true,
	"SR":   true,
	"C":    true,
	"BURR": true,
}

// isNumeric reports whether a token parses as a measurement value: an
// optional leading + or -, with ',' accepted as the decimal separator.
func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	s := strings.TrimPrefix(tok, "+")
	s = strings.ReplaceAll(s, ",", ".")
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isDigits reports whether a token is a pure digit sequence (a row ordinal).
func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isSymbol reports whether a token is a GD&T symbol annotation: a known
// glyph, or a short non-numeric fragment sitting where a symbol would.
func isSymbol(tok string) bool {
	if tok == "" || isNumeric(tok) {
		return false
	}
	if symbolGlyphs[strings.ToUpper(tok)] {
		return true
	}
	if len([]rune(tok)) > 3 {
		return false
	}
	for _, r := range tok {
		if !unicode.IsLetter(r) && !symbolRune(r) {
			return false
		}
	}
	return true
}

func symbolRune(r rune) bool {
	switch r {
	case 'Ø', 'ø', '⌀', 'Φ', 'φ', '°':
		return true
	}
	return false
}

// isPositionTag reports whether a token looks like a free-text location tag
// ("Bottom", "A-A", "Top2"): non-numeric, letters with optional digits and
// hyphens, starting with a letter.
func isPositionTag(tok string) bool {
	if tok == "" || isNumeric(tok) {
		return false
	}
	runes := []rune(tok)
	if !unicode.IsLetter(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// isRelevant is the row classifier's measurement-relevance filter: numeric
// fragments, symbols, position tags, and short alphanumeric fragments count;
// captions and border glyphs do not.
func isRelevant(tok string) bool {
	if tok == "" {
		return false
	}
	if isNumeric(tok) || isSymbol(tok) {
		return true
	}
	if len([]rune(tok)) > 10 {
		return false
	}
	return isPositionTag(tok)
}

// normalizeNumeric canonicalizes the decimal separator while preserving the
// sign and the original precision.
func normalizeNumeric(tok string) string {
	return strings.ReplaceAll(tok, ",", ".")
}
