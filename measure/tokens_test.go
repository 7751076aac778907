package measure

import "testing"

func TestIsNumeric(t *testing.T) {
	// WHAT: Numeric classification accepts signs and comma decimals.
	// WHY: Tolerance columns carry "+0,012" in European templates.
	for _, tok := range []string{"10", "10.5", "+0.012", "-0.5", "0,75", "+3,14"} {
		if !isNumeric(tok) {
			t.Errorf("isNumeric(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"", "Ø", "Bottom", "A-A", "10.5.3", "+-1"} {
		if isNumeric(tok) {
			t.Errorf("isNumeric(%q) = true, want false", tok)
		}
	}
}

func TestIsDigits(t *testing.T) {
	// WHAT: Row ordinals are pure digit sequences.
	// WHY: "1a" or "1.5" in the ordinal column marks a caption, not a row.
	cases := map[string]bool{
		"1": true, "42": true, "007": true,
		"": false, "1.5": false, "1a": false, "-1": false,
	}
	for tok, want := range cases {
		if got := isDigits(tok); got != want {
			t.Errorf("isDigits(%q) = %v, want %v", tok, got, want)
		}
	}
}

func TestIsSymbol(t *testing.T) {
	// WHAT: Symbol detection covers diameter glyphs, Greek letters, and short tags.
	// WHY: Templates render the same annotation with different glyphs.
	for _, tok := range []string{"Ø", "ø", "⌀", "Φ", "φ", "SØ", "R", "BURR", "burr"} {
		if !isSymbol(tok) {
			t.Errorf("isSymbol(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"", "10", "+0.5", "Bottom", "DIMENSION"} {
		if isSymbol(tok) {
			t.Errorf("isSymbol(%q) = true, want false", tok)
		}
	}
}

func TestIsPositionTag(t *testing.T) {
	// WHAT: Position tags are letter-leading words with optional digits/hyphens.
	// WHY: "A-A", "Top2", "Bottom" are locations; "2A" and "+1" are not.
	for _, tok := range []string{"Bottom", "Top2", "A-A", "side_b"} {
		if !isPositionTag(tok) {
			t.Errorf("isPositionTag(%q) = false, want true", tok)
		}
	}
	for _, tok := range []string{"", "2A", "10.5", "+1", "A A"} {
		if isPositionTag(tok) {
			t.Errorf("isPositionTag(%q) = true, want false", tok)
		}
	}
}

func TestNormalizeNumeric(t *testing.T) {
	// WHAT: Comma decimals are canonicalized, sign and precision preserved.
	// WHY: Output JSON must carry the value as printed, not reformatted.
	cases := map[string]string{
		"+0,012": "+0.012",
		"-0.50":  "-0.50",
		"10":     "10",
	}
	for in, want := range cases {
		if got := normalizeNumeric(in); got != want {
			t.Errorf("normalizeNumeric(%q) = %q, want %q", in, got, want)
		}
	}
}
