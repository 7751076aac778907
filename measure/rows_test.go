package measure

import (
	"reflect"
	"testing"

	"github.com/hazyhaar/cavex/pdfdoc"
)

func tok(x, y float64, text string) pdfdoc.Token {
	return pdfdoc.Token{X0: x, Y0: y, X1: x + 8*float64(len(text)), Y1: y + 10, Text: text}
}

func TestGroupRows_YTolerance(t *testing.T) {
	// WHAT: Tokens within the Y tolerance share a row; beyond it they split.
	// WHY: Real PDFs jitter baselines by a point or two inside one visual row.
	tokens := []pdfdoc.Token{
		tok(100, 51, "B"),
		tok(50, 50, "A"),
		tok(50, 80, "C"),
	}
	rows := groupRows(tokens, 5.0)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if got := rows[0].texts(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("first row = %v, want [A B]", got)
	}
	if got := rows[1].texts(); !reflect.DeepEqual(got, []string{"C"}) {
		t.Errorf("second row = %v, want [C]", got)
	}
}

func TestGroupRows_ReadingOrder(t *testing.T) {
	// WHAT: Rows come back top-to-bottom, tokens left-to-right.
	// WHY: The field assigner depends on positional order, not decode order.
	tokens := []pdfdoc.Token{
		tok(200, 120, "lower-right"),
		tok(40, 120, "lower-left"),
		tok(40, 60, "upper"),
	}
	rows := groupRows(tokens, 5.0)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].texts()[0] != "upper" {
		t.Errorf("first row = %v, want upper first", rows[0].texts())
	}
	if got := rows[1].texts(); !reflect.DeepEqual(got, []string{"lower-left", "lower-right"}) {
		t.Errorf("second row = %v", got)
	}
}

func TestGroupRows_Empty(t *testing.T) {
	// WHAT: No tokens means no rows, not a panic or an empty row.
	if rows := groupRows(nil, 5.0); rows != nil {
		t.Errorf("got %v, want nil", rows)
	}
}

func TestClassifyRow_Single(t *testing.T) {
	// WHAT: 4–8 relevant tokens with a digit ordinal classify as one record.
	texts := []string{"1", "Ø", "10", "+0.012", "-0.5", "Bottom", "9.89"}
	got := classifyRow(texts)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	if !reflect.DeepEqual(got[0], texts) {
		t.Errorf("candidate = %v", got[0])
	}
}

func TestClassifyRow_Double(t *testing.T) {
	// WHAT: 12–14 relevant tokens split into two records at the middle.
	// WHY: Some templates print two table halves side by side on one line.
	texts := []string{
		"1", "Ø", "5.0", "+0.1", "-0.1", "9.9",
		"7", "Ø", "3.2", "+0.05", "-0.05", "Top", "3.21",
	}
	got := classifyRow(texts)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2: %v", len(got), got)
	}
	if got[0][0] != "1" || got[1][0] != "7" {
		t.Errorf("split ordinals = %q / %q, want 1 / 7", got[0][0], got[1][0])
	}
}

func TestClassifyRow_Rejections(t *testing.T) {
	// WHAT: Captions, short rows, and oversize rows classify as nothing.
	// WHY: A false negative loses one row; a false positive corrupts the table.
	cases := [][]string{
		nil,
		{"No.", "Sym.", "Dimension"},           // caption: ordinal is not digits
		{"1", "10"},                            // too few relevant tokens
		{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, // between ranges
	}
	for _, texts := range cases {
		if got := classifyRow(texts); len(got) != 0 {
			t.Errorf("classifyRow(%v) = %v, want empty", texts, got)
		}
	}
}

func TestClassifyRow_IgnoresIrrelevantTokens(t *testing.T) {
	// WHAT: Long caption fragments inside a data row do not change its class.
	texts := []string{"1", "Ø", "10", "measured-by-vendor-x", "+0.1", "-0.1", "9.9"}
	got := classifyRow(texts)
	if len(got) != 1 {
		t.Fatalf("got %d candidates, want 1", len(got))
	}
	for _, tk := range got[0] {
		if tk == "measured-by-vendor-x" {
			t.Error("irrelevant token survived classification")
		}
	}
}
