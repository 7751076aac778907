package measure

import "testing"

func TestAssignFields_FullRow(t *testing.T) {
	// WHAT: A complete row maps onto every field in order.
	rec, ok := assignFields([]string{"1", "Ø", "10", "+0.012", "-0.5", "Bottom", "9.89"}, 2, false)
	if !ok {
		t.Fatal("assignFields returned false")
	}
	want := Record{No: "1", Sym: "Ø", Dimension: "10", Upper: "+0.012", Lower: "-0.5",
		Pos: "Bottom", MeasuredByVendor: "9.89", Page: 2}
	if rec != want {
		t.Errorf("got %+v\nwant %+v", rec, want)
	}
}

func TestAssignFields_NoSymbol(t *testing.T) {
	// WHAT: Without a symbol the first numeric token becomes the dimension.
	rec, ok := assignFields([]string{"3", "25.4", "+0.1", "-0.1", "25.38"}, 0, false)
	if !ok {
		t.Fatal("assignFields returned false")
	}
	if rec.Sym != "" || rec.Dimension != "25.4" || rec.MeasuredByVendor != "25.38" {
		t.Errorf("got %+v", rec)
	}
}

func TestAssignFields_PartialRow(t *testing.T) {
	// WHAT: A row missing the vendor value still yields a partial record.
	// WHY: Unfilled vendor columns are routine; the dimension data is still useful.
	rec, ok := assignFields([]string{"2", "Ø", "8.0", "+0.05", "-0.05"}, 0, false)
	if !ok {
		t.Fatal("assignFields returned false")
	}
	if rec.MeasuredByVendor != "" || rec.Dimension != "8.0" {
		t.Errorf("got %+v", rec)
	}
}

func TestAssignFields_Strict(t *testing.T) {
	// WHAT: Strict mode drops rows without a vendor-measured value.
	if _, ok := assignFields([]string{"2", "Ø", "8.0", "+0.05", "-0.05"}, 0, true); ok {
		t.Error("strict mode accepted a row without vendor value")
	}
	if _, ok := assignFields([]string{"2", "Ø", "8.0", "+0.05", "-0.05", "7.99"}, 0, true); !ok {
		t.Error("strict mode rejected a complete row")
	}
}

func TestAssignFields_Rejections(t *testing.T) {
	// WHAT: Too-short slices and non-digit ordinals are rejected.
	cases := [][]string{
		{"1"},
		{"Ø", "10", "+0.1", "-0.1"},
		{"1x", "10", "+0.1", "-0.1"},
	}
	for _, texts := range cases {
		if _, ok := assignFields(texts, 0, false); ok {
			t.Errorf("assignFields(%v) accepted, want rejected", texts)
		}
	}
}

func TestAssignFields_CommaDecimals(t *testing.T) {
	// WHAT: Comma decimal separators are normalized in the output record.
	rec, ok := assignFields([]string{"4", "12,5", "+0,1", "-0,1", "12,48"}, 0, false)
	if !ok {
		t.Fatal("assignFields returned false")
	}
	if rec.Dimension != "12.5" || rec.Upper != "+0.1" || rec.MeasuredByVendor != "12.48" {
		t.Errorf("got %+v", rec)
	}
}
