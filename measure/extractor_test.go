package measure

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/hazyhaar/cavex/pdfdoc"
)

func TestCavityID(t *testing.T) {
	// WHAT: The CAV-<digits> designator wins over the filename; otherwise the
	// stem is the identifier.
	cases := map[string]string{
		"Report_CAV-7_final.pdf": "CAV-7",
		"cav-12.pdf":             "CAV-12",
		"inspection_report.pdf":  "inspection_report",
		"/tmp/up/CAV-3.pdf":      "CAV-3",
		"noext":                  "noext",
	}
	for in, want := range cases {
		if got := CavityID(in); got != want {
			t.Errorf("CavityID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProcessDocument_TooLarge(t *testing.T) {
	// WHAT: Oversize inputs are rejected with ErrTooLarge before decoding.
	e := New(Config{MaxFileSize: 16})
	_, err := e.ProcessDocument(context.Background(), make([]byte, 17), "big.pdf")
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestProcessDocument_NotPDF(t *testing.T) {
	// WHAT: Non-PDF bytes are rejected with ErrNotPDF, not a decoder panic.
	e := New(Config{})
	_, err := e.ProcessDocument(context.Background(), []byte("hello world"), "notes.txt")
	if !errors.Is(err, ErrNotPDF) {
		t.Errorf("err = %v, want ErrNotPDF", err)
	}
}

func TestProcessDocument_ValidPDF(t *testing.T) {
	// WHAT: A well-formed PDF yields a result with the derived cavity ID and
	// a non-nil (possibly empty) measurement slice.
	// WHY: The JSON envelope must serialize measurements as [], never null.
	raw := buildInspectionPDF([]string{
		"Supplier Name : Acme",
		"1 10.5 +0.1 -0.1 10.48",
	})
	e := New(Config{})
	res, err := e.ProcessDocument(context.Background(), raw, "CAV-9.pdf")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if res.CavityID != "CAV-9" {
		t.Errorf("cavity_id = %q", res.CavityID)
	}
	if res.Measurements == nil {
		t.Error("Measurements is nil, want empty slice at minimum")
	}
}

func TestExtractMeasurements_DedupAcrossPages(t *testing.T) {
	// WHAT: The same row repeated on a later page appears once, and the
	// final table is ordinal-ordered.
	doc := &fakeDoc{pages: []string{
		"2 20.0 +0.2 -0.2 19.9\n1 10.0 +0.1 -0.1 9.9\n",
		"1 10.0 +0.1 -0.1\n3 30.0 +0.3 -0.3 29.9\n",
	}}
	e := New(Config{})
	recs := e.ExtractMeasurements(context.Background(), doc, "CAV-1")
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(recs), recs)
	}
	for i, want := range []string{"1", "2", "3"} {
		if recs[i].No != want {
			t.Errorf("position %d = %q, want %q", i, recs[i].No, want)
		}
	}
	// First-seen occurrence of row 1 (page 0, with vendor value) wins.
	if recs[0].MeasuredByVendor != "9.9" || recs[0].Page != 0 {
		t.Errorf("row 1 = %+v", recs[0])
	}
}

// fakeDoc is a text-only Document for pipeline tests.
type fakeDoc struct{ pages []string }

func (f *fakeDoc) PageCount() int               { return len(f.pages) }
func (f *fakeDoc) PageText(p int) string        { return f.pages[p] }
func (f *fakeDoc) PageWords(int) []pdfdoc.Token { return nil }
func (f *fakeDoc) PageWidth(int) float64        { return 0 }
func (f *fakeDoc) Close() error                 { return nil }

// buildInspectionPDF assembles a minimal single-page PDF whose content
// stream renders the given lines top to bottom.
func buildInspectionPDF(lines []string) []byte {
	var stream strings.Builder
	stream.WriteString("BT\n/F1 10 Tf\n72 720 Td\n")
	for i, line := range lines {
		escaped := strings.ReplaceAll(line, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, "(", `\(`)
		escaped = strings.ReplaceAll(escaped, ")", `\)`)
		if i > 0 {
			stream.WriteString("0 -14 Td\n")
		}
		stream.WriteString("(" + escaped + ") Tj\n")
	}
	stream.WriteString("ET")
	content := stream.String()

	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	offsets := make([]int, 6)

	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")

	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")

	offsets[4] = b.Len()
	b.WriteString("4 0 obj\n<< /Length ")
	b.WriteString(strconv.Itoa(len(content)))
	b.WriteString(" >>\nstream\n")
	b.WriteString(content)
	b.WriteString("\nendstream\nendobj\n")

	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := b.Len()
	b.WriteString("xref\n0 6\n")
	b.WriteString("0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		off := strconv.Itoa(offsets[i])
		b.WriteString(strings.Repeat("0", 10-len(off)) + off)
		b.WriteString(" 00000 n \n")
	}
	b.WriteString("trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n")
	b.WriteString(strconv.Itoa(xrefOffset))
	b.WriteString("\n%%EOF\n")

	return []byte(b.String())
}
