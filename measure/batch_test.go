package measure

import (
	"context"
	"strings"
	"testing"
)

func TestProcessBatch_PartialFailure(t *testing.T) {
	// WHAT: One unreadable file becomes a warning; the rest of the batch
	// still succeeds.
	// WHY: A single corrupt upload must never void an entire QA submission.
	good1 := buildInspectionPDF([]string{"1 10.0 +0.1 -0.1 9.9"})
	good2 := buildInspectionPDF([]string{"2 20.0 +0.2 -0.2 19.9"})
	files := []BatchFile{
		{Filename: "CAV-1.pdf", Data: good1},
		{Filename: "broken.pdf", Data: []byte("not a pdf at all")},
		{Filename: "CAV-2.pdf", Data: good2},
	}

	e := New(Config{})
	res := e.ProcessBatch(context.Background(), files, 2)

	if !res.Success {
		t.Error("success = false, want true")
	}
	if res.FilesProcessed != 2 {
		t.Errorf("files_processed = %d, want 2", res.FilesProcessed)
	}
	if len(res.Warnings) != 1 || !strings.HasPrefix(res.Warnings[0], "broken.pdf:") {
		t.Errorf("warnings = %v", res.Warnings)
	}
	if _, ok := res.Data["CAV-1"]; !ok {
		t.Errorf("data keys = %v, want CAV-1 present", keys(res.Data))
	}
	if _, ok := res.Data["CAV-2"]; !ok {
		t.Errorf("data keys = %v, want CAV-2 present", keys(res.Data))
	}
}

func TestProcessBatch_AllFailed(t *testing.T) {
	// WHAT: A batch where nothing processes reports success=false.
	files := []BatchFile{
		{Filename: "a.pdf", Data: []byte("garbage")},
		{Filename: "b.pdf", Data: []byte("more garbage")},
	}
	e := New(Config{})
	res := e.ProcessBatch(context.Background(), files, 0)
	if res.Success {
		t.Error("success = true, want false")
	}
	if res.FilesProcessed != 0 || len(res.Warnings) != 2 {
		t.Errorf("files_processed = %d, warnings = %v", res.FilesProcessed, res.Warnings)
	}
}

func TestProcessBatch_DeterministicWarnings(t *testing.T) {
	// WHAT: Warnings come back in upload order regardless of worker timing.
	files := []BatchFile{
		{Filename: "z.pdf", Data: []byte("bad")},
		{Filename: "a.pdf", Data: []byte("bad")},
		{Filename: "m.pdf", Data: []byte("bad")},
	}
	e := New(Config{})
	res := e.ProcessBatch(context.Background(), files, 3)
	want := []string{"z.pdf", "a.pdf", "m.pdf"}
	if len(res.Warnings) != len(want) {
		t.Fatalf("warnings = %v", res.Warnings)
	}
	for i, w := range want {
		if !strings.HasPrefix(res.Warnings[i], w+":") {
			t.Errorf("warning %d = %q, want prefix %q", i, res.Warnings[i], w)
		}
	}
}

func TestProcessBatch_FileOutcomes(t *testing.T) {
	// WHAT: Files reports each upload's own outcome — in upload order, with
	// per-file timing and page count, and with failures attributed to the
	// failing file even when another upload derives the same cavity ID.
	// WHY: The Data map keys by cavity ID; a caller recording outcomes per
	// file must not resolve a failed upload to its namesake's success.
	good := buildInspectionPDF([]string{"1 10.0 +0.1 -0.1 9.9"})
	files := []BatchFile{
		{Filename: "Report_CAV-3_a.pdf", Data: good},
		{Filename: "CAV-3_b.pdf", Data: []byte("not a pdf")},
	}

	e := New(Config{})
	res := e.ProcessBatch(context.Background(), files, 2)

	if len(res.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(res.Files))
	}

	ok := res.Files[0]
	if ok.Filename != "Report_CAV-3_a.pdf" || ok.Err != nil || ok.Doc == nil {
		t.Fatalf("first outcome = %+v", ok)
	}
	if ok.Doc.Pages != 1 {
		t.Errorf("pages = %d, want 1", ok.Doc.Pages)
	}
	if ok.Duration <= 0 {
		t.Errorf("duration = %v, want > 0", ok.Duration)
	}

	bad := res.Files[1]
	if bad.Filename != "CAV-3_b.pdf" || bad.Err == nil || bad.Doc != nil {
		t.Errorf("second outcome = %+v, want an error and no document", bad)
	}

	// Both filenames map to CAV-3; the collision must not mask the failure.
	if _, exists := res.Data["CAV-3"]; !exists {
		t.Errorf("data keys = %v, want CAV-3 present", keys(res.Data))
	}
}

func keys(m map[string]*DocumentResult) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
