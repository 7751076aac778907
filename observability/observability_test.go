package observability

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/hazyhaar/cavex/kit"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "obs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Init(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestEventRecorder(t *testing.T) {
	// WHAT: Record inserts one extraction_events row per call.
	db := openTestDB(t)
	rec := NewEventRecorder(db)

	rec.Record(context.Background(), ExtractionEvent{
		CavityID: "CAV-1",
		Filename: "CAV-1.pdf",
		Pages:    3,
		Records:  12,
		Success:  true,
		Duration: 250 * time.Millisecond,
	})

	var count int
	var cavity string
	err := db.QueryRow(`SELECT COUNT(*), MAX(cavity_id) FROM extraction_events`).Scan(&count, &cavity)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != 1 || cavity != "CAV-1" {
		t.Errorf("count = %d, cavity = %q", count, cavity)
	}
}

func TestHeartbeatRoundTrip(t *testing.T) {
	// WHAT: A written heartbeat reads back via LatestHeartbeat as alive.
	db := openTestDB(t)
	hw := NewHeartbeatWriter(db, "cavexd", time.Minute)
	if err := hw.WriteHeartbeat(); err != nil {
		t.Fatalf("write: %v", err)
	}

	hs, err := LatestHeartbeat(context.Background(), db, "cavexd", time.Minute)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if hs == nil {
		t.Fatal("no heartbeat found")
	}
	if !hs.Alive || hs.WorkerName != "cavexd" || hs.GoroutinesCount <= 0 {
		t.Errorf("status = %+v", hs)
	}
}

func TestLatestHeartbeat_NoneRecorded(t *testing.T) {
	// WHAT: No heartbeat yet returns nil, nil.
	db := openTestDB(t)
	hs, err := LatestHeartbeat(context.Background(), db, "nobody", time.Minute)
	if err != nil || hs != nil {
		t.Errorf("got %+v, %v", hs, err)
	}
}

func TestRequestLogMiddleware(t *testing.T) {
	// WHAT: One request produces one http_request_logs row with its status
	// and the trace/request IDs carried in the context.
	db := openTestDB(t)
	h := RequestLog(db)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest("GET", "/v1/documents", nil)
	ctx := kit.WithTraceID(req.Context(), "abcd1234")
	ctx = kit.WithRequestID(ctx, "req_test")
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

	var status int
	var path, traceID, requestID string
	err := db.QueryRow(`SELECT status_code, path, trace_id, request_id FROM http_request_logs`).
		Scan(&status, &path, &traceID, &requestID)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if status != http.StatusTeapot || path != "/v1/documents" {
		t.Errorf("status = %d, path = %q", status, path)
	}
	if traceID != "abcd1234" || requestID != "req_test" {
		t.Errorf("trace_id = %q, request_id = %q", traceID, requestID)
	}
}

func TestCleanup(t *testing.T) {
	// WHAT: Cleanup deletes only rows past the retention threshold.
	db := openTestDB(t)
	old := time.Now().AddDate(0, 0, -10).Unix()
	fresh := time.Now().Unix()
	for _, ts := range []int64{old, fresh} {
		_, err := db.Exec(`
			INSERT INTO extraction_events (event_id, cavity_id, filename, created_at)
			VALUES (hex(randomblob(8)), 'CAV-1', 'f.pdf', ?)`, ts)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	err := Cleanup(context.Background(), db, RetentionConfig{EventsDays: 7})
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM extraction_events`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
