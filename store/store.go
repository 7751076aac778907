// CLAUDE:SUMMARY SQLite persistence for extraction results — documents plus measurement rows, replaced atomically.
// Package store persists per-cavity extraction results so previously
// processed reports can be re-read and exported without re-uploading.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/cavex/measure"
)

// Store wraps an SQLite database holding extraction results.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
// Parent directories are created as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for sharing with the observability layer.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS documents (
    cavity_id    TEXT PRIMARY KEY,
    filename     TEXT NOT NULL,
    header_info  TEXT NOT NULL,
    created_at   TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS measurements (
    cavity_id           TEXT NOT NULL REFERENCES documents(cavity_id) ON DELETE CASCADE,
    seq                 INTEGER NOT NULL,
    no                  TEXT NOT NULL,
    sym                 TEXT NOT NULL DEFAULT '',
    dimension           TEXT NOT NULL DEFAULT '',
    upper_tol           TEXT NOT NULL DEFAULT '',
    lower_tol           TEXT NOT NULL DEFAULT '',
    pos                 TEXT NOT NULL DEFAULT '',
    measured_by_vendor  TEXT NOT NULL DEFAULT '',
    page                INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (cavity_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_measurements_no ON measurements(cavity_id, no);
`
	_, err := s.db.Exec(ddl)
	return err
}

// SaveResult upserts a document's extraction output. The measurement rows
// are replaced atomically with the document row so a re-uploaded report
// never leaves a mixed table behind.
func (s *Store) SaveResult(ctx context.Context, filename string, res *measure.DocumentResult) error {
	header, err := json.Marshal(res.HeaderInfo)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO documents (cavity_id, filename, header_info, created_at, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(cavity_id) DO UPDATE SET
			filename = excluded.filename,
			header_info = excluded.header_info,
			updated_at = excluded.updated_at`,
		res.CavityID, filename, string(header), now, now)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM measurements WHERE cavity_id = ?`, res.CavityID); err != nil {
		return fmt.Errorf("clear measurements: %w", err)
	}
	for i, m := range res.Measurements {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO measurements
				(cavity_id, seq, no, sym, dimension, upper_tol, lower_tol, pos, measured_by_vendor, page)
			VALUES (?,?,?,?,?,?,?,?,?,?)`,
			res.CavityID, i, m.No, m.Sym, m.Dimension, m.Upper, m.Lower, m.Pos, m.MeasuredByVendor, m.Page)
		if err != nil {
			return fmt.Errorf("insert measurement %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetResult loads the stored result for a cavity, or nil when unknown.
func (s *Store) GetResult(ctx context.Context, cavityID string) (*measure.DocumentResult, error) {
	var headerJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT header_info FROM documents WHERE cavity_id = ?`, cavityID).Scan(&headerJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}

	res := &measure.DocumentResult{CavityID: cavityID, Measurements: []measure.Record{}}
	if err := json.Unmarshal([]byte(headerJSON), &res.HeaderInfo); err != nil {
		return nil, fmt.Errorf("unmarshal header: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT no, sym, dimension, upper_tol, lower_tol, pos, measured_by_vendor, page
		FROM measurements WHERE cavity_id = ? ORDER BY seq`, cavityID)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m measure.Record
		if err := rows.Scan(&m.No, &m.Sym, &m.Dimension, &m.Upper, &m.Lower, &m.Pos, &m.MeasuredByVendor, &m.Page); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		res.Measurements = append(res.Measurements, m)
	}
	return res, rows.Err()
}

// ListCavities returns all stored cavity IDs, newest first.
func (s *Store) ListCavities(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cavity_id FROM documents ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list cavities: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Counts returns the stored document and measurement totals (for health).
func (s *Store) Counts(ctx context.Context) (documents, measurements int, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents`).Scan(&documents); err != nil {
		return 0, 0, err
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM measurements`).Scan(&measurements); err != nil {
		return 0, 0, err
	}
	return documents, measurements, nil
}
