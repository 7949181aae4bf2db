package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"launchdash/internal/modules/launches/domain"
	launchesout "launchdash/internal/modules/launches/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteSnapshotWriter exports normalized tables into a SQLite file. Each
// Write appends a snapshot; earlier snapshots in the same file are kept.
type SQLiteSnapshotWriter struct{}

func NewSQLiteSnapshotWriter() launchesout.SnapshotWriter {
	return SQLiteSnapshotWriter{}
}

func (SQLiteSnapshotWriter) Write(ctx context.Context, dbPath string, snapshot domain.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	if err := ensureSchema(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const insertSnapshot = `
INSERT INTO snapshots (id, schema_version, location, taken_at, row_count, site_column, class_column, payload_column, booster_column)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	if _, err := tx.ExecContext(ctx, insertSnapshot,
		snapshot.ID,
		domain.SnapshotSchemaVersion,
		snapshot.Location,
		snapshot.TakenAt.Format(time.RFC3339),
		len(snapshot.Launches),
		snapshot.Columns.Site.Name,
		snapshot.Columns.Class.Name,
		snapshot.Columns.Payload.Name,
		nullable(snapshot.Columns.Booster),
	); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO launches (snapshot_id, row_index, site, class, payload_kg, booster) VALUES (?, ?, ?, ?, ?, ?);`)
	if err != nil {
		return fmt.Errorf("prepare launches: %w", err)
	}
	defer stmt.Close()
	for i, l := range snapshot.Launches {
		var payload any
		if l.PayloadKnown() {
			payload = l.PayloadKg
		}
		if _, err := stmt.ExecContext(ctx, snapshot.ID, i, l.Site, l.Class, payload, l.Booster); err != nil {
			return fmt.Errorf("insert launch %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS snapshots (
  id TEXT PRIMARY KEY,
  schema_version INTEGER NOT NULL,
  location TEXT NOT NULL,
  taken_at TEXT NOT NULL,
  row_count INTEGER NOT NULL,
  site_column TEXT NOT NULL,
  class_column TEXT NOT NULL,
  payload_column TEXT NOT NULL,
  booster_column TEXT
);
CREATE TABLE IF NOT EXISTS launches (
  snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
  row_index INTEGER NOT NULL,
  site TEXT NOT NULL,
  class INTEGER NOT NULL,
  payload_kg REAL,
  booster TEXT,
  PRIMARY KEY (snapshot_id, row_index)
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create snapshot tables: %w", err)
	}
	return nil
}

func nullable(c domain.Column) any {
	if !c.Found() {
		return nil
	}
	return c.Name
}
