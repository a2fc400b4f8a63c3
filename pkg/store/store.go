// pkg/store/store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/UriCaBa/initio/pkg/core"
)

// ErrRunNotFound is returned when no recorded run matches an id.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS items (
  id            TEXT NOT NULL PRIMARY KEY COLLATE NOCASE,
  position      INTEGER NOT NULL,
  name          TEXT NOT NULL,
  category      TEXT NOT NULL,
  selected      INTEGER NOT NULL CHECK (selected IN (0,1)),
  installed     INTEGER NOT NULL CHECK (installed IN (0,1)),
  status        TEXT NOT NULL DEFAULT 'pending',
  status_reason TEXT,
  updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS runs (
  id          TEXT NOT NULL PRIMARY KEY,
  kind        TEXT NOT NULL CHECK (kind IN ('install','remove')),
  started_at  TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  total       INTEGER NOT NULL,
  succeeded   INTEGER NOT NULL,
  failed      INTEGER NOT NULL,
  skipped     INTEGER NOT NULL,
  cancelled   INTEGER NOT NULL CHECK (cancelled IN (0,1)),
  log_xz      BLOB
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT NOT NULL PRIMARY KEY,
  value TEXT NOT NULL
);
`

// DB persists tracked items and run history.
type DB struct {
	sql *sql.DB
}

// Open opens or creates the state database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating state directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Items returns the tracked install items in their saved order.
func (d *DB) Items(ctx context.Context) ([]*core.PackageItem, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, name, category, selected, installed, status, status_reason FROM items ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*core.PackageItem
	for rows.Next() {
		var (
			id, name, category, status string
			selected, installed        int
			reason                     sql.NullString
		)
		if err := rows.Scan(&id, &name, &category, &selected, &installed, &status, &reason); err != nil {
			return nil, err
		}

		item := core.NewPackageItem(name, category, id)
		item.Installed = installed == 1
		item.Selected = selected == 1 && !item.Installed
		if kind, err := core.ParseStatusKind(status); err == nil {
			item.Status = restoreStatus(kind, reason.String)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Seeded reports whether items were ever saved. An empty but seeded item
// set means the user dropped everything.
func (d *DB) Seeded(ctx context.Context) (bool, error) {
	var value string
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'seeded'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "1", nil
}

// SaveItems replaces the tracked set with items, keeping their order.
// Removal items are not tracked and are ignored.
func (d *DB) SaveItems(ctx context.Context, items []*core.PackageItem) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items(id, position, name, category, selected, installed, status, status_reason)
VALUES(?,?,?,?,?,?,?,?) ON CONFLICT(id) DO NOTHING`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	pos := 0
	for _, item := range items {
		if item.Flow != core.FlowInstall {
			continue
		}
		if _, err = stmt.ExecContext(ctx, item.ID, pos, item.Name, item.Category,
			boolToInt(item.Selected), boolToInt(item.Installed),
			persistedKind(item.Status).String(), nullIfEmpty(item.Status.Reason)); err != nil {
			return err
		}
		pos++
	}

	if _, err = tx.ExecContext(ctx, "INSERT OR REPLACE INTO meta(key, value) VALUES('seeded', '1')"); err != nil {
		return err
	}
	return tx.Commit()
}

// persistedKind collapses in-flight states; a saved item is never running.
func persistedKind(s core.Status) core.StatusKind {
	switch s.Kind {
	case core.StatusRunning, core.StatusVerifying, core.StatusRetrying:
		return core.StatusPending
	default:
		return s.Kind
	}
}

func restoreStatus(kind core.StatusKind, reason string) core.Status {
	switch kind {
	case core.StatusSucceeded:
		return core.Succeeded()
	case core.StatusFailed:
		return core.Failed(reason)
	default:
		return core.Pending()
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
