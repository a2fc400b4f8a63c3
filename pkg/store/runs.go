// pkg/store/runs.go
package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Run is one recorded install or removal run.
type Run struct {
	ID        string
	Kind      string // "install" or "remove"
	Started   time.Time
	Finished  time.Time
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Cancelled bool
	Log       []string // Only filled by RunLog
}

// RecordRun stores a finished run with its log compressed.
func (d *DB) RecordRun(ctx context.Context, r *Run) error {
	blob, err := compress(strings.Join(r.Log, "\n"))
	if err != nil {
		return fmt.Errorf("compressing run log: %w", err)
	}
	_, err = d.sql.ExecContext(ctx, `INSERT INTO runs(id, kind, started_at, finished_at, total, succeeded, failed, skipped, cancelled, log_xz)
VALUES(?,?,?,?,?,?,?,?,?,?)`,
		r.ID, r.Kind, r.Started.UTC().Format(timeLayout), r.Finished.UTC().Format(timeLayout), r.Total, r.Succeeded, r.Failed, r.Skipped, boolToInt(r.Cancelled), blob)
	return err
}

// Runs lists recorded runs, newest first. A limit <= 0 returns all.
func (d *DB) Runs(ctx context.Context, limit int) ([]Run, error) {
	q := "SELECT id, kind, started_at, finished_at, total, succeeded, failed, skipped, cancelled FROM runs ORDER BY started_at DESC"
	var args []interface{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows, nil)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunLog returns the run whose id starts with prefix, log included.
func (d *DB) RunLog(ctx context.Context, prefix string) (*Run, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrRunNotFound
	}

	rows, err := d.sql.QueryContext(ctx, `SELECT id, kind, started_at, finished_at, total, succeeded, failed, skipped, cancelled, log_xz
FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []Run
	var blobs [][]byte
	for rows.Next() {
		var blob []byte
		r, err := scanRun(rows, &blob)
		if err != nil {
			return nil, err
		}
		found = append(found, r)
		blobs = append(blobs, blob)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", prefix)
	}

	text, err := decompress(blobs[0])
	if err != nil {
		return nil, fmt.Errorf("decompressing run log: %w", err)
	}
	run := found[0]
	if text != "" {
		run.Log = strings.Split(text, "\n")
	}
	return &run, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

// scanRun reads the run columns in table order, plus the log blob when
// blob is non-nil.
func scanRun(row scanner, blob *[]byte) (Run, error) {
	var (
		r                 Run
		started, finished string
		cancelled         int
	)
	dest := []interface{}{&r.ID, &r.Kind, &started, &finished, &r.Total, &r.Succeeded, &r.Failed, &r.Skipped, &cancelled}
	if blob != nil {
		dest = append(dest, blob)
	}
	if err := row.Scan(dest...); err != nil {
		return Run{}, err
	}
	r.Started = parseTime(started)
	r.Finished = parseTime(finished)
	r.Cancelled = cancelled == 1
	return r, nil
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}

func compress(s string) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, s); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(blob []byte) (string, error) {
	if len(blob) == 0 {
		return "", nil
	}
	r, err := xz.NewReader(bytes.NewReader(blob))
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
