package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sw33tLie/pwcheck/pkg/history"
	"github.com/sw33tLie/pwcheck/pkg/scorer"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02 15:04:05.000000000"

type DB struct {
	sql *sql.DB
}

var _ history.Store = (*DB)(nil)

// Open opens (creating if needed) the history database at path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
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
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS evaluations (
  id          TEXT PRIMARY KEY,
  masked      TEXT NOT NULL,
  score       INTEGER NOT NULL,
  strength    TEXT NOT NULL CHECK (strength IN ('Weak','Moderate','Strong','Very Strong')),
  checked_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_evaluations_time ON evaluations(checked_at);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// Record inserts a single evaluation.
func (d *DB) Record(ctx context.Context, e history.Entry) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO evaluations(id, masked, score, strength, checked_at) VALUES(?,?,?,?,?)`,
		e.ID, e.Masked, e.Score, e.Strength.String(), e.CheckedAt.UTC().Format(timeLayout))
	return err
}

// RecordBatch inserts entries in a single transaction.
func (d *DB) RecordBatch(ctx context.Context, entries []history.Entry) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO evaluations(id, masked, score, strength, checked_at) VALUES(?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err = stmt.ExecContext(ctx, e.ID, e.Masked, e.Score, e.Strength.String(), e.CheckedAt.UTC().Format(timeLayout)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Recent returns the most recent entries, newest first. limit <= 0 returns all.
func (d *DB) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	q := "SELECT id, masked, score, strength, checked_at FROM evaluations ORDER BY checked_at DESC, rowid DESC"
	args := []interface{}{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []history.Entry{}
	for rows.Next() {
		var (
			e                     history.Entry
			strength, checkedAtStr string
		)
		if err := rows.Scan(&e.ID, &e.Masked, &e.Score, &strength, &checkedAtStr); err != nil {
			return nil, err
		}
		if e.Strength, err = scorer.ParseStrength(strength); err != nil {
			return nil, err
		}
		if t, perr := time.Parse(timeLayout, checkedAtStr); perr == nil {
			e.CheckedAt = t.UTC()
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats aggregates every stored evaluation.
func (d *DB) Stats(ctx context.Context) (history.Stats, error) {
	query := `
		SELECT
			strength,
			COUNT(*),
			COALESCE(SUM(score), 0)
		FROM
			evaluations
		GROUP BY
			strength;
	`
	rows, err := d.sql.QueryContext(ctx, query)
	if err != nil {
		return history.Stats{}, err
	}
	defer rows.Close()

	st := history.Summarize(nil)
	sum := 0
	for rows.Next() {
		var (
			label      string
			count, tot int
		)
		if err := rows.Scan(&label, &count, &tot); err != nil {
			return history.Stats{}, err
		}
		strength, err := scorer.ParseStrength(label)
		if err != nil {
			return history.Stats{}, err
		}
		st.Counts[strength] = count
		st.Total += count
		sum += tot
	}
	if err := rows.Err(); err != nil {
		return history.Stats{}, err
	}
	if st.Total > 0 {
		st.Average = float64(sum) / float64(st.Total)
	}
	return st, nil
}

// Clear deletes every stored evaluation.
func (d *DB) Clear(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM evaluations")
	return err
}
