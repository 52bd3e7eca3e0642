// README: Local SQLite-backed run store for offline experiment tracking.
package tracking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteTracker records runs locally when no remote tracking server is
// configured.
type SQLiteTracker struct {
	db *sql.DB
}

func NewSQLiteTracker(path string) (*SQLiteTracker, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=10000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open tracking db: %w", err)
	}
	// Writes are serialized by SQLite anyway.
	db.SetMaxOpenConns(2)

	t := &SQLiteTracker{db: db}
	if err := t.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return t, nil
}

func (t *SQLiteTracker) initSchema() error {
	stmts := []string{`
        CREATE TABLE IF NOT EXISTS run_params (
            run_id     TEXT NOT NULL,
            key        TEXT NOT NULL,
            value      TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL,
            PRIMARY KEY (run_id, key)
        )`, `
        CREATE TABLE IF NOT EXISTS run_metrics (
            run_id     TEXT NOT NULL,
            key        TEXT NOT NULL,
            value      REAL NOT NULL,
            created_at TIMESTAMP NOT NULL
        )`}
	for _, stmt := range stmts {
		if _, err := t.db.Exec(stmt); err != nil {
			return fmt.Errorf("init tracking schema: %w", err)
		}
	}
	return nil
}

func (t *SQLiteTracker) LogParam(ctx context.Context, runID, key, value string) error {
	_, err := t.db.ExecContext(ctx, `
        INSERT INTO run_params (run_id, key, value, created_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (run_id, key) DO UPDATE SET value = excluded.value`,
		runID, key, value, time.Now().UTC())
	return err
}

func (t *SQLiteTracker) LogMetric(ctx context.Context, runID, key string, value float64) error {
	_, err := t.db.ExecContext(ctx, `
        INSERT INTO run_metrics (run_id, key, value, created_at)
        VALUES (?, ?, ?, ?)`,
		runID, key, value, time.Now().UTC())
	return err
}

// Metrics returns the recorded metrics of one run, latest value per key.
func (t *SQLiteTracker) Metrics(ctx context.Context, runID string) (map[string]float64, error) {
	rows, err := t.db.QueryContext(ctx, `
        SELECT key, value FROM run_metrics
        WHERE run_id = ?
        ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var k string
		var v float64
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (t *SQLiteTracker) Close() error { return t.db.Close() }
