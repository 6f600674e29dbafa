// Package db archives evaluated runs in SQLite for cheap querying.
package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite connection with thread-safe operations.
type DB struct {
	conn *sql.DB
	mu   sync.Mutex
}

// Run is one archived program evaluation.
type Run struct {
	ID        string
	Seed      int64
	Tokens    string // comma-joined token list
	Score     int
	Steps     int
	Win       bool
	Caught    bool
	StateJSON string // starting state record
	Source    string
	CreatedAt time.Time
}

// New opens (or creates) the archive at dbPath and initializes the schema.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER,
		tokens TEXT,
		score INTEGER,
		steps INTEGER,
		win BOOLEAN DEFAULT 0,
		caught BOOLEAN DEFAULT 0,
		state_json TEXT,
		source TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score);
	CREATE INDEX IF NOT EXISTS idx_runs_win ON runs(win);
	CREATE INDEX IF NOT EXISTS idx_runs_source ON runs(source);
	`

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// InsertRuns stores a batch of runs in a single transaction.
func (db *DB) InsertRuns(runs []Run) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO runs
		(id, seed, tokens, score, steps, win, caught, state_json, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare run statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range runs {
		if _, err := stmt.Exec(r.ID, r.Seed, r.Tokens, r.Score, r.Steps, r.Win, r.Caught, r.StateJSON, r.Source); err != nil {
			return fmt.Errorf("failed to insert run %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RunExists reports whether a run id is already archived.
func (db *DB) RunExists(id string) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var exists int
	err := db.conn.QueryRow("SELECT 1 FROM runs WHERE id = ?", id).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BestRuns returns the top-scoring runs, best first.
func (db *DB) BestRuns(limit int) ([]Run, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(
		`SELECT id, seed, tokens, score, steps, win, caught, state_json, source, created_at
		 FROM runs ORDER BY score DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Seed, &r.Tokens, &r.Score, &r.Steps, &r.Win, &r.Caught, &r.StateJSON, &r.Source, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns aggregate counters over the archive.
func (db *DB) Stats() (total, wins int64, bestScore int64, err error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err = db.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&total); err != nil {
		return
	}
	if err = db.conn.QueryRow("SELECT COUNT(*) FROM runs WHERE win = 1").Scan(&wins); err != nil {
		return
	}
	err = db.conn.QueryRow("SELECT COALESCE(MAX(score), 0) FROM runs").Scan(&bestScore)
	return
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
