// Package store handles SQLite persistence of past comparison runs.
//
// Only the aggregate fields of a run are persisted; no word content of
// either list ever reaches the database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/wordoracle/internal/oracle"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Run is a stored comparison result with its insertion metadata.
type Run struct {
	ID        int64
	CreatedAt time.Time
	Result    oracle.Result
}

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			language TEXT NOT NULL,
			nonce TEXT NOT NULL,
			fraction INTEGER NOT NULL,
			reference_total INTEGER NOT NULL,
			reference_sampled INTEGER NOT NULL,
			candidate_total INTEGER NOT NULL,
			candidate_sampled INTEGER NOT NULL,
			true_positives INTEGER NOT NULL,
			false_positives INTEGER NOT NULL,
			false_negatives INTEGER NOT NULL,
			recall_pct REAL NOT NULL,
			precision_pct REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_language ON runs(language);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed comparison result.
func (s *Store) InsertRun(ctx context.Context, createdAt time.Time, result oracle.Result) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, language, nonce, fraction,
			reference_total, reference_sampled, candidate_total, candidate_sampled,
			true_positives, false_positives, false_negatives, recall_pct, precision_pct)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		createdAt.Format(time.RFC3339Nano),
		result.Language,
		result.Nonce,
		result.Fraction,
		result.ReferenceTotal,
		result.ReferenceSampled,
		result.CandidateTotal,
		result.CandidateSampled,
		result.TruePositives,
		result.FalsePositives,
		result.FalseNegatives,
		result.RecallPct,
		result.PrecisionPct,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns stored runs ordered oldest first. An empty language
// matches all languages; last limits the result to the most recent N
// when positive.
func (s *Store) ListRuns(ctx context.Context, language string, last int) ([]Run, error) {
	query := `SELECT id, created_at, language, nonce, fraction,
		reference_total, reference_sampled, candidate_total, candidate_sampled,
		true_positives, false_positives, false_negatives, recall_pct, precision_pct
		FROM runs`
	args := []any{}
	if language != "" {
		query += ` WHERE language = ?`
		args = append(args, language)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(
			&run.ID,
			&createdAt,
			&run.Result.Language,
			&run.Result.Nonce,
			&run.Result.Fraction,
			&run.Result.ReferenceTotal,
			&run.Result.ReferenceSampled,
			&run.Result.CandidateTotal,
			&run.Result.CandidateSampled,
			&run.Result.TruePositives,
			&run.Result.FalsePositives,
			&run.Result.FalseNegatives,
			&run.Result.RecallPct,
			&run.Result.PrecisionPct,
		); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
		}
		run.CreatedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if last > 0 && len(runs) > last {
		runs = runs[len(runs)-last:]
	}
	return runs, nil
}
