// Package history provides a SQLite-backed audit log of cleanup
// invocations. The log is append-only and purely observational:
// decisions are never read back, so each invocation stays stateless.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/hochfrequenz/actions-janitor/internal/domain"
	"github.com/hochfrequenz/actions-janitor/internal/executor"
)

// Store provides SQLite-backed invocation history
type Store struct {
	db *sql.DB
}

// Invocation is one recorded cleanup pass
type Invocation struct {
	ID         string
	Repository string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt *time.Time
	Deleted    int
	Skipped    int
	Failed     int
}

// New creates a Store at the given database path, creating parent
// directories as needed
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Begin records the start of an invocation and returns its id
func (s *Store) Begin(repo domain.RepoRef, dryRun bool, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(`
		INSERT INTO invocations (id, repository, dry_run, started_at)
		VALUES (?, ?, ?, ?)
	`, id, repo.String(), dryRun, startedAt)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Finish records the final tallies of an invocation
func (s *Store) Finish(id string, summary executor.Summary, finishedAt time.Time) error {
	_, err := s.db.Exec(`
		UPDATE invocations
		SET finished_at = ?, deleted = ?, skipped = ?, failed = ?
		WHERE id = ?
	`, finishedAt, summary.Deleted, summary.Skipped, summary.Failed, id)
	return err
}

// RecordOutcomes appends per-run outcomes for an invocation
func (s *Store) RecordOutcomes(id string, outcomes []executor.Outcome) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO outcomes (invocation_id, run_id, workflow, action, reason, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, o := range outcomes {
		action := string(domain.ActionDelete)
		if o.Dry {
			action = string(domain.ActionSkip)
		}
		var errText string
		if o.Err != nil {
			errText = o.Err.Error()
		}
		if _, err := stmt.Exec(id, o.Run.ID, o.Run.WorkflowName, action, "", errText); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListInvocations returns the most recent invocations, newest first
func (s *Store) ListInvocations(limit int) ([]*Invocation, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, repository, dry_run, started_at, finished_at, deleted, skipped, failed
		FROM invocations
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invocations []*Invocation
	for rows.Next() {
		var inv Invocation
		var finished sql.NullTime
		if err := rows.Scan(&inv.ID, &inv.Repository, &inv.DryRun, &inv.StartedAt,
			&finished, &inv.Deleted, &inv.Skipped, &inv.Failed); err != nil {
			return nil, err
		}
		if finished.Valid {
			t := finished.Time
			inv.FinishedAt = &t
		}
		invocations = append(invocations, &inv)
	}
	return invocations, rows.Err()
}
