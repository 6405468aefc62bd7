// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional journal of conversion attempts in a
// SQLite database. Only metadata is stored; document bytes never are.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/docshift/internal/format"
	"github.com/pdiddy/docshift/pkg/types"
)

const (
	defaultLimit = 20
	// timeLayout is fixed width so stored timestamps sort chronologically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Entry is one recorded conversion attempt.
type Entry struct {
	ID             string                 `json:"id" yaml:"id"`
	StartedAt      time.Time              `json:"started_at" yaml:"started_at"`
	Direction      format.Direction       `json:"direction" yaml:"direction"`
	Source         string                 `json:"source" yaml:"source"`
	Output         string                 `json:"output,omitempty" yaml:"output,omitempty"`
	Status         types.ConversionStatus `json:"status" yaml:"status"`
	FailureKind    types.FailureKind      `json:"failure_kind,omitempty" yaml:"failure_kind,omitempty"`
	FailureMessage string                 `json:"failure_message,omitempty" yaml:"failure_message,omitempty"`
	Bytes          int                    `json:"bytes" yaml:"bytes"`
	Duration       time.Duration          `json:"duration" yaml:"duration"`
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			direction TEXT NOT NULL,
			source TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			failure_kind TEXT,
			failure_message TEXT,
			bytes INTEGER NOT NULL DEFAULT 0,
			duration_ns INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_started_at ON conversions(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the metadata of r. Recording the same attempt twice
// replaces the earlier row.
func (s *Store) Record(ctx context.Context, r *types.ConversionResult) error {
	if r == nil {
		return nil
	}
	var kind, msg string
	if r.Failure != nil {
		kind, msg = string(r.Failure.Kind), r.Failure.Message
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO conversions
			(id, started_at, direction, source, output, status, failure_kind, failure_message, bytes, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.StartedAt.UTC().Format(timeLayout),
		string(r.Direction),
		r.SourceName,
		r.FileName,
		string(r.Status()),
		kind,
		msg,
		len(r.Output),
		int64(r.Duration),
	)
	if err != nil {
		return fmt.Errorf("recording conversion %s: %w", r.ID, err)
	}
	return nil
}

// List returns the most recent entries, newest first. A non-positive limit
// uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, direction, source, output, status, failure_kind, failure_message, bytes, duration_ns
		FROM conversions
		ORDER BY started_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			startedAt, direction string
			output, kind, msg    sql.NullString
			status               string
			durationNS           int64
		)
		if err := rows.Scan(&e.ID, &startedAt, &direction, &e.Source, &output, &status, &kind, &msg, &e.Bytes, &durationNS); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing started_at of %s: %w", e.ID, err)
		}
		e.Direction = format.Direction(direction)
		e.Output = output.String
		e.Status = types.ConversionStatus(status)
		e.FailureKind = types.FailureKind(kind.String)
		e.FailureMessage = msg.String
		e.Duration = time.Duration(durationNS)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
