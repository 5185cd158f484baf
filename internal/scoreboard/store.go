// Package scoreboard records finished runs in a local SQLite database.
package scoreboard

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/rogue1980/internal/telemetry"
)

//go:embed schema.sql
var schemaSQL string

// Run is one finished game.
type Run struct {
	ID          string
	Seed        int64
	Outcome     string
	Depth       int
	Turns       int
	Kills       int
	Attacks     int
	DamageDealt int
	DamageTaken int
	ItemsUsed   int
	Moves       int
	Gold        int
	FinishedAt  time.Time
}

// Store persists runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the scoreboard database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("scoreboard path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Record stores a finished run. A missing ID or finish time is filled in;
// the stored run is returned.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	ctx, span := telemetry.Tracer("scoreboard").Start(ctx, "scoreboard.record")
	defer span.End()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	run.FinishedAt = fromMillis(toMillis(run.FinishedAt))

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runs (
		   id, seed, outcome, depth, turns, kills, attacks,
		   damage_dealt, damage_taken, items_used, moves, gold, finished_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Seed,
		run.Outcome,
		run.Depth,
		run.Turns,
		run.Kills,
		run.Attacks,
		run.DamageDealt,
		run.DamageTaken,
		run.ItemsUsed,
		run.Moves,
		run.Gold,
		toMillis(run.FinishedAt),
	)
	if err != nil {
		span.RecordError(err)
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	span.SetAttributes(
		attribute.String("run.id", run.ID),
		attribute.String("run.outcome", run.Outcome),
		attribute.Int("run.gold", run.Gold),
		attribute.Int("run.depth", run.Depth),
	)
	return run, nil
}

// Top returns up to limit runs, richest first. Ties go to the deeper run,
// then the earlier one.
func (s *Store) Top(ctx context.Context, limit int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, seed, outcome, depth, turns, kills, attacks,
		        damage_dealt, damage_taken, items_used, moves, gold, finished_at
		   FROM runs
		  ORDER BY gold DESC, depth DESC, finished_at ASC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var finishedAt int64
		if err := rows.Scan(
			&run.ID,
			&run.Seed,
			&run.Outcome,
			&run.Depth,
			&run.Turns,
			&run.Kills,
			&run.Attacks,
			&run.DamageDealt,
			&run.DamageTaken,
			&run.ItemsUsed,
			&run.Moves,
			&run.Gold,
			&finishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.FinishedAt = fromMillis(finishedAt)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
