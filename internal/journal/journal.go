// Package journal records past archpatch runs. It is write-only from the
// point of view of a run: nothing here decides what a run does.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Run is one invocation of the patch sequence.
type Run struct {
	StartedAt  time.Time
	FinishedAt time.Time
	ID         string
	Root       string
	Status     string
	Error      string
	DryRun     bool
}

// StepRecord is one rule applied during a run.
type StepRecord struct {
	Label   string
	Rule    string
	Path    string
	Changed bool
}

// Journal stores runs in the archpatch database.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a journal over an open database
func New(db *sql.DB) *Journal {
	return &Journal{db: db, now: time.Now}
}

// Start inserts a new running run and returns it. An empty id gets a fresh UUID.
func (j *Journal) Start(ctx context.Context, id, root string, dryRun bool) (Run, error) {
	if id == "" {
		id = uuid.NewString()
	}
	run := Run{
		ID:        id,
		Root:      root,
		DryRun:    dryRun,
		Status:    StatusRunning,
		StartedAt: j.now().UTC(),
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO runs (id, root, dry_run, status, started_at) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Root, run.DryRun, run.Status, run.StartedAt.UnixNano())
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run start: %w", err)
	}
	return run, nil
}

// RecordStep appends a step to a run.
func (j *Journal) RecordStep(ctx context.Context, runID string, step StepRecord) error {
	_, err := j.db.ExecContext(ctx,
		"INSERT INTO steps (run_id, label, rule, path, changed) VALUES (?, ?, ?, ?, ?)",
		runID, step.Label, step.Rule, step.Path, step.Changed)
	if err != nil {
		return fmt.Errorf("failed to record step %s: %w", step.Rule, err)
	}
	return nil
}

// Finish marks a run succeeded, or failed when runErr is non-nil.
func (j *Journal) Finish(ctx context.Context, runID string, runErr error) error {
	status, message := StatusSucceeded, ""
	if runErr != nil {
		status, message = StatusFailed, runErr.Error()
	}

	_, err := j.db.ExecContext(ctx,
		"UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?",
		status, message, j.now().UTC().UnixNano(), runID)
	if err != nil {
		return fmt.Errorf("failed to record run finish: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, root, dry_run, status, error, started_at, COALESCE(finished_at, 0)
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished int64
		)
		if err := rows.Scan(&run.ID, &run.Root, &run.DryRun, &run.Status, &run.Error, &started, &finished); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = time.Unix(0, started).UTC()
		if finished != 0 {
			run.FinishedAt = time.Unix(0, finished).UTC()
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

// Steps returns the steps recorded for a run in the order they ran.
func (j *Journal) Steps(ctx context.Context, runID string) ([]StepRecord, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT label, rule, path, changed FROM steps WHERE run_id = ? ORDER BY id", runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query steps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var steps []StepRecord
	for rows.Next() {
		var step StepRecord
		if err := rows.Scan(&step.Label, &step.Rule, &step.Path, &step.Changed); err != nil {
			return nil, fmt.Errorf("failed to scan step: %w", err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read steps: %w", err)
	}
	return steps, nil
}
