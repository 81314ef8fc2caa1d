package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/clinicdir"
	"github.com/google/uuid"
)

var _ clinicdir.RunService = (*RunService)(nil)

// RunService implements clinicdir.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun creates a new run.
func (s *RunService) CreateRun(ctx context.Context, run *clinicdir.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, base_url, started_at)
		VALUES (?, ?, ?)
	`, run.ID, run.BaseURL, run.StartedAt.Format(timeFormat))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*clinicdir.Run, error) {
	var run clinicdir.Run
	var startedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, base_url, started_at
		FROM runs
		WHERE id = ?
	`, id).Scan(&run.ID, &run.BaseURL, &startedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, clinicdir.Errorf(clinicdir.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}

	return &run, nil
}

// FindRuns retrieves runs, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter clinicdir.RunFilter) ([]*clinicdir.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, base_url, started_at FROM runs ORDER BY started_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*clinicdir.Run
	for rows.Next() {
		var run clinicdir.Run
		var startedAt string

		if err := rows.Scan(&run.ID, &run.BaseURL, &startedAt); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
