package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultLimit = 50
	maxLimit     = 200

	// timeLayout is fixed width so created_at sorts as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Repository defines the operations on sizing runs.
type Repository interface {
	Create(ctx context.Context, run *Run) error
	Complete(ctx context.Context, id string, result any) error
	Fail(ctx context.Context, id string, cause error) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores runs in SQLite.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository creates a run repository on a migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// Create inserts a new running run. The ID and CreatedAt are generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = r.now().UTC()
	}
	run.Status = StatusRunning

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sizing_runs (id, building, building_type, source, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Building, run.BuildingType, string(run.Source), string(run.Status),
		run.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting sizing run: %w", err)
	}
	return nil
}

// Complete marks a running run as succeeded and stores result as JSON.
func (r *SQLiteRepository) Complete(ctx context.Context, id string, result any) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshalling sizing result: %w", err)
	}
	return r.finish(ctx, id, StatusSucceeded, "", string(data))
}

// Fail marks a running run as failed with the error text of cause.
func (r *SQLiteRepository) Fail(ctx context.Context, id string, cause error) error {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return r.finish(ctx, id, StatusFailed, msg, nil)
}

func (r *SQLiteRepository) finish(ctx context.Context, id string, status Status, errText string, result any) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sizing_runs SET status = ?, error = ?, result = ?, completed_at = ?
		 WHERE id = ? AND status = ?`,
		string(status), errText, result, r.now().UTC().Format(timeLayout),
		id, string(StatusRunning),
	)
	if err != nil {
		return fmt.Errorf("updating sizing run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Either the run does not exist or it already finished.
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", ErrRunFinished, id)
}

// Get returns the run with the given ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, building, building_type, source, status, error, result, created_at, completed_at
		 FROM sizing_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns runs matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conditions []string
	var args []any
	if filter.Building != "" {
		conditions = append(conditions, "building = ?")
		args = append(args, filter.Building)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sizing_runs %s", where) //nolint:gosec // WHERE built from parameterised conditions, not user input
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting sizing runs: %w", err)
	}

	query := fmt.Sprintf( //nolint:gosec // WHERE built from parameterised conditions, not user input
		`SELECT id, building, building_type, source, status, error, result, created_at, completed_at
		 FROM sizing_runs %s ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		where,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sizing runs: %w", err)
	}
	defer rows.Close()

	list := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sizing runs: %w", err)
	}

	return &ListResult{Runs: list, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var run Run
	var source, status, createdAt string
	var result, completedAt sql.NullString

	if err := s.Scan(&run.ID, &run.Building, &run.BuildingType, &source, &status,
		&run.Error, &result, &createdAt, &completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning sizing run: %w", err)
	}
	run.Source = Source(source)
	run.Status = Status(status)

	if result.Valid {
		run.Result = json.RawMessage(result.String)
	}

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = t

	if completedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_at %q: %w", completedAt.String, err)
		}
		run.CompletedAt = &t
	}

	return &run, nil
}
