package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/seekplan/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Each pooled connection to ":memory:" would get its own empty database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// timeLayout is fixed width so created_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const runColumns = `id, label, policy, requests, head, previous, disk_size, direction, total_movement, sequence, created_at`

func (s *SQLiteStore) CreateRun(ctx context.Context, run *model.Run) error {
	s.logger.Debug("sql", "op", "insert", "table", "runs", "id", run.ID)

	requestsJSON, err := json.Marshal(nonNil(run.Requests))
	if err != nil {
		return fmt.Errorf("marshal requests: %w", err)
	}
	sequenceJSON, err := json.Marshal(nonNil(run.Result.Sequence))
	if err != nil {
		return fmt.Errorf("marshal sequence: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Label, string(run.Policy), string(requestsJSON),
		run.Head, run.Previous, run.DiskSize, string(run.Direction),
		run.Result.TotalMovement, string(sequenceJSON),
		run.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	s.logger.Debug("sql", "op", "select", "table", "runs", "id", id)

	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

func (s *SQLiteStore) LatestRun(ctx context.Context, policy model.Policy) (*model.Run, error) {
	s.logger.Debug("sql", "op", "select_latest", "table", "runs", "policy", policy)

	row := s.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE policy = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`, string(policy))
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return run, err
}

func (s *SQLiteStore) ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error) {
	s.logger.Debug("sql", "op", "list", "table", "runs", "limit", opts.Limit, "offset", opts.Offset, "policy", opts.Policy)
	opts.Clamp()

	where := ""
	args := []any{}
	if opts.Policy != "" {
		where = " WHERE policy = ?"
		args = append(args, string(opts.Policy))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs`+where+` ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		append(args, opts.Limit, opts.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, 0, err
		}
		runs = append(runs, run)
	}
	return runs, total, rows.Err()
}

func (s *SQLiteStore) DeleteRun(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "runs", "id", id)

	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.NewNotFoundError("run", id)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var run model.Run
	var policy, direction, requestsJSON, sequenceJSON, createdAt string

	if err := row.Scan(&run.ID, &run.Label, &policy, &requestsJSON,
		&run.Head, &run.Previous, &run.DiskSize, &direction,
		&run.Result.TotalMovement, &sequenceJSON, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(requestsJSON), &run.Requests); err != nil {
		return nil, fmt.Errorf("unmarshal requests: %w", err)
	}
	if err := json.Unmarshal([]byte(sequenceJSON), &run.Result.Sequence); err != nil {
		return nil, fmt.Errorf("unmarshal sequence: %w", err)
	}
	run.Policy = model.Policy(policy)
	run.Direction = model.Direction(direction)
	run.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	return &run, nil
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
