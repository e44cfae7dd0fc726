package output

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/CTAG07/ryazon/pkg/markov"
)

// successKind is stored in the kind column for results that hold text.
const successKind = "Success"

// SetupSchema creates the results log tables. It is idempotent and safe to
// call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaRuns = `
CREATE TABLE IF NOT EXISTS ryazon_runs (
    run_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    result_count INTEGER NOT NULL
);
`
		schemaResults = `
CREATE TABLE IF NOT EXISTS ryazon_results (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    kind TEXT NOT NULL,
    text TEXT NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (run_id, position)
);
`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaRuns); err != nil {
		return fmt.Errorf("could not create runs schema: %w", err)
	}
	if _, err = tx.Exec(schemaResults); err != nil {
		return fmt.Errorf("could not create results schema: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// SQLiteSink appends each run to the results log. The schema must exist;
// see SetupSchema.
type SQLiteSink struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteSink creates a sink writing to db.
func NewSQLiteSink(db *sql.DB) *SQLiteSink {
	return &SQLiteSink{db: db, now: time.Now}
}

func (s *SQLiteSink) Write(ctx context.Context, results []markov.Result) error {
	_, err := s.WriteRun(ctx, results)
	return err
}

// WriteRun stores results as a new run in a single transaction and returns
// the run's id.
func (s *SQLiteSink) WriteRun(ctx context.Context, results []markov.Result) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", markov.NewIOError(fmt.Errorf("could not begin transaction for run: %w", err))
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.ExecContext(ctx,
		"INSERT INTO ryazon_runs (run_id, created_at, result_count) VALUES (?, ?, ?)",
		runID, s.now().UTC().Format(time.RFC3339Nano), len(results)); err != nil {
		return "", markov.NewIOError(fmt.Errorf("failed to insert run %s: %w", runID, err))
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO ryazon_results (run_id, position, kind, text, detail) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return "", markov.NewIOError(fmt.Errorf("failed to prepare result insert statement: %w", err))
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmt)

	for i, r := range results {
		kind, detail := successKind, ""
		if r.Err != nil {
			kind, detail = r.Err.Kind.String(), r.Err.Detail
		}
		if _, err = stmt.ExecContext(ctx, runID, i, kind, r.Text, detail); err != nil {
			return "", markov.NewIOError(fmt.Errorf("failed to insert result %d of run %s: %w", i, runID, err))
		}
	}

	if err = tx.Commit(); err != nil {
		return "", markov.NewIOError(fmt.Errorf("could not commit run %s: %w", runID, err))
	}
	return runID, nil
}

// LoadRun reads back the results of a stored run in their original order.
func (s *SQLiteSink) LoadRun(ctx context.Context, runID string) ([]markov.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, text, detail FROM ryazon_results WHERE run_id = ? ORDER BY position", runID)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var results []markov.Result
	for rows.Next() {
		var kindName, text, detail string
		if err = rows.Scan(&kindName, &text, &detail); err != nil {
			return nil, err
		}
		if kindName == successKind {
			results = append(results, markov.Result{Text: text})
			continue
		}
		kind, ok := markov.ParseKind(kindName)
		if !ok {
			return nil, fmt.Errorf("unknown result kind %q in run %s", kindName, runID)
		}
		results = append(results, markov.Result{Err: &markov.Error{Kind: kind, Detail: detail}})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
