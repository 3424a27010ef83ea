package sqlmarkup

import (
	"context"
	"database/sql"
)

// Executor is the subset of *sql.DB and *sql.Tx used to run compiled statements.
type Executor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// ContextExecutor is an Executor accepting a context, such as *sql.DB or *sql.Tx.
// Stmt methods prefer it when given a non-nil context.
type ContextExecutor interface {
	Executor

	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// contextual returns db as a ContextExecutor when ctx should be passed along.
func contextual(ctx context.Context, db Executor) (ContextExecutor, bool) {
	if ctx == nil {
		return nil, false
	}
	ce, ok := db.(ContextExecutor)
	return ce, ok
}

/*
Query runs the statement and invokes handler once per result row.

Columns are scanned into the targets given to To before handler is called,
so handler may only copy them. Without targets handler is free to call
rows.Scan itself. A nil ctx skips the context-aware driver methods.

Driver errors reach the caller unwrapped.
*/
func (q *Stmt) Query(ctx context.Context, db Executor, handler func(rows *sql.Rows)) error {
	var (
		rows *sql.Rows
		err  error
	)
	if ce, ok := contextual(ctx, db); ok {
		rows, err = ce.QueryContext(ctx, q.String(), q.Args()...)
	} else {
		rows, err = db.Query(q.String(), q.Args()...)
	}
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if len(q.dest) > 0 {
			if err := rows.Scan(q.dest...); err != nil {
				return err
			}
		}
		handler(rows)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return rows.Close()
}

// QueryRow fetches one row into the To targets. sql.ErrNoRows is returned for an empty result.
func (q *Stmt) QueryRow(ctx context.Context, db Executor) error {
	if ce, ok := contextual(ctx, db); ok {
		return ce.QueryRowContext(ctx, q.String(), q.Args()...).Scan(q.dest...)
	}
	return db.QueryRow(q.String(), q.Args()...).Scan(q.dest...)
}

// Exec runs a statement that returns no rows.
func (q *Stmt) Exec(ctx context.Context, db Executor) (sql.Result, error) {
	if ce, ok := contextual(ctx, db); ok {
		return ce.ExecContext(ctx, q.String(), q.Args()...)
	}
	return db.Exec(q.String(), q.Args()...)
}
