package sqlexec

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonwraymond/preparedq/template"
)

// DB executes statements against one database handle.
//
// Contract:
//   - Concurrency: safe for concurrent use; the underlying pool shares
//     connections across goroutines.
//   - Context: every execution method takes ctx and honors cancellation.
//   - Errors: ErrNilDB and ErrNilStatement for misuse; driver errors
//     pass through verbatim.
type DB struct {
	db *sqlx.DB
}

// Open connects with the named driver and verifies the connection.
func Open(driver, dsn string) (*DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlexec: connect %s: %w", driver, err)
	}
	return &DB{db: db}, nil
}

// Wrap adopts an existing sqlx handle, sharing its connection pool.
func Wrap(db *sqlx.DB) *DB {
	return &DB{db: db}
}

// Unwrap returns the underlying sqlx handle, or nil before Open.
func (d *DB) Unwrap() *sqlx.DB {
	if d == nil {
		return nil
	}
	return d.db
}

// Query runs st and returns its rows.
func (d *DB) Query(ctx context.Context, st *template.Statement) (*sqlx.Rows, error) {
	if err := d.guard(st); err != nil {
		return nil, err
	}
	return d.db.QueryxContext(ctx, st.SQL, st.Args...)
}

// Select runs st and scans every row into dest, a pointer to a slice.
func (d *DB) Select(ctx context.Context, dest any, st *template.Statement) error {
	if err := d.guard(st); err != nil {
		return err
	}
	return d.db.SelectContext(ctx, dest, st.SQL, st.Args...)
}

// Get runs st and scans its first row into dest. With no rows it
// returns sql.ErrNoRows.
func (d *DB) Get(ctx context.Context, dest any, st *template.Statement) error {
	if err := d.guard(st); err != nil {
		return err
	}
	return d.db.GetContext(ctx, dest, st.SQL, st.Args...)
}

// Exec runs st without reading rows back.
func (d *DB) Exec(ctx context.Context, st *template.Statement) (sql.Result, error) {
	if err := d.guard(st); err != nil {
		return nil, err
	}
	return d.db.ExecContext(ctx, st.SQL, st.Args...)
}

// Ping verifies the connection is alive.
func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.db == nil {
		return ErrNilDB
	}
	return d.db.PingContext(ctx)
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return ErrNilDB
	}
	return d.db.Close()
}

func (d *DB) guard(st *template.Statement) error {
	if d == nil || d.db == nil {
		return ErrNilDB
	}
	if st == nil {
		return ErrNilStatement
	}
	return nil
}
