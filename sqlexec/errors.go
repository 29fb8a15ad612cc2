package sqlexec

import "errors"

var (
	// ErrNilDB is returned when the database handle is nil or unopened.
	ErrNilDB = errors.New("sqlexec: database handle is nil")

	// ErrNilStatement is returned when a nil statement is executed.
	ErrNilStatement = errors.New("sqlexec: statement is nil")
)
