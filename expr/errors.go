package expr

import "errors"

var (
	// ErrNilQuery indicates Render was given a nil query.
	ErrNilQuery = errors.New("expr: query is nil")

	// ErrUnknownDialect indicates a dialect this package does not render.
	ErrUnknownDialect = errors.New("expr: unknown dialect")

	// ErrBadIdentifier indicates a table or column name unsafe to quote.
	ErrBadIdentifier = errors.New("expr: invalid identifier")

	// ErrEmptyIn indicates a collection parameter with no elements.
	// SQL has no empty IN list, so the query cannot be finalized.
	ErrEmptyIn = errors.New("expr: empty collection in IN clause")

	// ErrParamMismatch indicates skeleton markers and parameters disagree
	// in count. A skeleton and its parameter list only ever travel as a
	// pair, so a mismatch means the pair was corrupted after rendering.
	ErrParamMismatch = errors.New("expr: marker and parameter counts disagree")
)
