package expr

import (
	"strconv"
	"strings"
)

// Dialect selects identifier quoting in skeletons and, at Finalize time,
// the bind marker syntax of the generated SQL.
type Dialect string

// Supported dialects.
const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Marker is the neutral bind marker used in skeletons for every dialect.
// Finalize rewrites markers to the dialect's native syntax.
const Marker = '?'

// Valid reports whether d is a dialect this package can render.
func (d Dialect) Valid() bool {
	switch d {
	case MySQL, Postgres, SQLite:
		return true
	}
	return false
}

// bindVar returns the native bind marker for 1-based parameter position n.
func bindVar(d Dialect, n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// quoteTo appends the quoted form of a possibly dotted identifier.
func quoteTo(sb *strings.Builder, d Dialect, ident string) {
	q := byte('"')
	if d == MySQL {
		q = '`'
	}
	for i, part := range strings.Split(ident, ".") {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteByte(q)
		sb.WriteString(part)
		sb.WriteByte(q)
	}
}

// validIdent reports whether ident is safe to quote into SQL text.
// Identifiers must not contain quote characters, bind markers, statement
// separators, or control characters and spaces.
func validIdent(ident string) bool {
	if ident == "" {
		return false
	}
	for _, part := range strings.Split(ident, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			switch {
			case r <= ' ':
				return false
			case r == Marker, r == '`', r == '"', r == '\'', r == ';':
				return false
			}
		}
	}
	return true
}
