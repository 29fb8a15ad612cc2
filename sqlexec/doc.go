// Package sqlexec executes materialized statements against a database.
//
// The memoization core stops at *template.Statement; this package is the
// bridge to database/sql via sqlx. Statements pass through verbatim, SQL
// text and arguments untouched, so anything proven by validation holds
// for what the driver receives.
package sqlexec
