// Package template turns one run of a query builder into a reusable
// query template and materializes cached templates against fresh
// arguments.
//
// A build runs the builder twice over the same scope: once with
// placeholders to capture structure, once with the real values to check
// that both runs agree. Agreement is required because a template built
// from one call will answer every later call with the same argument
// shape; a builder that branches on information placeholders cannot see
// would silently serve wrong queries, so the disagreement is surfaced as
// a DivergenceError instead.
//
// Templates store positional slots rather than placeholders: a slot is
// either a literal captured at build time or a reference to an argument
// name resolved at materialize time.
package template
