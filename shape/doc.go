// Package shape classifies argument values into the coarse equivalence
// classes that decide which cached query template a call maps to.
//
// Two calls whose arguments classify identically are assumed to walk the
// same branches of a deterministic query builder and may share a
// template. The classes deliberately mirror the values branch conditions
// usually test: nil, the two booleans, zero, one, and everything else.
package shape
