// Package cache stores built query templates keyed by argument shape.
//
// Hits are served from a read-locked map. Concurrent first requests for
// the same shape collapse into a single build: exactly one caller runs
// the builder while the rest wait for its result. A failed build is
// never stored, so the next call for that shape builds again.
package cache
