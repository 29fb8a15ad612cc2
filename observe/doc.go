// Package observe provides observability primitives for query template
// builds and lookups.
//
// It is a pure instrumentation library: no query building, no SQL, no I/O
// beyond exporter setup. Consumers wire Hooks into a substitute.Substituter
// or call the tracer, metrics, and logger directly.
package observe
