// Package expr builds and renders single-table SELECT queries as
// structure-first skeletons.
//
// Rendering separates query structure from values: Render produces a
// skeleton whose value positions are neutral bind markers plus an aligned
// parameter list, and Finalize later lowers that pair to dialect SQL,
// expanding collection parameters into one marker per element.
package expr
