package expr

import (
	"fmt"
	"reflect"
	"strings"
)

// Finalize turns a skeleton and its parameters into executable SQL.
//
// Each neutral marker is rewritten to the dialect's native syntax.
// Collection parameters expand in place: the single marker they occupy
// becomes one marker per element and the elements are appended to the
// flattened argument list. Postgres positions are numbered after
// expansion, so a cached skeleton never encodes a collection's length.
func Finalize(skeleton string, params []any, d Dialect) (string, []any, error) {
	if !d.Valid() {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownDialect, string(d))
	}
	var sb strings.Builder
	sb.Grow(len(skeleton) + 4*len(params))
	args := make([]any, 0, len(params))
	next := 0 // parameters consumed
	pos := 0  // native markers written, for $N numbering
	for _, c := range skeleton {
		if c != Marker {
			sb.WriteRune(c)
			continue
		}
		if next >= len(params) {
			return "", nil, fmt.Errorf("%w: marker %d has no parameter", ErrParamMismatch, next+1)
		}
		v := params[next]
		next++
		elems, ok := collection(v)
		if !ok {
			pos++
			sb.WriteString(bindVar(d, pos))
			args = append(args, v)
			continue
		}
		if len(elems) == 0 {
			return "", nil, fmt.Errorf("%w: parameter %d", ErrEmptyIn, next-1)
		}
		for i, el := range elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			pos++
			sb.WriteString(bindVar(d, pos))
			args = append(args, el)
		}
	}
	if next != len(params) {
		return "", nil, fmt.Errorf("%w: %d markers for %d parameters", ErrParamMismatch, next, len(params))
	}
	return sb.String(), args, nil
}

// collection flattens v to its elements when v is a slice or array.
// []byte stays a scalar: drivers bind it as a single blob value.
func collection(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if _, ok := v.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, false
	}
	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}
	return elems, true
}
