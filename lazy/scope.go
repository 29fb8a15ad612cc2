package lazy

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Scope holds one call's bound arguments and the placeholders that stand
// in for them.
//
// Contract:
// - Concurrency: a Scope is safe for concurrent reads; Exit may race
//   with readers and wins.
// - Ownership: Args, Placeholders, and Names return copies; mutating
//   them never affects the scope.
// - Lifetime: after Exit every lookup and reveal against the scope
//   fails. Exit is idempotent.
type Scope struct {
	id       uuid.UUID
	args     map[string]any
	phs      map[string]*Value
	names    []string
	released atomic.Bool
}

type ctxKey struct{}

// Enter binds args into a new scope after running the normalizers in
// order, and returns a context carrying the scope.
//
// Normalizers receive a private copy of args, may mutate it, and return
// the map to bind; an error from any normalizer aborts the whole call
// and nothing is bound. After normalization every value must be of a
// bindable kind: nil, bool, integer, unsigned, float, string, time.Time,
// []byte, or a non-empty slice or array of those scalars.
func Enter(ctx context.Context, args map[string]any, normalizers ...Normalizer) (context.Context, *Scope, error) {
	bound := make(map[string]any, len(args))
	for name, v := range args {
		bound[name] = v
	}
	var err error
	for _, n := range normalizers {
		if bound, err = n(bound); err != nil {
			return nil, nil, err
		}
	}
	for name, v := range bound {
		if err := checkBindable(name, v); err != nil {
			return nil, nil, err
		}
	}

	s := &Scope{
		id:   uuid.New(),
		args: bound,
		phs:  make(map[string]*Value, len(bound)),
	}
	names := make([]string, 0, len(bound))
	for name := range bound {
		names = append(names, name)
		s.phs[name] = &Value{name: name, scope: s}
	}
	sort.Strings(names)
	s.names = names

	return context.WithValue(ctx, ctxKey{}, s), s, nil
}

// FromContext returns the innermost scope carried by ctx.
func FromContext(ctx context.Context) (*Scope, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Scope)
	return s, ok
}

// ID returns the scope's unique identity.
func (s *Scope) ID() uuid.UUID { return s.id }

// Names returns the bound argument names, sorted.
func (s *Scope) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Args returns a copy of the bound argument values.
func (s *Scope) Args() map[string]any {
	out := make(map[string]any, len(s.args))
	for name, v := range s.args {
		out[name] = v
	}
	return out
}

// Placeholders returns the scope's placeholders keyed by argument name,
// typed for passing straight to a query builder in place of Args.
func (s *Scope) Placeholders() map[string]any {
	out := make(map[string]any, len(s.phs))
	for name, ph := range s.phs {
		out[name] = ph
	}
	return out
}

// Lookup returns the value bound to name. It reports false when the name
// is unbound or the scope has exited.
func (s *Scope) Lookup(name string) (any, bool) {
	if s.released.Load() {
		return nil, false
	}
	v, ok := s.args[name]
	return v, ok
}

// Released reports whether Exit has been called.
func (s *Scope) Released() bool { return s.released.Load() }

// Exit releases the scope. Placeholders owned by it stop resolving and
// Lookup stops answering. Exit is safe to call more than once.
func (s *Scope) Exit() { s.released.Store(true) }

// checkBindable rejects values that have no defined SQL binding.
func checkBindable(name string, v any) error {
	if v == nil {
		return nil
	}
	if isScalar(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k == reflect.Slice || k == reflect.Array {
		if rv.Len() == 0 {
			return fmt.Errorf("%w: %q", ErrEmptyCollection, name)
		}
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i).Interface()
			if el == nil || isScalar(el) {
				continue
			}
			return fmt.Errorf("%w: %q contains %T", ErrOpaqueArgument, name, el)
		}
		return nil
	}
	return fmt.Errorf("%w: %q is %T", ErrOpaqueArgument, name, v)
}

func isScalar(v any) bool {
	switch v.(type) {
	case time.Time, []byte:
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	}
	return false
}
