package lazy

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// Value is a placeholder for one bound argument. It supports exactly two
// operations: identity comparison and Reveal. Everything else about the
// underlying value, including its truthiness, requires revealing it
// against the owning scope.
type Value struct {
	name  string
	scope *Scope
}

// Name returns the argument name the placeholder stands for.
func (v *Value) Name() string { return v.name }

// String identifies the placeholder without exposing the bound value.
func (v *Value) String() string { return "lazy(" + v.name + ")" }

// Equal reports placeholder identity. Two placeholders are equal only
// when they are the same placeholder.
func (v *Value) Equal(o *Value) bool { return v == o }

// Reveal returns the bound value, provided the scope active on ctx is
// the placeholder's own scope and it has not exited.
func (v *Value) Reveal(ctx context.Context) (any, error) {
	s, ok := FromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %q revealed outside any scope", ErrUnboundPlaceholder, v.name)
	}
	if s != v.scope {
		return nil, fmt.Errorf("%w: %q belongs to a different scope", ErrUnboundPlaceholder, v.name)
	}
	if s.released.Load() {
		return nil, fmt.Errorf("%w: %q scope already exited", ErrUnboundPlaceholder, v.name)
	}
	val, ok := s.args[v.name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnboundPlaceholder, v.name)
	}
	return val, nil
}

// Reveal resolves v when it is a placeholder and passes every other
// value through untouched. Builders call it so the same code path works
// during both placeholder and concrete runs.
func Reveal(ctx context.Context, v any) (any, error) {
	if ph, ok := v.(*Value); ok {
		return ph.Reveal(ctx)
	}
	return v, nil
}

// Truthy reveals v if needed and reports whether the result counts as
// set: non-nil, non-zero numbers, non-empty strings and collections,
// true booleans. Times are always truthy. Builders branch on Truthy
// instead of comparing placeholders to values directly.
func Truthy(ctx context.Context, v any) (bool, error) {
	rv, err := Reveal(ctx, v)
	if err != nil {
		return false, err
	}
	switch x := rv.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case string:
		return x != "", nil
	case time.Time:
		return true, nil
	case []byte:
		return len(x) > 0, nil
	}
	r := reflect.ValueOf(rv)
	switch r.Kind() {
	case reflect.Bool:
		return r.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return r.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return r.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return r.Float() != 0, nil
	case reflect.String:
		return r.Len() > 0, nil
	case reflect.Slice, reflect.Array, reflect.Map:
		return r.Len() > 0, nil
	}
	return true, nil
}
