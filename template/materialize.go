package template

import (
	"context"
	"fmt"

	"github.com/jonwraymond/preparedq/expr"
	"github.com/jonwraymond/preparedq/lazy"
)

// Materialize resolves t's slots against the scope active on ctx and
// produces an executable statement.
//
// Literal slots replay their captured constants; FromArg slots read the
// value currently bound to their argument name. Collection values expand
// here, one driver marker per element, so a single template serves IN
// lists of any length. Resolution is by name: pairing a template with a
// scope of the matching shape is the caller's job, normally done by
// keying the cache with shape.KeyFor.
func Materialize(ctx context.Context, t *Template) (*Statement, error) {
	if t == nil {
		return nil, ErrNilTemplate
	}
	sc, ok := lazy.FromContext(ctx)
	if !ok || sc.Released() {
		return nil, &StaleContextError{Query: t.name}
	}

	params := make([]any, len(t.slots))
	var missing []string
	for i, sl := range t.slots {
		switch sl.Kind {
		case SlotLiteral:
			params[i] = sl.Value
		case SlotFromArg:
			v, bound := sc.Lookup(sl.Arg)
			if !bound {
				missing = appendUnique(missing, sl.Arg)
				continue
			}
			params[i] = v
		}
	}
	if len(missing) > 0 {
		return nil, &StaleContextError{Query: t.name, Missing: missing}
	}

	sql, args, err := expr.Finalize(t.skeleton, params, t.dialect)
	if err != nil {
		return nil, fmt.Errorf("template: materialize %s: %w", t.name, err)
	}
	return &Statement{SQL: sql, Args: args}, nil
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
