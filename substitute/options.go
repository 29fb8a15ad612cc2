package substitute

import (
	"github.com/jonwraymond/preparedq/cache"
	"github.com/jonwraymond/preparedq/expr"
	"github.com/jonwraymond/preparedq/observe"
	"github.com/jonwraymond/preparedq/template"
)

// Option configures a Substituter.
type Option func(*Substituter)

// WithCache stores templates in c instead of a private unbounded cache.
// Sharing one cache between substituters is safe: keys carry the query
// name, so entries never collide across queries.
func WithCache(c cache.Cache) Option {
	return func(s *Substituter) {
		s.cache = c
	}
}

// WithDialect renders and binds statements for d. The default is MySQL.
func WithDialect(d expr.Dialect) Option {
	return func(s *Substituter) {
		s.dialect = d
	}
}

// WithValidation toggles the concrete verification run that accompanies
// every template build. It is on by default; turning it off trusts the
// builder to be shape-deterministic and builds each template once.
func WithValidation(on bool) Option {
	return func(s *Substituter) {
		s.validate = on
	}
}

// WithRecheck re-verifies every cache hit against a fresh concrete build
// of the query. This is a debugging aid for builders suspected of
// drifting after their first build; it costs a full build per call and
// implies validation.
func WithRecheck(on bool) Option {
	return func(s *Substituter) {
		s.recheck = on
	}
}

// Disabled bypasses memoization entirely. Every call builds the query
// concretely and nothing is cached or verified.
func Disabled(on bool) Option {
	return func(s *Substituter) {
		s.disabled = on
	}
}

// WithVerifier selects the skeleton comparison strategy used during
// validation. The default is template.StructuralVerifier.
func WithVerifier(v template.Verifier) Option {
	return func(s *Substituter) {
		s.verifier = v
	}
}

// WithObserver wires build and lookup lifecycle hooks for tracing,
// metrics, and logging. The default observer discards everything.
func WithObserver(h observe.Hooks) Option {
	return func(s *Substituter) {
		s.hooks = h
	}
}
