package substitute

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/jonwraymond/preparedq/cache"
	"github.com/jonwraymond/preparedq/expr"
	"github.com/jonwraymond/preparedq/lazy"
	"github.com/jonwraymond/preparedq/observe"
	"github.com/jonwraymond/preparedq/shape"
	"github.com/jonwraymond/preparedq/template"
)

// Substituter memoizes one named builder function by argument shape.
//
// Contract:
//   - Concurrency: safe for concurrent use. Concurrent first calls for
//     the same shape collapse into a single build.
//   - Context: Do requires a live resolution scope on ctx; Call enters
//     and exits one around the lookup.
//   - Errors: *template.StaleContextError without a scope,
//     ErrArgsMismatch when the argument names diverge from the scope,
//     *template.DivergenceError when validation or recheck fails, and
//     builder errors verbatim.
type Substituter struct {
	name     string
	fn       template.BuilderFunc
	dialect  expr.Dialect
	cache    cache.Cache
	hooks    observe.Hooks
	verifier template.Verifier
	validate bool
	recheck  bool
	disabled bool
}

// New creates a Substituter for the named builder function. Defaults:
// MySQL dialect, a private unbounded cache, validation on, recheck off.
func New(name string, fn template.BuilderFunc, opts ...Option) (*Substituter, error) {
	s := &Substituter{
		name:     name,
		fn:       fn,
		dialect:  expr.MySQL,
		cache:    cache.NewMemoryCache(cache.DefaultPolicy()),
		hooks:    observe.NopHooks{},
		validate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.name == "" {
		return nil, ErrMissingName
	}
	if s.fn == nil {
		return nil, ErrNilBuilderFunc
	}
	if !s.dialect.Valid() {
		return nil, fmt.Errorf("%w: %q", expr.ErrUnknownDialect, string(s.dialect))
	}
	if s.cache == nil {
		return nil, ErrNilCache
	}
	if s.hooks == nil {
		s.hooks = observe.NopHooks{}
	}
	if s.recheck {
		s.validate = true
	}
	return s, nil
}

// Name reports the query name the substituter was created with.
func (s *Substituter) Name() string { return s.name }

// Dialect reports the dialect statements are rendered for.
func (s *Substituter) Dialect() expr.Dialect { return s.dialect }

// Cache exposes the template cache, mainly for eviction and stats.
func (s *Substituter) Cache() cache.Cache { return s.cache }

// Do materializes the statement for the arguments bound in the current
// resolution scope. args must carry the same names the scope was entered
// with; values are read from the scope, not from args.
//
// On a shape never seen before, Do builds and verifies a template under
// the caller's scope and caches it. On a known shape it binds the cached
// template to the scope's values without running the builder.
func (s *Substituter) Do(ctx context.Context, args map[string]any) (*template.Statement, error) {
	start := time.Now()

	sc, ok := lazy.FromContext(ctx)
	if !ok || sc.Released() {
		return nil, &template.StaleContextError{Query: s.name}
	}
	if err := matchScope(sc, args); err != nil {
		return nil, err
	}

	key := shape.KeyFor(s.name, sc.Args())
	meta := observe.QueryMeta{
		Name:    s.name,
		Shape:   string(key),
		Dialect: string(s.dialect),
	}

	if s.disabled {
		stmt, err := s.concrete(ctx, sc)
		s.hooks.OnLookup(ctx, meta, observe.OutcomeBypass, time.Since(start), err)
		return stmt, err
	}

	tpl, hit, err := s.cache.GetOrBuild(ctx, key, func(ctx context.Context) (*template.Template, error) {
		ctx, end := s.hooks.StartBuild(ctx, meta)
		t, berr := s.builder().Build(ctx, sc)
		end(berr)
		return t, berr
	})
	outcome := observe.OutcomeMiss
	if hit {
		outcome = observe.OutcomeHit
	}
	if err == nil {
		var stmt *template.Statement
		stmt, err = template.Materialize(ctx, tpl)
		if err == nil && hit && s.recheck {
			err = s.recheckHit(ctx, sc, stmt)
		}
		if err == nil {
			s.hooks.OnLookup(ctx, meta, outcome, time.Since(start), nil)
			return stmt, nil
		}
	}

	var derr *template.DivergenceError
	if errors.As(err, &derr) {
		s.hooks.OnDivergence(ctx, meta, err)
	}
	s.hooks.OnLookup(ctx, meta, outcome, time.Since(start), err)
	return nil, err
}

// Call enters a resolution scope for args, runs Do under it, and exits
// the scope before returning. The returned statement stays valid after
// the scope is gone.
func (s *Substituter) Call(ctx context.Context, args map[string]any, normalizers ...lazy.Normalizer) (*template.Statement, error) {
	ctx, sc, err := lazy.Enter(ctx, args, normalizers...)
	if err != nil {
		return nil, err
	}
	defer sc.Exit()
	return s.Do(ctx, sc.Args())
}

// builder assembles the template builder for one memoized build.
func (s *Substituter) builder() template.Builder {
	return template.Builder{
		Name:           s.name,
		Fn:             s.fn,
		Dialect:        s.dialect,
		SkipValidation: !s.validate,
		Verifier:       s.verifier,
	}
}

// concrete builds and finalizes the query directly from the scope's
// values, with no template involved.
func (s *Substituter) concrete(ctx context.Context, sc *lazy.Scope) (*template.Statement, error) {
	q, err := s.fn(ctx, sc.Args())
	if err != nil {
		return nil, err
	}
	skeleton, params, err := expr.Render(q, s.dialect)
	if err != nil {
		return nil, fmt.Errorf("substitute: %s: %w", s.name, err)
	}
	sql, flat, err := expr.Finalize(skeleton, params, s.dialect)
	if err != nil {
		return nil, fmt.Errorf("substitute: %s: %w", s.name, err)
	}
	return &template.Statement{SQL: sql, Args: flat}, nil
}

// recheckHit rebuilds the statement concretely and compares it with the
// one bound from the cached template.
func (s *Substituter) recheckHit(ctx context.Context, sc *lazy.Scope, stmt *template.Statement) error {
	fresh, err := s.concrete(ctx, sc)
	if err != nil {
		return err
	}
	if stmt.SQL != fresh.SQL {
		return &template.DivergenceError{
			Query:    s.name,
			Phase:    template.PhaseRecheck,
			Position: -1,
			Lazy:     stmt.SQL,
			Concrete: fresh.SQL,
			Diff:     cmp.Diff(fresh.SQL, stmt.SQL),
		}
	}
	if !cmp.Equal(fresh.Args, stmt.Args) {
		return &template.DivergenceError{
			Query:    s.name,
			Phase:    template.PhaseRecheck,
			Position: -1,
			Lazy:     fmt.Sprintf("%v", stmt.Args),
			Concrete: fmt.Sprintf("%v", fresh.Args),
			Diff:     cmp.Diff(fresh.Args, stmt.Args),
		}
	}
	return nil
}

// matchScope checks that args names the same keys the scope binds.
func matchScope(sc *lazy.Scope, args map[string]any) error {
	names := sc.Names()
	if len(args) != len(names) {
		return fmt.Errorf("%w: scope binds %v", ErrArgsMismatch, names)
	}
	for _, n := range names {
		if _, ok := args[n]; !ok {
			return fmt.Errorf("%w: scope binds %v", ErrArgsMismatch, names)
		}
	}
	return nil
}
