package template

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/jonwraymond/preparedq/expr"
	"github.com/jonwraymond/preparedq/lazy"
	"github.com/jonwraymond/preparedq/shape"
)

// Builder configures template construction for one named query builder.
type Builder struct {
	// Name labels the builder in keys, errors, and telemetry.
	Name string

	// Fn is the deterministic query builder under memoization.
	Fn BuilderFunc

	// Dialect fixes identifier quoting for every statement the template
	// will produce.
	Dialect expr.Dialect

	// SkipValidation builds from the placeholder run alone, without the
	// concrete comparison run. Contract violations then go undetected,
	// so this is only for builders already proven elsewhere.
	SkipValidation bool

	// Verifier checks skeleton equivalence between the two runs. Nil
	// selects StructuralVerifier.
	Verifier Verifier
}

// Build runs the builder against sc and returns a validated template.
//
// ctx must be the context returned by the Enter that created sc; the
// builder's own reveals resolve through it. Builder errors propagate
// unchanged and nothing is produced. A validated build runs Fn twice,
// first over placeholders and then over the real values, and the two
// runs must agree on structure and on every parameter.
func (b Builder) Build(ctx context.Context, sc *lazy.Scope) (*Template, error) {
	if b.Fn == nil {
		return nil, ErrNilBuilder
	}
	if b.Name == "" {
		return nil, ErrMissingName
	}
	if sc == nil {
		return nil, ErrNilScope
	}
	if sc.Released() {
		return nil, &StaleContextError{Query: b.Name}
	}
	if active, ok := lazy.FromContext(ctx); !ok || active != sc {
		return nil, fmt.Errorf("%w: %s", ErrScopeMismatch, b.Name)
	}

	lazyQ, err := b.Fn(ctx, sc.Placeholders())
	if err != nil {
		return nil, err
	}
	skeleton, lazyParams, err := expr.Render(lazyQ, b.Dialect)
	if err != nil {
		return nil, fmt.Errorf("template: build %s: %w", b.Name, err)
	}

	var concParams []any
	if !b.SkipValidation {
		concQ, err := b.Fn(ctx, sc.Args())
		if err != nil {
			return nil, err
		}
		concSkel, params, err := expr.Render(concQ, b.Dialect)
		if err != nil {
			return nil, fmt.Errorf("template: build %s: %w", b.Name, err)
		}
		verifier := b.Verifier
		if verifier == nil {
			verifier = StructuralVerifier{}
		}
		if err := verifier.Verify(b.Name, skeleton, concSkel); err != nil {
			return nil, err
		}
		if len(params) != len(lazyParams) {
			return nil, &DivergenceError{
				Query:    b.Name,
				Phase:    PhaseBuild,
				Position: -1,
				Lazy:     paramSummary(lazyParams),
				Concrete: paramSummary(params),
				Diff:     fmt.Sprintf("parameter count %d vs %d", len(lazyParams), len(params)),
			}
		}
		concParams = params
	}

	slots := make([]Slot, len(lazyParams))
	for i, p := range lazyParams {
		ph, isPh := p.(*lazy.Value)
		if isPh {
			slots[i] = FromArg(ph.Name())
		} else {
			slots[i] = Literal(p)
		}
		if b.SkipValidation {
			continue
		}
		conc := concParams[i]
		if isPh {
			revealed, err := ph.Reveal(ctx)
			if err != nil {
				return nil, err
			}
			if !cmp.Equal(conc, revealed) {
				return nil, &DivergenceError{
					Query:    b.Name,
					Phase:    PhaseBuild,
					Arg:      ph.Name(),
					Position: i,
					Lazy:     fmt.Sprintf("%#v", revealed),
					Concrete: fmt.Sprintf("%#v", conc),
					Diff:     cmp.Diff(conc, revealed),
				}
			}
			continue
		}
		if !cmp.Equal(p, conc) {
			return nil, &DivergenceError{
				Query:    b.Name,
				Phase:    PhaseBuild,
				Position: i,
				Lazy:     fmt.Sprintf("%#v", p),
				Concrete: fmt.Sprintf("%#v", conc),
				Diff:     cmp.Diff(conc, p),
			}
		}
	}

	return &Template{
		name:     b.Name,
		key:      shape.KeyFor(b.Name, sc.Args()),
		dialect:  b.Dialect,
		skeleton: skeleton,
		slots:    slots,
	}, nil
}

// paramSummary renders a parameter list for error fields without
// revealing placeholder-bound values.
func paramSummary(params []any) string {
	out := make([]string, len(params))
	for i, p := range params {
		if ph, ok := p.(*lazy.Value); ok {
			out[i] = ph.String()
			continue
		}
		out[i] = fmt.Sprintf("%#v", p)
	}
	return fmt.Sprintf("%d params %v", len(params), out)
}
