package template

import (
	"context"

	"github.com/jonwraymond/preparedq/expr"
	"github.com/jonwraymond/preparedq/shape"
)

// BuilderFunc is the signature of a wrapped query builder. It must be
// deterministic in its arguments: given equal argument maps it must
// produce structurally equal queries. The map holds placeholders during
// a structure run and real values during a concrete run, so builders
// branch through lazy.Truthy or lazy.Reveal rather than inspecting
// values directly.
type BuilderFunc func(ctx context.Context, args map[string]any) (*expr.Query, error)

// SlotKind discriminates the two ways a template fills a parameter.
type SlotKind uint8

const (
	// SlotLiteral replays a constant captured at build time.
	SlotLiteral SlotKind = iota

	// SlotFromArg resolves an argument name against the scope active
	// at materialize time.
	SlotFromArg
)

func (k SlotKind) String() string {
	switch k {
	case SlotLiteral:
		return "literal"
	case SlotFromArg:
		return "from_arg"
	}
	return "unknown"
}

// Slot describes one parameter position of a template.
type Slot struct {
	Kind  SlotKind
	Arg   string // argument name when Kind is SlotFromArg
	Value any    // captured constant when Kind is SlotLiteral
}

// Literal returns a slot replaying a build-time constant.
func Literal(v any) Slot { return Slot{Kind: SlotLiteral, Value: v} }

// FromArg returns a slot resolving the named argument at materialize
// time.
func FromArg(name string) Slot { return Slot{Kind: SlotFromArg, Arg: name} }

// Template is the cached product of one validated build: a dialect-bound
// skeleton plus the slot descriptors that refill its markers. Templates
// are immutable and safe to share between goroutines; they hold no
// placeholders and no reference to the scope they were built from.
type Template struct {
	name     string
	key      shape.Key
	dialect  expr.Dialect
	skeleton string
	slots    []Slot
}

// Name returns the builder name the template was built for.
func (t *Template) Name() string { return t.name }

// Key returns the argument-shape key the template answers.
func (t *Template) Key() shape.Key { return t.key }

// Dialect returns the dialect the skeleton was rendered for.
func (t *Template) Dialect() expr.Dialect { return t.dialect }

// Skeleton returns the neutral-marker SQL skeleton.
func (t *Template) Skeleton() string { return t.skeleton }

// Slots returns a copy of the template's slot descriptors in marker
// order.
func (t *Template) Slots() []Slot {
	out := make([]Slot, len(t.slots))
	copy(out, t.slots)
	return out
}

// Statement is an executable query: final SQL in the template's dialect
// plus the flattened argument list, aligned with the driver's markers.
type Statement struct {
	SQL  string
	Args []any
}
