package template

import (
	"errors"
	"fmt"
)

var (
	// ErrNilBuilder indicates Builder.Fn was not set.
	ErrNilBuilder = errors.New("template: builder function is nil")

	// ErrMissingName indicates Builder.Name was not set.
	ErrMissingName = errors.New("template: builder name is required")

	// ErrNilScope indicates Build was given a nil scope.
	ErrNilScope = errors.New("template: scope is nil")

	// ErrScopeMismatch indicates the context carries a scope other than
	// the one being built against. Builders reveal through the context,
	// so the two must be the same scope.
	ErrScopeMismatch = errors.New("template: context carries a different scope")

	// ErrNilTemplate indicates Materialize was given a nil template.
	ErrNilTemplate = errors.New("template: template is nil")
)

// Phase names the validation pass that observed a divergence.
type Phase string

const (
	// PhaseBuild is the placeholder-versus-concrete comparison made
	// while constructing a template.
	PhaseBuild Phase = "build"

	// PhaseRecheck is the comparison of a cached template's output
	// against a fresh concrete build on a cache hit.
	PhaseRecheck Phase = "recheck"
)

// DivergenceError reports that the placeholder run and the concrete run
// of a builder disagree about the query. Both renderings are retained
// for diagnosis.
type DivergenceError struct {
	Query    string // builder name
	Phase    Phase  // which pass observed the disagreement
	Arg      string // argument at fault for a value divergence, else ""
	Position int    // 0-based parameter position, -1 for structure
	Lazy     string // placeholder-run rendering or digest
	Concrete string // concrete-run rendering or digest
	Diff     string // comparison detail when available
}

func (e *DivergenceError) Error() string {
	msg := fmt.Sprintf("template: %s diverged during %s", e.Query, e.Phase)
	switch {
	case e.Arg != "":
		return fmt.Sprintf("%s at argument %q", msg, e.Arg)
	case e.Position >= 0:
		return fmt.Sprintf("%s at parameter %d", msg, e.Position)
	}
	return msg
}

// StaleContextError reports a materialization attempted without a live
// scope able to supply the template's arguments.
type StaleContextError struct {
	Query   string
	Missing []string // argument names the active scope could not provide
}

func (e *StaleContextError) Error() string {
	if len(e.Missing) == 0 {
		return fmt.Sprintf("template: %s: no live resolution scope on context", e.Query)
	}
	return fmt.Sprintf("template: %s: active scope missing arguments %v", e.Query, e.Missing)
}
