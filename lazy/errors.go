package lazy

import "errors"

var (
	// ErrUnboundPlaceholder indicates a placeholder resolved outside its
	// scope: no scope active, a different scope active, or the owning
	// scope already exited.
	ErrUnboundPlaceholder = errors.New("lazy: placeholder not bound in the active scope")

	// ErrEmptyCollection indicates an argument bound to a collection
	// with no elements. An empty collection has no SQL rendering; bind
	// nil instead, or collapse it with a normalizer.
	ErrEmptyCollection = errors.New("lazy: empty collection argument")

	// ErrOpaqueArgument indicates an argument of a kind that cannot be
	// bound: maps, structs other than time.Time, pointers, channels,
	// functions, and nested collections.
	ErrOpaqueArgument = errors.New("lazy: argument kind cannot be bound")
)
