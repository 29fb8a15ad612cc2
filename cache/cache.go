package cache

import (
	"context"
	"errors"

	"github.com/jonwraymond/preparedq/shape"
	"github.com/jonwraymond/preparedq/template"
)

// Sentinel errors for cache operations.
var (
	ErrNilCache   = errors.New("cache: cache is nil")
	ErrNilBuild   = errors.New("cache: build function is nil")
	ErrInvalidKey = errors.New("cache: key is empty")
)

// BuildFunc constructs the template for a shape that has no cached
// entry. It runs at most once per missing shape at a time, on the
// context of the caller that started the build.
type BuildFunc func(ctx context.Context) (*template.Template, error)

// Cache maps argument shapes to built templates.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use and
//   must run at most one build per key at a time.
// - Context: GetOrBuild passes ctx to the build; cancellation fails the
//   build and every caller waiting on it.
// - Errors: build errors propagate to all waiters and leave no entry
//   behind.
type Cache interface {
	// GetOrBuild returns the template for key, building and storing it
	// on a miss. The bool reports whether the template was served from
	// the store without building or waiting on a build.
	GetOrBuild(ctx context.Context, key shape.Key, build BuildFunc) (*template.Template, bool, error)

	// Delete removes the entry for key. Idempotent.
	Delete(key shape.Key)

	// Len returns the number of stored templates.
	Len() int

	// Clear removes every entry.
	Clear()
}

// Stats is a point-in-time snapshot of cache activity. Hits counts fast
// path servings, Misses counts builds started, Evictions counts entries
// displaced by a size bound.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
}
