package shape

import (
	"sort"
	"strings"
)

// Key identifies one branch shape of one named query function. Keys are
// plain strings so they can serve directly as cache map keys and as log
// and metric attributes.
type Key string

// KeyFor derives the key for a call to fn with the given arguments.
//
// Argument names are sorted, so key text is independent of map iteration
// order. An unbound name is encoded by omission, which keeps a call with
// region=nil distinct from a call with no region argument at all.
func KeyFor(fn string, args map[string]any) Key {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.Grow(len(fn) + 16*len(names) + 2)
	sb.WriteString(fn)
	sb.WriteByte('(')
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(Classify(args[name]).String())
	}
	sb.WriteByte(')')
	return Key(sb.String())
}
