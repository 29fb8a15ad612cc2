package cache

// Policy configures retention.
//
// Templates are small and the population of shapes is bounded by the
// code that builds queries, not by traffic, so the default keeps every
// template forever. A bound exists for processes that wrap generated or
// unusually wide builders.
type Policy struct {
	// MaxTemplates bounds the number of stored templates; the least
	// recently used entry is evicted at the bound. Zero means no bound.
	MaxTemplates int
}

// DefaultPolicy returns the default retention policy: unbounded.
func DefaultPolicy() Policy {
	return Policy{}
}

// Bounded returns a policy evicting least recently used templates
// beyond n.
func Bounded(n int) Policy {
	return Policy{MaxTemplates: n}
}
