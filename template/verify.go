package template

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/go-cmp/cmp"
)

// Verifier decides whether the placeholder-run skeleton and the
// concrete-run skeleton are equivalent.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: return a *DivergenceError on mismatch and nil otherwise;
//   implementations must not panic.
type Verifier interface {
	Verify(query, lazySkeleton, concreteSkeleton string) error
}

// StructuralVerifier compares skeleton text directly and reports a full
// diff on mismatch. It is the default.
type StructuralVerifier struct{}

// Verify implements Verifier.
func (StructuralVerifier) Verify(query, lazySkel, concSkel string) error {
	if lazySkel == concSkel {
		return nil
	}
	return &DivergenceError{
		Query:    query,
		Phase:    PhaseBuild,
		Position: -1,
		Lazy:     lazySkel,
		Concrete: concSkel,
		Diff:     cmp.Diff(concSkel, lazySkel),
	}
}

// HashVerifier compares SHA-256 digests of the skeletons and reports
// digests instead of query text, for environments whose error sinks must
// not carry SQL.
type HashVerifier struct{}

// Verify implements Verifier.
func (HashVerifier) Verify(query, lazySkel, concSkel string) error {
	lh := sha256.Sum256([]byte(lazySkel))
	ch := sha256.Sum256([]byte(concSkel))
	if lh == ch {
		return nil
	}
	return &DivergenceError{
		Query:    query,
		Phase:    PhaseBuild,
		Position: -1,
		Lazy:     hex.EncodeToString(lh[:]),
		Concrete: hex.EncodeToString(ch[:]),
	}
}

var (
	_ Verifier = StructuralVerifier{}
	_ Verifier = HashVerifier{}
)
