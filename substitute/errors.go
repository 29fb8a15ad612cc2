package substitute

import "errors"

var (
	// ErrMissingName is returned by New when the query name is empty.
	ErrMissingName = errors.New("substitute: name is required")

	// ErrNilBuilderFunc is returned by New when no builder function is given.
	ErrNilBuilderFunc = errors.New("substitute: builder function is nil")

	// ErrNilCache is returned by New when an option installed a nil cache.
	ErrNilCache = errors.New("substitute: cache is nil")

	// ErrArgsMismatch is returned by Do when the argument names differ
	// from the names bound in the active resolution scope. Pass the map
	// given to lazy.Enter, or scope.Args() if normalizers renamed keys.
	ErrArgsMismatch = errors.New("substitute: arguments do not match the entered scope")
)
