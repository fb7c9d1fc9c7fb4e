package reorder

import "errors"

var (
	// ErrEntityNotFound means the target ID is not in the fetched collection.
	ErrEntityNotFound = errors.New("entity not found in collection")

	// ErrPositionOutOfRange means the requested position is outside [0, N-1].
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrNotContiguous means a collection's orders are not exactly {0..N-1}.
	ErrNotContiguous = errors.New("orders are not contiguous")
)
