package seqring

import "github.com/pkg/errors"

// Errors returned by ring buffer operations. They are returned wrapped with
// the offending values, use errors.Cause to compare against them.
var (
	// ErrCapacityExceeded is returned when a write needs more space than
	// is currently reclaimed. Nothing is written.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidOffset is returned when a random write targets an index
	// below the kept watermark.
	ErrInvalidOffset = errors.New("invalid offset")

	// ErrInvalidCursor is returned when a cursor would move backward or
	// past data that does not exist.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrInvalidCapacity is returned when constructing a buffer without
	// any backing space.
	ErrInvalidCapacity = errors.New("invalid capacity")
)
