package sparseset

import "github.com/rotisserie/eris"

var (
	// ErrInvalidHandle is returned when a handle was never issued by the container or its value has
	// already been removed. The two cases are indistinguishable because slots carry no generation.
	ErrInvalidHandle = eris.New("invalid handle")

	// ErrCapacityExceeded is returned when inserting into a full fixed-capacity set, or when the
	// handle space itself is exhausted.
	ErrCapacityExceeded = eris.New("capacity exceeded")
)
