package sparseset

import "math"

// Handle is an opaque identifier issued by a container on insertion. It is only meaningful to the
// container that issued it, and the same numeric value may be issued again after a removal.
type Handle uint32

// MaxHandle is the largest handle a container can issue.
const MaxHandle = math.MaxUint32 - 1

// endOfFreeList terminates the free list threaded through the slot table.
const endOfFreeList = math.MaxUint32
