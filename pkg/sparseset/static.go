package sparseset

import "github.com/rotisserie/eris"

// StaticSparseSet is a sparse set whose storage is allocated once for a fixed capacity and never
// reallocated. Inserting into a full set fails with ErrCapacityExceeded instead of growing. Apart
// from Insert it behaves exactly like SparseSet.
//
// Use NewStatic to create one. The zero value is a set of capacity 0 that rejects every Insert. A
// StaticSparseSet is not safe for concurrent use.
type StaticSparseSet[T any] struct {
	core[T]
}

// NewStatic creates an empty sparse set that holds at most capacity values.
func NewStatic[T any](capacity int) (*StaticSparseSet[T], error) {
	if capacity <= 0 || uint64(capacity) > MaxHandle+1 {
		return nil, eris.Errorf("capacity must be between 1 and %d, got %d", uint64(MaxHandle+1), capacity)
	}
	return &StaticSparseSet[T]{core: newCore[T](capacity, capacity)}, nil
}

// MustNewStatic is like NewStatic but panics if the capacity is invalid.
func MustNewStatic[T any](capacity int) *StaticSparseSet[T] {
	s, err := NewStatic[T](capacity)
	if err != nil {
		panic(err)
	}
	return s
}

// Insert adds a value and returns its handle. It returns ErrCapacityExceeded, leaving the set
// unchanged, if the set already holds Cap values.
func (s *StaticSparseSet[T]) Insert(value T) (Handle, error) {
	// A zero capacity means the set wasn't created by NewStatic; its storage would be unbounded.
	if s.Cap() == 0 {
		return 0, ErrCapacityExceeded
	}
	return s.insert(value)
}

// Cap returns the maximum number of values the set can hold.
func (s *StaticSparseSet[T]) Cap() int {
	return s.slots.capacity
}

// IsFull reports whether the next Insert would fail.
func (s *StaticSparseSet[T]) IsFull() bool {
	return s.Len() == s.Cap()
}
