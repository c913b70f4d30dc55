package sparseset

// SparseSet is a growable container that issues a stable Handle for every inserted value and keeps
// the values packed in a contiguous slice. Insert, Remove and Get are O(1), the first amortized.
//
// The zero value is an empty set ready to use. A SparseSet is not safe for concurrent use.
type SparseSet[T any] struct {
	core[T]
}

// New creates an empty growable sparse set.
func New[T any]() *SparseSet[T] {
	return NewWithCapacity[T](0)
}

// NewWithCapacity creates an empty growable sparse set with room for size values before its storage
// has to grow.
func NewWithCapacity[T any](size int) *SparseSet[T] {
	return &SparseSet[T]{core: newCore[T](max(size, 0), 0)}
}

// Insert adds a value and returns its handle. The handle of a previously removed value may be reused.
// Insert may reallocate the set's storage, invalidating pointers returned by GetMut and slices
// returned by Values.
func (s *SparseSet[T]) Insert(value T) Handle {
	h, err := s.insert(value)
	if err != nil {
		// Only reachable after minting MaxHandle+1 handles without a single removal.
		panic(err)
	}
	return h
}

// Reserve makes room for at least n more values without further reallocation.
func (s *SparseSet[T]) Reserve(n int) {
	if n <= 0 {
		return
	}
	s.slots.reserve(n)
	s.dense.reserve(n)
}
