package sparseset

import (
	"iter"

	"github.com/argus-labs/sparseset/pkg/assert"
	"github.com/kelindar/bitmap"
)

// Container is the capability set shared by SparseSet and StaticSparseSet. Insertion isn't part of
// it because only the fixed-capacity variant can fail to insert.
type Container[T any] interface {
	Remove(h Handle) (T, error)
	Get(h Handle) (T, error)
	GetMut(h Handle) (*T, error)
	Set(h Handle, value T) error
	MustGet(h Handle) T
	Contains(h Handle) bool
	Len() int
	IsEmpty() bool
	Clear()
	Values() []T
	All() iter.Seq2[Handle, T]
	Handles() iter.Seq[Handle]
	Occupied() bitmap.Bitmap
	Validate() error
}

var (
	_ Container[int] = &SparseSet[int]{}
	_ Container[int] = &StaticSparseSet[int]{}
)

// core is the indexing algorithm shared by both containers. The storage strategy is decided by the
// capacity its slot table and dense store were created with.
type core[T any] struct {
	slots slotTable
	dense denseStore[T]
}

// newCore creates a core with room for size values. A non-zero capacity fixes the storage size.
func newCore[T any](size, capacity int) core[T] {
	return core[T]{
		slots: newSlotTable(size, capacity),
		dense: newDenseStore[T](size, capacity),
	}
}

// insert allocates a handle, appends the value to the dense store, and wires the two together.
func (c *core[T]) insert(value T) (Handle, error) {
	h, err := c.slots.allocate()
	if err != nil {
		return 0, err
	}

	// The slot table and dense store share a bound and every occupied slot has exactly one dense
	// entry, so the push can't fail once a handle was allocated.
	pos, err := c.dense.push(value, h)
	assert.That(err == nil, "dense store is full but handle %d was allocated", h)

	c.slots.occupy(h, pos)
	return h, nil
}

// Remove removes the value of the handle and returns it. The last value in the dense store is moved
// into the vacated position, so the order of the remaining values changes. The handle becomes
// invalid and may be issued again by a later insert.
func (c *core[T]) Remove(h Handle) (T, error) {
	pos, ok := c.slots.resolve(h)
	if !ok {
		var zero T
		return zero, ErrInvalidHandle
	}

	removed, moved, ok := c.dense.swapRemove(pos)
	if ok {
		// Point the moved value's handle to its new position.
		c.slots.retarget(moved, pos)
	}

	err := c.slots.deallocate(h)
	assert.That(err == nil, "failed to release resolved handle %d", h)

	return removed, nil
}

// Get returns the value of the handle.
func (c *core[T]) Get(h Handle) (T, error) {
	pos, ok := c.slots.resolve(h)
	if !ok {
		var zero T
		return zero, ErrInvalidHandle
	}
	return c.dense.get(pos), nil
}

// GetMut returns a pointer to the value of the handle. The pointer is only valid until the next
// Insert, Remove or Clear on the container.
func (c *core[T]) GetMut(h Handle) (*T, error) {
	pos, ok := c.slots.resolve(h)
	if !ok {
		return nil, ErrInvalidHandle
	}
	return c.dense.ptr(pos), nil
}

// Set replaces the value of the handle.
func (c *core[T]) Set(h Handle, value T) error {
	ptr, err := c.GetMut(h)
	if err != nil {
		return err
	}
	*ptr = value
	return nil
}

// MustGet is like Get but panics if the handle is invalid.
func (c *core[T]) MustGet(h Handle) T {
	value, err := c.Get(h)
	if err != nil {
		panic(err)
	}
	return value
}

// Contains reports whether the handle refers to a live value.
func (c *core[T]) Contains(h Handle) bool {
	_, ok := c.slots.resolve(h)
	return ok
}

// Len returns the number of live values.
func (c *core[T]) Len() int {
	return c.dense.len()
}

// IsEmpty reports whether the container holds no values.
func (c *core[T]) IsEmpty() bool {
	return c.dense.len() == 0
}

// Clear removes every value and invalidates every handle. Handle numbering restarts from zero.
// Allocated storage is kept.
func (c *core[T]) Clear() {
	c.slots.reset()
	c.dense.reset()
}

// Values returns the live values as a contiguous slice in dense order. The slice aliases the
// container's storage and is only valid until the next Insert, Remove or Clear.
func (c *core[T]) Values() []T {
	return c.dense.values
}

// All returns an iterator over every live handle and its value in dense order. The order is
// unspecified and changes after a Remove. Each iteration reads the dense store as it is at that
// moment.
func (c *core[T]) All() iter.Seq2[Handle, T] {
	return func(yield func(Handle, T) bool) {
		for pos := 0; pos < c.dense.len(); pos++ {
			if !yield(c.dense.owner(pos), c.dense.get(pos)) {
				return
			}
		}
	}
}

// Handles returns an iterator over every live handle in dense order.
func (c *core[T]) Handles() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for pos := 0; pos < c.dense.len(); pos++ {
			if !yield(c.dense.owner(pos)) {
				return
			}
		}
	}
}
