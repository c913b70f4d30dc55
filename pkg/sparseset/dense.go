package sparseset

import "github.com/argus-labs/sparseset/pkg/assert"

// denseStore keeps live values packed in [0, len). owners[i] is the handle whose value is stored in
// values[i], which lets the slot table be fixed up when a swap-remove moves a value.
type denseStore[T any] struct {
	values   []T      // Live values, no gaps
	owners   []Handle // Back-reference from each position to its handle
	capacity int      // Maximum number of values, 0 if unbounded
}

// newDenseStore creates a dense store with room for size values. A non-zero capacity bounds the
// store, in which case size must equal capacity so the backing arrays are never replaced.
func newDenseStore[T any](size, capacity int) denseStore[T] {
	assert.That(capacity == 0 || size == capacity, "bounded dense store must be allocated up front")
	return denseStore[T]{
		values:   make([]T, 0, size),
		owners:   make([]Handle, 0, size),
		capacity: capacity,
	}
}

// len returns the number of live values.
func (d *denseStore[T]) len() int {
	return len(d.values)
}

// push appends a value owned by the given handle and returns its position. A bounded store returns
// ErrCapacityExceeded instead of growing.
func (d *denseStore[T]) push(value T, owner Handle) (int, error) {
	if d.capacity > 0 && len(d.values) >= d.capacity {
		return 0, ErrCapacityExceeded
	}

	d.values = append(d.values, value)
	d.owners = append(d.owners, owner)
	assert.That(len(d.values) == len(d.owners), "values and owners length mismatch")
	assert.That(d.capacity == 0 || cap(d.values) == d.capacity, "bounded dense store was reallocated")
	return len(d.values) - 1, nil
}

// swapRemove removes the value at pos by moving the last value into its place. It returns the
// removed value and, if a value was moved, the handle that now owns pos. Expects the caller to make
// sure pos is inside the store.
func (d *denseStore[T]) swapRemove(pos int) (T, Handle, bool) {
	assert.That(pos < len(d.values), "tried to remove position %d of %d", pos, len(d.values))

	lastIndex := len(d.values) - 1
	removed := d.values[pos]

	moved := pos != lastIndex
	if moved {
		d.values[pos] = d.values[lastIndex]
		d.owners[pos] = d.owners[lastIndex]
	}

	// Zero the vacated element so the backing array doesn't keep the value reachable.
	var zero T
	d.values[lastIndex] = zero
	d.values = d.values[:lastIndex]
	d.owners = d.owners[:lastIndex]

	if !moved {
		return removed, 0, false
	}
	return removed, d.owners[pos], true
}

// get returns the value at pos. Expects the caller to have resolved pos through the slot table.
func (d *denseStore[T]) get(pos int) T {
	return d.values[pos]
}

// ptr returns a pointer to the value at pos. The pointer is invalidated by the next push, which may
// reallocate, and by the next swapRemove, which may move another value into pos.
func (d *denseStore[T]) ptr(pos int) *T {
	return &d.values[pos]
}

// owner returns the handle that owns pos.
func (d *denseStore[T]) owner(pos int) Handle {
	return d.owners[pos]
}

// reserve makes room for n more values without changing the length.
func (d *denseStore[T]) reserve(n int) {
	assert.That(d.capacity == 0, "tried to grow a bounded dense store")
	if free := cap(d.values) - len(d.values); n > free {
		values := make([]T, len(d.values), len(d.values)+n)
		copy(values, d.values)
		d.values = values

		owners := make([]Handle, len(d.owners), len(d.owners)+n)
		copy(owners, d.owners)
		d.owners = owners
	}
}

// reset drops every value. The backing arrays are kept.
func (d *denseStore[T]) reset() {
	clear(d.values)
	d.values = d.values[:0]
	d.owners = d.owners[:0]
}
