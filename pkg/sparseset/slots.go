package sparseset

import (
	"math"

	"github.com/argus-labs/sparseset/pkg/assert"
)

// reservedPosition marks a slot handed out by allocate that hasn't been wired to a dense position.
const reservedPosition = math.MaxUint32

// slot is a single entry of the sparse table. An occupied slot stores the dense position of its
// handle's value. A free slot stores the next free handle, which threads the free list through the
// table without a separate allocation.
type slot struct {
	value uint32 // Dense position when occupied, next free handle when free
	free  bool
}

// slotTable maps handles to dense positions and recycles the handles of removed values. Handles are
// indices into the slots slice, so resolving one is a single bounds check and load.
type slotTable struct {
	slots    []slot // Indexed by handle
	head     uint32 // First free handle, only meaningful while freeLen > 0
	freeLen  int    // Number of free slots
	capacity int    // Maximum number of slots, 0 if unbounded
}

// newSlotTable creates a slot table with room for size slots. A non-zero capacity bounds the table,
// in which case size must equal capacity so the backing array is never replaced.
func newSlotTable(size, capacity int) slotTable {
	assert.That(capacity == 0 || size == capacity, "bounded slot table must be allocated up front")
	return slotTable{
		slots:    make([]slot, 0, size),
		head:     endOfFreeList,
		freeLen:  0,
		capacity: capacity,
	}
}

// bounded reports whether the table has a fixed capacity.
func (t *slotTable) bounded() bool {
	return t.capacity > 0
}

// allocate returns a handle for a new value. Free handles are reused in LIFO order before new ones
// are minted. The returned slot is reserved and must be wired with occupy before it is resolved.
func (t *slotTable) allocate() (Handle, error) {
	if t.freeLen > 0 {
		h := t.head
		s := &t.slots[h]
		assert.That(s.free, "free list head %d is occupied", h)

		t.head = s.value
		*s = slot{value: reservedPosition, free: false}
		t.freeLen--
		return Handle(h), nil
	}

	n := len(t.slots)
	if !canMint(uint64(n), t.capacity) { //nolint:gosec // len is non-negative
		return 0, ErrCapacityExceeded
	}

	t.slots = append(t.slots, slot{value: reservedPosition, free: false})
	assert.That(!t.bounded() || cap(t.slots) == t.capacity, "bounded slot table was reallocated")
	return Handle(n), nil
}

// canMint reports whether a table holding n slots can mint handle n. A zero capacity leaves only
// the handle space itself as the bound.
func canMint(n uint64, capacity int) bool {
	if capacity > 0 && n >= uint64(capacity) { //nolint:gosec // capacity is positive here
		return false
	}
	return n <= MaxHandle
}

// occupy wires a reserved handle to its dense position.
func (t *slotTable) occupy(h Handle, pos int) {
	s := &t.slots[h]
	assert.That(!s.free && s.value == reservedPosition, "handle %d is not reserved", h)
	s.value = uint32(pos) //nolint:gosec // positions never exceed the number of handles
}

// deallocate marks the handle's slot free and pushes it onto the head of the free list.
func (t *slotTable) deallocate(h Handle) error {
	if _, ok := t.resolve(h); !ok {
		return ErrInvalidHandle
	}

	next := t.head
	if t.freeLen == 0 {
		next = endOfFreeList
	}
	t.slots[h] = slot{value: next, free: true}
	t.head = uint32(h)
	t.freeLen++
	return nil
}

// resolve returns the dense position of the handle and whether the handle is occupied. Handles that
// are out of range or free are both reported as missing.
func (t *slotTable) resolve(h Handle) (int, bool) {
	if int(h) >= len(t.slots) {
		return 0, false
	}

	s := t.slots[h]
	if s.free {
		return 0, false
	}
	return int(s.value), true
}

// retarget points an occupied handle at a new dense position. Used after a swap-remove moves the
// handle's value.
func (t *slotTable) retarget(h Handle, pos int) {
	s := &t.slots[h]
	assert.That(!s.free, "tried to retarget free handle %d", h)
	s.value = uint32(pos) //nolint:gosec // positions never exceed the number of handles
}

// len returns the number of handles ever minted since the last reset.
func (t *slotTable) len() int {
	return len(t.slots)
}

// occupied returns the number of handles currently wired to a value.
func (t *slotTable) occupied() int {
	return len(t.slots) - t.freeLen
}

// reserve makes room for n more slots without changing the number of handles.
func (t *slotTable) reserve(n int) {
	assert.That(!t.bounded(), "tried to grow a bounded slot table")
	if free := cap(t.slots) - len(t.slots); n > free {
		grown := make([]slot, len(t.slots), len(t.slots)+n)
		copy(grown, t.slots)
		t.slots = grown
	}
}

// reset forgets every handle. The backing array is kept.
func (t *slotTable) reset() {
	t.slots = t.slots[:0]
	t.head = endOfFreeList
	t.freeLen = 0
}
