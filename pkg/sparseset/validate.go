package sparseset

import (
	"github.com/kelindar/bitmap"
	"github.com/rotisserie/eris"
)

// Validate checks the internal consistency of the container and returns an error describing the
// first violation found. It walks every slot and the whole free list, so it is O(n) and meant for
// tests and diagnostics rather than hot paths.
func (c *core[T]) Validate() error {
	slots := c.slots.slots
	values, owners := c.dense.values, c.dense.owners

	if len(values) != len(owners) {
		return eris.Errorf("dense store has %d values but %d owners", len(values), len(owners))
	}
	if occupied := c.slots.occupied(); occupied != len(values) {
		return eris.Errorf("%d occupied slots but %d dense values", occupied, len(values))
	}

	// Every dense position is owned by an occupied handle that points back to it.
	for pos, h := range owners {
		target, ok := c.slots.resolve(h)
		if !ok {
			return eris.Errorf("dense position %d is owned by unknown or free handle %d", pos, h)
		}
		if target != pos {
			return eris.Errorf("handle %d owns dense position %d but points to %d", h, pos, target)
		}
	}

	freeSlots := 0
	for h, s := range slots {
		if s.free {
			freeSlots++
			continue
		}
		if int(s.value) >= len(values) {
			return eris.Errorf("handle %d points past the dense store: %d >= %d", h, s.value, len(values))
		}
		if owner := owners[s.value]; owner != Handle(h) { //nolint:gosec // h is a slot index
			return eris.Errorf("handle %d points to position %d owned by handle %d", h, s.value, owner)
		}
	}
	if freeSlots != c.slots.freeLen {
		return eris.Errorf("%d free slots but free list length is %d", freeSlots, c.slots.freeLen)
	}

	if err := c.validateFreeList(); err != nil {
		return eris.Wrap(err, "corrupt free list")
	}

	if c.slots.bounded() {
		if err := c.validateBounds(); err != nil {
			return eris.Wrap(err, "storage outgrew its capacity")
		}
	}
	return nil
}

// validateFreeList walks the free list and checks that it visits exactly the free slots once each
// and ends with the terminator.
func (c *core[T]) validateFreeList() error {
	slots := c.slots.slots
	if c.slots.freeLen == 0 {
		return nil
	}

	var visited bitmap.Bitmap
	next := c.slots.head
	for range c.slots.freeLen {
		if int(next) >= len(slots) {
			return eris.Errorf("link to handle %d is out of range", next)
		}
		if visited.Contains(next) {
			return eris.Errorf("handle %d is linked twice", next)
		}
		if !slots[next].free {
			return eris.Errorf("link to occupied handle %d", next)
		}
		visited.Set(next)
		next = slots[next].value
	}

	if next != endOfFreeList {
		return eris.Errorf("list doesn't terminate after %d links, next is %d", c.slots.freeLen, next)
	}
	return nil
}

// validateBounds checks that a fixed-capacity container still uses its original storage.
func (c *core[T]) validateBounds() error {
	capacity := c.slots.capacity
	if c.dense.capacity != capacity {
		return eris.Errorf("slot table capacity %d but dense store capacity %d", capacity, c.dense.capacity)
	}
	if c.slots.len() > capacity {
		return eris.Errorf("%d slots exceed capacity %d", c.slots.len(), capacity)
	}
	if cap(c.slots.slots) != capacity || cap(c.dense.values) != capacity || cap(c.dense.owners) != capacity {
		return eris.Errorf("backing arrays were reallocated away from capacity %d", capacity)
	}
	return nil
}
