package sparseset

import "github.com/kelindar/bitmap"

// Occupied returns a bitmap with a bit set for every live handle. The bitmap is a snapshot owned by
// the caller, so it stays valid across later mutations and can be combined with other snapshots.
// Ranging over it visits live handles in ascending order.
func (c *core[T]) Occupied() bitmap.Bitmap {
	var occupied bitmap.Bitmap
	if n := c.slots.len(); n > 0 {
		occupied.Grow(uint32(n - 1)) //nolint:gosec // slot count never exceeds MaxHandle+1
	}
	for _, h := range c.dense.owners {
		occupied.Set(uint32(h))
	}
	return occupied
}
