package sparseset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDenseStore(t *testing.T, values ...string) denseStore[*string] {
	t.Helper()
	d := newDenseStore[*string](0, 0)
	for i, v := range values {
		pos, err := d.push(&v, Handle(i*10))
		require.NoError(t, err)
		require.Equal(t, i, pos)
	}
	return d
}

func TestDenseStore_SwapRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pos        int
		wantValue  string
		wantMoved  Handle
		wantOK     bool
		wantValues []string
		wantOwners []Handle
	}{
		{
			name:       "remove first moves last into its place",
			pos:        0,
			wantValue:  "a",
			wantMoved:  30,
			wantOK:     true,
			wantValues: []string{"d", "b", "c"},
			wantOwners: []Handle{30, 10, 20},
		},
		{
			name:       "remove middle moves last into its place",
			pos:        1,
			wantValue:  "b",
			wantMoved:  30,
			wantOK:     true,
			wantValues: []string{"a", "d", "c"},
			wantOwners: []Handle{0, 30, 20},
		},
		{
			name:       "remove last moves nothing",
			pos:        3,
			wantValue:  "d",
			wantOK:     false,
			wantValues: []string{"a", "b", "c"},
			wantOwners: []Handle{0, 10, 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := newTestDenseStore(t, "a", "b", "c", "d")

			removed, moved, ok := d.swapRemove(tt.pos)
			assert.Equal(t, tt.wantValue, *removed)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantMoved, moved)
			}

			got := make([]string, 0, d.len())
			for _, v := range d.values {
				got = append(got, *v)
			}
			assert.Equal(t, tt.wantValues, got)
			assert.Equal(t, tt.wantOwners, d.owners)

			// The vacated tail is zeroed so it doesn't keep the value alive.
			assert.Nil(t, d.values[:4][3])
		})
	}
}

func TestDenseStore_SwapRemoveOnly(t *testing.T) {
	t.Parallel()
	d := newTestDenseStore(t, "only")

	removed, _, ok := d.swapRemove(0)
	assert.Equal(t, "only", *removed)
	assert.False(t, ok)
	assert.Equal(t, 0, d.len())
	assert.Empty(t, d.owners)
}

func TestDenseStore_SwapRemoveOutOfRange(t *testing.T) {
	t.Parallel()
	d := newTestDenseStore(t, "a")

	assert.Panics(t, func() { d.swapRemove(1) })
}

func TestDenseStore_Ptr(t *testing.T) {
	t.Parallel()
	d := newDenseStore[int](0, 0)
	pos, err := d.push(1, 0)
	require.NoError(t, err)

	*d.ptr(pos) = 42
	assert.Equal(t, 42, d.get(pos))
	assert.Equal(t, Handle(0), d.owner(pos))
}

func TestDenseStore_Bounded(t *testing.T) {
	t.Parallel()
	d := newDenseStore[int](2, 2)

	_, err := d.push(1, 0)
	require.NoError(t, err)
	_, err = d.push(2, 1)
	require.NoError(t, err)

	_, err = d.push(3, 2)
	require.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 2, d.len())
	assert.Equal(t, 2, cap(d.values))

	assert.Panics(t, func() { d.reserve(1) })
}

func TestDenseStore_Reset(t *testing.T) {
	t.Parallel()
	d := newTestDenseStore(t, "a", "b")
	backing := d.values[:2]

	d.reset()
	assert.Equal(t, 0, d.len())
	assert.Empty(t, d.owners)
	assert.Nil(t, backing[0])
	assert.Nil(t, backing[1])
}
