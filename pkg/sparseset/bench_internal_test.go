package sparseset

import (
	"fmt"
	"testing"
)

var benchSizes = []int{100, 10_000, 1_000_000} //nolint:gochecknoglobals // benchmark table

type benchValue struct {
	X, Y, Z float64
	ID      uint64
}

func filledSet(n int) (*SparseSet[benchValue], []Handle) {
	s := NewWithCapacity[benchValue](n)
	handles := make([]Handle, n)
	for i := range n {
		handles[i] = s.Insert(benchValue{ID: uint64(i)}) //nolint:gosec // i is non-negative
	}
	return s, handles
}

// BenchmarkSparseSet_Insert measures insertion into a set that has to grow versus one that reuses
// freed handles.
func BenchmarkSparseSet_Insert(b *testing.B) {
	b.Run("growing", func(b *testing.B) {
		s := New[benchValue]()
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			s.Insert(benchValue{ID: uint64(i)}) //nolint:gosec // i is non-negative
		}
	})

	b.Run("recycled handle", func(b *testing.B) {
		s, _ := filledSet(1024)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			h := s.Insert(benchValue{ID: uint64(i)}) //nolint:gosec // i is non-negative
			_, _ = s.Remove(h)
		}
	})

	b.Run("static", func(b *testing.B) {
		s := MustNewStatic[benchValue](1024)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if s.IsFull() {
				b.StopTimer()
				s.Clear()
				b.StartTimer()
			}
			_, _ = s.Insert(benchValue{ID: uint64(i)}) //nolint:gosec // i is non-negative
		}
	})
}

// BenchmarkSparseSet_Remove measures removing from the middle of the dense store, re-inserting
// outside of the timer to keep the size constant.
func BenchmarkSparseSet_Remove(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			s, handles := filledSet(size)
			mid := handles[size/2]
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_, _ = s.Remove(mid)
				b.StopTimer()
				mid = s.Insert(benchValue{})
				b.StartTimer()
			}
		})
	}
}

// BenchmarkSparseSet_Get compares handle lookup with a map lookup.
func BenchmarkSparseSet_Get(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("sparseset size=%d", size), func(b *testing.B) {
			s, handles := filledSet(size)
			b.ResetTimer()
			var sum uint64
			for i := 0; i < b.N; i++ {
				v, _ := s.Get(handles[i%size])
				sum += v.ID
			}
			_ = sum
		})

		b.Run(fmt.Sprintf("map size=%d", size), func(b *testing.B) {
			m := make(map[Handle]benchValue, size)
			for i := range size {
				m[Handle(i)] = benchValue{ID: uint64(i)} //nolint:gosec // i is non-negative
			}
			b.ResetTimer()
			var sum uint64
			for i := 0; i < b.N; i++ {
				sum += m[Handle(i%size)].ID //nolint:gosec // i is non-negative
			}
			_ = sum
		})
	}
}

// BenchmarkSparseSet_Iterate compares the slice view, the handle iterator and ranging over a map.
func BenchmarkSparseSet_Iterate(b *testing.B) {
	const size = 10_000
	s, _ := filledSet(size)

	b.Run("values", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum float64
			for _, v := range s.Values() {
				sum += v.X
			}
			_ = sum
		}
	})

	b.Run("all", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum float64
			for _, v := range s.All() {
				sum += v.X
			}
			_ = sum
		}
	})

	b.Run("map", func(b *testing.B) {
		m := make(map[Handle]benchValue, size)
		for h, v := range s.All() {
			m[h] = v
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			var sum float64
			for _, v := range m {
				sum += v.X
			}
			_ = sum
		}
	})
}
