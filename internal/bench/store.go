package bench

import (
	"slices"

	"github.com/argus-labs/sparseset/pkg/sparseset"
	"github.com/rotisserie/eris"
)

// Subject names a container implementation under benchmark.
type Subject string

const (
	SubjectSparseSet Subject = "sparseset" // Growable sparse set
	SubjectStatic    Subject = "static"    // Fixed-capacity sparse set
	SubjectMap       Subject = "map"       // Go map keyed by recycled counters
	SubjectSlice     Subject = "slice"     // Go slice keyed by index, order-preserving removal
)

// AllSubjects lists every subject in report order.
var AllSubjects = []Subject{SubjectSparseSet, SubjectStatic, SubjectMap, SubjectSlice} //nolint:gochecknoglobals // lookup table

// ParseSubject converts a string to a Subject.
func ParseSubject(s string) (Subject, error) {
	subject := Subject(s)
	if !slices.Contains(AllSubjects, subject) {
		return "", eris.Errorf("unknown subject %q (must be one of %v)", s, AllSubjects)
	}
	return subject, nil
}

// store is the common surface the workloads drive. Keys are whatever the subject hands out on
// insert: handles for the sparse sets, counters for the map, indices for the slice.
type store interface {
	insert(value uint64) (uint32, error)
	remove(key uint32) bool
	get(key uint32) (uint64, bool)
	contains(key uint32) bool
	sum() uint64
	len() int
	validate() error
}

// newStore creates an empty store for the subject with room for capacity values.
func newStore(subject Subject, capacity int) (store, error) {
	switch subject {
	case SubjectSparseSet:
		return newSparseStore(), nil
	case SubjectStatic:
		return newStaticStore(capacity)
	case SubjectMap:
		return &mapStore{values: make(map[uint32]uint64)}, nil
	case SubjectSlice:
		return &sliceStore{}, nil
	default:
		return nil, eris.Errorf("unknown subject %q", subject)
	}
}

// -------------------------------------------------------------------------------------------------
// Sparse sets
// -------------------------------------------------------------------------------------------------

// setStore implements every store operation except insert on top of a sparse set container.
type setStore struct {
	set sparseset.Container[uint64]
}

func (s setStore) remove(key uint32) bool {
	_, err := s.set.Remove(sparseset.Handle(key))
	return err == nil
}

func (s setStore) get(key uint32) (uint64, bool) {
	v, err := s.set.Get(sparseset.Handle(key))
	return v, err == nil
}

func (s setStore) contains(key uint32) bool {
	return s.set.Contains(sparseset.Handle(key))
}

func (s setStore) sum() uint64 {
	var total uint64
	for _, v := range s.set.Values() {
		total += v
	}
	return total
}

func (s setStore) len() int {
	return s.set.Len()
}

func (s setStore) validate() error {
	return s.set.Validate()
}

type sparseStore struct {
	setStore
	growable *sparseset.SparseSet[uint64]
}

func newSparseStore() *sparseStore {
	set := sparseset.New[uint64]()
	return &sparseStore{setStore: setStore{set: set}, growable: set}
}

func (s *sparseStore) insert(value uint64) (uint32, error) {
	return uint32(s.growable.Insert(value)), nil
}

type staticStore struct {
	setStore
	fixed *sparseset.StaticSparseSet[uint64]
}

func newStaticStore(capacity int) (*staticStore, error) {
	set, err := sparseset.NewStatic[uint64](capacity)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create static sparse set")
	}
	return &staticStore{setStore: setStore{set: set}, fixed: set}, nil
}

func (s *staticStore) insert(value uint64) (uint32, error) {
	h, err := s.fixed.Insert(value)
	return uint32(h), err
}

// -------------------------------------------------------------------------------------------------
// Baselines
// -------------------------------------------------------------------------------------------------

// mapStore issues keys the way the sparse sets issue handles, reusing freed keys first, so the
// workloads can drive both the same way.
type mapStore struct {
	values map[uint32]uint64
	free   []uint32
	next   uint32
}

func (s *mapStore) insert(value uint64) (uint32, error) {
	var key uint32
	if n := len(s.free); n > 0 {
		key = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		key = s.next
		s.next++
	}
	s.values[key] = value
	return key, nil
}

func (s *mapStore) remove(key uint32) bool {
	if _, ok := s.values[key]; !ok {
		return false
	}
	delete(s.values, key)
	s.free = append(s.free, key)
	return true
}

func (s *mapStore) get(key uint32) (uint64, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *mapStore) contains(key uint32) bool {
	_, ok := s.values[key]
	return ok
}

func (s *mapStore) sum() uint64 {
	var total uint64
	for _, v := range s.values {
		total += v
	}
	return total
}

func (s *mapStore) len() int        { return len(s.values) }
func (s *mapStore) validate() error { return nil }

// sliceStore keys values by index. Removal shifts every later value down, so keys aren't stable; it
// is only here as the cost baseline of keeping a slice packed without swap-remove.
type sliceStore struct {
	values []uint64
}

func (s *sliceStore) insert(value uint64) (uint32, error) {
	s.values = append(s.values, value)
	return uint32(len(s.values) - 1), nil //nolint:gosec // benchmark sizes fit in uint32
}

func (s *sliceStore) remove(key uint32) bool {
	if int(key) >= len(s.values) {
		return false
	}
	s.values = slices.Delete(s.values, int(key), int(key)+1)
	return true
}

func (s *sliceStore) get(key uint32) (uint64, bool) {
	if int(key) >= len(s.values) {
		return 0, false
	}
	return s.values[key], true
}

func (s *sliceStore) contains(key uint32) bool {
	return int(key) < len(s.values)
}

func (s *sliceStore) sum() uint64 {
	var total uint64
	for _, v := range s.values {
		total += v
	}
	return total
}

func (s *sliceStore) len() int        { return len(s.values) }
func (s *sliceStore) validate() error { return nil }
