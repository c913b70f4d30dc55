package bench

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rotisserie/eris"
)

// Workload names an access pattern measured against every subject.
type Workload string

const (
	WorkloadInsertion Workload = "insertion" // Fill an empty store
	WorkloadRemoval   Workload = "removal"   // Remove from the middle of a full store
	WorkloadAccess    Workload = "access"    // Look up random live keys
	WorkloadPresence  Workload = "presence"  // Membership tests on a half-empty key space
	WorkloadIteration Workload = "iteration" // Sum every value
)

// AllWorkloads lists every workload in report order.
var AllWorkloads = []Workload{ //nolint:gochecknoglobals // lookup table
	WorkloadInsertion, WorkloadRemoval, WorkloadAccess, WorkloadPresence, WorkloadIteration,
}

// ParseWorkload converts a string to a Workload.
func ParseWorkload(s string) (Workload, error) {
	workload := Workload(s)
	if !slices.Contains(AllWorkloads, workload) {
		return "", eris.Errorf("unknown workload %q (must be one of %v)", s, AllWorkloads)
	}
	return workload, nil
}

// measurement is the outcome of running a workload once. checksum is derived from the values the
// timed loop read, so the loop can't be optimized away and runs can be compared.
type measurement struct {
	ops      int
	elapsed  time.Duration
	checksum uint64
}

// workloadFunc runs a workload against a fresh store created by newStore and returns the store so
// it can be validated afterwards.
type workloadFunc func(newStore func() (store, error), size int, prng *rand.Rand) (store, measurement, error)

var workloads = map[Workload]workloadFunc{ //nolint:gochecknoglobals // dispatch table
	WorkloadInsertion: runInsertion,
	WorkloadRemoval:   runRemoval,
	WorkloadAccess:    runAccess,
	WorkloadPresence:  runPresence,
	WorkloadIteration: runIteration,
}

// fill inserts size values and returns their keys.
func fill(s store, size int) ([]uint32, error) {
	keys := make([]uint32, size)
	for i := range size {
		key, err := s.insert(uint64(i)) //nolint:gosec // i is non-negative
		if err != nil {
			return nil, eris.Wrapf(err, "failed to insert value %d", i)
		}
		keys[i] = key
	}
	return keys, nil
}

func runInsertion(newStore func() (store, error), size int, _ *rand.Rand) (store, measurement, error) {
	s, err := newStore()
	if err != nil {
		return nil, measurement{}, err
	}

	start := time.Now()
	if _, err := fill(s, size); err != nil {
		return nil, measurement{}, err
	}
	return s, measurement{ops: size, elapsed: time.Since(start)}, nil
}

// runRemoval removes the value in the middle of the store and puts one back, timing only the
// removal, so every removal sees a store of the same size.
func runRemoval(newStore func() (store, error), size int, _ *rand.Rand) (store, measurement, error) {
	s, err := newStore()
	if err != nil {
		return nil, measurement{}, err
	}
	keys, err := fill(s, size)
	if err != nil {
		return nil, measurement{}, err
	}

	mid := keys[size/2]
	var elapsed time.Duration
	for range size {
		start := time.Now()
		ok := s.remove(mid)
		elapsed += time.Since(start)
		if !ok {
			return nil, measurement{}, eris.Errorf("key %d vanished before removal", mid)
		}

		// The keyed subjects hand the freed key back out. The slice appends instead, so the next
		// removal at mid shifts a different value but the same number of them.
		if _, err := s.insert(uint64(mid)); err != nil {
			return nil, measurement{}, eris.Wrap(err, "failed to reinsert removed value")
		}
	}
	return s, measurement{ops: size, elapsed: elapsed}, nil
}

func runAccess(newStore func() (store, error), size int, prng *rand.Rand) (store, measurement, error) {
	s, err := newStore()
	if err != nil {
		return nil, measurement{}, err
	}
	keys, err := fill(s, size)
	if err != nil {
		return nil, measurement{}, err
	}

	// fill stores each value under a key equal to it, so the expected sum is known up front.
	order := make([]uint32, size)
	var want uint64
	for i := range order {
		order[i] = keys[prng.IntN(size)]
		want += uint64(order[i])
	}

	var sum uint64
	start := time.Now()
	for _, key := range order {
		v, ok := s.get(key)
		if !ok {
			return nil, measurement{}, eris.Errorf("live key %d not found", key)
		}
		sum += v
	}
	elapsed := time.Since(start)

	if sum != want {
		return nil, measurement{}, eris.Errorf("access summed %d, want %d", sum, want)
	}
	return s, measurement{ops: size, elapsed: elapsed, checksum: sum}, nil
}

// runPresence removes a random half of the values, then tests membership of keys drawn from twice
// the issued key space so hits, misses on removed keys and misses past the end are all exercised.
func runPresence(newStore func() (store, error), size int, prng *rand.Rand) (store, measurement, error) {
	s, err := newStore()
	if err != nil {
		return nil, measurement{}, err
	}
	keys, err := fill(s, size)
	if err != nil {
		return nil, measurement{}, err
	}

	// Remove from the back for the slice so the remaining keys stay meaningful.
	prng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	victims := keys[:size/2]
	slices.SortFunc(victims, func(a, b uint32) int { return cmp.Compare(b, a) })
	for _, key := range victims {
		s.remove(key)
	}

	probes := make([]uint32, size)
	for i := range probes {
		probes[i] = uint32(prng.IntN(2 * size)) //nolint:gosec // benchmark sizes fit in uint32
	}

	var hits uint64
	start := time.Now()
	for _, key := range probes {
		if s.contains(key) {
			hits++
		}
	}
	elapsed := time.Since(start)

	if hits > uint64(size) { //nolint:gosec // size is positive
		return nil, measurement{}, eris.Errorf("presence counted %d hits for %d probes", hits, size)
	}
	return s, measurement{ops: size, elapsed: elapsed, checksum: hits}, nil
}

func runIteration(newStore func() (store, error), size int, _ *rand.Rand) (store, measurement, error) {
	s, err := newStore()
	if err != nil {
		return nil, measurement{}, err
	}
	if _, err := fill(s, size); err != nil {
		return nil, measurement{}, err
	}

	start := time.Now()
	total := s.sum()
	elapsed := time.Since(start)

	// Values are 0..size-1 and removal workloads don't run here, so the sum is known.
	want := uint64(size) * uint64(size-1) / 2 //nolint:gosec // size is positive
	if total != want {
		return nil, measurement{}, eris.Errorf("iteration summed %d, want %d", total, want)
	}
	return s, measurement{ops: size, elapsed: elapsed, checksum: total}, nil
}
