package testutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGen_VisitsEveryCombination(t *testing.T) {
	t.Parallel()

	seen := make(map[[2]int]int)
	for g := NewGen(); g.Next(); {
		seen[[2]int{g.Intn(2), g.Intn(3)}]++
	}

	assert.Len(t, seen, 6)
	for combo, count := range seen {
		assert.Equal(t, 1, count, "combination %v visited more than once", combo)
	}
}

func TestGen_DependentChoices(t *testing.T) {
	t.Parallel()

	// The number of later choices depends on the first one: 1 + 2 + 4 runs.
	runs := 0
	for g := NewGen(); g.Next(); {
		n := g.Intn(3)
		for range n {
			g.Bool()
		}
		runs++
	}
	assert.Equal(t, 7, runs)
}

func TestGen_Pick(t *testing.T) {
	t.Parallel()

	var picked []string
	for g := NewGen(); g.Next(); {
		picked = append(picked, Pick(g, []string{"a", "b", "c"}))
	}
	assert.Equal(t, []string{"a", "b", "c"}, picked)
}

func TestRandWeightedOp(t *testing.T) {
	t.Parallel()
	prng := NewRand(t)

	type op uint8
	ops := []op{90, 10, 0}
	counts := make(map[op]int)
	for range 1000 {
		counts[RandWeightedOp(prng, ops)]++
	}
	assert.Zero(t, counts[0], "zero-weight op must never be picked")
	assert.Greater(t, counts[90], counts[10])
}
