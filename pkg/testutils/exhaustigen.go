package testutils

import "github.com/argus-labs/sparseset/pkg/assert"

// maxChoices bounds how many choices a single run of a generator can make.
const maxChoices = 32

// Gen enumerates every sequence of choices a test body can make. Each pass of the loop
//
//	for g := testutils.NewGen(); g.Next(); {
//		n := g.Intn(3)
//		...
//	}
//
// replays a distinct combination, and Next returns false once all of them have been visited.
// Choices are recorded with the bound they were drawn from; advancing increments the rightmost
// choice that hasn't reached its bound and forgets every choice after it, the same way an odometer
// rolls over. Later choices may depend on earlier ones since their bounds are re-recorded on replay.
//
// See: <https://matklad.github.io/2021/11/07/generate-all-the-things.html>
type Gen struct {
	started bool
	choices [maxChoices]choice
	pos     int // Index of the next choice within the current run
	depth   int // Number of choices recorded by the previous run
}

type choice struct {
	value uint32
	last  uint32 // Largest value the choice can take
}

// NewGen creates a generator positioned before its first combination.
func NewGen() *Gen {
	return &Gen{}
}

// Next advances to the next combination. It returns false when every combination has been visited.
func (g *Gen) Next() bool {
	if !g.started {
		g.started = true
		return true
	}

	// Drop choices recorded by earlier runs that the last run didn't make.
	g.depth = g.pos
	g.pos = 0

	for g.depth > 0 {
		c := &g.choices[g.depth-1]
		if c.value < c.last {
			c.value++
			return true
		}
		g.depth--
	}
	return false
}

// Intn returns a value in [0, n). n must be positive.
func (g *Gen) Intn(n int) int {
	assert.That(n > 0, "gen: Intn needs a positive bound, got %d", n)
	assert.That(g.pos < maxChoices, "gen: exceeded %d choices per run", maxChoices)

	if g.pos == g.depth {
		g.choices[g.pos] = choice{value: 0, last: 0}
		g.depth++
	}
	c := &g.choices[g.pos]
	c.last = uint32(n - 1) //nolint:gosec // bounds are small in tests
	g.pos++
	return int(c.value)
}

// Bool returns false on one combination and true on another.
func (g *Gen) Bool() bool {
	return g.Intn(2) == 1
}

// Pick returns one element of a non-empty slice.
func Pick[T any](g *Gen, items []T) T {
	return items[g.Intn(len(items))]
}
