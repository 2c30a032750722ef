package translate

import (
	"math/rand/v2"
	"sync"
)

// Source is the random source behind every candidate, pool and interlude
// draw. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a value in [0, n). n is always > 0.
	IntN(n int) int
}

// globalSource draws from the process-wide math/rand/v2 generator, which is
// safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// lockedSource serialises access to a seeded generator.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource returns a reproducible, goroutine-safe Source. The same seed
// yields the same sequence of draws.
func NewSource(seed uint64) Source {
	return &lockedSource{rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// pick returns a uniformly chosen element of pool. pool must be non-empty.
func pick(src Source, pool []string) string {
	return pool[src.IntN(len(pool))]
}
