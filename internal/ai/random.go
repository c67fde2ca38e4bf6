package ai

import (
	"math/rand/v2"
	"sync"
)

// Random is the source of every random draw the AI makes.
// Implementations must be deterministic for a given seed so simulations can be replayed.
type Random interface {
	// Float32 returns a uniform value in [min, max).
	Float32(min, max float32) float32
	// IntN returns a uniform value in [min, max).
	IntN(min, max int) int
}

// pcgRandom is the production Random backed by a seeded PCG generator.
// Safe for concurrent use: the tick loop and respawns share one source.
type pcgRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandom creates a seeded Random.
func NewRandom(seed uint64) Random {
	return &pcgRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRandom) Float32(min, max float32) float32 {
	if max <= min {
		return min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + p.r.Float32()*(max-min)
}

func (p *pcgRandom) IntN(min, max int) int {
	if max <= min {
		return min
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return min + p.r.IntN(max-min)
}
