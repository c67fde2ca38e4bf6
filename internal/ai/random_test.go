package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRandom_Deterministic(t *testing.T) {
	a := NewRandom(99)
	b := NewRandom(99)

	for range 100 {
		assert.Equal(t, a.IntN(0, 100), b.IntN(0, 100))
		assert.Equal(t, a.Float32(2, 4), b.Float32(2, 4))
	}
}

func TestNewRandom_Bounds(t *testing.T) {
	rnd := NewRandom(1)

	for range 1000 {
		n := rnd.IntN(0, 4)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 4)

		f := rnd.Float32(-5, 5)
		assert.GreaterOrEqual(t, f, float32(-5))
		assert.Less(t, f, float32(5))
	}

	// Empty ranges return min.
	assert.Equal(t, 3, rnd.IntN(3, 3))
	assert.Equal(t, float32(2), rnd.Float32(2, 1))
}

func TestNewRandom_Concurrent(t *testing.T) {
	rnd := NewRandom(5)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				rnd.IntN(0, 100)
				rnd.Float32(0, 1)
			}
		}()
	}
	wg.Wait()
}
