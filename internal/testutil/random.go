package testutil

import "sync"

// ScriptedRandom replays queued draws in order.
// When a queue runs dry it returns min, so tests only script the draws they care about.
type ScriptedRandom struct {
	mu     sync.Mutex
	floats []float32
	ints   []int

	FloatCalls int
	IntCalls   int
}

// NewScriptedRandom creates an empty ScriptedRandom.
func NewScriptedRandom() *ScriptedRandom {
	return &ScriptedRandom{}
}

// PushFloats queues values returned by Float32 (clamped into the requested range).
func (r *ScriptedRandom) PushFloats(values ...float32) *ScriptedRandom {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.floats = append(r.floats, values...)
	return r
}

// PushInts queues values returned by IntN (clamped into the requested range).
func (r *ScriptedRandom) PushInts(values ...int) *ScriptedRandom {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, values...)
	return r
}

// Float32 returns the next queued float clamped to [min, max).
func (r *ScriptedRandom) Float32(min, max float32) float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.FloatCalls++
	if len(r.floats) == 0 {
		return min
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	if v < min {
		return min
	}
	if v >= max && max > min {
		return min
	}
	return v
}

// IntN returns the next queued int clamped to [min, max).
func (r *ScriptedRandom) IntN(min, max int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.IntCalls++
	if len(r.ints) == 0 {
		return min
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v < min || (v >= max && max > min) {
		return min
	}
	return v
}

// Pending returns how many scripted floats and ints are still queued.
func (r *ScriptedRandom) Pending() (floats, ints int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.floats), len(r.ints)
}
