package effect

import (
	"slices"
	"sync"
)

// Kind identifies a visual effect sprite sequence.
type Kind int

const (
	// KindMeleeHit is played on the target of a landed melee attack
	KindMeleeHit Kind = 1
)

// DefaultLifetime is how long an effect stays active, in seconds.
const DefaultLifetime = 0.5

// Effect is one active visual effect.
type Effect struct {
	X    float32
	Y    float32
	Kind Kind
	Age  float32
}

// Controller tracks short-lived visual effects for renderers.
type Controller struct {
	mu       sync.Mutex
	lifetime float32
	active   []Effect
	total    int
}

// NewController creates an effect controller. Non-positive lifetime falls back to DefaultLifetime.
func NewController(lifetime float32) *Controller {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Controller{lifetime: lifetime}
}

// Setup starts an effect of kind at (x, y).
func (c *Controller) Setup(x, y float32, kind int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = append(c.active, Effect{X: x, Y: y, Kind: Kind(kind)})
	c.total++
}

// Update ages effects by dt and drops expired ones.
func (c *Controller) Update(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.active {
		c.active[i].Age += dt
	}
	c.active = slices.DeleteFunc(c.active, func(e Effect) bool {
		return e.Age >= c.lifetime
	})
}

// Active returns a copy of active effects.
func (c *Controller) Active() []Effect {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.active)
}

// Total returns number of effects ever started.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}
