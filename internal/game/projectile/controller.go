package projectile

import (
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/udisondev/arpg/internal/model"
)

// DefaultHitRadius is the distance at which a projectile hits a unit.
const DefaultHitRadius = 30.0

// UnitScanner iterates units a projectile may hit.
type UnitScanner interface {
	ForEachUnit(fn func(model.Unit) bool)
}

// DamageCalcFunc computes damage of attacker against defender.
type DamageCalcFunc func(attacker, defender model.Unit, base model.DamageRange) int

// ApplyDamageFunc applies damage to target.
type ApplyDamageFunc func(target, attacker model.Unit, amount int, color model.Color)

// Projectile is one flying projectile.
type Projectile struct {
	Owner    model.Unit
	Position model.Point
	VX, VY   float32
	Gravity  float32
	Speed    float32
	Traveled float32
	MaxRange float32
	Damage   model.DamageRange
}

// Controller advances projectiles and resolves hits.
type Controller struct {
	mu          sync.Mutex
	scanner     UnitScanner
	calcFunc    DamageCalcFunc
	applyFunc   ApplyDamageFunc
	passable    func(model.Point) bool
	hitRadius   float32
	projectiles []*Projectile
	fired       int
	landed      int
}

// NewController creates a projectile controller.
func NewController(scanner UnitScanner, calc DamageCalcFunc, apply ApplyDamageFunc) *Controller {
	return &Controller{
		scanner:   scanner,
		calcFunc:  calc,
		applyFunc: apply,
		hitRadius: DefaultHitRadius,
	}
}

// SetPassableFunc makes projectiles stop at impassable points (walls, map edge).
func (c *Controller) SetPassableFunc(fn func(model.Point) bool) {
	c.passable = fn
}

// SetHitRadius overrides DefaultHitRadius. Non-positive values are ignored.
func (c *Controller) SetHitRadius(r float32) {
	if r > 0 {
		c.hitRadius = r
	}
}

// Setup launches a projectile from (x, y) at angle degrees.
func (c *Controller) Setup(owner model.Unit, x, y, speed, gravity, maxRange, angle float32, damage model.DamageRange) {
	rad := float64(angle) * math.Pi / 180
	p := &Projectile{
		Owner:    owner,
		Position: model.NewPoint(x, y),
		VX:       speed * float32(math.Cos(rad)),
		VY:       speed * float32(math.Sin(rad)),
		Gravity:  gravity,
		Speed:    speed,
		MaxRange: maxRange,
		Damage:   damage,
	}

	c.mu.Lock()
	c.projectiles = append(c.projectiles, p)
	c.fired++
	c.mu.Unlock()
}

// Update advances every projectile by dt and applies hits.
// Projectiles expire after MaxRange, on impassable points, or on the first unit hit.
func (c *Controller) Update(dt float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.projectiles = slices.DeleteFunc(c.projectiles, func(p *Projectile) bool {
		return !c.advance(p, dt)
	})
}

// advance moves p and reports whether it is still flying.
func (c *Controller) advance(p *Projectile, dt float32) bool {
	p.VY -= p.Gravity * dt
	p.Position = p.Position.Add(p.VX*dt, p.VY*dt)
	p.Traveled += p.Speed * dt

	if target := c.findHit(p); target != nil {
		c.hit(p, target)
		return false
	}
	if p.Traveled >= p.MaxRange {
		return false
	}
	if c.passable != nil && !c.passable(p.Position) {
		return false
	}
	return true
}

func (c *Controller) findHit(p *Projectile) model.Unit {
	if c.scanner == nil {
		return nil
	}
	var ownerID uint32
	if p.Owner != nil {
		ownerID = p.Owner.ObjectID()
	}

	var (
		best     model.Unit
		bestDist float32
	)
	c.scanner.ForEachUnit(func(u model.Unit) bool {
		if u.ObjectID() == ownerID || !u.IsAlive() {
			return true
		}
		d := p.Position.Dst(u.Position())
		if d >= c.hitRadius {
			return true
		}
		if best == nil || d < bestDist || (d == bestDist && u.ObjectID() < best.ObjectID()) {
			best, bestDist = u, d
		}
		return true
	})
	return best
}

func (c *Controller) hit(p *Projectile, target model.Unit) {
	amount := p.Damage.Min
	if c.calcFunc != nil {
		amount = c.calcFunc(p.Owner, target, p.Damage)
	}
	if c.applyFunc != nil {
		c.applyFunc(target, p.Owner, amount, model.ColorWhite)
	} else {
		target.TakeDamage(p.Owner, amount, model.ColorWhite)
	}
	c.landed++

	slog.Debug("projectile hit",
		"targetID", target.ObjectID(),
		"damage", amount)
}

// Active returns copies of flying projectiles.
func (c *Controller) Active() []Projectile {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Projectile, 0, len(c.projectiles))
	for _, p := range c.projectiles {
		out = append(out, *p)
	}
	return out
}

// Count returns number of flying projectiles.
func (c *Controller) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.projectiles)
}

// Stats returns number of projectiles fired and hits landed.
func (c *Controller) Stats() (fired, landed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fired, c.landed
}
