package combat

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/arpg/internal/model"
)

// DeathFunc is called once when a unit's hit points reach zero.
// Injected by SpawnManager to despawn and schedule respawn.
type DeathFunc func(victim, killer model.Unit)

// HitResult holds the outcome of one applied hit, for observation in tests.
type HitResult struct {
	AttackerID uint32
	TargetID   uint32
	Damage     int
	Killed     bool
}

// CombatManager rolls and applies damage between units.
type CombatManager struct {
	rnd Random

	deathFunc   DeathFunc
	hitObserver func(HitResult)

	hits  atomic.Int64
	kills atomic.Int64
}

// NewCombatManager creates a new combat manager.
func NewCombatManager(rnd Random) *CombatManager {
	return &CombatManager{rnd: rnd}
}

// SetDeathFunc sets the callback for unit death handling.
func (m *CombatManager) SetDeathFunc(fn DeathFunc) {
	m.deathFunc = fn
}

// SetHitObserver sets a callback receiving every applied hit (nil in production).
func (m *CombatManager) SetHitObserver(fn func(HitResult)) {
	m.hitObserver = fn
}

// CalculateDamage rolls damage of attacker against defender.
func (m *CombatManager) CalculateDamage(attacker, defender model.Unit, base model.DamageRange) int {
	return CalculateDamage(attacker, defender, base, m.rnd)
}

// ApplyDamage deals amount to target on behalf of attacker.
// Hits on dead targets are dropped. Death is reported once, on the killing hit.
func (m *CombatManager) ApplyDamage(target, attacker model.Unit, amount int, color model.Color) {
	if target == nil || !target.IsAlive() {
		return
	}

	target.TakeDamage(attacker, amount, color)
	m.hits.Add(1)

	killed := !target.IsAlive()
	result := HitResult{
		TargetID: target.ObjectID(),
		Damage:   amount,
		Killed:   killed,
	}
	if attacker != nil {
		result.AttackerID = attacker.ObjectID()
	}

	if m.hitObserver != nil {
		m.hitObserver(result)
	}

	if !killed {
		return
	}

	m.kills.Add(1)
	slog.Info("unit killed",
		"victim", target.Name(),
		"victimID", target.ObjectID(),
		"killerID", result.AttackerID)

	if m.deathFunc != nil {
		m.deathFunc(target, attacker)
	}
}

// Hits returns number of applied hits.
func (m *CombatManager) Hits() int64 {
	return m.hits.Load()
}

// Kills returns number of killing hits.
func (m *CombatManager) Kills() int64 {
	return m.kills.Load()
}
