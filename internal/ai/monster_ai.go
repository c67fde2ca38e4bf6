package ai

import (
	"log/slog"
	"sync/atomic"

	"github.com/udisondev/arpg/internal/model"
)

// GetUnitFunc resolves an objectID to a live world unit.
// Injected by SpawnManager to avoid import cycle with world package.
type GetUnitFunc func(objectID uint32) (model.Unit, bool)

// EffectFunc spawns a visual effect of kind at (x, y).
type EffectFunc func(x, y float32, kind int)

// DamageCalcFunc computes the damage attacker deals to defender from a weapon's base damage.
type DamageCalcFunc func(attacker, defender model.Unit, base model.DamageRange) int

// ApplyDamageFunc applies amount of damage to target on behalf of attacker.
type ApplyDamageFunc func(target, attacker model.Unit, amount int, color model.Color)

// ProjectileFunc launches a projectile owned by owner.
type ProjectileFunc func(owner model.Unit, x, y, speed, gravity, maxRange, angle float32, damage model.DamageRange)

// MoveFunc moves a monster forward along its facing for dt seconds.
// Injected by SpawnManager. If nil, monster movement is disabled.
type MoveFunc func(monster *model.Monster, dt, speedMultiplier float32)

// Combat constants.
const (
	aimThreshold      = 20.0 // axis distance under which the monster turns to face its target
	aimJitter         = 5.0  // max projectile angle error, degrees
	projectileOffsetY = 15.0 // projectiles leave from chest height
	projectileGravity = 0.0
	meleeHitEffect    = 1
)

// MonsterAI drives one monster: behavior state, facing, attacks and movement.
// State machine: WALK ↔ HUNT (aggro), re-rolled every 2–4 seconds.
type MonsterAI struct {
	monster   *model.Monster
	rnd       Random
	isRunning atomic.Bool

	// Callbacks (injected to avoid import cycles)
	getUnitFunc     GetUnitFunc
	effectFunc      EffectFunc
	damageCalcFunc  DamageCalcFunc
	applyDamageFunc ApplyDamageFunc
	projectileFunc  ProjectileFunc
	moveFunc        MoveFunc
}

// NewMonsterAI creates a new MonsterAI controller.
func NewMonsterAI(monster *model.Monster, rnd Random, getUnitFunc GetUnitFunc) *MonsterAI {
	return &MonsterAI{
		monster:     monster,
		rnd:         rnd,
		getUnitFunc: getUnitFunc,
	}
}

// SetEffectFunc sets the visual effect callback.
func (ai *MonsterAI) SetEffectFunc(fn EffectFunc) {
	ai.effectFunc = fn
}

// SetDamageFuncs sets damage calculation and application callbacks.
// A nil apply callback falls back to target.TakeDamage.
func (ai *MonsterAI) SetDamageFuncs(calc DamageCalcFunc, apply ApplyDamageFunc) {
	ai.damageCalcFunc = calc
	ai.applyDamageFunc = apply
}

// SetProjectileFunc sets the projectile callback. If nil, ranged attacks are disabled.
func (ai *MonsterAI) SetProjectileFunc(fn ProjectileFunc) {
	ai.projectileFunc = fn
}

// SetMoveFunc sets the movement callback.
func (ai *MonsterAI) SetMoveFunc(fn MoveFunc) {
	ai.moveFunc = fn
}

// Start starts the AI controller.
func (ai *MonsterAI) Start() {
	ai.isRunning.Store(true)

	if IsDebugEnabled() {
		slog.Debug("monster AI started",
			"monster", ai.monster.Title(),
			"objectID", ai.monster.ObjectID(),
			"weapon", ai.monster.Weapon().Name)
	}
}

// Stop stops the AI controller and drops the target.
func (ai *MonsterAI) Stop() {
	ai.isRunning.Store(false)
	ai.monster.ClearTarget()
	ai.monster.ClearLastAttacker()

	if IsDebugEnabled() {
		slog.Debug("monster AI stopped",
			"monster", ai.monster.Title(),
			"objectID", ai.monster.ObjectID())
	}
}

// SetState forces a behavior state on the monster.
func (ai *MonsterAI) SetState(state model.BehaviorState) {
	old := ai.monster.State()
	ai.monster.SetState(state)

	if old != state && IsDebugEnabled() {
		slog.Debug("monster state changed",
			"monster", ai.monster.Title(),
			"objectID", ai.monster.ObjectID(),
			"from", old,
			"to", state)
	}
}

// CurrentState returns current behavior state.
func (ai *MonsterAI) CurrentState() model.BehaviorState {
	return ai.monster.State()
}

// Monster returns the controlled monster.
func (ai *MonsterAI) Monster() *model.Monster {
	return ai.monster
}

// View returns the render snapshot of the controlled monster.
func (ai *MonsterAI) View() model.MonsterView {
	return ai.monster.View()
}

// Tick performs one simulation step.
// The order is fixed: state machine, cooldown, aim, attack, movement.
func (ai *MonsterAI) Tick(dt float32) {
	if !ai.isRunning.Load() || !ai.monster.IsAlive() {
		return
	}

	ai.advanceState(dt)
	ai.monster.AddAttackElapsed(dt)
	ai.monster.TickDamageFlash(dt)

	if ai.monster.State() == model.StateHunt && !ai.CanHitTarget() {
		ai.steer()
	}

	ai.tryAttack()

	if ai.ShouldMove() && ai.moveFunc != nil {
		ai.moveFunc(ai.monster, dt, 1.0)
	}
}

// advanceState runs the behavior state machine and writes its result back to the monster.
func (ai *MonsterAI) advanceState(dt float32) {
	m := ai.monster

	in := TransitionInput{
		State:     m.State(),
		Direction: m.Direction(),
		Timer:     m.AITimer(),
		DT:        dt,
	}

	if id := m.Target(); id != 0 {
		in.HasTarget = true
		if target, ok := ai.lookup(id); ok {
			in.TargetAlive = target.IsAlive()
		}
	}

	var attacker model.Unit
	if id := m.LastAttacker(); id != 0 {
		in.HasAttacker = true
		if u, ok := ai.lookup(id); ok {
			attacker = u
			in.AttackerAlive = u.IsAlive()
		}
	}

	prev := m.State()
	out := Transition(in, ai.rnd)

	m.SetDirection(out.Direction)
	m.SetState(out.State)
	m.SetAITimer(out.Timer)

	switch out.Target {
	case TargetClear:
		m.ClearTarget()
	case TargetAcquireAttacker:
		m.SetTarget(attacker.ObjectID())
	}

	// The damage signal never survives the tick that observed it.
	m.ClearLastAttacker()

	if !IsDebugEnabled() {
		return
	}
	if out.Aggro {
		slog.Debug("monster aggro",
			"monster", m.Title(),
			"objectID", m.ObjectID(),
			"targetID", attacker.ObjectID())
	}
	if prev != out.State {
		slog.Debug("monster state changed",
			"monster", m.Title(),
			"objectID", m.ObjectID(),
			"from", prev,
			"to", out.State,
			"rerolled", out.Rerolled,
			"demoted", out.Demoted)
	}
}

// steer turns the monster toward its target using axis-aligned thresholds.
// The vertical-difference check runs last and wins when both fire.
func (ai *MonsterAI) steer() {
	target, ok := ai.target()
	if !ok {
		return
	}

	pos := ai.monster.Position()
	tp := target.Position()
	facing := ai.monster.Direction()

	if abs(pos.X-tp.X) < aimThreshold {
		if tp.Y < pos.Y {
			facing = model.DirectionDown
		}
		if tp.Y > pos.Y {
			facing = model.DirectionUp
		}
	}
	if abs(pos.Y-tp.Y) < aimThreshold {
		if tp.X < pos.X {
			facing = model.DirectionLeft
		}
		if tp.X > pos.X {
			facing = model.DirectionRight
		}
	}

	if facing == ai.monster.Direction() {
		return
	}

	old := ai.monster.Direction()
	ai.monster.SetDirection(facing)

	if IsDebugEnabled() {
		slog.Debug("monster facing changed",
			"monster", ai.monster.Title(),
			"objectID", ai.monster.ObjectID(),
			"from", old,
			"to", facing)
	}
}

// CanHitTarget reports whether the target is within weapon range and in front of the monster.
func (ai *MonsterAI) CanHitTarget() bool {
	target, ok := ai.target()
	if !ok {
		return false
	}
	return CanHit(ai.monster.Position(), ai.monster.Direction(), target.Position(), ai.monster.Weapon().AttackRange)
}

// CanHit is the attack eligibility predicate: distance strictly below attackRange
// and target on the faced side of self.
func CanHit(self model.Point, facing model.Direction, target model.Point, attackRange float32) bool {
	if self.Dst(target) >= attackRange {
		return false
	}
	switch facing {
	case model.DirectionLeft:
		return target.X < self.X
	case model.DirectionRight:
		return target.X > self.X
	case model.DirectionUp:
		return target.Y > self.Y
	case model.DirectionDown:
		return target.Y < self.Y
	default:
		return false
	}
}

// ShouldMove reports whether the monster walks this tick.
// It holds position only while hunting with the target in hit position.
func (ai *MonsterAI) ShouldMove() bool {
	return !(ai.monster.State() == model.StateHunt && ai.CanHitTarget())
}

// tryAttack attempts an attack once the weapon period has elapsed.
// The cooldown resets even when the attempt is skipped.
func (ai *MonsterAI) tryAttack() {
	weapon := ai.monster.Weapon()
	if ai.monster.AttackElapsed() <= weapon.AttackPeriod {
		return
	}
	ai.monster.SetAttackElapsed(0)

	switch weapon.Kind {
	case model.WeaponMelee:
		ai.meleeAttack(weapon)
	case model.WeaponRanged:
		ai.rangedAttack(weapon)
	}
}

func (ai *MonsterAI) meleeAttack(weapon model.Weapon) {
	if !ai.CanHitTarget() {
		return
	}
	target, _ := ai.target()

	tp := target.Position()
	if ai.effectFunc != nil {
		ai.effectFunc(tp.X, tp.Y, meleeHitEffect)
	}

	amount := weapon.Damage.Min
	if ai.damageCalcFunc != nil {
		amount = ai.damageCalcFunc(ai.monster, target, weapon.Damage)
	}

	if ai.applyDamageFunc != nil {
		ai.applyDamageFunc(target, ai.monster, amount, model.ColorWhite)
	} else {
		target.TakeDamage(ai.monster, amount, model.ColorWhite)
	}

	if IsDebugEnabled() {
		slog.Debug("monster melee hit",
			"monster", ai.monster.Title(),
			"objectID", ai.monster.ObjectID(),
			"targetID", target.ObjectID(),
			"damage", amount)
	}
}

func (ai *MonsterAI) rangedAttack(weapon model.Weapon) {
	pos := ai.monster.Position()

	target, ok := ai.target()
	if !ok {
		ai.fire(pos, ai.monster.Direction().Angle()+ai.jitter(), weapon)
		return
	}

	if !ai.CanHitTarget() {
		return
	}
	ai.fire(pos, pos.AngleTo(target.Position())+ai.jitter(), weapon)
}

func (ai *MonsterAI) fire(pos model.Point, angle float32, weapon model.Weapon) {
	if ai.projectileFunc == nil {
		return
	}
	ai.projectileFunc(ai.monster, pos.X, pos.Y+projectileOffsetY,
		weapon.ProjectileSpeed, projectileGravity, weapon.AttackRange, angle, weapon.Damage)

	if IsDebugEnabled() {
		slog.Debug("monster fired projectile",
			"monster", ai.monster.Title(),
			"objectID", ai.monster.ObjectID(),
			"angle", angle)
	}
}

func (ai *MonsterAI) jitter() float32 {
	return ai.rnd.Float32(-aimJitter, aimJitter)
}

// target resolves the monster's target handle. Missing units count as no target.
func (ai *MonsterAI) target() (model.Unit, bool) {
	id := ai.monster.Target()
	if id == 0 {
		return nil, false
	}
	return ai.lookup(id)
}

func (ai *MonsterAI) lookup(objectID uint32) (model.Unit, bool) {
	if ai.getUnitFunc == nil {
		return nil, false
	}
	u, ok := ai.getUnitFunc(objectID)
	if !ok || u == nil {
		return nil, false
	}
	return u, true
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
