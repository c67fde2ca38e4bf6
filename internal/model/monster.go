package model

// damageFlashDuration is how long the damage tint lasts after a hit, in seconds.
const damageFlashDuration = 1.0

// Monster is an AI-driven creature.
// Not safe for concurrent use: owned by the tick goroutine, other goroutines read View snapshots.
type Monster struct {
	objectID uint32
	title    string
	stats    *Stats
	weapon   Weapon

	position  Point
	direction Direction
	state     BehaviorState

	target       uint32 // objectID, 0 = none
	lastAttacker uint32 // objectID, 0 = none; consumed by the next AI tick

	aiTimer       float32
	attackElapsed float32
	damageFlash   float32
}

// NewMonster creates a monster from template at the given level.
// The monster starts in WALK with an expired AI timer, so the first tick re-rolls it.
func NewMonster(objectID uint32, template *MonsterTemplate, level int) (*Monster, error) {
	weapon, err := template.Weapon()
	if err != nil {
		return nil, err
	}

	stats := template.Stats()
	stats.Set(level, stats)

	return &Monster{
		objectID:  objectID,
		title:     template.Title,
		stats:     stats,
		weapon:    weapon,
		direction: DirectionDown,
		state:     StateWalk,
	}, nil
}

// ObjectID returns unique object ID.
func (m *Monster) ObjectID() uint32 { return m.objectID }

// Name returns the template title.
func (m *Monster) Name() string { return m.title }

// Title returns the template title.
func (m *Monster) Title() string { return m.title }

// Stats returns monster stats.
func (m *Monster) Stats() *Stats { return m.stats }

// Level returns monster level.
func (m *Monster) Level() int { return m.stats.Level() }

// IsActive reports whether the monster still takes part in the simulation.
func (m *Monster) IsActive() bool { return m.stats.HP() > 0 }

// IsAlive reports whether hit points are above zero.
func (m *Monster) IsAlive() bool { return m.stats.IsAlive() }

// Weapon returns the equipped weapon.
func (m *Monster) Weapon() Weapon { return m.weapon }

// SetWeapon replaces the equipped weapon.
func (m *Monster) SetWeapon(w Weapon) { m.weapon = w }

// Position returns current position.
func (m *Monster) Position() Point { return m.position }

// SetPosition moves the monster.
func (m *Monster) SetPosition(p Point) { m.position = p }

// Direction returns current facing.
func (m *Monster) Direction() Direction { return m.direction }

// SetDirection sets facing.
func (m *Monster) SetDirection(d Direction) { m.direction = d }

// State returns current behavior state.
func (m *Monster) State() BehaviorState { return m.state }

// SetState sets behavior state.
func (m *Monster) SetState(s BehaviorState) { m.state = s }

// Target returns current target objectID (0 if no target).
func (m *Monster) Target() uint32 { return m.target }

// SetTarget sets current target objectID.
func (m *Monster) SetTarget(objectID uint32) { m.target = objectID }

// ClearTarget clears current target.
func (m *Monster) ClearTarget() { m.target = 0 }

// LastAttacker returns objectID of the unit that damaged the monster since the last AI tick.
func (m *Monster) LastAttacker() uint32 { return m.lastAttacker }

// SetLastAttacker records the unit that damaged the monster.
func (m *Monster) SetLastAttacker(objectID uint32) { m.lastAttacker = objectID }

// ClearLastAttacker consumes the damage signal.
func (m *Monster) ClearLastAttacker() { m.lastAttacker = 0 }

// AITimer returns seconds left until the next behavior re-roll.
func (m *Monster) AITimer() float32 { return m.aiTimer }

// SetAITimer sets the behavior re-roll countdown.
func (m *Monster) SetAITimer(v float32) { m.aiTimer = v }

// AttackElapsed returns seconds since the last attack attempt.
func (m *Monster) AttackElapsed() float32 { return m.attackElapsed }

// SetAttackElapsed sets seconds since the last attack attempt.
func (m *Monster) SetAttackElapsed(v float32) { m.attackElapsed = v }

// AddAttackElapsed advances the attack cooldown counter.
func (m *Monster) AddAttackElapsed(dt float32) { m.attackElapsed += dt }

// DamageFlash returns remaining damage tint time.
func (m *Monster) DamageFlash() float32 { return m.damageFlash }

// TickDamageFlash counts the damage tint down by dt.
func (m *Monster) TickDamageFlash(dt float32) {
	if m.damageFlash > 0 {
		m.damageFlash -= dt
	}
}

// TakeDamage applies damage and remembers the attacker for aggro.
func (m *Monster) TakeDamage(attacker Unit, amount int, _ Color) {
	if !m.IsAlive() {
		return
	}
	m.stats.DecreaseHP(amount)
	m.damageFlash = damageFlashDuration
	if attacker != nil {
		m.lastAttacker = attacker.ObjectID()
	}
}

// Setup re-initializes the monster from pattern at level and position.
// AI state is reset as for a fresh monster.
func (m *Monster) Setup(level int, position Point, pattern *MonsterTemplate) error {
	weapon, err := pattern.Weapon()
	if err != nil {
		return err
	}
	m.title = pattern.Title
	m.stats = pattern.Stats()
	m.stats.Set(level, m.stats)
	m.weapon = weapon
	m.position = position
	m.direction = DirectionDown
	m.state = StateWalk
	m.target = 0
	m.lastAttacker = 0
	m.aiTimer = 0
	m.attackElapsed = 0
	m.damageFlash = 0
	return nil
}

// MonsterView is a read-only render snapshot of a monster.
type MonsterView struct {
	ObjectID   uint32
	Title      string
	Position   Point
	Direction  Direction
	Frame      int
	State      string
	HP         int
	HPMax      int
	Level      int
	FlashAlpha float32
}

// View returns the render snapshot of the monster.
func (m *Monster) View() MonsterView {
	return MonsterView{
		ObjectID:   m.objectID,
		Title:      m.title,
		Position:   m.position,
		Direction:  m.direction,
		Frame:      m.direction.Frame(),
		State:      m.state.String(),
		HP:         m.stats.HP(),
		HPMax:      m.stats.HPMax(),
		Level:      m.stats.Level(),
		FlashAlpha: min(max(m.damageFlash, 0), 1),
	}
}
