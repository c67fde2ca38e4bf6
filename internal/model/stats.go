package model

// Stats holds level-scaled combat stats and current hit points.
// Current values are recomputed from base + per-level growth on Set.
type Stats struct {
	level int

	baseAttack  int
	baseDefense int
	baseHP      int

	attackPerLevel  int
	defensePerLevel int
	hpPerLevel      int

	speed float32

	attack  int
	defense int
	hp      int
	hpMax   int
}

// NewStats creates Stats at the given level with full hit points.
func NewStats(level, baseAttack, baseDefense, baseHP, attackPerLevel, defensePerLevel, hpPerLevel int, speed float32) *Stats {
	s := &Stats{
		level:           max(level, 1),
		baseAttack:      baseAttack,
		baseDefense:     baseDefense,
		baseHP:          baseHP,
		attackPerLevel:  attackPerLevel,
		defensePerLevel: defensePerLevel,
		hpPerLevel:      hpPerLevel,
		speed:           speed,
	}
	s.recalculate()
	return s
}

// Set copies the growth table of pattern and recomputes stats for level.
// Hit points are restored to full.
func (s *Stats) Set(level int, pattern *Stats) {
	s.level = max(level, 1)
	s.baseAttack = pattern.baseAttack
	s.baseDefense = pattern.baseDefense
	s.baseHP = pattern.baseHP
	s.attackPerLevel = pattern.attackPerLevel
	s.defensePerLevel = pattern.defensePerLevel
	s.hpPerLevel = pattern.hpPerLevel
	s.speed = pattern.speed
	s.recalculate()
}

func (s *Stats) recalculate() {
	growth := s.level - 1
	s.attack = s.baseAttack + s.attackPerLevel*growth
	s.defense = s.baseDefense + s.defensePerLevel*growth
	s.hpMax = max(s.baseHP+s.hpPerLevel*growth, 1)
	s.hp = s.hpMax
}

// Level returns current level.
func (s *Stats) Level() int { return s.level }

// Attack returns level-scaled attack.
func (s *Stats) Attack() int { return s.attack }

// Defense returns level-scaled defense.
func (s *Stats) Defense() int { return s.defense }

// HP returns current hit points.
func (s *Stats) HP() int { return s.hp }

// HPMax returns maximum hit points.
func (s *Stats) HPMax() int { return s.hpMax }

// Speed returns movement speed in units per second.
func (s *Stats) Speed() float32 { return s.speed }

// IsAlive reports whether hit points are above zero.
func (s *Stats) IsAlive() bool { return s.hp > 0 }

// DecreaseHP subtracts amount (floored at zero) and returns remaining hit points.
func (s *Stats) DecreaseHP(amount int) int {
	if amount < 0 {
		amount = 0
	}
	s.hp = max(s.hp-amount, 0)
	return s.hp
}

// RestoreHP sets hit points back to maximum.
func (s *Stats) RestoreHP() {
	s.hp = s.hpMax
}
