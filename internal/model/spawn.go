package model

import (
	"sync"
	"sync/atomic"
	"time"
)

// Spawn is a spawn entry: which monster, at what level, where and how many.
// A negative coordinate means the map assigns a free position on every spawn.
type Spawn struct {
	spawnID      int64
	title        string
	level        int
	position     Point
	maximumCount int32
	respawnDelay time.Duration // 0 = no respawn

	mu           sync.RWMutex
	currentCount atomic.Int32
	monsters     []*Monster
}

// NewSpawn creates a new spawn entry.
func NewSpawn(spawnID int64, title string, level int, x, y float32, maximumCount int32, respawnDelay time.Duration) *Spawn {
	return &Spawn{
		spawnID:      spawnID,
		title:        title,
		level:        level,
		position:     NewPoint(x, y),
		maximumCount: maximumCount,
		respawnDelay: respawnDelay,
		monsters:     make([]*Monster, 0, maximumCount),
	}
}

// SpawnID returns spawn ID
func (s *Spawn) SpawnID() int64 {
	return s.spawnID
}

// Title returns the monster template title.
func (s *Spawn) Title() string {
	return s.title
}

// Level returns monster level.
func (s *Spawn) Level() int {
	return s.level
}

// Position returns configured spawn position.
func (s *Spawn) Position() Point {
	return s.position
}

// RandomPosition reports whether the map picks the position.
func (s *Spawn) RandomPosition() bool {
	return s.position.X < 0 || s.position.Y < 0
}

// MaximumCount returns maximum number of live monsters of this entry.
func (s *Spawn) MaximumCount() int32 {
	return s.maximumCount
}

// RespawnDelay returns delay between death and respawn.
func (s *Spawn) RespawnDelay() time.Duration {
	return s.respawnDelay
}

// DoRespawn returns whether monsters respawn after death.
func (s *Spawn) DoRespawn() bool {
	return s.respawnDelay > 0
}

// CurrentCount returns current spawned count (atomic read)
func (s *Spawn) CurrentCount() int32 {
	return s.currentCount.Load()
}

// IncreaseCount increases spawned count by 1 (atomic)
func (s *Spawn) IncreaseCount() {
	s.currentCount.Add(1)
}

// DecreaseCount decreases spawned count by 1 (atomic)
func (s *Spawn) DecreaseCount() {
	s.currentCount.Add(-1)
}

// AddMonster adds monster to the entry's live list.
func (s *Spawn) AddMonster(m *Monster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.monsters = append(s.monsters, m)
}

// RemoveMonster removes monster from the live list.
func (s *Spawn) RemoveMonster(m *Monster) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.monsters {
		if n == m {
			s.monsters = append(s.monsters[:i], s.monsters[i+1:]...)
			return true
		}
	}
	return false
}

// Monsters returns copy of live monsters list.
func (s *Spawn) Monsters() []*Monster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	monsters := make([]*Monster, len(s.monsters))
	copy(monsters, s.monsters)
	return monsters
}
