package world

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/udisondev/arpg/internal/model"
)

// World is the objectID → unit table and the map units live on.
// Units hold each other only by objectID and resolve through GetUnit every tick.
type World struct {
	gameMap *Map
	units   sync.Map // map[uint32]model.Unit — objectID → unit
	count   atomic.Int32
}

// New creates a world on gameMap.
func New(gameMap *Map) *World {
	return &World{gameMap: gameMap}
}

// Map returns the world map.
func (w *World) Map() *Map {
	return w.gameMap
}

// AddUnit adds unit to the world.
// Returns error if the objectID is taken or the position is off the map.
func (w *World) AddUnit(unit model.Unit) error {
	pos := unit.Position()
	if !w.gameMap.Contains(pos) {
		return fmt.Errorf("invalid coordinates for unit %d: (%.1f, %.1f)", unit.ObjectID(), pos.X, pos.Y)
	}
	if _, loaded := w.units.LoadOrStore(unit.ObjectID(), unit); loaded {
		return fmt.Errorf("unit %d already in world", unit.ObjectID())
	}
	w.count.Add(1)
	return nil
}

// RemoveUnit removes unit from world. Unknown objectIDs are ignored.
func (w *World) RemoveUnit(objectID uint32) {
	if _, ok := w.units.LoadAndDelete(objectID); ok {
		w.count.Add(-1)
	}
}

// GetUnit returns the unit with objectID.
func (w *World) GetUnit(objectID uint32) (model.Unit, bool) {
	value, ok := w.units.Load(objectID)
	if !ok {
		return nil, false
	}
	return value.(model.Unit), true
}

// ForEachUnit calls fn for every unit until fn returns false.
func (w *World) ForEachUnit(fn func(model.Unit) bool) {
	w.units.Range(func(_, value any) bool {
		return fn(value.(model.Unit))
	})
}

// Count returns number of units in world (O(1) cached count).
func (w *World) Count() int {
	return int(w.count.Load())
}

// MoveMonster walks monster forward along its facing at its stats speed.
// Steps into blocked cells or off the map are discarded.
func (w *World) MoveMonster(monster *model.Monster, dt, speedMultiplier float32) {
	dist := monster.Stats().Speed() * speedMultiplier * dt
	if dist <= 0 {
		return
	}
	to, ok := w.gameMap.Step(monster.Position(), monster.Direction(), dist)
	if ok {
		monster.SetPosition(to)
	}
}
