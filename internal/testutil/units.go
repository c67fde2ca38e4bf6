package testutil

import (
	"testing"

	"github.com/udisondev/arpg/internal/model"
)

// Hit records one TakeDamage call on a StubUnit.
type Hit struct {
	AttackerID uint32
	Amount     int
	Color      model.Color
}

// StubUnit is a minimal model.Unit with a fixed position and recorded hits.
type StubUnit struct {
	ID    uint32
	Pos   model.Point
	Dead  bool
	Hits  []Hit
	stats *model.Stats
}

// NewStubUnit creates a live StubUnit at (x, y) with 100 hp.
func NewStubUnit(id uint32, x, y float32) *StubUnit {
	return &StubUnit{
		ID:    id,
		Pos:   model.NewPoint(x, y),
		stats: model.NewStats(1, 1, 0, 100, 0, 0, 0, 0),
	}
}

func (u *StubUnit) ObjectID() uint32      { return u.ID }
func (u *StubUnit) Name() string          { return "stub" }
func (u *StubUnit) Position() model.Point { return u.Pos }
func (u *StubUnit) Stats() *model.Stats   { return u.stats }
func (u *StubUnit) IsAlive() bool         { return !u.Dead && u.stats.IsAlive() }

func (u *StubUnit) TakeDamage(attacker model.Unit, amount int, color model.Color) {
	var id uint32
	if attacker != nil {
		id = attacker.ObjectID()
	}
	u.Hits = append(u.Hits, Hit{AttackerID: id, Amount: amount, Color: color})
	u.stats.DecreaseHP(amount)
}

// Units is an objectID → unit table usable as a lookup callback.
type Units map[uint32]model.Unit

// Get resolves objectID like the world table does.
func (u Units) Get(objectID uint32) (model.Unit, bool) {
	unit, ok := u[objectID]
	return unit, ok
}

// NewMonster creates a monster from a simple template, failing the test on error.
func NewMonster(t testing.TB, objectID uint32, title string, x, y float32) *model.Monster {
	t.Helper()
	tmpl := &model.MonsterTemplate{
		Title:       title,
		BaseAttack:  4,
		BaseDefense: 2,
		BaseHP:      40,
		HPPerLevel:  5,
		Speed:       100,
	}
	m, err := model.NewMonster(objectID, tmpl, 1)
	if err != nil {
		t.Fatalf("NewMonster(%d, %s): %v", objectID, title, err)
	}
	m.SetPosition(model.NewPoint(x, y))
	return m
}
