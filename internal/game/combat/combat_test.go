package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arpg/internal/model"
	"github.com/udisondev/arpg/internal/testutil"
)

func TestCalculateDamage(t *testing.T) {
	attacker := testutil.NewMonster(t, 1, "Tiger", 0, 0) // attack 4
	defender := testutil.NewMonster(t, 2, "Tiger", 0, 0) // defense 2

	tests := []struct {
		name string
		base model.DamageRange
		roll int
		want int
	}{
		{"low roll", model.DamageRange{Min: 2, Max: 5}, 2, 2 + 4 - 1},
		{"high roll", model.DamageRange{Min: 2, Max: 5}, 5, 5 + 4 - 1},
		{"inverted range uses min", model.DamageRange{Min: 3, Max: 1}, 3, 3 + 4 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rnd := testutil.NewScriptedRandom().PushInts(tt.roll)
			assert.Equal(t, tt.want, CalculateDamage(attacker, defender, tt.base, rnd))
		})
	}
}

func TestCalculateDamage_Floor(t *testing.T) {
	defender := testutil.NewStubUnit(2, 0, 0)
	tough := model.NewStats(1, 0, 100, 10, 0, 0, 0, 0)
	rnd := testutil.NewScriptedRandom().PushInts(1)

	got := CalculateDamage(nil, &toughUnit{StubUnit: defender, stats: tough}, model.DamageRange{Min: 1, Max: 1}, rnd)
	assert.Equal(t, 1, got)
}

func TestCalculateDamage_RollRange(t *testing.T) {
	rnd := testutil.NewScriptedRandom()
	CalculateDamage(nil, nil, model.DamageRange{Min: 3, Max: 8}, rnd)
	assert.Equal(t, 1, rnd.IntCalls)
}

type toughUnit struct {
	*testutil.StubUnit
	stats *model.Stats
}

func (u *toughUnit) Stats() *model.Stats { return u.stats }

func TestCombatManager_ApplyDamage(t *testing.T) {
	mgr := NewCombatManager(testutil.NewScriptedRandom())

	var results []HitResult
	mgr.SetHitObserver(func(r HitResult) { results = append(results, r) })

	var deaths []uint32
	mgr.SetDeathFunc(func(victim, killer model.Unit) {
		deaths = append(deaths, victim.ObjectID())
		assert.Equal(t, uint32(1), killer.ObjectID())
	})

	attacker := testutil.NewMonster(t, 1, "Tiger", 0, 0)
	victim := testutil.NewMonster(t, 2, "Archer", 0, 0) // 40 hp

	mgr.ApplyDamage(victim, attacker, 15, model.ColorWhite)
	assert.Equal(t, 25, victim.Stats().HP())
	assert.Equal(t, uint32(1), victim.LastAttacker())
	assert.Empty(t, deaths)

	mgr.ApplyDamage(victim, attacker, 30, model.ColorWhite)
	assert.False(t, victim.IsAlive())
	assert.Equal(t, []uint32{2}, deaths)

	// Overkill on a corpse is dropped.
	mgr.ApplyDamage(victim, attacker, 30, model.ColorWhite)
	assert.Equal(t, []uint32{2}, deaths)

	require.Len(t, results, 2)
	assert.False(t, results[0].Killed)
	assert.True(t, results[1].Killed)
	assert.Equal(t, int64(2), mgr.Hits())
	assert.Equal(t, int64(1), mgr.Kills())
}

func TestCombatManager_ApplyDamage_NoAttacker(t *testing.T) {
	mgr := NewCombatManager(testutil.NewScriptedRandom())
	victim := testutil.NewStubUnit(2, 0, 0)

	mgr.ApplyDamage(victim, nil, 5, model.ColorRed)

	require.Len(t, victim.Hits, 1)
	assert.Zero(t, victim.Hits[0].AttackerID)
	assert.Equal(t, model.ColorRed, victim.Hits[0].Color)
}
