package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arpg/internal/model"
	"github.com/udisondev/arpg/internal/testutil"
)

func TestNewMap_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		cols     int
		rows     int
		cellSize float32
		blocked  []Cell
	}{
		{"zero cols", 0, 10, 80, nil},
		{"negative rows", 10, -1, 80, nil},
		{"zero cell size", 10, 10, 0, nil},
		{"blocked outside", 10, 10, 80, []Cell{{X: 10, Y: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMap(tt.cols, tt.rows, tt.cellSize, tt.blocked)
			assert.Error(t, err)
		})
	}
}

func TestMap_IsPassable(t *testing.T) {
	m, err := NewMap(4, 3, 10, []Cell{{X: 1, Y: 1}})
	require.NoError(t, err)

	assert.InDelta(t, 40, m.Width(), 1e-6)
	assert.InDelta(t, 30, m.Height(), 1e-6)
	assert.Equal(t, 11, m.FreeCells())

	assert.True(t, m.IsPassable(model.NewPoint(5, 5)))
	assert.False(t, m.IsPassable(model.NewPoint(15, 15)), "blocked cell")
	assert.False(t, m.IsPassable(model.NewPoint(-1, 5)), "off map")
	assert.False(t, m.IsPassable(model.NewPoint(5, 30)), "top edge is outside")
	assert.True(t, m.IsPassable(model.NewPoint(39.9, 29.9)))
}

func TestMap_AssignSpawnPosition(t *testing.T) {
	m, err := NewMap(3, 1, 10, []Cell{{X: 0, Y: 0}})
	require.NoError(t, err)

	var p model.Point
	rnd := testutil.NewScriptedRandom().PushInts(1)
	require.NoError(t, m.AssignSpawnPosition(rnd, &p))

	// Free cells are (1,0) and (2,0); draw 1 picks the second.
	assert.Equal(t, model.NewPoint(25, 5), p)
	assert.True(t, m.IsPassable(p))
}

func TestMap_AssignSpawnPosition_Full(t *testing.T) {
	m, err := NewMap(1, 1, 10, []Cell{{X: 0, Y: 0}})
	require.NoError(t, err)

	var p model.Point
	err = m.AssignSpawnPosition(testutil.NewScriptedRandom(), &p)
	assert.ErrorIs(t, err, ErrNoFreeCell)
}

func TestMap_Step(t *testing.T) {
	m, err := NewMap(3, 3, 10, []Cell{{X: 2, Y: 1}})
	require.NoError(t, err)

	from := model.NewPoint(15, 15)

	to, ok := m.Step(from, model.DirectionUp, 5)
	assert.True(t, ok)
	assert.Equal(t, model.NewPoint(15, 20), to)

	to, ok = m.Step(from, model.DirectionRight, 6)
	assert.False(t, ok, "blocked cell")
	assert.Equal(t, from, to)

	to, ok = m.Step(from, model.DirectionDown, 20)
	assert.False(t, ok, "off map")
	assert.Equal(t, from, to)
}
