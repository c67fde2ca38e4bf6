package world

import (
	"errors"
	"fmt"

	"github.com/udisondev/arpg/internal/model"
)

// ErrNoFreeCell is returned when a map has no passable cell to spawn on.
var ErrNoFreeCell = errors.New("map has no passable cell")

// Random is the subset of ai.Random the map needs for spawn placement.
type Random interface {
	IntN(min, max int) int
}

// Cell is a grid cell index.
type Cell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Map is a rectangular grid of square cells, some of them blocked.
// Origin is the bottom-left corner, Y grows upward. Immutable after creation.
type Map struct {
	cellSize float32
	cols     int
	rows     int
	blocked  []bool
	free     []Cell
}

// NewMap creates a map of cols×rows cells of cellSize with the given blocked cells.
func NewMap(cols, rows int, cellSize float32, blocked []Cell) (*Map, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", cols, rows)
	}
	if cellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size %.2f", cellSize)
	}

	m := &Map{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		blocked:  make([]bool, cols*rows),
	}
	for _, c := range blocked {
		if !m.validCell(c.X, c.Y) {
			return nil, fmt.Errorf("blocked cell (%d, %d) outside %dx%d map", c.X, c.Y, cols, rows)
		}
		m.blocked[c.Y*cols+c.X] = true
	}
	for y := range rows {
		for x := range cols {
			if !m.blocked[y*cols+x] {
				m.free = append(m.free, Cell{X: x, Y: y})
			}
		}
	}
	return m, nil
}

// Width returns map width in world units.
func (m *Map) Width() float32 { return float32(m.cols) * m.cellSize }

// Height returns map height in world units.
func (m *Map) Height() float32 { return float32(m.rows) * m.cellSize }

// CellSize returns cell edge length.
func (m *Map) CellSize() float32 { return m.cellSize }

// FreeCells returns number of passable cells.
func (m *Map) FreeCells() int { return len(m.free) }

// Contains reports whether p lies on the map.
func (m *Map) Contains(p model.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width() && p.Y < m.Height()
}

// IsPassable reports whether p is on the map and not inside a blocked cell.
func (m *Map) IsPassable(p model.Point) bool {
	if !m.Contains(p) {
		return false
	}
	cx, cy := m.cellOf(p)
	return !m.blocked[cy*m.cols+cx]
}

// AssignSpawnPosition writes the center of a random passable cell into p.
func (m *Map) AssignSpawnPosition(rnd Random, p *model.Point) error {
	if len(m.free) == 0 {
		return ErrNoFreeCell
	}
	c := m.free[rnd.IntN(0, len(m.free))]
	*p = model.NewPoint(
		(float32(c.X)+0.5)*m.cellSize,
		(float32(c.Y)+0.5)*m.cellSize,
	)
	return nil
}

// Step returns from moved dist along dir, or (from, false) when the destination is not passable.
func (m *Map) Step(from model.Point, dir model.Direction, dist float32) (model.Point, bool) {
	dx, dy := dir.Vector()
	to := from.Add(dx*dist, dy*dist)
	if !m.IsPassable(to) {
		return from, false
	}
	return to, true
}

func (m *Map) cellOf(p model.Point) (int, int) {
	cx := min(int(p.X/m.cellSize), m.cols-1)
	cy := min(int(p.Y/m.cellSize), m.rows-1)
	return cx, cy
}

func (m *Map) validCell(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.cols && y < m.rows
}
