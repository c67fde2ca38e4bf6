package model

// Direction is the single cardinal facing of a unit.
// Used both for movement and for attack alignment.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// Directions lists every facing in draw order (index of a uniform draw in [0, 4)).
var Directions = [...]Direction{DirectionUp, DirectionDown, DirectionLeft, DirectionRight}

// Angle returns the canonical angle of the facing in degrees (RIGHT = 0, counter-clockwise).
func (d Direction) Angle() float32 {
	switch d {
	case DirectionUp:
		return 90
	case DirectionLeft:
		return 180
	case DirectionDown:
		return 270
	default:
		return 0
	}
}

// Vector returns the unit step along the facing.
func (d Direction) Vector() (dx, dy float32) {
	switch d {
	case DirectionUp:
		return 0, 1
	case DirectionDown:
		return 0, -1
	case DirectionLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Frame returns the sprite row used by renderers for this facing.
func (d Direction) Frame() int {
	return int(d)
}

// String returns human-readable direction name
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	case DirectionLeft:
		return "LEFT"
	case DirectionRight:
		return "RIGHT"
	default:
		return "UNKNOWN"
	}
}
