package model

import "math"

// Point is a position on the 2D map. Y grows upward.
// Value type, passed by value.
type Point struct {
	X float32
	Y float32
}

// NewPoint creates a Point.
func NewPoint(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add returns the point shifted by (dx, dy).
func (p Point) Add(dx, dy float32) Point {
	p.X += dx
	p.Y += dy
	return p
}

// Dst returns the euclidean distance to other.
func (p Point) Dst(other Point) float32 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// AngleTo returns the angle in degrees of the vector from p to other,
// measured counter-clockwise from the positive X axis.
func (p Point) AngleTo(other Point) float32 {
	rad := math.Atan2(float64(other.Y-p.Y), float64(other.X-p.X))
	return float32(rad * 180 / math.Pi)
}
