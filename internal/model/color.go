package model

// Color is an RGBA tint hint passed along with damage for floating text.
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{R: 1, G: 1, B: 1, A: 1}
	ColorRed   = Color{R: 1, A: 1}
)
