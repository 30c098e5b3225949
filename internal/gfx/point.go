package gfx

// Point represents a 3D point or vector in the demo viewer's world space.
type Point struct {
	X, Y, Z float64
}
