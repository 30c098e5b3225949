package gfx

import "testing"

func BenchmarkComposeMatrix(b *testing.B) {
	rot := QuaternionFromEuler(0.5, 0.5, 0.5)
	pos := Point{X: 10, Y: 20, Z: 30}
	scale := Point{X: 2, Y: 2, Z: 2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := ComposeMatrix(pos, rot, scale)
		if res.M[15] == 0 {
			_ = res
		}
	}
}

func BenchmarkInvert(b *testing.B) {
	m := ComposeMatrix(
		Point{X: 10, Y: 20, Z: 30},
		QuaternionFromEuler(0.5, 0.5, 0.5),
		Point{X: 2, Y: 2, Z: 2},
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res := m.Invert()
		if res.M[15] == 0 {
			_ = res
		}
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := ComposeMatrix(
		Point{X: 10, Y: 20, Z: 30},
		QuaternionFromEuler(0.5, 0.5, 0.5),
		Point{X: 1, Y: 1, Z: 1},
	)

	inv := m.Invert()
	identity := m.Multiply(inv)
	want := IdentityMatrix()

	for i := range identity.M {
		if absDiff(identity.M[i], want.M[i]) > 1e-6 {
			t.Errorf("M * Invert(M) not identity at index %d: got %v, want %v", i, identity.M[i], want.M[i])
		}
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
