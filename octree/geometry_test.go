package octree

import "testing"

func TestAABBContains(t *testing.T) {
	box := NewAABB(Vector3{0, 0, 0}, Vector3{2, 2, 2})

	cases := []struct {
		p    Vector3
		want bool
	}{
		{Vector3{0, 0, 0}, true},
		{Vector3{1, 1, 1}, true},
		{Vector3{1.0001, 0, 0}, false},
		{Vector3{-1, -1, -1}, true},
	}

	for _, c := range cases {
		if got := box.Contains(c.p); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestAABBEncapsulates(t *testing.T) {
	outer := NewAABB(Vector3{0, 0, 0}, Vector3{4, 4, 4})
	inner := NewAABB(Vector3{0.5, 0, 0}, Vector3{1, 1, 1})

	if !outer.Encapsulates(inner) {
		t.Fatalf("expected outer to encapsulate inner")
	}

	tooBig := NewAABB(Vector3{1.9, 0, 0}, Vector3{1, 1, 1})
	if outer.Encapsulates(tooBig) {
		t.Fatalf("expected outer not to encapsulate a box crossing its face")
	}
}

func TestAABBIntersects(t *testing.T) {
	a := NewAABB(Vector3{0, 0, 0}, Vector3{2, 2, 2})
	b := NewAABB(Vector3{1.5, 0, 0}, Vector3{2, 2, 2})
	c := NewAABB(Vector3{10, 0, 0}, Vector3{2, 2, 2})

	if !a.Intersects(b) {
		t.Errorf("expected overlapping boxes to intersect")
	}
	if a.Intersects(c) {
		t.Errorf("expected distant boxes not to intersect")
	}
}

func TestRayIntersectAABB(t *testing.T) {
	box := NewAABB(Vector3{5, 0, 0}, Vector3{2, 2, 2})
	r := NewRay(Vector3{0, 0, 0}, Vector3{1, 0, 0})

	hit, dist := r.IntersectAABB(box)
	if !hit {
		t.Fatalf("expected ray to hit box")
	}
	if absDiffGeom(dist, 4) > 1e-9 {
		t.Errorf("expected hit distance 4, got %v", dist)
	}

	miss := NewRay(Vector3{0, 10, 0}, Vector3{1, 0, 0})
	if hit, _ := miss.IntersectAABB(box); hit {
		t.Errorf("expected parallel offset ray to miss box")
	}
}

func TestRayIntersectAABBOriginInside(t *testing.T) {
	box := NewAABB(Vector3{0, 0, 0}, Vector3{4, 4, 4})
	r := NewRay(Vector3{0, 0, 0}, Vector3{1, 0, 0})

	hit, dist := r.IntersectAABB(box)
	if !hit || dist != 0 {
		t.Errorf("expected origin-inside hit at distance 0, got hit=%v dist=%v", hit, dist)
	}
}

func TestSqDistanceToRay(t *testing.T) {
	r := NewRay(Vector3{0, 0, 0}, Vector3{1, 0, 0})
	p := Vector3{5, 3, 0}

	got := SqDistanceToRay(r, p)
	if absDiffGeom(got, 9) > 1e-9 {
		t.Errorf("SqDistanceToRay = %v, want 9", got)
	}
}

func TestIntersectsFrustumAllInside(t *testing.T) {
	planes := [6]Plane{
		{Normal: Vector3{1, 0, 0}, Distance: 10},
		{Normal: Vector3{-1, 0, 0}, Distance: 10},
		{Normal: Vector3{0, 1, 0}, Distance: 10},
		{Normal: Vector3{0, -1, 0}, Distance: 10},
		{Normal: Vector3{0, 0, 1}, Distance: 10},
		{Normal: Vector3{0, 0, -1}, Distance: 10},
	}

	box := NewAABB(Vector3{0, 0, 0}, Vector3{2, 2, 2})
	if !IntersectsFrustum(planes, box) {
		t.Errorf("expected box near origin to pass a wide frustum")
	}

	far := NewAABB(Vector3{1000, 0, 0}, Vector3{2, 2, 2})
	if IntersectsFrustum(planes, far) {
		t.Errorf("expected far box to be culled")
	}
}

func absDiffGeom(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
