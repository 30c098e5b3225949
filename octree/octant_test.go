package octree

import "testing"

// TestBestFitChildFormula pins down the octant indexing formula bit-for-bit,
// since grow/shrink correctness depends on it matching exactly.
func TestBestFitChildFormula(t *testing.T) {
	center := Vector3{0, 0, 0}

	cases := []struct {
		p    Vector3
		want int
	}{
		{Vector3{-1, 0, -1}, 0},  // x<=c, z<=c, y>=c
		{Vector3{1, 0, -1}, 1},   // x>c
		{Vector3{-1, 0, 2}, 2},   // z>c
		{Vector3{1, 0, 2}, 3},    // x>c, z>c
		{Vector3{-1, -1, -1}, 4}, // y<c
		{Vector3{1, -1, -1}, 5},
		{Vector3{-1, -1, 2}, 6},
		{Vector3{1, -1, 2}, 7},
	}

	for _, c := range cases {
		if got := bestFitChild(center, c.p); got != c.want {
			t.Errorf("bestFitChild(%v) = %d, want %d", c.p, got, c.want)
		}
	}
}

// TestGrowSiblingOffsetMatchesBestFit verifies that the position the old
// root is placed in during Grow is the same octant bestFitChild would
// assign to the old root's own center — the invariant §4.3 depends on.
func TestGrowSiblingOffsetMatchesBestFit(t *testing.T) {
	oldCenter := Vector3{1, 1, 1}
	oldBaseLength := 2.0
	newCenter := Vector3{2, 2, 2} // grown toward +x, +y, +z

	idx := bestFitChild(newCenter, oldCenter)
	got := childCenter(newCenter, oldBaseLength*2, idx)

	if got != oldCenter {
		t.Errorf("childCenter at bestFitChild index = %v, want old root center %v", got, oldCenter)
	}
}

// TestChildCenterPartitionsSpace checks that the eight child centers produced
// by childCenter are exactly the eight sign combinations around the parent
// center, each reachable via bestFitChild from a point placed in it.
func TestChildCenterPartitionsSpace(t *testing.T) {
	center := Vector3{0, 0, 0}
	baseLength := 4.0
	q := baseLength / 4

	seen := map[Vector3]bool{}
	for i := 0; i < 8; i++ {
		c := childCenter(center, baseLength, i)
		seen[c] = true

		if absDiffGeom(c.X, center.X) != q || absDiffGeom(c.Y, center.Y) != q || absDiffGeom(c.Z, center.Z) != q {
			t.Fatalf("child %d center %v not offset by q=%v from parent", i, c, q)
		}

		if got := bestFitChild(center, c); got != i {
			t.Errorf("bestFitChild(childCenter(%d)) = %d, want %d", i, got, i)
		}
	}

	if len(seen) != 8 {
		t.Fatalf("expected 8 distinct child centers, got %d", len(seen))
	}
}
