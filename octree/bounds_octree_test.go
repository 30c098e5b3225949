package octree

import "testing"

// TestBoundsOctreeSpilloverScenario checks spillover under looseness 1.5: a
// (0.6,0.6,0.6) box centered at (0.6,0,0) fits the root (adj_length 3) but
// not its best-fit child 1 (adj_length 1.5, centered at (0.5,0.5,-0.5), so
// its y range starts at -0.25 and its z range ends at 0.25, while the box
// spans -0.3..0.3 on both), so it must spill into the root's direct objects.
// A 0.4 box at the same center would still fit inside child 1.
func TestBoundsOctreeSpilloverScenario(t *testing.T) {
	node := newBoundsOctreeNode[string](2, 0, 1.5, Vector3{0, 0, 0})
	node.split()

	box := NewAABB(Vector3{0.6, 0, 0}, Vector3{0.6, 0.6, 0.6})
	rec := boundsRecord[string]{Obj: "spilled", Bounds: box}

	if !node.bounds.Encapsulates(box) {
		t.Fatalf("sanity check failed: root (adj_length 3) should encapsulate the box")
	}

	idx := bestFitChild(node.center, box.Center)
	if idx != 1 {
		t.Fatalf("sanity check failed: expected best-fit child 1, got %d", idx)
	}
	if node.children[idx].bounds.Encapsulates(box) {
		t.Fatalf("sanity check failed: expected child %d not to encapsulate the box", idx)
	}

	if !node.Add(rec) {
		t.Fatalf("Add returned false, want true (spillover still succeeds)")
	}

	if len(node.objects) != 1 || node.objects[0].Obj != "spilled" {
		t.Errorf("expected the box to spill into the root's direct objects, got %+v", node.objects)
	}
	for i, c := range node.children {
		if len(c.objects) != 0 {
			t.Errorf("expected child %d to hold no records, found %d", i, len(c.objects))
		}
	}
}

func TestBoundsOctreeLoosenessClamp(t *testing.T) {
	tree := NewBoundsOctree[string](2, Vector3{0, 0, 0}, 1, 5.0)
	if tree.looseness != 2.0 {
		t.Errorf("looseness = %v, want clamped to 2.0", tree.looseness)
	}

	tree2 := NewBoundsOctree[string](2, Vector3{0, 0, 0}, 1, 0.2)
	if tree2.looseness != 1.0 {
		t.Errorf("looseness = %v, want clamped to 1.0", tree2.looseness)
	}
}

func TestBoundsOctreeAddAndGetColliding(t *testing.T) {
	tree := NewBoundsOctree[string](4, Vector3{0, 0, 0}, 1, 1.2)

	tree.Add("near", NewAABB(Vector3{0.5, 0.5, 0.5}, Vector3{0.2, 0.2, 0.2}))
	tree.Add("far", NewAABB(Vector3{-1.5, -1.5, -1.5}, Vector3{0.2, 0.2, 0.2}))

	query := NewAABB(Vector3{0.5, 0.5, 0.5}, Vector3{0.5, 0.5, 0.5})
	got := tree.GetColliding(query, nil)

	if !containsAll(got, "near") {
		t.Errorf("GetColliding = %v, want to include near", got)
	}
	for _, o := range got {
		if o == "far" {
			t.Errorf("GetColliding included far, which does not overlap the query box")
		}
	}
}

func TestBoundsOctreeIsCollidingMatchesGetColliding(t *testing.T) {
	tree := NewBoundsOctree[int](8, Vector3{0, 0, 0}, 1, 1.3)
	for i := 0; i < 12; i++ {
		c := Vector3{float64(i) * 0.3, float64(i) * 0.1, 0}
		tree.Add(i, NewAABB(c, Vector3{0.3, 0.3, 0.3}))
	}

	queries := []AABB{
		NewAABB(Vector3{0, 0, 0}, Vector3{1, 1, 1}),
		NewAABB(Vector3{100, 100, 100}, Vector3{1, 1, 1}),
		NewAABB(Vector3{1.5, 0.3, 0}, Vector3{0.5, 0.5, 0.5}),
	}

	for _, q := range queries {
		isColliding := tree.IsColliding(q)
		results := tree.GetColliding(q, nil)
		if isColliding != (len(results) > 0) {
			t.Errorf("IsColliding(%v) = %v, but GetColliding returned %d results", q, isColliding, len(results))
		}
	}
}

func TestBoundsOctreeRemoveRoundTrip(t *testing.T) {
	tree := NewBoundsOctree[string](4, Vector3{0, 0, 0}, 1, 1.25)
	tree.Add("A", NewAABB(Vector3{0.5, 0.5, 0.5}, Vector3{0.2, 0.2, 0.2}))

	before := tree.Count()

	box := NewAABB(Vector3{-0.5, -0.5, -0.5}, Vector3{0.2, 0.2, 0.2})
	tree.Add("X", box)
	if !tree.RemoveAt("X", box) {
		t.Fatalf("RemoveAt(X) = false, want true")
	}

	if tree.Count() != before {
		t.Errorf("Count() after round trip = %d, want %d", tree.Count(), before)
	}
}

func TestBoundsOctreeGrowsToEncapsulate(t *testing.T) {
	tree := NewBoundsOctree[string](2, Vector3{0, 0, 0}, 1, 1.2)
	tree.Add("A", NewAABB(Vector3{0.2, 0.2, 0.2}, Vector3{0.1, 0.1, 0.1}))

	far := NewAABB(Vector3{250, 0, 0}, Vector3{1, 1, 1})
	tree.Add("Z", far)

	if tree.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", tree.Count())
	}
	if !tree.GetMaxBounds().Encapsulates(far) {
		t.Fatalf("root bounds %v do not encapsulate Z after growth", tree.GetMaxBounds())
	}
}

func TestBoundsOctreeGetWithinFrustum(t *testing.T) {
	tree := NewBoundsOctree[string](8, Vector3{0, 0, 0}, 1, 1.2)
	tree.Add("inside", NewAABB(Vector3{0, 0, 0}, Vector3{0.5, 0.5, 0.5}))
	tree.Add("outside", NewAABB(Vector3{1000, 0, 0}, Vector3{0.5, 0.5, 0.5}))

	planes := [6]Plane{
		{Normal: Vector3{1, 0, 0}, Distance: 10},
		{Normal: Vector3{-1, 0, 0}, Distance: 10},
		{Normal: Vector3{0, 1, 0}, Distance: 10},
		{Normal: Vector3{0, -1, 0}, Distance: 10},
		{Normal: Vector3{0, 0, 1}, Distance: 10},
		{Normal: Vector3{0, 0, -1}, Distance: 10},
	}

	got := tree.GetWithinFrustum(planes, nil)
	if !containsAll(got, "inside") {
		t.Errorf("GetWithinFrustum = %v, want to include inside", got)
	}
	for _, o := range got {
		if o == "outside" {
			t.Errorf("GetWithinFrustum included outside, which is far beyond every plane")
		}
	}
}
