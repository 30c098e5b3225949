package octree

// NumObjectsAllowed is the maximum number of object records a leaf may hold
// before it is split, unless splitting would produce children smaller than
// the tree's configured minimum size.
const NumObjectsAllowed = 8

// MaxGrowAttempts bounds how many times Tree.Add will double the root before
// giving up on an insertion and reporting it as a degenerate locator.
const MaxGrowAttempts = 20

// bestFitChild returns the octant (0-7) that point best fits relative to a
// node centered at center. This formula is load-bearing: Grow's sibling
// placement and Shrink's best-fit detection both assume it.
func bestFitChild(center, point Vector3) int {
	idx := 0
	if point.X > center.X {
		idx |= 1
	}
	if point.Z > center.Z {
		idx |= 2
	}
	if point.Y < center.Y {
		idx |= 4
	}
	return idx
}

// growSiblingOffset returns the unit offset (in each axis, -1 or +1) of
// sibling octant i relative to the new root's center, used when Grow builds
// the seven empty siblings around the old root. This encoding is distinct
// from bestFitChild's: it indexes positions around a center, not points, and
// must stay in lockstep with it so the old root ends up in the octant that
// bestFitChild would assign to its own center.
func growSiblingOffset(i int) Vector3 {
	x := -1.0
	if i%2 != 0 {
		x = 1.0
	}
	y := 1.0
	if i > 3 {
		y = -1.0
	}
	z := 1.0
	if i < 2 || (i > 3 && i < 6) {
		z = -1.0
	}
	return Vector3{X: x, Y: y, Z: z}
}

// childCenter returns the center of octant i of a node centered at center
// with the given nominal side length (base_length, not the loose adj_length).
func childCenter(center Vector3, baseLength float64, i int) Vector3 {
	q := baseLength / 4.0
	offset := growSiblingOffset(i)
	return Vector3{
		X: center.X + offset.X*q,
		Y: center.Y + offset.Y*q,
		Z: center.Z + offset.Z*q,
	}
}
