package octree

import "go.uber.org/zap"

// PointOctreeNode is the recursive unit of a PointOctree: it owns a set of
// directly-stored records and either no children or exactly eight.
type PointOctreeNode[T comparable] struct {
	center     Vector3
	baseLength float64
	minSize    float64
	bounds     AABB
	objects    []pointRecord[T]
	children   []*PointOctreeNode[T]
}

func newPointOctreeNode[T comparable](baseLength, minSize float64, center Vector3) *PointOctreeNode[T] {
	n := &PointOctreeNode[T]{
		center:     center,
		baseLength: baseLength,
		minSize:    minSize,
	}
	n.bounds = NewAABB(center, Vector3{baseLength, baseLength, baseLength})
	return n
}

// Add stores rec in the subtree rooted at n, splitting leaves as needed.
// Returns false without mutating state if rec's point falls outside n's
// bounds — the caller (Tree.Add) interprets this as "the root must grow".
func (n *PointOctreeNode[T]) Add(rec pointRecord[T]) bool {
	if !n.bounds.Contains(rec.Point) {
		return false
	}

	if n.children == nil {
		if len(n.objects) < NumObjectsAllowed || n.baseLength/2 < n.minSize {
			n.objects = append(n.objects, rec)
			return true
		}
		n.split()
	}

	idx := bestFitChild(n.center, rec.Point)
	return n.children[idx].Add(rec)
}

// split turns a leaf into an internal node with eight empty children and
// redistributes every direct record into its best-fit child.
func (n *PointOctreeNode[T]) split() {
	n.children = make([]*PointOctreeNode[T], 8)
	childLength := n.baseLength / 2
	for i := 0; i < 8; i++ {
		n.children[i] = newPointOctreeNode[T](childLength, n.minSize, childCenter(n.center, n.baseLength, i))
	}

	existing := n.objects
	n.objects = nil
	for _, rec := range existing {
		idx := bestFitChild(n.center, rec.Point)
		n.children[idx].Add(rec)
	}
}

// Remove scans this node and every descendant for obj, equality-matching the
// opaque payload. Merges back up immediately if removal makes that possible.
func (n *PointOctreeNode[T]) Remove(obj T) bool {
	for i, rec := range n.objects {
		if rec.Obj == obj {
			n.objects = append(n.objects[:i], n.objects[i+1:]...)
			n.mergeIfPossible()
			return true
		}
	}

	if n.children == nil {
		return false
	}

	for _, child := range n.children {
		if child.Remove(obj) {
			n.mergeIfPossible()
			return true
		}
	}
	return false
}

// RemoveAt removes obj using its known locator to prune the search to a
// single best-fit path per level, instead of scanning every descendant.
func (n *PointOctreeNode[T]) RemoveAt(obj T, point Vector3) bool {
	if !n.bounds.Contains(point) {
		return false
	}

	for i, rec := range n.objects {
		if rec.Obj == obj {
			n.objects = append(n.objects[:i], n.objects[i+1:]...)
			n.mergeIfPossible()
			return true
		}
	}

	if n.children == nil {
		return false
	}

	idx := bestFitChild(n.center, point)
	if n.children[idx].RemoveAt(obj, point) {
		n.mergeIfPossible()
		return true
	}
	return false
}

func (n *PointOctreeNode[T]) mergeIfPossible() {
	if n.shouldMerge() {
		n.merge()
	}
}

// shouldMerge reports whether this node's children can be folded back in:
// none of them may have grandchildren of their own, and the combined direct
// record count must not exceed NumObjectsAllowed.
func (n *PointOctreeNode[T]) shouldMerge() bool {
	if n.children == nil {
		return false
	}
	total := len(n.objects)
	for _, child := range n.children {
		if child.children != nil {
			return false
		}
		total += len(child.objects)
	}
	return total <= NumObjectsAllowed
}

func (n *PointOctreeNode[T]) merge() {
	for _, child := range n.children {
		n.objects = append(n.objects, child.objects...)
	}
	n.children = nil
}

// childIsEmpty reports whether a child holds no records anywhere in its
// subtree. Because merge runs eagerly after every removal, a node that still
// has children is guaranteed to be non-empty, so this check never needs to
// recurse past one level.
func (n *PointOctreeNode[T]) childIsEmpty() bool {
	return len(n.objects) == 0 && n.children == nil
}

// ShrinkIfPossible implements the root-shrink transformation of §4.7: it
// either returns n unchanged or a node that should replace it as the tree's
// root. minRootLength is the tree's initial_size (the floor a root may never
// shrink below).
func (n *PointOctreeNode[T]) ShrinkIfPossible(minRootLength float64) *PointOctreeNode[T] {
	if n.baseLength < 2*minRootLength {
		return n
	}
	if len(n.objects) == 0 && n.children == nil {
		return n
	}

	bestFit := -1
	for _, rec := range n.objects {
		idx := bestFitChild(n.center, rec.Point)
		if bestFit == -1 {
			bestFit = idx
		} else if bestFit != idx {
			return n
		}
	}

	if n.children != nil {
		nonEmpty := -1
		for i, child := range n.children {
			if !child.childIsEmpty() {
				if nonEmpty != -1 {
					return n
				}
				nonEmpty = i
			}
		}
		if nonEmpty == -1 {
			return n
		}
		if bestFit != -1 && bestFit != nonEmpty {
			return n
		}
		return n.children[nonEmpty]
	}

	// No children: re-parameterize this node in place to half its side
	// length, centered on the octant every direct record agrees on.
	newCenter := childCenter(n.center, n.baseLength, bestFit)
	n.center = newCenter
	n.baseLength /= 2
	n.bounds = NewAABB(n.center, Vector3{n.baseLength, n.baseLength, n.baseLength})
	return n
}

// GetAll appends every object reachable from n, direct or in a descendant.
func (n *PointOctreeNode[T]) GetAll(out *[]T) {
	for _, rec := range n.objects {
		*out = append(*out, rec.Obj)
	}
	for _, child := range n.children {
		child.GetAll(out)
	}
}

// GetNearbyRay appends every object within maxDistance of ray r, measured as
// perpendicular distance from the object's point to the (infinite) ray line.
func (n *PointOctreeNode[T]) GetNearbyRay(r Ray, maxDistance float64, out *[]T) {
	hit, _ := r.IntersectAABB(n.bounds.Expand(maxDistance))
	if !hit {
		return
	}

	maxSq := maxDistance * maxDistance
	for _, rec := range n.objects {
		if SqDistanceToRay(r, rec.Point) <= maxSq {
			*out = append(*out, rec.Obj)
		}
	}
	for _, child := range n.children {
		child.GetNearbyRay(r, maxDistance, out)
	}
}

// GetNearbyPoint appends every object within maxDistance of p.
func (n *PointOctreeNode[T]) GetNearbyPoint(p Vector3, maxDistance float64, out *[]T) {
	if n.bounds.SqDistanceToPoint(p) > maxDistance*maxDistance {
		return
	}

	maxSq := maxDistance * maxDistance
	for _, rec := range n.objects {
		if rec.Point.Sub(p).LengthSq() <= maxSq {
			*out = append(*out, rec.Obj)
		}
	}
	for _, child := range n.children {
		child.GetNearbyPoint(p, maxDistance, out)
	}
}

// PointOctree indexes objects located at a single 3D point. It grows when an
// insertion falls outside the current root and shrinks after a removal
// leaves the tree sparse; there is no fixed maximum depth.
type PointOctree[T comparable] struct {
	root        *PointOctreeNode[T]
	count       int
	initialSize float64
	minSize     float64
	logger      *zap.Logger
}

// PointOctreeOption configures optional PointOctree behavior at construction.
type PointOctreeOption[T comparable] func(*PointOctree[T])

// WithPointLogger overrides the tree's zap logger; the default logs to a
// production-configured logger and falls back to a no-op logger if that
// cannot be built.
func WithPointLogger[T comparable](logger *zap.Logger) PointOctreeOption[T] {
	return func(t *PointOctree[T]) { t.logger = logger }
}

// NewPointOctree constructs a point octree with the given initial world
// bounds. minNodeSize is clamped down to initialWorldSize (with a warning) if
// it would otherwise exceed it.
func NewPointOctree[T comparable](initialWorldSize float64, initialWorldPos Vector3, minNodeSize float64, opts ...PointOctreeOption[T]) *PointOctree[T] {
	t := &PointOctree[T]{
		initialSize: initialWorldSize,
		minSize:     minNodeSize,
		logger:      newDefaultLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.minSize > initialWorldSize {
		t.logger.Warn("min_node_size exceeds initial_world_size, clamping",
			zap.Float64("min_node_size", minNodeSize),
			zap.Float64("initial_world_size", initialWorldSize))
		t.minSize = initialWorldSize
	}

	t.root = newPointOctreeNode[T](initialWorldSize, t.minSize, initialWorldPos)
	return t
}

// Count returns the number of objects currently stored.
func (t *PointOctree[T]) Count() int {
	return t.count
}

// Add stores obj at point, growing the root as many times as necessary
// (bounded by MaxGrowAttempts) until it is encapsulated. A locator with a
// NaN or infinite coordinate is logged and dropped without incrementing
// count.
func (t *PointOctree[T]) Add(obj T, point Vector3) {
	if !point.IsFinite() {
		t.logger.Error("refusing to add object with non-finite locator", zap.Any("object", obj))
		return
	}

	rec := pointRecord[T]{Obj: obj, Point: point}
	attempts := 0
	for !t.root.Add(rec) {
		attempts++
		if attempts > MaxGrowAttempts {
			t.logger.Error("exceeded max grow attempts, dropping insertion",
				zap.Int("attempts", attempts))
			return
		}
		t.grow(point.Sub(t.root.center))
	}
	t.count++
}

// grow doubles the root's side length, shifting its center by half the old
// side length along the sign of each axis of direction. The old root becomes
// one child of the new root; the remaining seven octants are fresh empty
// nodes, except when the old root is itself empty, in which case it is
// discarded outright (no siblings are created).
func (t *PointOctree[T]) grow(direction Vector3) {
	oldRoot := t.root
	newBaseLength := oldRoot.baseLength * 2

	half := oldRoot.baseLength / 2
	sign := func(v float64) float64 {
		if v >= 0 {
			return 1
		}
		return -1
	}
	newCenter := Vector3{
		X: oldRoot.center.X + sign(direction.X)*half,
		Y: oldRoot.center.Y + sign(direction.Y)*half,
		Z: oldRoot.center.Z + sign(direction.Z)*half,
	}

	newRoot := newPointOctreeNode[T](newBaseLength, t.minSize, newCenter)

	if len(oldRoot.objects) == 0 && oldRoot.children == nil {
		t.root = newRoot
		return
	}

	oldRootIdx := bestFitChild(newCenter, oldRoot.center)
	newRoot.children = make([]*PointOctreeNode[T], 8)
	for i := 0; i < 8; i++ {
		if i == oldRootIdx {
			newRoot.children[i] = oldRoot
			continue
		}
		newRoot.children[i] = newPointOctreeNode[T](oldRoot.baseLength, t.minSize, childCenter(newCenter, newBaseLength, i))
	}

	t.root = newRoot
}

// Remove deletes obj by scanning the whole tree. Returns false, with no
// side effect, if obj is not present.
func (t *PointOctree[T]) Remove(obj T) bool {
	if !t.root.Remove(obj) {
		return false
	}
	t.count--
	t.root = t.root.ShrinkIfPossible(t.initialSize)
	return true
}

// RemoveAt deletes obj using its known locator to prune the search to one
// path per level instead of scanning every node.
func (t *PointOctree[T]) RemoveAt(obj T, point Vector3) bool {
	if !t.root.RemoveAt(obj, point) {
		return false
	}
	t.count--
	t.root = t.root.ShrinkIfPossible(t.initialSize)
	return true
}

// GetAll returns every stored object. Order is unspecified.
func (t *PointOctree[T]) GetAll() []T {
	out := make([]T, 0, t.count)
	t.root.GetAll(&out)
	return out
}

// GetNearbyRay returns every object whose point lies within maxDistance of
// the ray's infinite line, appended to result if non-nil, and returned.
func (t *PointOctree[T]) GetNearbyRay(r Ray, maxDistance float64, result []T) []T {
	t.root.GetNearbyRay(r, maxDistance, &result)
	return result
}

// GetNearbyPoint returns every object within maxDistance of p.
func (t *PointOctree[T]) GetNearbyPoint(p Vector3, maxDistance float64, result []T) []T {
	t.root.GetNearbyPoint(p, maxDistance, &result)
	return result
}

func (n *PointOctreeNode[T]) collectNodeBounds(out *[]AABB) {
	*out = append(*out, n.bounds)
	for _, child := range n.children {
		child.collectNodeBounds(out)
	}
}

// NodeBounds returns the bounds of every node in the tree, root first.
// Intended for diagnostics and visualization, not query performance.
func (t *PointOctree[T]) NodeBounds() []AABB {
	var out []AABB
	t.root.collectNodeBounds(&out)
	return out
}
