package octree

import "go.uber.org/zap"

// BoundsOctreeNode is the recursive unit of a BoundsOctree. Unlike the point
// variant, a node with children may still retain direct records: objects
// whose AABB straddles an octant boundary and does not fit entirely inside
// any single child's loose bounds ("spillover").
type BoundsOctreeNode[T comparable] struct {
	center     Vector3
	baseLength float64
	looseness  float64
	minSize    float64
	bounds     AABB
	objects    []boundsRecord[T]
	children   []*BoundsOctreeNode[T]
}

func newBoundsOctreeNode[T comparable](baseLength, minSize, looseness float64, center Vector3) *BoundsOctreeNode[T] {
	n := &BoundsOctreeNode[T]{
		center:     center,
		baseLength: baseLength,
		looseness:  looseness,
		minSize:    minSize,
	}
	adj := baseLength * looseness
	n.bounds = NewAABB(center, Vector3{adj, adj, adj})
	return n
}

// childLooseBounds returns the loose AABB of would-be child i of a node with
// the given center/baseLength/looseness, without requiring that child to
// exist yet. Used both when splitting and when testing a shrink candidate.
func childLooseBounds(center Vector3, baseLength, looseness float64, i int) AABB {
	c := childCenter(center, baseLength, i)
	adj := (baseLength / 2) * looseness
	return NewAABB(c, Vector3{adj, adj, adj})
}

// Add stores rec in the subtree rooted at n. Returns false without mutating
// state if rec's bounds are not encapsulated by n's (loose) bounds.
func (n *BoundsOctreeNode[T]) Add(rec boundsRecord[T]) bool {
	if !n.bounds.Encapsulates(rec.Bounds) {
		return false
	}

	if n.children == nil {
		if len(n.objects) < NumObjectsAllowed || n.baseLength/2 < n.minSize {
			n.objects = append(n.objects, rec)
			return true
		}
		n.split()
	}

	idx := bestFitChild(n.center, rec.Bounds.Center)
	if n.children[idx].bounds.Encapsulates(rec.Bounds) {
		return n.children[idx].Add(rec)
	}

	// Doesn't fit in any single child's loose bounds: spills into this node.
	n.objects = append(n.objects, rec)
	return true
}

func (n *BoundsOctreeNode[T]) split() {
	n.children = make([]*BoundsOctreeNode[T], 8)
	childLength := n.baseLength / 2
	for i := 0; i < 8; i++ {
		n.children[i] = newBoundsOctreeNode[T](childLength, n.minSize, n.looseness, childCenter(n.center, n.baseLength, i))
	}

	existing := n.objects
	n.objects = nil
	for _, rec := range existing {
		idx := bestFitChild(n.center, rec.Bounds.Center)
		if n.children[idx].bounds.Encapsulates(rec.Bounds) {
			n.children[idx].Add(rec)
		} else {
			n.objects = append(n.objects, rec)
		}
	}
}

func (n *BoundsOctreeNode[T]) Remove(obj T) bool {
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

// RemoveAt removes obj using its known bounds, pruning by encapsulation and
// walking only the best-fit child at each level.
func (n *BoundsOctreeNode[T]) RemoveAt(obj T, bounds AABB) bool {
	if !n.bounds.Encapsulates(bounds) {
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

	idx := bestFitChild(n.center, bounds.Center)
	if n.children[idx].RemoveAt(obj, bounds) {
		n.mergeIfPossible()
		return true
	}
	return false
}

func (n *BoundsOctreeNode[T]) mergeIfPossible() {
	if n.shouldMerge() {
		n.merge()
	}
}

func (n *BoundsOctreeNode[T]) shouldMerge() bool {
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

func (n *BoundsOctreeNode[T]) merge() {
	for _, child := range n.children {
		n.objects = append(n.objects, child.objects...)
	}
	n.children = nil
}

func (n *BoundsOctreeNode[T]) childIsEmpty() bool {
	return len(n.objects) == 0 && n.children == nil
}

// ShrinkIfPossible implements §4.7 for the bounds variant: direct records
// must not only agree on a single octant but be fully encapsulated by that
// octant's loose bounds, since a spillover record by definition is not.
func (n *BoundsOctreeNode[T]) ShrinkIfPossible(minRootLength float64) *BoundsOctreeNode[T] {
	if n.baseLength < 2*minRootLength {
		return n
	}
	if len(n.objects) == 0 && n.children == nil {
		return n
	}

	bestFit := -1
	for _, rec := range n.objects {
		idx := bestFitChild(n.center, rec.Bounds.Center)
		if !childLooseBounds(n.center, n.baseLength, n.looseness, idx).Encapsulates(rec.Bounds) {
			return n
		}
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

	newCenter := childCenter(n.center, n.baseLength, bestFit)
	n.center = newCenter
	n.baseLength /= 2
	adj := n.baseLength * n.looseness
	n.bounds = NewAABB(n.center, Vector3{adj, adj, adj})
	return n
}

func (n *BoundsOctreeNode[T]) GetAll(out *[]T) {
	for _, rec := range n.objects {
		*out = append(*out, rec.Obj)
	}
	for _, child := range n.children {
		child.GetAll(out)
	}
}

func (n *BoundsOctreeNode[T]) GetColliding(check AABB, out *[]T) {
	if !n.bounds.Intersects(check) {
		return
	}
	for _, rec := range n.objects {
		if rec.Bounds.Intersects(check) {
			*out = append(*out, rec.Obj)
		}
	}
	for _, child := range n.children {
		child.GetColliding(check, out)
	}
}

func (n *BoundsOctreeNode[T]) IsColliding(check AABB) bool {
	if !n.bounds.Intersects(check) {
		return false
	}
	for _, rec := range n.objects {
		if rec.Bounds.Intersects(check) {
			return true
		}
	}
	for _, child := range n.children {
		if child.IsColliding(check) {
			return true
		}
	}
	return false
}

func (n *BoundsOctreeNode[T]) GetCollidingRay(r Ray, maxDistance float64, out *[]T) {
	hit, dist := r.IntersectAABB(n.bounds)
	if !hit || dist > maxDistance {
		return
	}
	for _, rec := range n.objects {
		if hit, dist := r.IntersectAABB(rec.Bounds); hit && dist <= maxDistance {
			*out = append(*out, rec.Obj)
		}
	}
	for _, child := range n.children {
		child.GetCollidingRay(r, maxDistance, out)
	}
}

func (n *BoundsOctreeNode[T]) IsCollidingRay(r Ray, maxDistance float64) bool {
	hit, dist := r.IntersectAABB(n.bounds)
	if !hit || dist > maxDistance {
		return false
	}
	for _, rec := range n.objects {
		if hit, dist := r.IntersectAABB(rec.Bounds); hit && dist <= maxDistance {
			return true
		}
	}
	for _, child := range n.children {
		if child.IsCollidingRay(r, maxDistance) {
			return true
		}
	}
	return false
}

func (n *BoundsOctreeNode[T]) GetWithinFrustum(planes [6]Plane, out *[]T) {
	if !IntersectsFrustum(planes, n.bounds) {
		return
	}
	for _, rec := range n.objects {
		if IntersectsFrustum(planes, rec.Bounds) {
			*out = append(*out, rec.Obj)
		}
	}
	for _, child := range n.children {
		child.GetWithinFrustum(planes, out)
	}
}

// BoundsOctree indexes objects occupying an axis-aligned bounding box. Each
// node's containment volume is inflated by a configurable looseness factor
// so that objects near an octant boundary do not force a split into
// disproportionately small children.
type BoundsOctree[T comparable] struct {
	root        *BoundsOctreeNode[T]
	count       int
	initialSize float64
	minSize     float64
	looseness   float64
	logger      *zap.Logger
}

// BoundsOctreeOption configures optional BoundsOctree behavior at construction.
type BoundsOctreeOption[T comparable] func(*BoundsOctree[T])

// WithBoundsLogger overrides the tree's zap logger.
func WithBoundsLogger[T comparable](logger *zap.Logger) BoundsOctreeOption[T] {
	return func(t *BoundsOctree[T]) { t.logger = logger }
}

// NewBoundsOctree constructs a loose bounds octree. minNodeSize is clamped
// down to initialWorldSize if larger, and looseness is clamped into [1.0,
// 2.0]; both clamps are logged as warnings.
func NewBoundsOctree[T comparable](initialWorldSize float64, initialWorldPos Vector3, minNodeSize, looseness float64, opts ...BoundsOctreeOption[T]) *BoundsOctree[T] {
	t := &BoundsOctree[T]{
		initialSize: initialWorldSize,
		minSize:     minNodeSize,
		looseness:   looseness,
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

	clamped := clampf(looseness, 1.0, 2.0)
	if clamped != looseness {
		t.logger.Warn("looseness out of [1.0, 2.0], clamping",
			zap.Float64("looseness", looseness), zap.Float64("clamped", clamped))
	}
	t.looseness = clamped

	t.root = newBoundsOctreeNode[T](initialWorldSize, t.minSize, t.looseness, initialWorldPos)
	return t
}

func (t *BoundsOctree[T]) Count() int {
	return t.count
}

// GetMaxBounds returns the root node's current (loose) bounds.
func (t *BoundsOctree[T]) GetMaxBounds() AABB {
	return t.root.bounds
}

func boundsIsFinite(b AABB) bool {
	return b.Center.IsFinite() && b.Size.IsFinite()
}

// Add stores obj with the given bounds, growing the root as needed (bounded
// by MaxGrowAttempts). A degenerate (non-finite) bounds is logged and
// dropped without incrementing count.
func (t *BoundsOctree[T]) Add(obj T, bounds AABB) {
	if !boundsIsFinite(bounds) {
		t.logger.Error("refusing to add object with non-finite bounds", zap.Any("object", obj))
		return
	}

	rec := boundsRecord[T]{Obj: obj, Bounds: bounds}
	attempts := 0
	for !t.root.Add(rec) {
		attempts++
		if attempts > MaxGrowAttempts {
			t.logger.Error("exceeded max grow attempts, dropping insertion",
				zap.Int("attempts", attempts))
			return
		}
		t.grow(bounds.Center.Sub(t.root.center))
	}
	t.count++
}

func (t *BoundsOctree[T]) grow(direction Vector3) {
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

	newRoot := newBoundsOctreeNode[T](newBaseLength, t.minSize, t.looseness, newCenter)

	if len(oldRoot.objects) == 0 && oldRoot.children == nil {
		t.root = newRoot
		return
	}

	oldRootIdx := bestFitChild(newCenter, oldRoot.center)
	newRoot.children = make([]*BoundsOctreeNode[T], 8)
	for i := 0; i < 8; i++ {
		if i == oldRootIdx {
			newRoot.children[i] = oldRoot
			continue
		}
		newRoot.children[i] = newBoundsOctreeNode[T](oldRoot.baseLength, t.minSize, t.looseness, childCenter(newCenter, newBaseLength, i))
	}

	t.root = newRoot
}

// Remove deletes obj by scanning the whole tree.
func (t *BoundsOctree[T]) Remove(obj T) bool {
	if !t.root.Remove(obj) {
		return false
	}
	t.count--
	t.root = t.root.ShrinkIfPossible(t.initialSize)
	return true
}

// RemoveAt deletes obj using its known bounds to prune the search.
func (t *BoundsOctree[T]) RemoveAt(obj T, bounds AABB) bool {
	if !t.root.RemoveAt(obj, bounds) {
		return false
	}
	t.count--
	t.root = t.root.ShrinkIfPossible(t.initialSize)
	return true
}

// GetAll returns every stored object. Order is unspecified.
func (t *BoundsOctree[T]) GetAll() []T {
	out := make([]T, 0, t.count)
	t.root.GetAll(&out)
	return out
}

// IsColliding reports whether any stored object's bounds intersects check.
func (t *BoundsOctree[T]) IsColliding(check AABB) bool {
	return t.root.IsColliding(check)
}

// IsCollidingRay reports whether any stored object's bounds is hit by r
// within maxDistance.
func (t *BoundsOctree[T]) IsCollidingRay(r Ray, maxDistance float64) bool {
	return t.root.IsCollidingRay(r, maxDistance)
}

// GetColliding appends every stored object whose bounds intersects check.
func (t *BoundsOctree[T]) GetColliding(check AABB, result []T) []T {
	t.root.GetColliding(check, &result)
	return result
}

// GetCollidingRay appends every stored object whose bounds is hit by r
// within maxDistance.
func (t *BoundsOctree[T]) GetCollidingRay(r Ray, maxDistance float64, result []T) []T {
	t.root.GetCollidingRay(r, maxDistance, &result)
	return result
}

// GetWithinFrustum appends every stored object not entirely outside any of
// the six given planes.
func (t *BoundsOctree[T]) GetWithinFrustum(planes [6]Plane, result []T) []T {
	t.root.GetWithinFrustum(planes, &result)
	return result
}

func (n *BoundsOctreeNode[T]) collectNodeBounds(out *[]AABB) {
	*out = append(*out, n.bounds)
	for _, child := range n.children {
		child.collectNodeBounds(out)
	}
}

// NodeBounds returns the loose bounds of every node in the tree, root first.
// Intended for diagnostics and visualization, not query performance.
func (t *BoundsOctree[T]) NodeBounds() []AABB {
	var out []AABB
	t.root.collectNodeBounds(&out)
	return out
}
