package octree

// pointRecord is a single stored object in a point octree: an opaque payload
// located at a single coordinate.
type pointRecord[T comparable] struct {
	Obj   T
	Point Vector3
}

// boundsRecord is a single stored object in a bounds octree: an opaque
// payload occupying an axis-aligned box.
type boundsRecord[T comparable] struct {
	Obj    T
	Bounds AABB
}
