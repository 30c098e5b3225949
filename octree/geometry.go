// Package octree implements two dynamic spatial indexes: a point octree,
// where each stored object is located at a single coordinate, and a loose
// bounds octree, where each stored object occupies an axis-aligned bounding
// box. Both trees grow and shrink on demand; there is no fixed depth limit.
package octree

import "math"

// Vector3 is a point or direction in 3D space.
type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) LengthSq() float64 {
	return v.Dot(v)
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// Normalize returns a unit-length copy of v. The zero vector normalizes to
// itself rather than producing NaNs.
func (v Vector3) Normalize() Vector3 {
	length := v.Length()
	if length < 1e-12 {
		return Vector3{}
	}
	return v.Scale(1.0 / length)
}

// IsFinite reports whether every component is a real, finite number. Used to
// reject degenerate locators (NaN or infinite coordinates) before insertion.
func (v Vector3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

func vmin(a, b Vector3) Vector3 {
	return Vector3{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func vmax(a, b Vector3) Vector3 {
	return Vector3{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

func clampf(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// AABB is an axis-aligned bounding box described by its center and the full
// length of each side.
type AABB struct {
	Center Vector3
	Size   Vector3
}

// NewAABB builds a box from a center and full side lengths.
func NewAABB(center, size Vector3) AABB {
	return AABB{Center: center, Size: size}
}

// NewAABBFromMinMax builds a box encapsulating the two given corners.
func NewAABBFromMinMax(min, max Vector3) AABB {
	center := min.Add(max).Scale(0.5)
	size := max.Sub(min)
	return AABB{Center: center, Size: size}
}

func (a AABB) Extents() Vector3 {
	return a.Size.Scale(0.5)
}

func (a AABB) Min() Vector3 {
	e := a.Extents()
	return a.Center.Sub(e)
}

func (a AABB) Max() Vector3 {
	e := a.Extents()
	return a.Center.Add(e)
}

// Contains reports whether p lies within (or on the boundary of) the box.
func (a AABB) Contains(p Vector3) bool {
	min, max := a.Min(), a.Max()
	return p.X >= min.X && p.X <= max.X &&
		p.Y >= min.Y && p.Y <= max.Y &&
		p.Z >= min.Z && p.Z <= max.Z
}

// Encapsulates reports whether inner is fully contained within a, i.e. both
// of inner's extreme corners lie inside a.
func (a AABB) Encapsulates(inner AABB) bool {
	return a.Contains(inner.Min()) && a.Contains(inner.Max())
}

// Intersects reports whether a and other overlap (including touching faces).
func (a AABB) Intersects(other AABB) bool {
	aMin, aMax := a.Min(), a.Max()
	bMin, bMax := other.Min(), other.Max()
	return aMin.X <= bMax.X && aMax.X >= bMin.X &&
		aMin.Y <= bMax.Y && aMax.Y >= bMin.Y &&
		aMin.Z <= bMax.Z && aMax.Z >= bMin.Z
}

// ClosestPoint returns the point on or within a that is nearest to p.
func (a AABB) ClosestPoint(p Vector3) Vector3 {
	min, max := a.Min(), a.Max()
	return Vector3{
		X: clampf(p.X, min.X, max.X),
		Y: clampf(p.Y, min.Y, max.Y),
		Z: clampf(p.Z, min.Z, max.Z),
	}
}

// SqDistanceToPoint returns the squared distance from p to the closest point
// of a; zero if p is inside a.
func (a AABB) SqDistanceToPoint(p Vector3) float64 {
	return a.ClosestPoint(p).Sub(p).LengthSq()
}

// Expand returns a copy of a grown by amount on every face (amount may be
// negative to shrink).
func (a AABB) Expand(amount float64) AABB {
	return AABB{Center: a.Center, Size: a.Size.Add(Vector3{amount * 2, amount * 2, amount * 2})}
}

// Ray is a half-line starting at Origin travelling in Direction. Direction is
// expected to be unit length by callers that rely on distance values being
// measured in world units.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay builds a ray with a normalized direction.
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// IntersectAABB performs a slab-method ray/box test. It returns whether the
// ray hits the box and, if so, the distance to the first intersection
// (clamped to 0 when the origin is already inside the box).
func (r Ray) IntersectAABB(box AABB) (bool, float64) {
	min, max := box.Min(), box.Max()

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	origins := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dirs := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	mins := [3]float64{min.X, min.Y, min.Z}
	maxs := [3]float64{max.X, max.Y, max.Z}

	for i := 0; i < 3; i++ {
		origin := origins[i]
		dir := dirs[i]

		if math.Abs(dir) < 1e-12 {
			if origin < mins[i] || origin > maxs[i] {
				return false, 0
			}
			continue
		}

		t1 := (mins[i] - origin) / dir
		t2 := (maxs[i] - origin) / dir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false, 0
		}
	}

	if tMax < 0 {
		return false, 0
	}
	if tMin < 0 {
		return true, 0
	}
	return true, tMin
}

// SqDistanceToRay returns the squared perpendicular distance from p to the
// infinite line described by r. Requires r.Direction to be unit length.
func SqDistanceToRay(r Ray, p Vector3) float64 {
	return r.Direction.Cross(p.Sub(r.Origin)).LengthSq()
}

// Plane is a half-space boundary: points p with Normal.Dot(p)+Distance >= 0
// are considered "in front of" the plane.
type Plane struct {
	Normal   Vector3
	Distance float64
}

func (p Plane) SignedDistance(point Vector3) float64 {
	return p.Normal.Dot(point) + p.Distance
}

// IntersectsFrustum reports whether box is not entirely outside any one of
// the six planes; it is a conservative (over-inclusive) test, as a box can
// pass every per-plane check yet still lie outside the actual frustum volume.
func IntersectsFrustum(planes [6]Plane, box AABB) bool {
	min, max := box.Min(), box.Max()
	corners := [8]Vector3{
		{min.X, min.Y, min.Z}, {max.X, min.Y, min.Z},
		{min.X, max.Y, min.Z}, {max.X, max.Y, min.Z},
		{min.X, min.Y, max.Z}, {max.X, min.Y, max.Z},
		{min.X, max.Y, max.Z}, {max.X, max.Y, max.Z},
	}

	for _, plane := range planes {
		allOutside := true
		for _, corner := range corners {
			if plane.SignedDistance(corner) >= 0 {
				allOutside = false
				break
			}
		}
		if allOutside {
			return false
		}
	}
	return true
}
