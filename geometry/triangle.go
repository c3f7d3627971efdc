package geometry

import (
	"github.com/janeusz2000/DcoefficientRayTracer/rterr"
)

// Triangle is three distinct vertices with nonzero area. Area, normal and
// centroid are cached at construction (and refreshed by SetVertices) so that
// the hot intersection loop never recomputes them.
type Triangle struct {
	v0, v1, v2 Vec3
	area       float32
	normal     Vec3
	centroid   Vec3
}

// NewTriangle builds a Triangle from three vertices. It fails with
// InvalidGeometry if the resulting area is below Accuracy (the vertices are
// collinear or coincident).
func NewTriangle(v0, v1, v2 Vec3) (Triangle, error) {
	t := Triangle{v0: v0, v1: v1, v2: v2}
	if err := t.refresh(); err != nil {
		return Triangle{}, err
	}
	return t, nil
}

func (t *Triangle) refresh() error {
	edge1 := t.v1.Sub(t.v0)
	edge2 := t.v2.Sub(t.v0)
	cross := edge1.Cross(edge2)
	t.area = cross.Len() / 2
	if t.area < Accuracy {
		return rterr.Geometryf("triangle area %g is below accuracy %g (degenerate vertices %v, %v, %v)", t.area, Accuracy, t.v0, t.v1, t.v2)
	}
	t.normal = cross.Normalize()
	t.centroid = t.v0.Add(t.v1).Add(t.v2).Mul(1.0 / 3.0)
	return nil
}

// SetVertices mutates the triangle's vertices and recomputes its cached
// attributes, failing with InvalidGeometry under the same conditions as
// NewTriangle.
func (t *Triangle) SetVertices(v0, v1, v2 Vec3) error {
	prev := *t
	t.v0, t.v1, t.v2 = v0, v1, v2
	if err := t.refresh(); err != nil {
		*t = prev
		return err
	}
	return nil
}

// Vertices returns the triangle's three vertices.
func (t Triangle) Vertices() (Vec3, Vec3, Vec3) { return t.v0, t.v1, t.v2 }

// Area returns the precomputed triangle area.
func (t Triangle) Area() float32 { return t.area }

// Normal returns the precomputed, outward-oriented unit normal.
func (t Triangle) Normal() Vec3 { return t.normal }

// Centroid returns the precomputed centroid.
func (t Triangle) Centroid() Vec3 { return t.centroid }

// Equal reports whether two triangles share the same three vertices, in any
// order (triangles are unordered sets of vertices).
func (t Triangle) Equal(other Triangle) bool {
	mine := [3]Vec3{t.v0, t.v1, t.v2}
	theirs := [3]Vec3{other.v0, other.v1, other.v2}
	used := [3]bool{}
	for _, m := range mine {
		found := false
		for i, o := range theirs {
			if used[i] {
				continue
			}
			if Close(m, o) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Intersect tests ray against the triangle, returning the hit (if any) as
// RayHitData. A parallel ray or a plane intersection at or behind the ray
// origin (within Accuracy) is a miss, not an error: these are the
// NumericDegeneracy cases of spec §7, absorbed silently since the ray budget
// tolerates dropping individual rays.
func (t Triangle) Intersect(ray Ray, frequency float32) (RayHitData, bool, error) {
	denom := ray.Direction.Dot(t.normal)
	if abs32(denom) <= Accuracy {
		return RayHitData{}, false, nil // parallel to the triangle's plane
	}

	time := t.v0.Sub(ray.Origin).Dot(t.normal) / denom
	if time < Accuracy {
		return RayHitData{}, false, nil // plane is behind (or at) the ray origin
	}

	point := ray.At(time)
	if !t.containsPoint(point) {
		return RayHitData{}, false, nil
	}

	hit, err := newHitData(ray, time, t.normal, frequency)
	if err != nil {
		return RayHitData{}, false, err
	}
	return hit, true, nil
}

// containsPoint implements the barycentric area test: the three sub-triangle
// areas formed with p must sum to the triangle's own area within
// AreaAccuracy, which is looser than Accuracy because it accumulates error
// across three cross products instead of one.
func (t Triangle) containsPoint(p Vec3) bool {
	a0 := subTriangleArea(t.v1, t.v2, p)
	a1 := subTriangleArea(t.v2, t.v0, p)
	a2 := subTriangleArea(t.v0, t.v1, p)
	return abs32((a0+a1+a2)-t.area) <= AreaAccuracy
}

func subTriangleArea(a, b, p Vec3) float32 {
	return b.Sub(p).Cross(a.Sub(p)).Len() / 2
}
