// Package mesh holds the bounded triangle collection ray-traced surfaces are
// built from.
package mesh

import (
	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
)

// Mesh is an ordered, immutable sequence of triangles plus their
// axis-aligned vertical and horizontal extents.
type Mesh struct {
	triangles []geometry.Triangle
	height    float32 // max extent along the vertical (Z) axis
	sideSize  float32 // max horizontal (X/Y) extent
}

// New builds a Mesh from a slice of triangles (which may be empty: an empty
// mesh is valid, it simply fails the builders that require extents). The
// triangles are copied defensively so the returned Mesh is immutable even if
// the caller mutates its slice afterward.
func New(triangles []geometry.Triangle) Mesh {
	owned := make([]geometry.Triangle, len(triangles))
	copy(owned, triangles)

	m := Mesh{triangles: owned}
	if len(owned) == 0 {
		return m
	}

	minX, maxX := owned[0].Centroid().X(), owned[0].Centroid().X()
	minY, maxY := owned[0].Centroid().Y(), owned[0].Centroid().Y()
	minZ, maxZ := owned[0].Centroid().Z(), owned[0].Centroid().Z()

	for _, tri := range owned {
		v0, v1, v2 := tri.Vertices()
		for _, v := range [3]geometry.Vec3{v0, v1, v2} {
			minX, maxX = minMax(minX, maxX, v.X())
			minY, maxY = minMax(minY, maxY, v.Y())
			minZ, maxZ = minMax(minZ, maxZ, v.Z())
		}
	}

	m.height = maxZ - minZ
	sideX := maxX - minX
	sideY := maxY - minY
	m.sideSize = sideX
	if sideY > m.sideSize {
		m.sideSize = sideY
	}
	return m
}

func minMax(min, max, v float32) (float32, float32) {
	if v < min {
		min = v
	}
	if v > max {
		max = v
	}
	return min, max
}

// Triangles returns the mesh's triangles. The returned slice must not be
// mutated by the caller.
func (m Mesh) Triangles() []geometry.Triangle { return m.triangles }

// Empty reports whether the mesh has zero triangles.
func (m Mesh) Empty() bool { return len(m.triangles) == 0 }

// Height returns the mesh's maximum extent along the vertical axis.
func (m Mesh) Height() float32 { return m.height }

// SideSize returns the mesh's maximum horizontal extent.
func (m Mesh) SideSize() float32 { return m.sideSize }
