// Package geometry implements the 3D primitives shared by the rest of the
// ray tracer: vectors, rays, triangles and spheres, together with their
// intersection semantics. All distances are in meters and all angles in
// radians unless documented otherwise.
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a triple of finite 32-bit floats (x, y, z). It is an alias over
// mgl32.Vec3 so that addition, subtraction, scalar multiplication, dot and
// cross products, magnitude and normalization come from mathgl rather than
// being hand rolled here.
type Vec3 = mgl32.Vec3

// Accuracy is the distance-comparison epsilon used throughout the package:
// two points are "close" when every component differs by at most Accuracy,
// and it is the threshold below which a ray is considered to have
// originated exactly on a surface (self-hit prevention after a reflection).
const Accuracy float32 = 5e-6

// AreaAccuracy is the looser epsilon used for the point-in-triangle area
// test, which accumulates more floating point error across three cross
// products than a single distance comparison does.
const AreaAccuracy float32 = 1e-4

// SoundSpeed is the speed of sound in air at 20°C and 1000 hPa, in m/s.
const SoundSpeed float32 = 343.216

// NewVec3 builds a Vec3 from three components.
func NewVec3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

// IsFinite reports whether every component of v is a finite float32 (not
// NaN, not +/-Inf).
func IsFinite(v Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Close reports whether a and b are equal within Accuracy in every
// component.
func Close(a, b Vec3) bool {
	return abs32(a.X()-b.X()) <= Accuracy &&
		abs32(a.Y()-b.Y()) <= Accuracy &&
		abs32(a.Z()-b.Z()) <= Accuracy
}

// CloseWithin reports whether a and b are equal within the given epsilon in
// every component.
func CloseWithin(a, b Vec3, epsilon float32) bool {
	return abs32(a.X()-b.X()) <= epsilon &&
		abs32(a.Y()-b.Y()) <= epsilon &&
		abs32(a.Z()-b.Z()) <= epsilon
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// IsUnit reports whether v has magnitude 1 within Accuracy.
func IsUnit(v Vec3) bool {
	return abs32(v.Len()-1) <= Accuracy
}

// SetFromSpherical builds a unit-radius-scaled vector from spherical
// coordinates: phi is the polar angle from the +Z axis (0..pi), theta is the
// azimuthal angle around +Z (0..2pi).
func SetFromSpherical(radius, phi, theta float32) Vec3 {
	sinPhiRadius := float32(math.Sin(float64(phi))) * radius
	return Vec3{
		sinPhiRadius * float32(math.Cos(float64(theta))),
		sinPhiRadius * float32(math.Sin(float64(theta))),
		float32(math.Cos(float64(phi))) * radius,
	}
}
