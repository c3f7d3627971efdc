package geometry

import (
	"math"

	"github.com/janeusz2000/DcoefficientRayTracer/rterr"
)

// Sphere is a center and a positive radius.
type Sphere struct {
	Center Vec3
	Radius float32
}

// NewSphere builds a Sphere, failing with InvalidGeometry if radius is not
// strictly positive.
func NewSphere(center Vec3, radius float32) (Sphere, error) {
	if radius <= 0 {
		return Sphere{}, rterr.Geometryf("sphere radius must be > 0, got %g", radius)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

// Intersect tests ray against the sphere using the standard quadratic solve
// (v = rayOrigin - sphereCenter; beta = 2*v.d; gamma = v.v - r^2). A ray that
// originates exactly on the sphere surface (within Accuracy of the smaller
// root) is rejected to prevent self-hits immediately after a reflection; the
// larger root is used only when the smaller one is not strictly positive.
func (s Sphere) Intersect(ray Ray, frequency float32) (RayHitData, bool, error) {
	v := ray.Origin.Sub(s.Center)
	beta := 2 * v.Dot(ray.Direction)
	gamma := v.Dot(v) - s.Radius*s.Radius
	discriminant := beta*beta - 4*gamma

	if discriminant < 0 {
		return RayHitData{}, false, nil
	}

	sqrtDisc := float32(math.Sqrt(float64(discriminant)))
	smaller := (-beta - sqrtDisc) / 2
	larger := (-beta + sqrtDisc) / 2

	if smaller <= Accuracy && larger <= Accuracy {
		return RayHitData{}, false, nil
	}

	var t float32
	if smaller > Accuracy {
		t = smaller
	} else {
		t = larger
	}
	if t <= Accuracy {
		return RayHitData{}, false, nil
	}

	point := ray.At(t)
	normal := point.Sub(s.Center).Normalize()

	hit, err := newHitData(ray, t, normal, frequency)
	if err != nil {
		return RayHitData{}, false, err
	}
	return hit, true, nil
}
