package geometry

import (
	"math"

	"github.com/janeusz2000/DcoefficientRayTracer/rterr"
)

// Ray is a straight-line segment: an origin, a unit direction, the energy it
// carries, and its accumulated travel time in seconds since emission.
type Ray struct {
	Origin          Vec3
	Direction       Vec3
	Energy          float32
	AccumulatedTime float32
}

// NewRay constructs a Ray, normalizing direction. It fails with
// InvalidGeometry if direction is the zero vector (normalizing it would
// produce NaNs that silently propagate through every downstream hit test).
func NewRay(origin, direction Vec3, energy, accumulatedTime float32) (Ray, error) {
	if direction.Len() <= Accuracy {
		return Ray{}, rterr.Geometryf("ray direction must be nonzero, got %v", direction)
	}
	return Ray{
		Origin:          origin,
		Direction:       direction.Normalize(),
		Energy:          energy,
		AccumulatedTime: accumulatedTime,
	}, nil
}

// At returns origin + t*direction. t is a parametric distance in meters, not
// a time.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// PhaseAt returns the phase of the ray at the given frequency (Hz) and
// parametric distance t (m): (t / (soundSpeed/freq)) * 2*pi. The ray's
// AccumulatedTime is not used. It fails with InvalidGeometry if freq or t
// is at or below Accuracy.
func (r Ray) PhaseAt(freq, t float32) (float32, error) {
	if freq <= Accuracy {
		return 0, rterr.Geometryf("phase requires freq > %g, got %g", Accuracy, freq)
	}
	if t <= Accuracy {
		return 0, rterr.Geometryf("phase requires t > %g, got %g", Accuracy, t)
	}
	wavelength := SoundSpeed / freq
	return (t / wavelength) * 2 * float32(math.Pi), nil
}

// RayHitData is a snapshot of a ray-surface intersection.
type RayHitData struct {
	CollisionPoint  Vec3
	Direction       Vec3
	Normal          Vec3
	Origin          Vec3
	Time            float32 // parametric distance (m) along the ray
	AccumulatedTime float32 // accumulated event time (s) since ray emission
	Energy          float32
	Phase           float32
	Frequency       float32
}

// newHitData builds a RayHitData for a hit at parametric distance t with the
// given surface normal, computing phase and accumulated event time from the
// incident ray.
func newHitData(ray Ray, t float32, normal Vec3, frequency float32) (RayHitData, error) {
	phase, err := ray.PhaseAt(frequency, t)
	if err != nil {
		return RayHitData{}, err
	}
	return RayHitData{
		CollisionPoint:  ray.At(t),
		Direction:       ray.Direction,
		Normal:          normal,
		Origin:          ray.Origin,
		Time:            t,
		AccumulatedTime: ray.AccumulatedTime + t/SoundSpeed,
		Energy:          ray.Energy,
		Phase:           phase,
		Frequency:       frequency,
	}, nil
}
