// Package reflection turns a ray-surface hit into the next ray along its
// bounce path.
package reflection

import (
	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
)

// Engine produces the child ray (or rays) resulting from a hit. Implemented
// as a tagged struct (Kind + the few parameters each kind needs) rather than
// an interface, so the simulator's hot loop dispatches without indirection
// (spec §9's redesign flag).
type Engine struct {
	Kind       Kind
	Absorption float32 // fraction of energy lost per bounce, in [0, 1]
}

// Kind selects which reflection model an Engine applies.
type Kind int

const (
	// Specular is the physically definitive single-child reflection:
	// direction = incident - 2*(incident.normal)*normal.
	Specular Kind = iota
	// FourSided is a debug/visualization engine that fans a hit out into
	// four child rays around the specular direction instead of one. It is
	// never used by the default simulator configuration; spec §9 leaves
	// open whether the original program's "FakeReflectionEngine" /
	// "SimpleFourSidedReflectionEngine" is physical or cosmetic, so it is
	// offered here strictly as an optional, pluggable alternative.
	FourSided
)

// NewSpecular builds the default, absorption-free specular engine.
func NewSpecular() Engine { return Engine{Kind: Specular} }

// NewSpecularWithAbsorption builds a specular engine that attenuates energy
// by (1-absorption) on every bounce.
func NewSpecularWithAbsorption(absorption float32) Engine {
	return Engine{Kind: Specular, Absorption: absorption}
}

// Reflect produces the single child ray for the Specular kind. Callers
// using FourSided should use ReflectMany instead.
func (e Engine) Reflect(incident geometry.Ray, hit geometry.RayHitData) (geometry.Ray, error) {
	direction := reflect(hit.Direction, hit.Normal)
	return geometry.NewRay(hit.CollisionPoint, direction, incident.Energy*(1-e.Absorption), hit.AccumulatedTime)
}

// ReflectMany produces every child ray this engine kind yields for the hit:
// one for Specular, four spread around the specular direction for
// FourSided.
func (e Engine) ReflectMany(incident geometry.Ray, hit geometry.RayHitData) ([]geometry.Ray, error) {
	if e.Kind != FourSided {
		ray, err := e.Reflect(incident, hit)
		if err != nil {
			return nil, err
		}
		return []geometry.Ray{ray}, nil
	}

	base := reflect(hit.Direction, hit.Normal)
	energy := incident.Energy * (1 - e.Absorption) / 4
	offsets := [4]geometry.Vec3{
		perpendicular(hit.Normal),
		perpendicular(hit.Normal).Mul(-1),
		hit.Normal.Cross(perpendicular(hit.Normal)),
		hit.Normal.Cross(perpendicular(hit.Normal)).Mul(-1),
	}

	const spread = 0.15 // radians-scale nudge, not a physically modeled angle
	rays := make([]geometry.Ray, 0, 4)
	for _, off := range offsets {
		dir := base.Add(off.Mul(spread)).Normalize()
		ray, err := geometry.NewRay(hit.CollisionPoint, dir, energy, hit.AccumulatedTime)
		if err != nil {
			return nil, err
		}
		rays = append(rays, ray)
	}
	return rays, nil
}

func reflect(incident, normal geometry.Vec3) geometry.Vec3 {
	return incident.Sub(normal.Mul(2 * incident.Dot(normal)))
}

// perpendicular returns an arbitrary unit vector orthogonal to n.
func perpendicular(n geometry.Vec3) geometry.Vec3 {
	ref := geometry.Vec3{1, 0, 0}
	if abs32(n.X()) > 0.9 {
		ref = geometry.Vec3{0, 1, 0}
	}
	return n.Cross(ref).Normalize()
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
