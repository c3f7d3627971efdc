// Package source generates the deterministic angular grid of rays emitted
// from a point above the model.
package source

import (
	"math/rand"

	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
	"github.com/janeusz2000/DcoefficientRayTracer/mesh"
	"github.com/janeusz2000/DcoefficientRayTracer/rterr"
)

// DefaultHeight is the minimum origin height used when the model itself is
// flatter than this.
const DefaultHeight float32 = 1

// marginFactor is the small extra fraction of the model's horizontal extent
// the grid's target square is widened by, so that rays at the grid's edges
// still graze the model rather than missing it entirely.
const marginFactor float32 = 1.1

// Grid is a lazy, finite, non-restartable sequence of exactly N*N rays
// fanning from a fixed origin toward the model's footprint. Reconstruct a
// new Grid to replay the same sequence.
type Grid struct {
	origin       geometry.Vec3
	sideX, sideY float32
	n            int
	sourcePower  float32
	jitter       *rand.Rand // optional: nil means no jitter, fully deterministic

	i, j int
	done bool
}

// NewGrid builds a Grid emitting numRaysSquared^2 rays from the point above
// m at height max(m.Height(), DefaultHeight). It fails with
// InvalidConfiguration if numRaysSquared < 1 or if m is empty (its height is
// unknown). jitter, if non-nil, is consulted to offset each ray's target
// within its grid cell before normalizing (see original_source's
// RandomRayOffseter); pass nil for the exact deterministic grid of spec §4.2.
func NewGrid(m mesh.Mesh, numRaysSquared int, sourcePower float32, jitter *rand.Rand) (*Grid, error) {
	if numRaysSquared < 1 {
		return nil, rterr.Configurationf("numRaysSquared must be >= 1, got %d", numRaysSquared)
	}
	if m.Empty() {
		return nil, rterr.Configurationf("ray source requires a non-empty mesh (height is unknown)")
	}

	height := m.Height()
	if DefaultHeight > height {
		height = DefaultHeight
	}
	side := m.SideSize() * marginFactor

	return &Grid{
		origin:      geometry.Vec3{0, 0, height},
		sideX:       side,
		sideY:       side,
		n:           numRaysSquared,
		sourcePower: sourcePower,
		jitter:      jitter,
	}, nil
}

// Len returns the total number of rays the grid will emit: N*N.
func (g *Grid) Len() int { return g.n * g.n }

// Next returns the next ray in row-major (j, i) order, and false once all
// N*N rays have been emitted.
func (g *Grid) Next() (geometry.Ray, bool) {
	if g.done {
		return geometry.Ray{}, false
	}

	i, j := g.i, g.j
	target := g.targetFor(i, j)
	direction := target.Sub(g.origin)

	g.advance()

	ray, err := geometry.NewRay(g.origin, direction, g.sourcePower/float32(g.n*g.n), 0)
	if err != nil {
		// direction is derived from a fixed grid and never zero for n>=1;
		// surfacing a zero-energy, zero-direction ray here would silently
		// corrupt the trace, so this indicates a caller bug (e.g. n==0
		// slipping past NewGrid) rather than a runtime degeneracy.
		panic(err)
	}
	return ray, true
}

func (g *Grid) targetFor(i, j int) geometry.Vec3 {
	var fracI, fracJ float32
	if g.n == 1 {
		fracI, fracJ = 0.5, 0.5
	} else {
		fracI = float32(i) / float32(g.n-1)
		fracJ = float32(j) / float32(g.n-1)
	}
	if g.jitter != nil && g.n > 1 {
		cell := 1 / float32(g.n-1)
		fracI += (g.jitter.Float32() - 0.5) * cell
		fracJ += (g.jitter.Float32() - 0.5) * cell
	}

	down := geometry.Vec3{0, 0, -1}
	ex := geometry.Vec3{1, 0, 0}
	ey := geometry.Vec3{0, 1, 0}

	target := g.origin.Add(down.Mul(g.origin.Z()))
	target = target.Add(ex.Mul((fracI - 0.5) * g.sideX))
	target = target.Add(ey.Mul((fracJ - 0.5) * g.sideY))
	return target
}

func (g *Grid) advance() {
	g.i++
	if g.i >= g.n {
		g.i = 0
		g.j++
		if g.j >= g.n {
			g.done = true
		}
	}
}
