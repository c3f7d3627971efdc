package collector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
	"github.com/janeusz2000/DcoefficientRayTracer/mesh"
)

// unitMesh is a single triangle sized so Build's radius works out to
// RadiusMultiplier (4) meters, matching the literal ~3.3032m distances the
// spec's apex/equator scenarios are stated against.
func unitMesh(t *testing.T) mesh.Mesh {
	t.Helper()
	tri, err := geometry.NewTriangle(geometry.NewVec3(-0.5, -0.5, 0), geometry.NewVec3(0.5, -0.5, 0), geometry.NewVec3(0, 0.5, 1))
	require.NoError(t, err)
	return mesh.New([]geometry.Triangle{tri})
}

func TestBuild_RejectsTooFewCollectors(t *testing.T) {
	m := unitMesh(t)
	_, err := Build(DoubleAxis, m, 3)
	assert.Error(t, err)
}

func TestBuild_RejectsInvalidCount38(t *testing.T) {
	m := unitMesh(t)
	// 38 satisfies neither n%4==0 nor (n-1)%4==0.
	_, err := Build(DoubleAxis, m, 38)
	assert.Error(t, err)
}

func TestBuild_RejectsEmptyMesh(t *testing.T) {
	_, err := Build(DoubleAxis, mesh.Mesh{}, 37)
	assert.Error(t, err)
}

func TestBuild_DoubleAxis_37Collectors_ApexAndEquatorDistance(t *testing.T) {
	m := unitMesh(t)
	layout, err := Build(DoubleAxis, m, 37)
	require.NoError(t, err)
	require.Len(t, layout.Collectors, 37)

	R := layout.SimulationRadius
	odd := 37 % 2
	alpha := 2 * math.Pi / float64(37+odd-2)
	r := float32(R) * float32(math.Sqrt(2-2*math.Cos(alpha)))

	// A ray straight up the Z axis should hit the apex collector at distance
	// R - r (it enters the collector sphere at the near side, which sits
	// exactly r meters before the collector's center along that axis).
	apexRay, err := geometry.NewRay(geometry.NewVec3(0, 0, 0), geometry.NewVec3(0, 0, 1), 1, 0)
	require.NoError(t, err)

	apex := findCollectorNear(layout, geometry.NewVec3(0, 0, R))
	require.NotNil(t, apex)
	hit, ok, err := apex.Sphere.Intersect(apexRay, 1000)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, float64(R-r), hit.Time, 1e-3)

	// A ray along +X should likewise hit an equator collector at R - r.
	equatorRay, err := geometry.NewRay(geometry.NewVec3(0, 0, 0), geometry.NewVec3(1, 0, 0), 1, 0)
	require.NoError(t, err)
	equator := findCollectorNear(layout, geometry.NewVec3(R, 0, 0))
	require.NotNil(t, equator)
	hit2, ok2, err := equator.Sphere.Intersect(equatorRay, 1000)
	require.NoError(t, err)
	require.True(t, ok2)
	assert.InDelta(t, float64(R-r), hit2.Time, 1e-3)
}

func TestBuild_DoubleAxis_36Collectors_EvenLayoutHasNoApex(t *testing.T) {
	m := unitMesh(t)
	layout, err := Build(DoubleAxis, m, 36)
	require.NoError(t, err)
	require.Len(t, layout.Collectors, 36)

	for _, c := range layout.Collectors {
		assert.False(t, geometry.Close(c.Sphere.Center, geometry.NewVec3(0, 0, layout.SimulationRadius)))
	}
}

func TestBuild_GeometricDome_PreservesCount(t *testing.T) {
	m := unitMesh(t)
	for _, n := range []int{4, 8, 37, 36, 100} {
		layout, err := Build(GeometricDome, m, n)
		require.NoError(t, err)
		assert.Len(t, layout.Collectors, n)
	}
}

func TestLayout_Clone_IsIndependent(t *testing.T) {
	m := unitMesh(t)
	layout, err := Build(DoubleAxis, m, 37)
	require.NoError(t, err)

	require.NoError(t, layout.Collectors[0].Add(1, 5))

	clone := layout.Clone()
	assert.Equal(t, float32(0), clone.Collectors[0].TotalEnergy())
	assert.Equal(t, float32(5), layout.Collectors[0].TotalEnergy())
}

func findCollectorNear(layout Layout, point geometry.Vec3) *EnergyCollector {
	for _, c := range layout.Collectors {
		if geometry.CloseWithin(c.Sphere.Center, point, 1e-3) {
			return c
		}
	}
	return nil
}
