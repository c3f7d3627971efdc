package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
	"github.com/janeusz2000/DcoefficientRayTracer/mesh"
)

func flatMesh(t *testing.T) mesh.Mesh {
	t.Helper()
	tri, err := geometry.NewTriangle(
		geometry.NewVec3(-5, -5, 0),
		geometry.NewVec3(5, -5, 0),
		geometry.NewVec3(0, 5, 0),
	)
	require.NoError(t, err)
	return mesh.New([]geometry.Triangle{tri})
}

func TestNewGrid_RejectsInvalidInputs(t *testing.T) {
	_, err := NewGrid(flatMesh(t), 0, 1, nil)
	assert.Error(t, err)

	_, err = NewGrid(mesh.Mesh{}, 4, 1, nil)
	assert.Error(t, err)
}

func TestGrid_EmitsExactlyNSquaredRays(t *testing.T) {
	g, err := NewGrid(flatMesh(t), 3, 9, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, g.Len())

	count := 0
	for {
		ray, ok := g.Next()
		if !ok {
			break
		}
		assert.True(t, geometry.IsUnit(ray.Direction))
		count++
	}
	assert.Equal(t, 9, count)
}

func TestGrid_DistributesEnergyEvenly(t *testing.T) {
	g, err := NewGrid(flatMesh(t), 2, 8, nil)
	require.NoError(t, err)

	ray, ok := g.Next()
	require.True(t, ok)
	assert.InDelta(t, 2, ray.Energy, 1e-6) // 8 / (2*2)
}

func TestGrid_SingleRayStraightDown(t *testing.T) {
	g, err := NewGrid(flatMesh(t), 1, 1, nil)
	require.NoError(t, err)

	ray, ok := g.Next()
	require.True(t, ok)
	assert.InDelta(t, 0, ray.Direction.X(), 1e-5)
	assert.InDelta(t, 0, ray.Direction.Y(), 1e-5)
	assert.InDelta(t, -1, ray.Direction.Z(), 1e-5)

	_, ok = g.Next()
	assert.False(t, ok)
}
