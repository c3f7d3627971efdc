package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
)

func TestNew_Empty(t *testing.T) {
	m := New(nil)
	assert.True(t, m.Empty())
	assert.Equal(t, float32(0), m.Height())
	assert.Equal(t, float32(0), m.SideSize())
}

func TestNew_ComputesExtentsFromVertices(t *testing.T) {
	tri, err := geometry.NewTriangle(
		geometry.NewVec3(-2, -1, 0),
		geometry.NewVec3(3, -1, 0),
		geometry.NewVec3(0, 4, 5),
	)
	require.NoError(t, err)

	m := New([]geometry.Triangle{tri})
	assert.False(t, m.Empty())
	assert.InDelta(t, 5, m.Height(), 1e-6)  // z: 5 - 0
	assert.InDelta(t, 5, m.SideSize(), 1e-6) // x: 3 - (-2) = 5, y: 4 - (-1) = 5
}

func TestNew_DefensivelyCopiesInput(t *testing.T) {
	tri, err := geometry.NewTriangle(geometry.NewVec3(0, 0, 0), geometry.NewVec3(1, 0, 0), geometry.NewVec3(0, 1, 0))
	require.NoError(t, err)

	triangles := []geometry.Triangle{tri}
	m := New(triangles)
	triangles[0] = geometry.Triangle{}

	require.Len(t, m.Triangles(), 1)
	assert.InDelta(t, 0.5, m.Triangles()[0].Area(), 1e-6)
}
