package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVec3(t *testing.T) {
	v := NewVec3(1, 2, 3)
	assert.Equal(t, float32(1), v.X())
	assert.Equal(t, float32(2), v.Y())
	assert.Equal(t, float32(3), v.Z())
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(NewVec3(1, 2, 3)))
	assert.False(t, IsFinite(NewVec3(float32(math.NaN()), 0, 0)))
	assert.False(t, IsFinite(NewVec3(float32(math.Inf(1)), 0, 0)))
}

func TestClose(t *testing.T) {
	a := NewVec3(1, 1, 1)
	b := NewVec3(1+Accuracy/2, 1, 1)
	assert.True(t, Close(a, b))

	c := NewVec3(1+Accuracy*10, 1, 1)
	assert.False(t, Close(a, c))
}

func TestIsUnit(t *testing.T) {
	assert.True(t, IsUnit(NewVec3(1, 0, 0)))
	assert.False(t, IsUnit(NewVec3(2, 0, 0)))
}

func TestSetFromSpherical(t *testing.T) {
	// phi=0 (straight up along +Z) should land exactly on the Z axis
	// regardless of theta.
	v := SetFromSpherical(2, 0, 1.23)
	require.InDelta(t, 0, v.X(), 1e-4)
	require.InDelta(t, 0, v.Y(), 1e-4)
	require.InDelta(t, 2, v.Z(), 1e-4)

	// phi=pi/2 (equator) should have zero Z.
	eq := SetFromSpherical(3, math.Pi/2, 0)
	require.InDelta(t, 3, eq.X(), 1e-3)
	require.InDelta(t, 0, eq.Z(), 1e-3)
}
