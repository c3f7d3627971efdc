package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSphere_RejectsNonPositiveRadius(t *testing.T) {
	_, err := NewSphere(NewVec3(0, 0, 0), 0)
	assert.Error(t, err)

	_, err = NewSphere(NewVec3(0, 0, 0), -1)
	assert.Error(t, err)
}

func TestSphere_Intersect_HitsNearSide(t *testing.T) {
	s, err := NewSphere(NewVec3(0, 0, 0), 1)
	require.NoError(t, err)

	ray, err := NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, -1), 1, 0)
	require.NoError(t, err)

	hit, ok, err := s.Intersect(ray, 1000)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 4, hit.Time, 1e-4) // near intersection at z=1, 4m from origin
	assert.InDelta(t, 1, hit.CollisionPoint.Z(), 1e-4)
}

func TestSphere_Intersect_MissesWhenRayPassesBy(t *testing.T) {
	s, err := NewSphere(NewVec3(0, 0, 0), 1)
	require.NoError(t, err)

	ray, err := NewRay(NewVec3(5, 5, 0), NewVec3(1, 0, 0), 1, 0)
	require.NoError(t, err)

	_, ok, err := s.Intersect(ray, 1000)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSphere_Intersect_OriginInsideUsesFarRoot(t *testing.T) {
	s, err := NewSphere(NewVec3(0, 0, 0), 1)
	require.NoError(t, err)

	ray, err := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1), 1, 0)
	require.NoError(t, err)

	hit, ok, err := s.Intersect(ray, 1000)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 1, hit.Time, 1e-4)
}
