package simulate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janeusz2000/DcoefficientRayTracer/collection"
	"github.com/janeusz2000/DcoefficientRayTracer/collector"
	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
	"github.com/janeusz2000/DcoefficientRayTracer/mesh"
	"github.com/janeusz2000/DcoefficientRayTracer/reflection"
	"github.com/janeusz2000/DcoefficientRayTracer/source"
	"github.com/janeusz2000/DcoefficientRayTracer/tracker"
)

func flatFloorMesh(t *testing.T) mesh.Mesh {
	t.Helper()
	tri1, err := geometry.NewTriangle(geometry.NewVec3(-10, -10, 0), geometry.NewVec3(10, -10, 0), geometry.NewVec3(10, 10, 0))
	require.NoError(t, err)
	tri2, err := geometry.NewTriangle(geometry.NewVec3(-10, -10, 0), geometry.NewVec3(10, 10, 0), geometry.NewVec3(-10, 10, 0))
	require.NoError(t, err)
	return mesh.New([]geometry.Triangle{tri1, tri2})
}

func sphereCollector(t *testing.T, center geometry.Vec3, radius float32) collector.Layout {
	t.Helper()
	sphere, err := geometry.NewSphere(center, radius)
	require.NoError(t, err)
	return collector.Layout{Collectors: []*collector.EnergyCollector{collector.New(sphere)}, SimulationRadius: radius}
}

func TestSimulator_Run_SingleRayHitsCollectorDirectly(t *testing.T) {
	m := mesh.New(nil) // no geometry to bounce off; collector sits right in the ray's path
	layout := sphereCollector(t, geometry.NewVec3(0, 0, -5), 1)

	sim := New(m, func() (*source.Grid, error) {
		return source.NewGrid(mesh.New([]geometry.Triangle{mustFloorTriangle(t)}), 1, 1, nil)
	}, reflection.NewSpecular(), collection.NewLinear(0), 5, nil)

	err := sim.Run(layout, 1000)
	require.NoError(t, err)
	assert.Greater(t, layout.Collectors[0].TotalEnergy(), float32(0))
}

func mustFloorTriangle(t *testing.T) geometry.Triangle {
	t.Helper()
	tri, err := geometry.NewTriangle(geometry.NewVec3(-10, -10, -100), geometry.NewVec3(10, -10, -100), geometry.NewVec3(0, 10, -100))
	require.NoError(t, err)
	return tri
}

func TestSimulator_Run_BouncesOffFloorThenHitsCollector(t *testing.T) {
	m := flatFloorMesh(t)
	// The single ray leaves (0,0,1) straight down, so a collector centered
	// above the source is behind it; only the ray reflected straight up off
	// the floor at (0,0,0) reaches it.
	layout := sphereCollector(t, geometry.NewVec3(0, 0, 3), 0.5)

	sim := New(m, func() (*source.Grid, error) {
		return source.NewGrid(m, 1, 1, nil)
	}, reflection.NewSpecular(), collection.NewLinear(0), 5, nil)

	err := sim.Run(layout, 1000)
	require.NoError(t, err)
	assert.Greater(t, layout.Collectors[0].TotalEnergy(), float32(0))
}

func TestSimulator_New_DefaultsMaxReflectionsAndTracker(t *testing.T) {
	sim := New(mesh.Mesh{}, nil, reflection.NewSpecular(), collection.NewLinear(0), 0, nil)
	assert.Equal(t, DefaultMaxReflections, sim.MaxReflections)
	assert.NotNil(t, sim.Tracker)
}

// countingTracker records how many BeginFrequency calls it personally
// received; used to prove RunFrequencies hands each worker its own
// instance rather than sharing one across goroutines.
type countingTracker struct {
	tracker.NoOp
	mu    sync.Mutex
	count int
}

func (c *countingTracker) BeginFrequency(float32) {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}

func TestRunFrequencies_GivesEachWorkerItsOwnTrackerViaNewTracker(t *testing.T) {
	m := mesh.New(nil)
	sim := New(m, func() (*source.Grid, error) {
		return source.NewGrid(mesh.New([]geometry.Triangle{mustFloorTriangle(t)}), 1, 1, nil)
	}, reflection.NewSpecular(), collection.NewLinear(0), 5, nil)

	var mu sync.Mutex
	var workers []*countingTracker
	sim.NewTracker = func() tracker.PositionTracker {
		ct := &countingTracker{}
		mu.Lock()
		workers = append(workers, ct)
		mu.Unlock()
		return ct
	}

	frequencies := []float32{500, 1000, 2000}
	_, errs := sim.RunFrequencies(frequencies, func() (collector.Layout, error) {
		return sphereCollector(t, geometry.NewVec3(0, 0, -5), 1), nil
	})
	assert.Nil(t, errs)

	require.Len(t, workers, len(frequencies))
	for _, w := range workers {
		assert.Equal(t, 1, w.count) // each worker saw exactly its own BeginFrequency
	}
}

func TestRunFrequencies_RunsEachFrequencyWithItsOwnLayout(t *testing.T) {
	m := mesh.New(nil)
	sim := New(m, func() (*source.Grid, error) {
		return source.NewGrid(mesh.New([]geometry.Triangle{mustFloorTriangle(t)}), 1, 1, nil)
	}, reflection.NewSpecular(), collection.NewLinear(0), 5, nil)

	frequencies := []float32{500, 1000, 2000}
	layouts, errs := sim.RunFrequencies(frequencies, func() (collector.Layout, error) {
		return sphereCollector(t, geometry.NewVec3(0, 0, -5), 1), nil
	})

	assert.Nil(t, errs)
	require.Len(t, layouts, 3)
	for _, freq := range frequencies {
		layout, ok := layouts[freq]
		require.True(t, ok)
		require.Len(t, layout.Collectors, 1)
	}
}
