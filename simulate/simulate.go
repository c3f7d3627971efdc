// Package simulate runs the per-frequency ray trace: emission, nearest-hit
// selection against mesh and collectors, reflection, and energy deposition.
package simulate

import (
	"sync"

	"github.com/janeusz2000/DcoefficientRayTracer/collection"
	"github.com/janeusz2000/DcoefficientRayTracer/collector"
	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
	"github.com/janeusz2000/DcoefficientRayTracer/mesh"
	"github.com/janeusz2000/DcoefficientRayTracer/reflection"
	"github.com/janeusz2000/DcoefficientRayTracer/source"
	"github.com/janeusz2000/DcoefficientRayTracer/tracker"
)

// DefaultMaxReflections is the bounce cap used when a run doesn't specify
// one.
const DefaultMaxReflections = 15

// SourceFactory builds a fresh ray source. RaySource sequences are single
// use and non-restartable, so a new one is needed for every frequency pass
// (and for the reference-model pass if one is run).
type SourceFactory func() (*source.Grid, error)

// Simulator owns the collaborators needed to trace one frequency at a time:
// the mesh, a way to rebuild the ray source, the reflection engine and the
// collection rule. A Simulator has no run-specific mutable state of its own
// — only the Layout passed to Run is mutated — so one Simulator may be
// reused (or shared read-only across goroutines) for many runs.
type Simulator struct {
	Mesh             mesh.Mesh
	NewSource        SourceFactory
	ReflectionEngine reflection.Engine
	CollectionRule   collection.Rule
	MaxReflections   int
	Tracker          tracker.PositionTracker // optional; nil is a valid no-op

	// NewTracker, if set, builds a fresh tracker for each frequency worker
	// spawned by RunFrequencies instead of sharing Tracker across them.
	// Spec §5 requires trackers to be thread-local or internally
	// synchronized; since RunFrequencies runs one goroutine per frequency,
	// any Tracker implementation that buffers per-frequency/per-ray state
	// (like jsontracker.Tracker) must be handed out this way rather than
	// shared — see jsontracker.Multiplexer.
	NewTracker func() tracker.PositionTracker
}

// New builds a Simulator, defaulting MaxReflections to DefaultMaxReflections
// and Tracker to tracker.NoOp{} when left unset.
func New(m mesh.Mesh, newSource SourceFactory, engine reflection.Engine, rule collection.Rule, maxReflections int, t tracker.PositionTracker) Simulator {
	if maxReflections <= 0 {
		maxReflections = DefaultMaxReflections
	}
	if t == nil {
		t = tracker.NoOp{}
	}
	return Simulator{
		Mesh:             m,
		NewSource:        newSource,
		ReflectionEngine: engine,
		CollectionRule:   rule,
		MaxReflections:   maxReflections,
		Tracker:          t,
	}
}

// Run traces every ray of a fresh source against s.Mesh and layout for the
// given frequency, depositing energy into layout's collectors. layout is
// mutated in place; callers running frequencies in parallel must give each
// worker its own collector.Layout (see RunFrequencies and spec §5).
func (s Simulator) Run(layout collector.Layout, frequency float32) error {
	src, err := s.NewSource()
	if err != nil {
		return err
	}
	if s.Tracker == nil {
		s.Tracker = tracker.NoOp{}
	}

	s.Tracker.BeginFrequency(frequency)
	defer s.Tracker.EndFrequency()

	for {
		ray, ok := src.Next()
		if !ok {
			break
		}
		if err := s.traceRay(ray, layout, frequency); err != nil {
			return err
		}
	}
	return nil
}

func (s Simulator) traceRay(ray geometry.Ray, layout collector.Layout, frequency float32) error {
	s.Tracker.BeginRay()
	defer s.Tracker.EndRay()

	current := ray
	for bounces := 0; ; bounces++ {
		triHit, triOK, err := nearestTriangleHit(current, s.Mesh, frequency)
		if err != nil {
			return err
		}
		colHit, col, colOK, err := nearestCollectorHit(current, layout, frequency)
		if err != nil {
			return err
		}

		if !triOK && !colOK {
			return nil // escaped: no triangle or collector ahead
		}

		// Tie-break: the collector wins within accuracy of the triangle hit,
		// since energy is absorbed rather than re-reflecting from inside it.
		collectorWins := colOK && (!triOK || colHit.Time <= triHit.Time+geometry.Accuracy)
		if collectorWins {
			return s.CollectionRule.Apply(col, colHit)
		}

		s.Tracker.RecordHit(triHit)
		if bounces >= s.MaxReflections {
			return nil
		}

		next, err := s.ReflectionEngine.Reflect(current, triHit)
		if err != nil {
			return err
		}
		current = next
	}
}

func nearestTriangleHit(ray geometry.Ray, m mesh.Mesh, frequency float32) (geometry.RayHitData, bool, error) {
	var best geometry.RayHitData
	found := false
	for _, tri := range m.Triangles() {
		hit, ok, err := tri.Intersect(ray, frequency)
		if err != nil {
			return geometry.RayHitData{}, false, err
		}
		if !ok {
			continue
		}
		if !found || hit.Time < best.Time {
			best = hit
			found = true
		}
	}
	return best, found, nil
}

func nearestCollectorHit(ray geometry.Ray, layout collector.Layout, frequency float32) (geometry.RayHitData, *collector.EnergyCollector, bool, error) {
	var best geometry.RayHitData
	var bestCollector *collector.EnergyCollector
	found := false
	for _, c := range layout.Collectors {
		hit, ok, err := c.Sphere.Intersect(ray, frequency)
		if err != nil {
			return geometry.RayHitData{}, nil, false, err
		}
		if !ok {
			continue
		}
		if !found || hit.Time < best.Time {
			best = hit
			bestCollector = c
			found = true
		}
	}
	return best, bestCollector, found, nil
}

// RunFrequencies runs one Simulator per frequency, each against its own
// Layout (via newLayout), in parallel goroutines bounded only by
// GOMAXPROCS. It returns a frequency-keyed map of the mutated layouts, plus
// any per-frequency errors keyed the same way. A cancelled/errored pass
// still returns its partially-built layout only if newLayout itself
// succeeded; a newLayout failure for a frequency is reported as that
// frequency's error with no corresponding layout entry.
func (s Simulator) RunFrequencies(frequencies []float32, newLayout func() (collector.Layout, error)) (map[float32]collector.Layout, map[float32]error) {
	layouts := make(map[float32]collector.Layout, len(frequencies))
	errs := make(map[float32]error)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, freq := range frequencies {
		freq := freq
		wg.Add(1)
		go func() {
			defer wg.Done()
			layout, err := newLayout()
			if err != nil {
				mu.Lock()
				errs[freq] = err
				mu.Unlock()
				return
			}

			worker := s
			if s.NewTracker != nil {
				worker.Tracker = s.NewTracker()
			}

			runErr := worker.Run(layout, freq)
			mu.Lock()
			layouts[freq] = layout
			if runErr != nil {
				errs[freq] = runErr
			}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(errs) == 0 {
		return layouts, nil
	}
	return layouts, errs
}
