// Package tracker defines the optional observer interfaces the simulator
// notifies from its worker goroutine. The core never inspects what a
// tracker does with these events.
package tracker

import (
	"github.com/janeusz2000/DcoefficientRayTracer/collector"
	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
)

// PositionTracker observes ray emission and hits during a frequency pass.
// Implementations called from a simulator worker goroutine must be either
// thread-local (one instance per worker) or internally synchronized.
type PositionTracker interface {
	BeginFrequency(frequency float32)
	BeginRay()
	RecordHit(hit geometry.RayHitData)
	EndRay()
	EndFrequency()
	SwitchToReferenceModel()
	Flush() error
}

// CollectorsTracker persists a collector layout's final energy state to
// some destination (a file path, a URL, whatever the concrete
// implementation understands).
type CollectorsTracker interface {
	Save(collectors []*collector.EnergyCollector, destination string) error
}

// NoOp is a PositionTracker that does nothing. Its methods have empty
// bodies; the simulator holds it in a PositionTracker interface field, so
// each call in the trace loop is still an indirect interface call rather
// than being compiled out.
type NoOp struct{}

func (NoOp) BeginFrequency(float32)        {}
func (NoOp) BeginRay()                     {}
func (NoOp) RecordHit(geometry.RayHitData) {}
func (NoOp) EndRay()                       {}
func (NoOp) EndFrequency()                 {}
func (NoOp) SwitchToReferenceModel()       {}
func (NoOp) Flush() error                  { return nil }

var _ PositionTracker = NoOp{}
