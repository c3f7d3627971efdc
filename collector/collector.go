// Package collector implements the hemispherical array of energy-absorbing
// spheres ray-traced runs deposit energy into.
package collector

import (
	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
	"github.com/janeusz2000/DcoefficientRayTracer/rterr"
)

// EnergyCollector is a sphere that owns a mapping from accumulated arrival
// time to accumulated energy. The map is the only state mutated during a
// simulation run; it is written exclusively by the simulator and read only
// afterward.
type EnergyCollector struct {
	Sphere   geometry.Sphere
	energies map[float32]float32
}

// New builds an EnergyCollector around the given sphere.
func New(sphere geometry.Sphere) *EnergyCollector {
	return &EnergyCollector{Sphere: sphere, energies: make(map[float32]float32)}
}

// Add accumulates energy at the given accumulated time: a second Add at a
// time already present sums with the existing value (commutative,
// associative), otherwise it inserts a new entry. time must be
// non-negative.
func (c *EnergyCollector) Add(time, energy float32) error {
	if time < 0 {
		return rterr.Geometryf("energy collector time key must be non-negative, got %g", time)
	}
	c.energies[time] += energy
	return nil
}

// Energies returns the collector's accumulated time->energy mapping. The
// returned map must not be mutated by the caller.
func (c *EnergyCollector) Energies() map[float32]float32 { return c.energies }

// TotalEnergy sums all accumulated energy across every recorded time bucket.
func (c *EnergyCollector) TotalEnergy() float32 {
	var total float32
	for _, e := range c.energies {
		total += e
	}
	return total
}

// Reset clears the collector's accumulated energy, letting a single layout
// be reused across frequency passes run sequentially (each parallel worker
// should instead own its own copy, see simulate.Run).
func (c *EnergyCollector) Reset() {
	c.energies = make(map[float32]float32)
}
