// Package collection implements the pluggable mapping from a collector hit
// to the energy increment deposited into it.
package collection

import (
	"math"

	"github.com/janeusz2000/DcoefficientRayTracer/collector"
	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
)

// Kind selects which collection rule a Rule applies.
type Kind int

const (
	// Linear deposits hitData.Energy verbatim at hitData.AccumulatedTime.
	Linear Kind = iota
	// NonLinear deposits hitData.Energy * max(0, cos(theta)), where theta is
	// the angle between the incoming ray direction and the outward
	// collector normal at the collision point, modeling directional
	// sensitivity.
	NonLinear
)

// Rule is a tagged union of the two collection strategies, dispatched
// without interface indirection in the simulator's hot loop (spec §9).
type Rule struct {
	Kind       Kind
	SampleRate float32 // Hz; 0 means "no quantization", only used by Linear
}

// NewLinear builds a Linear rule. sampleRate, if > 0, quantizes
// hitData.AccumulatedTime onto a 1/sampleRate grid before accumulating.
func NewLinear(sampleRate float32) Rule { return Rule{Kind: Linear, SampleRate: sampleRate} }

// NewNonLinear builds a NonLinear rule.
func NewNonLinear() Rule { return Rule{Kind: NonLinear} }

// Apply deposits the energy this rule attributes to hit into c.
func (r Rule) Apply(c *collector.EnergyCollector, hit geometry.RayHitData) error {
	t := hit.AccumulatedTime
	if r.Kind == Linear && r.SampleRate > 0 {
		t = quantize(t, r.SampleRate)
	}

	energy := hit.Energy
	if r.Kind == NonLinear {
		cosTheta := -hit.Direction.Dot(hit.Normal) // incoming direction vs outward normal
		if cosTheta < 0 {
			cosTheta = 0
		}
		energy *= cosTheta
	}

	return c.Add(t, energy)
}

func quantize(t, sampleRate float32) float32 {
	period := 1 / sampleRate
	return float32(math.Round(float64(t/period))) * period
}
