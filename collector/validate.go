package collector

import (
	"math"

	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
)

// Validate samples the upper hemisphere on a latitude/longitude grid and
// reports whether every sampled direction lands within some collector's
// interior (plus geometry.Accuracy), i.e. the covering invariant of spec
// §4.3/§8. samplesPerAxis controls the grid resolution; original_source's
// collectorTest.cpp / validation.cpp perform the equivalent check with a
// fixed small set of cardinal and off-axis rays, which Validate subsumes by
// sampling densely instead of by a short, hand-picked list.
func Validate(layout Layout, samplesPerAxis int) bool {
	if samplesPerAxis < 1 {
		samplesPerAxis = 1
	}
	for i := 0; i <= samplesPerAxis; i++ {
		phi := float32(math.Pi) / 2 * float32(i) / float32(samplesPerAxis) // 0..pi/2: upper hemisphere only
		for j := 0; j < 4*samplesPerAxis; j++ {
			theta := 2 * float32(math.Pi) * float32(j) / float32(4*samplesPerAxis)
			point := geometry.SetFromSpherical(layout.SimulationRadius, phi, theta)
			if !coveredBy(layout, point) {
				return false
			}
		}
	}
	return true
}

func coveredBy(layout Layout, point geometry.Vec3) bool {
	for _, c := range layout.Collectors {
		if point.Sub(c.Sphere.Center).Len() <= c.Sphere.Radius+geometry.Accuracy {
			return true
		}
	}
	return false
}
