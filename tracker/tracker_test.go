package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janeusz2000/DcoefficientRayTracer/geometry"
)

func TestNoOp_SatisfiesPositionTrackerWithoutPanicking(t *testing.T) {
	var tr PositionTracker = NoOp{}
	tr.BeginFrequency(500)
	tr.BeginRay()
	tr.RecordHit(geometry.RayHitData{})
	tr.EndRay()
	tr.EndFrequency()
	tr.SwitchToReferenceModel()
	assert.NoError(t, tr.Flush())
}
