// Package diffusion reduces collector energy distributions into the
// Schroeder-style diffusion coefficient and compares a model run against a
// flat reference run.
package diffusion

import (
	"github.com/janeusz2000/DcoefficientRayTracer/collector"
)

// Coefficient computes the Schroeder diffusion coefficient for one
// frequency's collector set:
//
//	d = ((sum Ei)^2 - sum Ei^2) / ((K-1) * sum Ei^2)
//
// where K is the number of collectors and Ei is collector i's total energy
// (summed over all its time bins). d is in [0, 1]: it approaches 1 when
// energy is spread evenly across collectors and 0 when it concentrates in
// one. Coefficient returns 0 for fewer than two collectors or when every
// collector is silent (sum Ei^2 == 0), since the formula is undefined there.
func Coefficient(collectors []*collector.EnergyCollector) float64 {
	k := len(collectors)
	if k < 2 {
		return 0
	}

	var sum, sumSquares float64
	for _, c := range collectors {
		e := float64(c.TotalEnergy())
		sum += e
		sumSquares += e * e
	}
	if sumSquares == 0 {
		return 0
	}

	d := (sum*sum - sumSquares) / (float64(k-1) * sumSquares)
	if d < 0 {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	return d
}

// ByFrequency computes Coefficient for every frequency's collector set.
func ByFrequency(layouts map[float32]collector.Layout) map[float32]float64 {
	result := make(map[float32]float64, len(layouts))
	for freq, layout := range layouts {
		result[freq] = Coefficient(layout.Collectors)
	}
	return result
}

// Normalize subtracts a flat reference run's diffusion coefficient from the
// model run's at each matching frequency, yielding the normalized diffusion
// coefficient spec §4.6 describes as an optional comparison. Frequencies
// present in model but absent from reference are omitted.
func Normalize(model, reference map[float32]float64) map[float32]float64 {
	result := make(map[float32]float64, len(model))
	for freq, d := range model {
		if refD, ok := reference[freq]; ok {
			result[freq] = d - refD
		}
	}
	return result
}

// History keeps a bounded record of the top-N runs of a sweep, ranked by
// each run's mean diffusion coefficient across frequencies. It does not
// track a separate best value per frequency.
// Modeled on the teacher's sorted, truncated best-score record list
// (records.go's RecordManager), repurposed from "best room layout" to "best
// diffusion coefficient across a parameter sweep".
type History struct {
	maxRecords int
	records    []Record
}

// Record is one sweep iteration's outcome.
type Record struct {
	Iteration int
	ByFreq    map[float32]float64
	Mean      float64
}

// NewHistory builds a History retaining at most maxRecords entries.
func NewHistory(maxRecords int) *History {
	if maxRecords < 1 {
		maxRecords = 1
	}
	return &History{maxRecords: maxRecords}
}

// Add records one sweep iteration's per-frequency coefficients, keeping the
// history sorted by mean coefficient descending and truncated to
// maxRecords.
func (h *History) Add(iteration int, byFreq map[float32]float64) {
	mean := meanOf(byFreq)
	h.records = append(h.records, Record{Iteration: iteration, ByFreq: byFreq, Mean: mean})
	insertionSortDescending(h.records)
	if len(h.records) > h.maxRecords {
		h.records = h.records[:h.maxRecords]
	}
}

// Best returns the history's current top records, highest mean first.
func (h *History) Best() []Record { return h.records }

func meanOf(byFreq map[float32]float64) float64 {
	if len(byFreq) == 0 {
		return 0
	}
	var sum float64
	for _, d := range byFreq {
		sum += d
	}
	return sum / float64(len(byFreq))
}

func insertionSortDescending(records []Record) {
	for i := 1; i < len(records); i++ {
		for j := i; j > 0 && records[j].Mean > records[j-1].Mean; j-- {
			records[j], records[j-1] = records[j-1], records[j]
		}
	}
}
