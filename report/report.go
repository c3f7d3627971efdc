// Package report assembles a run's per-frequency diffusion coefficients and
// warnings into the JSON document handed back to a caller, stamped with a
// run id the way the teacher's WASM bridge stamped JS-facing scene objects
// with generated ids (scene.go's NewSceneObject).
package report

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/janeusz2000/DcoefficientRayTracer/diffusion"
)

// Entry is one frequency's diffusion coefficient. encoding/json can't key a
// map by float32, so the report carries frequency/value pairs in a
// sorted slice instead of a map.
type Entry struct {
	Frequency float32 `json:"frequency"`
	Value     float64 `json:"value"`
}

// Report is one simulation run's outcome: the model's diffusion coefficient
// per frequency, the same for the reference model if one was run, and any
// non-fatal warnings collected along the way (e.g. tracker I/O failures,
// which spec §7 treats as carried-alongside rather than aborting).
type Report struct {
	RunID       string   `json:"runId"`
	Coefficient []Entry  `json:"coefficient"`
	Reference   []Entry  `json:"reference,omitempty"`
	Normalized  []Entry  `json:"normalized,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
}

// New builds a Report stamped with a fresh run id from an unordered
// frequency->coefficient map, sorting entries by ascending frequency.
func New(coefficient map[float32]float64) Report {
	return Report{RunID: uuid.NewString(), Coefficient: toEntries(coefficient)}
}

// WithReference attaches the reference model's coefficients and their
// normalized (model-minus-reference) difference.
func (r Report) WithReference(reference map[float32]float64) Report {
	r.Reference = toEntries(reference)
	r.Normalized = toEntries(diffusion.Normalize(asMap(r.Coefficient), reference))
	return r
}

func toEntries(m map[float32]float64) []Entry {
	entries := make([]Entry, 0, len(m))
	for f, v := range m {
		entries = append(entries, Entry{Frequency: f, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Frequency < entries[j].Frequency })
	return entries
}

func asMap(entries []Entry) map[float32]float64 {
	m := make(map[float32]float64, len(entries))
	for _, e := range entries {
		m[e.Frequency] = e.Value
	}
	return m
}

// AddWarning appends a warning message to the report.
func (r *Report) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// Frequencies returns the report's model frequencies in ascending order,
// useful for stable iteration when printing or plotting.
func (r Report) Frequencies() []float32 {
	freqs := make([]float32, 0, len(r.Coefficient))
	for _, e := range r.Coefficient {
		freqs = append(freqs, e.Frequency)
	}
	return freqs
}

// Encode writes the report as indented JSON.
func (r Report) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Decode reads a Report back from JSON.
func Decode(r io.Reader) (Report, error) {
	var rep Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return Report{}, err
	}
	return rep, nil
}
