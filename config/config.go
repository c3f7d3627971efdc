// Package config loads and validates the YAML-described settings for a
// simulation run, the same option set spec §6 lists for the CLI
// collaborator: frequencies, source power, collector layout, reflection and
// collection rules, and the bounce and sampling limits.
package config

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/janeusz2000/DcoefficientRayTracer/collection"
	"github.com/janeusz2000/DcoefficientRayTracer/collector"
	"github.com/janeusz2000/DcoefficientRayTracer/rterr"
)

// DefaultMaxReflections mirrors simulate.DefaultMaxReflections; duplicated
// here (rather than importing package simulate) so config has no dependency
// on the simulation loop it configures.
const DefaultMaxReflections = 15

// DefaultSampleRate is the collection sample rate used when a config omits
// one, matching common digital audio sampling.
const DefaultSampleRate float32 = 96000

// Config is the raw YAML shape. Use Load to get a validated Settings.
type Config struct {
	Frequencies    []float32 `yaml:"frequencies"`
	SourcePower    float32   `yaml:"sourcePower"`
	NumCollectors  int       `yaml:"numCollectors"`
	NumRaysSquared int       `yaml:"numRaysSquared"`
	MaxReflections int       `yaml:"maxReflections"`
	SampleRate     float32   `yaml:"sampleRate"`
	CollectionRule string    `yaml:"collectionRule"` // "Linear" | "NonLinear"
	Layout         string    `yaml:"layout"`          // "DoubleAxis" | "GeometricDome"
	Absorption     float32   `yaml:"absorption"`
}

// Settings is the validated, defaulted configuration ready to drive a run.
type Settings struct {
	Frequencies    []float32
	SourcePower    float32
	NumCollectors  int
	NumRaysSquared int
	MaxReflections int
	SampleRate     float32
	CollectionRule collection.Rule
	Layout         collector.Kind
	Absorption     float32
}

// Load reads, parses and validates a YAML configuration stream.
func Load(r io.Reader) (Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Settings{}, rterr.Configurationf("reading config: %v", err)
	}

	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, rterr.Configurationf("parsing config yaml: %v", err)
	}

	return validate(raw)
}

func validate(raw Config) (Settings, error) {
	if len(raw.Frequencies) == 0 {
		return Settings{}, rterr.Configurationf("frequencies must list at least one value")
	}
	for _, f := range raw.Frequencies {
		if f <= 0 {
			return Settings{}, rterr.Configurationf("frequency %v must be positive", f)
		}
	}
	if raw.SourcePower <= 0 {
		return Settings{}, rterr.Configurationf("sourcePower must be positive, got %v", raw.SourcePower)
	}
	if raw.NumRaysSquared < 1 {
		return Settings{}, rterr.Configurationf("numRaysSquared must be >= 1, got %d", raw.NumRaysSquared)
	}
	if raw.Absorption < 0 || raw.Absorption > 1 {
		return Settings{}, rterr.Configurationf("absorption must be in [0, 1], got %v", raw.Absorption)
	}

	maxReflections := raw.MaxReflections
	if maxReflections <= 0 {
		maxReflections = DefaultMaxReflections
	}
	sampleRate := raw.SampleRate
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	rule, err := parseCollectionRule(raw.CollectionRule, sampleRate)
	if err != nil {
		return Settings{}, err
	}
	layoutKind, err := parseLayoutKind(raw.Layout)
	if err != nil {
		return Settings{}, err
	}

	numCollectors := raw.NumCollectors
	if numCollectors == 0 {
		numCollectors = collector.DefaultPopulation
	}

	return Settings{
		Frequencies:    raw.Frequencies,
		SourcePower:    raw.SourcePower,
		NumCollectors:  numCollectors,
		NumRaysSquared: raw.NumRaysSquared,
		MaxReflections: maxReflections,
		SampleRate:     sampleRate,
		CollectionRule: rule,
		Layout:         layoutKind,
		Absorption:     raw.Absorption,
	}, nil
}

func parseCollectionRule(name string, sampleRate float32) (collection.Rule, error) {
	switch name {
	case "", "Linear":
		return collection.NewLinear(sampleRate), nil
	case "NonLinear":
		return collection.NewNonLinear(), nil
	default:
		return collection.Rule{}, rterr.Configurationf("unknown collectionRule %q", name)
	}
}

func parseLayoutKind(name string) (collector.Kind, error) {
	switch name {
	case "", "DoubleAxis":
		return collector.DoubleAxis, nil
	case "GeometricDome":
		return collector.GeometricDome, nil
	default:
		return 0, rterr.Configurationf("unknown layout %q", name)
	}
}
