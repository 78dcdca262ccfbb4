package layout

import (
	"math"

	"github.com/matzehuels/assetgraph/pkg/errors"
)

// Default layout parameters.
const (
	DefaultSeed       = uint64(42)
	DefaultIterations = 100
	DefaultRadius     = 10.0
	DefaultRepulsion  = 1.0
	DefaultAttraction = 1.0
)

// MaxIterations bounds Options.Iterations.
const MaxIterations = 10_000

// Options configures Compute. Zero fields are replaced by the defaults.
type Options struct {
	Seed       uint64  `toml:"seed" json:"seed"`
	Iterations int     `toml:"iterations" json:"iterations"`
	Radius     float64 `toml:"radius" json:"radius"`
	Repulsion  float64 `toml:"repulsion" json:"repulsion"`
	Attraction float64 `toml:"attraction" json:"attraction"`
}

// DefaultOptions returns the default layout parameters.
func DefaultOptions() Options {
	return Options{
		Seed:       DefaultSeed,
		Iterations: DefaultIterations,
		Radius:     DefaultRadius,
		Repulsion:  DefaultRepulsion,
		Attraction: DefaultAttraction,
	}
}

// SetDefaults fills zero fields with the defaults. A zero Seed becomes
// DefaultSeed, so Options{} lays out the same as DefaultOptions().
func (o *Options) SetDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Radius == 0 {
		o.Radius = DefaultRadius
	}
	if o.Repulsion == 0 {
		o.Repulsion = DefaultRepulsion
	}
	if o.Attraction == 0 {
		o.Attraction = DefaultAttraction
	}
}

// Validate checks parameter ranges. It returns ErrCodeInvalidConfig.
func (o Options) Validate() error {
	if o.Iterations < 0 || o.Iterations > MaxIterations {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must be in [0, %d], got %d", MaxIterations, o.Iterations)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"radius", o.Radius},
		{"repulsion", o.Repulsion},
		{"attraction", o.Attraction},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be a finite non-negative number, got %v", f.name, f.value)
		}
	}
	return nil
}
