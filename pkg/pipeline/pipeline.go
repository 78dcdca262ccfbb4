// Package pipeline provides the end-to-end visualization pipeline for
// assetgraph.
//
// This package implements the complete load → discover → layout → render
// pipeline used by the CLI and the HTTP API. By centralizing this logic,
// both entry points produce identical payloads for identical inputs.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a portfolio file into a fresh network
//  2. Discover: Run the relationship discovery rules over all asset pairs
//  3. Layout: Compute 3-D positions and build the visualization payload
//  4. Render: Generate output in various formats (JSON, DOT, SVG)
//
// Metrics are computed after discovery on every run and attached to the
// payload. Only the layout and render stages are cached; their keys are
// content hashes of the ordered graph and the options, so a stale entry can
// never be served for a changed portfolio.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    PortfolioPath: "portfolio.toml",
//	    Formats:       []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages on an existing network:
//
//	v, err := runner.Visualize(ctx, nw, opts)
//	artifacts, err := runner.Render(ctx, v, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgraph/pkg/cache"
	"github.com/matzehuels/assetgraph/pkg/discovery"
	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/graph"
	assetio "github.com/matzehuels/assetgraph/pkg/io"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/metrics"
	"github.com/matzehuels/assetgraph/pkg/network"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultSeed is the default random seed for reproducibility.
const DefaultSeed = layout.DefaultSeed

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	PortfolioPath string `json:"portfolio_path,omitempty"`
	SkipDiscovery bool   `json:"skip_discovery,omitempty"`

	// Layout options
	Seed       uint64  `json:"seed,omitempty"`
	Iterations int     `json:"iterations,omitempty"`
	Radius     float64 `json:"radius,omitempty"`
	Repulsion  float64 `json:"repulsion,omitempty"`
	Attraction float64 `json:"attraction,omitempty"`
	Refresh    bool    `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Detailed node labels in DOT/SVG

	// Runtime options (not serialized)
	Portfolio *assetio.Portfolio `json:"-"` // Used instead of PortfolioPath when set
	Discovery *discovery.Params  `json:"-"` // nil means discovery.DefaultParams
	Rules     []discovery.Rule   `json:"-"`
	Logger    *log.Logger        `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network holds the loaded and discovered graph.
	Network *network.Network

	// GraphHash is the content hash of the graph after discovery.
	GraphHash string

	// Discovery summarizes the discovery pass.
	Discovery discovery.Result

	// Metrics is the report of the discovered graph.
	Metrics metrics.Report

	// Visualization is the 3-D payload with Metrics attached.
	Visualization graph.Visualization

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	AssetCount        int
	RelationshipCount int
	LoadTime          time.Duration
	DiscoveryTime     time.Duration
	LayoutTime        time.Duration
	RenderTime        time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the visualization came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a portfolio.
func (o *Options) ValidateForLoad() error {
	if o.PortfolioPath == "" && o.Portfolio == nil {
		return errors.New(errors.ErrCodeInvalidInput, "portfolio_path is required")
	}
	if o.Discovery != nil {
		if err := o.Discovery.Validate(); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
// A zero Seed is replaced with DefaultSeed.
func (o *Options) SetLayoutDefaults() {
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	lo := o.LayoutOptions()
	lo.SetDefaults()
	o.Iterations = lo.Iterations
	o.Radius = lo.Radius
	o.Repulsion = lo.Repulsion
	o.Attraction = lo.Attraction
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.LayoutOptions().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// LayoutOptions returns the layout parameters carried by the options.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Seed:       o.Seed,
		Iterations: o.Iterations,
		Radius:     o.Radius,
		Repulsion:  o.Repulsion,
		Attraction: o.Attraction,
	}
}

// DiscoveryParams returns the discovery parameters, defaulting when unset.
func (o *Options) DiscoveryParams() discovery.Params {
	if o.Discovery == nil {
		return discovery.DefaultParams()
	}
	return *o.Discovery
}

// VisualizationKeyOpts returns cache key options for the visualization payload.
func (o *Options) VisualizationKeyOpts() cache.VisualizationKeyOpts {
	return cache.VisualizationKeyOpts{
		Seed:       o.Seed,
		Iterations: o.Iterations,
		Radius:     o.Radius,
		Repulsion:  o.Repulsion,
		Attraction: o.Attraction,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
