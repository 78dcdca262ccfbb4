// Package network wires the relationship store, discovery, metrics, layout
// and export into a single object with the operations an application layer
// needs.
//
// A [Network] is not safe for concurrent mutation; callers serialize writes.
// [Lazy] provides the guarded, first-caller-wins construction of a
// process-wide instance.
package network

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/discovery"
	"github.com/matzehuels/assetgraph/pkg/export"
	"github.com/matzehuels/assetgraph/pkg/graph"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/metrics"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// Options configures a Network.
type Options struct {
	Discovery discovery.Params
	Layout    layout.Options
	Rules     []discovery.Rule // appended to the built-in rules
	Logger    *log.Logger
}

// DefaultOptions returns the default discovery and layout parameters.
func DefaultOptions() Options {
	return Options{
		Discovery: discovery.DefaultParams(),
		Layout:    layout.DefaultOptions(),
	}
}

// Network is an asset relationship graph together with the engines that
// operate on it.
type Network struct {
	g      *relgraph.Graph
	engine *discovery.Engine
	layout layout.Options
	logger *log.Logger
}

// New creates an empty network. It fails with INVALID_CONFIG when the
// discovery or layout parameters are out of range.
func New(opts Options) (*Network, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}
	engine, err := discovery.New(opts.Discovery, discovery.WithLogger(logger), discovery.WithRules(opts.Rules...))
	if err != nil {
		return nil, err
	}
	lo := opts.Layout
	lo.SetDefaults()
	return &Network{g: relgraph.New(), engine: engine, layout: lo, logger: logger}, nil
}

// Graph returns the underlying store for read access.
func (n *Network) Graph() *relgraph.Graph { return n.g }

// LayoutOptions returns the effective layout parameters.
func (n *Network) LayoutOptions() layout.Options { return n.layout }

// AddAsset inserts an asset. See relgraph.Graph.AddAsset.
func (n *Network) AddAsset(a asset.Asset) error { return n.g.AddAsset(a) }

// AddEvent attaches an event. See relgraph.Graph.AddEvent.
func (n *Network) AddEvent(e asset.Event) error { return n.g.AddEvent(e) }

// AddRelationship inserts a relationship. See relgraph.Graph.AddRelationship.
func (n *Network) AddRelationship(r relgraph.Relationship) (bool, error) {
	return n.g.AddRelationship(r)
}

// BuildRelationships runs a full discovery pass.
func (n *Network) BuildRelationships() (discovery.Result, error) {
	return n.engine.Run(n.g)
}

// CalculateMetrics computes the metrics report of the current graph.
func (n *Network) CalculateMetrics() (metrics.Report, error) {
	return metrics.Calculate(n.g)
}

// Layout computes positions for every asset.
func (n *Network) Layout() layout.Positions {
	return layout.Compute(n.g.AssetIDs(), n.g.Relationships(), n.layout)
}

// Visualization lays the graph out and builds the 3-D payload.
func (n *Network) Visualization() (graph.Visualization, error) {
	return export.Visualization(n.g, n.Layout())
}

// Lazy builds a value on first use. Concurrent callers wait for the first
// build; a failed build is not remembered and the next caller retries.
//
// The zero value is not usable; create with [NewLazy].
type Lazy struct {
	mu    sync.Mutex
	build func() (*Network, error)
	nw    *Network
}

// NewLazy returns a Lazy that calls build on first use.
func NewLazy(build func() (*Network, error)) *Lazy {
	return &Lazy{build: build}
}

// Get returns the network, building it if needed.
func (l *Lazy) Get() (*Network, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.nw != nil {
		return l.nw, nil
	}
	nw, err := l.build()
	if err != nil {
		return nil, err
	}
	l.nw = nw
	return nw, nil
}

// Reset drops the built value so the next Get rebuilds it.
func (l *Lazy) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nw = nil
}
