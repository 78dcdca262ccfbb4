package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/assetgraph/pkg/export"
	"github.com/matzehuels/assetgraph/pkg/graph"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/network"
	"github.com/matzehuels/assetgraph/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateVisualization lays out the network's graph with the layout
// parameters in opts and builds the 3-D payload. Metrics are not attached.
func GenerateVisualization(ctx context.Context, nw *network.Network, opts Options) (graph.Visualization, error) {
	opts.SetLayoutDefaults()
	g := nw.Graph()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.Len())
	start := time.Now()

	pos := layout.Compute(g.AssetIDs(), g.Relationships(), opts.LayoutOptions())
	v, err := export.Visualization(g, pos)

	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	if err != nil {
		return graph.Visualization{}, err
	}

	opts.Logger.Debug("computed layout",
		"nodes", len(v.Nodes),
		"arrows", len(v.Arrows),
		"seed", v.Seed)
	return v, nil
}
