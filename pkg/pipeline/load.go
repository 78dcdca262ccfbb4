package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/assetgraph/pkg/cache"
	assetio "github.com/matzehuels/assetgraph/pkg/io"
	"github.com/matzehuels/assetgraph/pkg/network"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// =============================================================================
// Loading
// =============================================================================

// Load reads the portfolio named by opts into a new network. Relationships
// listed in the portfolio are inserted as given; discovery is a separate
// stage.
func Load(ctx context.Context, opts Options) (*network.Network, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := portfolio(opts)
	if err != nil {
		return nil, err
	}

	nw, err := network.New(network.Options{
		Discovery: opts.DiscoveryParams(),
		Layout:    opts.LayoutOptions(),
		Rules:     opts.Rules,
		Logger:    opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	if err := p.Populate(nw.Graph()); err != nil {
		return nil, fmt.Errorf("populate: %w", err)
	}
	return nw, nil
}

func portfolio(opts Options) (assetio.Portfolio, error) {
	if opts.Portfolio != nil {
		return *opts.Portfolio, nil
	}
	return assetio.ImportPortfolio(opts.PortfolioPath)
}

// GraphHash returns the content hash of g: assets, events and unique
// relationships in insertion order. Two graphs with equal hashes produce
// equal visualizations for equal layout options.
func GraphHash(g *relgraph.Graph) (string, error) {
	var buf bytes.Buffer
	if err := assetio.WritePortfolio(assetio.FromGraph(g), &buf, assetio.FormatJSON); err != nil {
		return "", fmt.Errorf("serialize graph for hash: %w", err)
	}
	return cache.Hash(buf.Bytes()), nil
}
