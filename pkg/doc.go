// Package pkg provides the core libraries for assetgraph, a relationship
// graph engine for financial assets.
//
// # Overview
//
// assetgraph models a portfolio of equities, bonds, commodities and
// currencies as a directed graph. A fixed rule set discovers links between
// assets (shared sector, issuer debt, commodity exposure, currency risk,
// income comparison, event impact), the graph is summarized into metrics,
// laid out deterministically in 3-D and exported as a validated payload.
//
// # Architecture
//
// The typical data flow:
//
//	Portfolio file (TOML/JSON)
//	         ↓
//	    [io] package (decode assets, events, relationships)
//	         ↓
//	    [relgraph] package (relationship store)
//	         ↓
//	    [discovery] package (rule evaluation over asset pairs)
//	         ↓
//	    [metrics] + [layout] packages (statistics, 3-D positions)
//	         ↓
//	    [export] package (validated [graph.Visualization])
//	         ↓
//	    JSON/DOT/SVG output
//
// # Quick Start
//
//	nw, _ := network.New(network.DefaultOptions())
//	eq, _ := asset.NewEquity("XOM", "Exxon", asset.EquityAttrs{Ticker: "XOM"}, asset.WithSector("Energy"))
//	oil, _ := asset.NewCommodity("CL", "Crude Oil", asset.CommodityAttrs{ContractType: "crude_oil"})
//	nw.AddAsset(eq)
//	nw.AddAsset(oil)
//
//	nw.BuildRelationships()              // CL → XOM commodity_exposure
//	report, _ := nw.CalculateMetrics()   // counts, degrees, density
//	v, _ := nw.Visualization()           // positioned nodes, edges, arrows
//
// # Main Packages
//
// ## Domain
//
// [asset] - Immutable assets with class-specific attributes, and regulatory
// events.
//
// [relgraph] - The relationship store. Keys are (source, target, type);
// bidirectional relationships are stored as two mirrored edges.
//
// [discovery] - Pairwise rule engine. Rules are plain functions and can be
// extended or replaced.
//
// [metrics] - Aggregate statistics over a graph.
//
// [layout] - Seeded force-directed 3-D layout.
//
// [export] - Strict conversion from positions to the visualization payload.
//
// [network] - Facade tying the above together, plus a lazily built
// process-wide instance.
//
// ## Serialization and Rendering
//
// [graph] - Wire types for visualization payloads.
//
// [io] - Portfolio files in TOML and JSON.
//
// [render/nodelink] - DOT and SVG diagrams via Graphviz.
//
// ## Infrastructure
//
// [pipeline] - Load → discover → layout → render, with caching. Used by the
// CLI and the HTTP API.
//
// [cache] - File, Redis and null caches for visualization payloads.
//
// [config] - TOML configuration.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for discovery, pipeline, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test -short ./pkg/...             # Skip Graphviz rendering
//	go test -run Example ./pkg/...       # Examples only
//
// [asset]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/asset
// [relgraph]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/relgraph
// [discovery]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/discovery
// [metrics]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/metrics
// [layout]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/layout
// [export]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/export
// [network]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/network
// [graph]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/graph
// [graph.Visualization]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/graph#Visualization
// [io]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/assetgraph/pkg/observability
package pkg
