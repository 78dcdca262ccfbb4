// Package nodelink renders asset relationship graphs as node-link diagrams.
//
// # Overview
//
// This package produces Graphviz diagrams from a [graph.Visualization]. It is
// the flat counterpart of the 3-D payload: node placement is left to
// Graphviz, while colors, sizes and edge weights come from the payload.
//
// # Usage
//
// Convert a visualization to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(v, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the class, sector and display
//     attributes of the asset.
//
// # DOT Format
//
// The generated DOT uses left-to-right layout (rankdir=LR) with rounded
// filled boxes. Directional relationships are drawn source → target;
// bidirectional relationships are drawn once with dir=none. Edge pen width
// grows with relationship strength.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no external Graphviz installation is needed.
//
// [graph.Visualization]: github.com/matzehuels/assetgraph/pkg/graph.Visualization
package nodelink
