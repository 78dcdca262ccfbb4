// Package render provides rendered outputs for asset relationship graphs.
//
// # Overview
//
// The 3-D visualization payload in pkg/graph is the primary output of
// assetgraph. This package tree adds flat, shareable renderings of the same
// graph for reports and terminals that cannot show a 3-D scene.
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders a [graph.Visualization] as a Graphviz
// diagram. Nodes are filled with their asset class color and relationships
// appear as arrows, or as plain lines when they are bidirectional.
//
//	dot := nodelink.ToDOT(v, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/assetgraph/pkg/render/nodelink
// [graph.Visualization]: github.com/matzehuels/assetgraph/pkg/graph.Visualization
package render
