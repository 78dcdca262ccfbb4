package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/assetgraph/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes class, sector and attributes in node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// Pen widths for the weakest and strongest relationships.
const (
	minPenWidth = 1.0
	maxPenWidth = 4.0
)

// ToDOT converts a visualization to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Nodes and edges are emitted in payload order, so equal visualizations
// produce byte-identical DOT.
func ToDOT(v graph.Visualization, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\", fontsize=10];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range v.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtNodeAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range v.Edges {
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(fmtEdgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	label := n.DisplayLabel()
	if !detailed {
		return label
	}

	parts := []string{"class: " + n.Class}
	if n.Sector != "" {
		parts = append(parts, "sector: "+n.Sector)
	}
	for _, k := range slices.Sorted(maps.Keys(n.Attributes)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Attributes[k]))
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtNodeAttrs(n graph.Node, label string) []string {
	color := n.Color
	if color == "" {
		color = graph.ClassColor(n.Class)
	}
	return []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", color),
		fmt.Sprintf("tooltip=%q", n.ID),
	}
}

func fmtEdgeAttrs(e graph.Edge) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", e.Type),
		"penwidth=" + strconv.FormatFloat(penWidth(e.Strength), 'f', 2, 64),
	}
	if e.Bidirectional {
		attrs = append(attrs, "dir=none", "style=dashed")
	}
	return attrs
}

func penWidth(strength float64) float64 {
	s := min(max(strength, 0), 1)
	return minPenWidth + (maxPenWidth-minPenWidth)*s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox with
// matching pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
