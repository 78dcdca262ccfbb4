package export

import (
	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/graph"
	"github.com/matzehuels/assetgraph/pkg/layout"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// Visualization builds the payload for g using pos. Every asset of g must
// have a position. Arrows are produced by [Arrows], so pos passes the same
// validation as externally supplied coordinates.
func Visualization(g *relgraph.Graph, pos layout.Positions) (graph.Visualization, error) {
	if g == nil {
		return graph.Visualization{}, errors.New(errors.ErrCodeTypeMismatch, "graph is nil")
	}
	ids := pos.IDs
	if ids == nil {
		ids = []string{}
	}
	coords := pos.Coords
	if coords == nil {
		coords = []layout.Vec{}
	}
	arrows, err := Arrows(g, coords, ids)
	if err != nil {
		return graph.Visualization{}, err
	}

	unique := g.UniqueRelationships()
	degree := make(map[string]int, g.Len())
	edges := make([]graph.Edge, len(unique))
	for i, r := range unique {
		degree[r.Source]++
		degree[r.Target]++
		edges[i] = graph.Edge{
			Source:        r.Source,
			Target:        r.Target,
			Type:          string(r.Type),
			Strength:      r.Strength,
			Bidirectional: r.Bidirectional,
		}
	}

	assets := g.Assets()
	nodes := make([]graph.Node, len(assets))
	for i, a := range assets {
		p, ok := pos.Lookup(a.ID())
		if !ok {
			return graph.Visualization{}, errors.New(errors.ErrCodeInvalidInput, "asset %q has no position", a.ID())
		}
		class := string(a.Class())
		nodes[i] = graph.Node{
			ID:         a.ID(),
			Name:       a.Name(),
			Class:      class,
			Sector:     a.Sector(),
			Position:   graph.Vec3(p),
			Color:      graph.ClassColor(class),
			Size:       graph.NodeSize(degree[a.ID()]),
			Degree:     degree[a.ID()],
			Attributes: a.DisplayAttributes(),
		}
	}

	return graph.Visualization{
		Nodes:  nodes,
		Edges:  edges,
		Arrows: arrows,
		Seed:   pos.Seed,
	}, nil
}
