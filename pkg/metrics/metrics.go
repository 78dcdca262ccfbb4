// Package metrics computes graph-wide statistics from a relationship store.
//
// Every figure is derived from the store at call time; nothing is cached, so
// a [Report] describes exactly the snapshot it was computed from. Bidirectional
// relationships are stored as two directed edges but counted once here.
package metrics

import (
	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// Degree is the number of distinct relationships touching an asset.
type Degree struct {
	ID     string `json:"id"`
	Degree int    `json:"degree"`
}

// Report holds the aggregate statistics of a graph.
type Report struct {
	AssetCount         int                   `json:"asset_count"`
	RelationshipCount  int                   `json:"relationship_count"`
	DirectionalCount   int                   `json:"directional_count"`
	BidirectionalCount int                   `json:"bidirectional_count"`
	EventCount         int                   `json:"event_count"`
	Degrees            []Degree              `json:"degrees"`
	AverageStrength    float64               `json:"average_strength"`
	TypeDistribution   map[relgraph.Type]int `json:"type_distribution"`
	ClassDistribution  map[asset.Class]int   `json:"class_distribution"`
	Density            float64               `json:"density"`
	MaxDegree          int                   `json:"max_degree"`
	MostConnected      []string              `json:"most_connected"`
}

// Degree returns the degree of the asset, or false if it is not in the report.
func (r Report) Degree(id string) (int, bool) {
	for _, d := range r.Degrees {
		if d.ID == id {
			return d.Degree, true
		}
	}
	return 0, false
}

// Calculate computes the report for g. It fails with ErrCodeEmptyGraph when
// the graph has no assets.
//
// Density is unique relationships divided by N(N-1)/2, the edge count of a
// complete undirected simple graph. Several relationship types may link the
// same pair, so density can exceed 1 on richly connected graphs.
func Calculate(g *relgraph.Graph) (Report, error) {
	if g == nil || g.Len() == 0 {
		return Report{}, errors.New(errors.ErrCodeEmptyGraph, "cannot compute metrics of an empty graph")
	}

	assets := g.Assets()
	rels := g.UniqueRelationships()

	r := Report{
		AssetCount:        len(assets),
		RelationshipCount: len(rels),
		EventCount:        len(g.Events()),
		Degrees:           make([]Degree, len(assets)),
		TypeDistribution:  make(map[relgraph.Type]int),
		ClassDistribution: make(map[asset.Class]int),
	}

	degree := make(map[string]int, len(assets))
	total := 0.0
	for _, rel := range rels {
		degree[rel.Source]++
		degree[rel.Target]++
		total += rel.Strength
		r.TypeDistribution[rel.Type]++
		if rel.Bidirectional {
			r.BidirectionalCount++
		} else {
			r.DirectionalCount++
		}
	}
	if len(rels) > 0 {
		r.AverageStrength = total / float64(len(rels))
	}

	for i, a := range assets {
		d := degree[a.ID()]
		r.Degrees[i] = Degree{ID: a.ID(), Degree: d}
		r.ClassDistribution[a.Class()]++
		switch {
		case d > r.MaxDegree:
			r.MaxDegree = d
			r.MostConnected = []string{a.ID()}
		case d == r.MaxDegree && d > 0:
			r.MostConnected = append(r.MostConnected, a.ID())
		}
	}
	if r.MostConnected == nil {
		r.MostConnected = []string{}
	}

	r.Density = Density(len(rels), len(assets))
	return r, nil
}

// Density returns edges / (n(n-1)/2), or 0 when n < 2.
func Density(edges, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(edges) / (float64(n) * float64(n-1) / 2)
}
