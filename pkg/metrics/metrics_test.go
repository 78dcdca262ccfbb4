package metrics

import (
	"math"
	"testing"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

func buildGraph(t *testing.T, ids []string, rels []relgraph.Relationship) *relgraph.Graph {
	t.Helper()
	g := relgraph.New()
	for _, id := range ids {
		a, err := asset.NewEquity(id, id, asset.EquityAttrs{})
		if err != nil {
			t.Fatalf("NewEquity: %v", err)
		}
		if err := g.AddAsset(a); err != nil {
			t.Fatalf("AddAsset: %v", err)
		}
	}
	for _, r := range rels {
		if _, err := g.AddRelationship(r); err != nil {
			t.Fatalf("AddRelationship(%v): %v", r, err)
		}
	}
	return g
}

func TestCalculateEmptyGraph(t *testing.T) {
	_, err := Calculate(relgraph.New())
	if !errors.Is(err, errors.ErrCodeEmptyGraph) {
		t.Errorf("Calculate error = %v, want EMPTY_GRAPH", err)
	}
	if _, err := Calculate(nil); !errors.Is(err, errors.ErrCodeEmptyGraph) {
		t.Errorf("Calculate(nil) error = %v, want EMPTY_GRAPH", err)
	}
}

func TestCalculateSingleEdge(t *testing.T) {
	g := buildGraph(t, []string{"E1", "C1", "Cu1"}, []relgraph.Relationship{
		{Source: "C1", Target: "E1", Type: relgraph.TypeCommodityExposure, Strength: 0.9},
	})
	r, err := Calculate(g)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if r.AssetCount != 3 || r.RelationshipCount != 1 {
		t.Errorf("counts = (%d, %d), want (3, 1)", r.AssetCount, r.RelationshipCount)
	}
	if math.Abs(r.Density-1.0/3.0) > 1e-12 {
		t.Errorf("Density = %v, want 1/3", r.Density)
	}
	if r.TypeDistribution[relgraph.TypeCommodityExposure] != 1 {
		t.Errorf("TypeDistribution = %v", r.TypeDistribution)
	}
	if d, _ := r.Degree("Cu1"); d != 0 {
		t.Errorf("Degree(Cu1) = %d, want 0", d)
	}
}

func TestCalculateCountsBidirectionalOnce(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, []relgraph.Relationship{
		{Source: "A", Target: "B", Type: relgraph.TypeSameSector, Strength: 0.8, Bidirectional: true},
		{Source: "A", Target: "C", Type: relgraph.TypeCurrencyRisk, Strength: 0.4},
	})
	r, err := Calculate(g)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if g.RelationshipCount() != 3 {
		t.Fatalf("stored edges = %d, want 3", g.RelationshipCount())
	}
	if r.RelationshipCount != 2 {
		t.Errorf("RelationshipCount = %d, want 2", r.RelationshipCount)
	}
	if r.BidirectionalCount != 1 || r.DirectionalCount != 1 {
		t.Errorf("(bidirectional, directional) = (%d, %d), want (1, 1)", r.BidirectionalCount, r.DirectionalCount)
	}
	if math.Abs(r.AverageStrength-0.6) > 1e-12 {
		t.Errorf("AverageStrength = %v, want 0.6", r.AverageStrength)
	}

	wantDegrees := []Degree{{"A", 2}, {"B", 1}, {"C", 1}}
	for i, want := range wantDegrees {
		if r.Degrees[i] != want {
			t.Errorf("Degrees[%d] = %v, want %v", i, r.Degrees[i], want)
		}
	}
	if r.MaxDegree != 2 || len(r.MostConnected) != 1 || r.MostConnected[0] != "A" {
		t.Errorf("MostConnected = %v (max %d), want [A] (max 2)", r.MostConnected, r.MaxDegree)
	}
	if math.Abs(r.Density-2.0/3.0) > 1e-12 {
		t.Errorf("Density = %v, want 2/3", r.Density)
	}
}

func TestCalculateReflectsMutations(t *testing.T) {
	g := buildGraph(t, []string{"A", "B"}, nil)
	before, err := Calculate(g)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if before.RelationshipCount != 0 || before.AverageStrength != 0 || len(before.MostConnected) != 0 {
		t.Errorf("report before edges = %+v", before)
	}

	if _, err := g.AddRelationship(relgraph.Relationship{Source: "A", Target: "B", Type: relgraph.TypeSameSector, Strength: 0.5}); err != nil {
		t.Fatal(err)
	}
	after, err := Calculate(g)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if after.RelationshipCount != 1 || after.Density != 1 {
		t.Errorf("report after edge = %+v", after)
	}
}

func TestDensity(t *testing.T) {
	tests := []struct {
		edges, n int
		want     float64
	}{
		{0, 0, 0},
		{0, 1, 0},
		{1, 2, 1},
		{3, 3, 1},
		{6, 4, 1},
		{3, 4, 0.5},
	}
	for _, tt := range tests {
		if got := Density(tt.edges, tt.n); got != tt.want {
			t.Errorf("Density(%d, %d) = %v, want %v", tt.edges, tt.n, got, tt.want)
		}
	}
}
