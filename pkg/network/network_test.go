package network

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

func energyNetwork(t *testing.T) *Network {
	t.Helper()
	n, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e1, _ := asset.NewEquity("E1", "Energy Co", asset.EquityAttrs{}, asset.WithSector("Energy"))
	c1, _ := asset.NewCommodity("C1", "Crude", asset.CommodityAttrs{ContractType: "Energy"})
	cu1, _ := asset.NewCurrency("Cu1", "Euro", asset.CurrencyAttrs{Pair: "EUR/USD"})
	for _, a := range []asset.Asset{e1, c1, cu1} {
		if err := n.AddAsset(a); err != nil {
			t.Fatalf("AddAsset: %v", err)
		}
	}
	return n
}

func TestNetworkEndToEnd(t *testing.T) {
	n := energyNetwork(t)
	if _, err := n.BuildRelationships(); err != nil {
		t.Fatalf("BuildRelationships: %v", err)
	}

	m, err := n.CalculateMetrics()
	if err != nil {
		t.Fatalf("CalculateMetrics: %v", err)
	}
	if m.RelationshipCount != 1 || m.TypeDistribution[relgraph.TypeCommodityExposure] != 1 {
		t.Errorf("metrics = %+v, want one commodity_exposure edge", m)
	}
	if math.Abs(m.Density-1.0/3.0) > 1e-12 {
		t.Errorf("Density = %v, want 1/3", m.Density)
	}

	v, err := n.Visualization()
	if err != nil {
		t.Fatalf("Visualization: %v", err)
	}
	if len(v.Nodes) != 3 || len(v.Arrows) != 1 || v.Arrows[0].Source != "C1" || v.Arrows[0].Target != "E1" {
		t.Errorf("visualization = %+v", v)
	}

	again, err := n.Visualization()
	if err != nil {
		t.Fatal(err)
	}
	for i := range v.Nodes {
		if v.Nodes[i].Position != again.Nodes[i].Position {
			t.Errorf("node %s moved between exports", v.Nodes[i].ID)
		}
	}
}

func TestNetworkRebuildIdempotent(t *testing.T) {
	n := energyNetwork(t)
	if _, err := n.BuildRelationships(); err != nil {
		t.Fatal(err)
	}
	before := n.Graph().RelationshipCount()
	if _, err := n.BuildRelationships(); err != nil {
		t.Fatal(err)
	}
	if after := n.Graph().RelationshipCount(); after != before {
		t.Errorf("RelationshipCount = %d after rebuild, want %d", after, before)
	}
}

func TestNetworkErrors(t *testing.T) {
	n := energyNetwork(t)
	dup, _ := asset.NewEquity("E1", "Again", asset.EquityAttrs{})
	if err := n.AddAsset(dup); !errors.Is(err, errors.ErrCodeDuplicateAsset) {
		t.Errorf("AddAsset duplicate = %v, want DUPLICATE_ASSET", err)
	}
	_, err := n.AddRelationship(relgraph.Relationship{Source: "E1", Target: "nope", Type: relgraph.TypeSameSector, Strength: 0.5})
	if !errors.Is(err, errors.ErrCodeUnknownAsset) {
		t.Errorf("AddRelationship unknown = %v, want UNKNOWN_ASSET", err)
	}

	empty, _ := New(DefaultOptions())
	if _, err := empty.CalculateMetrics(); !errors.Is(err, errors.ErrCodeEmptyGraph) {
		t.Errorf("CalculateMetrics on empty = %v, want EMPTY_GRAPH", err)
	}
}

func TestNewInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.Layout.Iterations = -1
	if _, err := New(opts); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("New = %v, want INVALID_CONFIG", err)
	}
	opts = DefaultOptions()
	opts.Discovery.SameSectorStrength = 2
	if _, err := New(opts); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("New = %v, want INVALID_CONFIG", err)
	}
}

func TestLazyFirstCallerWins(t *testing.T) {
	var builds atomic.Int32
	l := NewLazy(func() (*Network, error) {
		builds.Add(1)
		return New(DefaultOptions())
	})

	var wg sync.WaitGroup
	results := make([]*Network, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			n, err := l.Get()
			if err != nil {
				t.Errorf("Get: %v", err)
			}
			results[i] = n
		}(i)
	}
	wg.Wait()

	if builds.Load() != 1 {
		t.Errorf("build called %d times, want 1", builds.Load())
	}
	for i, n := range results {
		if n != results[0] {
			t.Errorf("results[%d] is a different instance", i)
		}
	}
}

func TestLazyRetriesFailedBuild(t *testing.T) {
	calls := 0
	l := NewLazy(func() (*Network, error) {
		calls++
		if calls == 1 {
			return nil, fmt.Errorf("transient")
		}
		return New(DefaultOptions())
	})
	if _, err := l.Get(); err == nil {
		t.Fatal("first Get should fail")
	}
	n, err := l.Get()
	if err != nil || n == nil {
		t.Fatalf("second Get = %v, %v", n, err)
	}
	l.Reset()
	if again, _ := l.Get(); again == n {
		t.Error("Reset should force a rebuild")
	}
}
