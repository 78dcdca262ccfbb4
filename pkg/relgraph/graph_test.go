package relgraph

import (
	"testing"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/errors"
)

func mustEquity(t *testing.T, id string) asset.Asset {
	t.Helper()
	a, err := asset.NewEquity(id, id+" Inc", asset.EquityAttrs{Ticker: id})
	if err != nil {
		t.Fatalf("NewEquity(%s): %v", id, err)
	}
	return a
}

func newGraph(t *testing.T, ids ...string) *Graph {
	t.Helper()
	g := New()
	for _, id := range ids {
		if err := g.AddAsset(mustEquity(t, id)); err != nil {
			t.Fatalf("AddAsset(%s): %v", id, err)
		}
	}
	return g
}

func TestAddAssetDuplicate(t *testing.T) {
	g := newGraph(t, "A", "B")
	if _, err := g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeSameSector, Strength: 0.8}); err != nil {
		t.Fatal(err)
	}

	dup, _ := asset.NewBond("A", "Other", asset.BondAttrs{})
	err := g.AddAsset(dup)
	if !errors.Is(err, errors.ErrCodeDuplicateAsset) {
		t.Fatalf("err = %v, want %v", err, errors.ErrCodeDuplicateAsset)
	}

	// Existing state is untouched.
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
	a, _ := g.Asset("A")
	if a.Class() != asset.ClassEquity {
		t.Errorf("asset A replaced by duplicate: class = %v", a.Class())
	}
	if g.RelationshipCount() != 1 {
		t.Errorf("RelationshipCount() = %d, want 1", g.RelationshipCount())
	}
}

func TestAddRelationshipErrors(t *testing.T) {
	tests := []struct {
		name string
		rel  Relationship
		code errors.Code
	}{
		{"unknown source", Relationship{Source: "X", Target: "B", Type: TypeSameSector, Strength: 0.5}, errors.ErrCodeUnknownAsset},
		{"unknown target", Relationship{Source: "A", Target: "X", Type: TypeSameSector, Strength: 0.5}, errors.ErrCodeUnknownAsset},
		{"negative strength", Relationship{Source: "A", Target: "B", Type: TypeSameSector, Strength: -0.1}, errors.ErrCodeInvalidStrength},
		{"strength above one", Relationship{Source: "A", Target: "B", Type: TypeSameSector, Strength: 1.1}, errors.ErrCodeInvalidStrength},
		{"self loop", Relationship{Source: "A", Target: "A", Type: TypeSameSector, Strength: 0.5}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t, "A", "B")
			added, err := g.AddRelationship(tt.rel)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %v", err, tt.code)
			}
			if added {
				t.Error("added = true on error")
			}
			if g.RelationshipCount() != 0 {
				t.Errorf("RelationshipCount() = %d, want 0", g.RelationshipCount())
			}
		})
	}
}

func TestBidirectionalSymmetry(t *testing.T) {
	g := newGraph(t, "A", "B", "C")
	g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeSameSector, Strength: 0.8, Bidirectional: true})
	g.AddRelationship(Relationship{Source: "C", Target: "A", Type: TypeIncomeComparison, Strength: 0.4, Bidirectional: true})
	g.AddRelationship(Relationship{Source: "B", Target: "C", Type: TypeCommodityExposure, Strength: 0.9})

	for _, r := range g.Relationships() {
		if !r.Bidirectional {
			continue
		}
		back, err := g.RelationshipsFor(r.Target)
		if err != nil {
			t.Fatal(err)
		}
		found := false
		for _, b := range back {
			if b.Target == r.Source && b.Type == r.Type && b.Strength == r.Strength && b.Bidirectional {
				found = true
			}
		}
		if !found {
			t.Errorf("missing mirror of %s", r)
		}
	}

	out, _ := g.RelationshipsFor("C")
	for _, r := range out {
		if r.Type == TypeCommodityExposure {
			t.Errorf("directional edge B->C mirrored into C: %s", r)
		}
	}
}

func TestBidirectionalOverDirectional(t *testing.T) {
	tests := []struct {
		name     string
		existing Relationship
	}{
		{"reverse directional", Relationship{Source: "B", Target: "A", Type: TypeEventImpact, Strength: 0.3}},
		{"forward directional", Relationship{Source: "A", Target: "B", Type: TypeEventImpact, Strength: 0.3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGraph(t, "A", "B")
			if _, err := g.AddRelationship(tt.existing); err != nil {
				t.Fatal(err)
			}
			added, err := g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeEventImpact, Strength: 0.8, Bidirectional: true})
			if err != nil {
				t.Fatalf("AddRelationship: %v", err)
			}
			if added {
				t.Error("added = true, want false")
			}
			if g.RelationshipCount() != 1 {
				t.Errorf("RelationshipCount() = %d, want 1", g.RelationshipCount())
			}
			for _, r := range g.Relationships() {
				if r.Bidirectional || r.Strength != 0.3 {
					t.Errorf("stored %s, want only the directional edge", r)
				}
			}
		})
	}
}

func TestAddRelationshipDeduplicates(t *testing.T) {
	g := newGraph(t, "A", "B")
	r := Relationship{Source: "A", Target: "B", Type: TypeSameSector, Strength: 0.8, Bidirectional: true}

	added, err := g.AddRelationship(r)
	if err != nil || !added {
		t.Fatalf("first insert: added=%v err=%v", added, err)
	}
	added, err = g.AddRelationship(r)
	if err != nil || added {
		t.Fatalf("second insert: added=%v err=%v", added, err)
	}
	added, _ = g.AddRelationship(r.Reverse())
	if added {
		t.Error("mirror insert should be a no-op")
	}

	if g.RelationshipCount() != 2 {
		t.Errorf("RelationshipCount() = %d, want 2", g.RelationshipCount())
	}
	if got := len(g.UniqueRelationships()); got != 1 {
		t.Errorf("UniqueRelationships() = %d, want 1", got)
	}

	// A different type between the same pair is a separate relationship.
	added, _ = g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeEventImpact, Strength: 0.3, Bidirectional: true})
	if !added {
		t.Error("different type should be inserted")
	}
	if got := len(g.UniqueRelationships()); got != 2 {
		t.Errorf("UniqueRelationships() = %d, want 2", got)
	}
}

func TestRelationshipsForUnknown(t *testing.T) {
	g := newGraph(t, "A")
	if _, err := g.RelationshipsFor("nope"); !errors.Is(err, errors.ErrCodeUnknownAsset) {
		t.Errorf("err = %v, want %v", err, errors.ErrCodeUnknownAsset)
	}
	out, err := g.RelationshipsFor("A")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("new asset should have no relationships, got %d", len(out))
	}
}

func TestRelationshipsForReturnsCopy(t *testing.T) {
	g := newGraph(t, "A", "B")
	g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeCurrencyRisk, Strength: 0.6})

	out, _ := g.RelationshipsFor("A")
	out[0].Strength = 0.1

	again, _ := g.RelationshipsFor("A")
	if again[0].Strength != 0.6 {
		t.Errorf("store mutated through returned slice: strength = %v", again[0].Strength)
	}
}

func TestInsertionOrder(t *testing.T) {
	g := newGraph(t, "C", "A", "B")
	ids := g.AssetIDs()
	want := []string{"C", "A", "B"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("AssetIDs() = %v, want %v", ids, want)
		}
	}

	g.AddRelationship(Relationship{Source: "B", Target: "A", Type: TypeCurrencyRisk, Strength: 0.6})
	g.AddRelationship(Relationship{Source: "C", Target: "A", Type: TypeSameSector, Strength: 0.8, Bidirectional: true})

	rels := g.Relationships()
	if len(rels) != 3 {
		t.Fatalf("Relationships() = %d, want 3", len(rels))
	}
	if rels[0].Source != "B" || rels[1].Source != "C" || rels[2].Source != "A" {
		t.Errorf("unexpected order: %v", rels)
	}
}

func TestRemoveAssetCascades(t *testing.T) {
	g := newGraph(t, "A", "B", "C")
	g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeSameSector, Strength: 0.8, Bidirectional: true})
	g.AddRelationship(Relationship{Source: "C", Target: "B", Type: TypeCurrencyRisk, Strength: 0.6})
	g.AddRelationship(Relationship{Source: "A", Target: "C", Type: TypeEventImpact, Strength: 0.5, Bidirectional: true})

	if err := g.RemoveAsset("B"); err != nil {
		t.Fatalf("RemoveAsset: %v", err)
	}

	for _, r := range g.Relationships() {
		if r.Touches("B") {
			t.Errorf("relationship %s survived removal of B", r)
		}
	}
	if g.RelationshipCount() != 2 {
		t.Errorf("RelationshipCount() = %d, want 2", g.RelationshipCount())
	}
	if g.HasRelationship("A", "B", TypeSameSector) {
		t.Error("key index still holds A->B")
	}

	// The id can be reused after removal.
	if err := g.AddAsset(mustEquity(t, "B")); err != nil {
		t.Errorf("re-adding B: %v", err)
	}
	if err := g.RemoveAsset("missing"); !errors.Is(err, errors.ErrCodeUnknownAsset) {
		t.Errorf("err = %v, want %v", err, errors.ErrCodeUnknownAsset)
	}
}

func TestEvents(t *testing.T) {
	g := newGraph(t, "A", "B")
	ev, _ := asset.NewEvent("E1", asset.EventEarnings, []string{"A", "B"}, 0.5, "")

	if err := g.AddEvent(ev); err != nil {
		t.Fatalf("AddEvent: %v", err)
	}
	if err := g.AddEvent(ev); !errors.Is(err, errors.ErrCodeDuplicateEvent) {
		t.Errorf("err = %v, want %v", err, errors.ErrCodeDuplicateEvent)
	}
	if got := len(g.Events()); got != 1 {
		t.Errorf("Events() = %d, want 1", got)
	}
	if _, ok := g.Event("E1"); !ok {
		t.Error("Event(E1) not found")
	}
}

func TestClone(t *testing.T) {
	g := newGraph(t, "A", "B")
	g.AddRelationship(Relationship{Source: "A", Target: "B", Type: TypeSameSector, Strength: 0.8, Bidirectional: true})

	c := g.Clone()
	c.AddAsset(mustEquity(t, "C"))
	c.AddRelationship(Relationship{Source: "C", Target: "A", Type: TypeCurrencyRisk, Strength: 0.6})

	if g.Len() != 2 || g.RelationshipCount() != 2 {
		t.Errorf("original mutated: %d assets, %d edges", g.Len(), g.RelationshipCount())
	}
	if c.Len() != 3 || c.RelationshipCount() != 3 {
		t.Errorf("clone: %d assets, %d edges", c.Len(), c.RelationshipCount())
	}
}

func TestUndirectedKey(t *testing.T) {
	ab := Relationship{Source: "A", Target: "B", Type: TypeSameSector, Bidirectional: true}
	if ab.UndirectedKey() != ab.Reverse().UndirectedKey() {
		t.Error("bidirectional halves should share an undirected key")
	}
	dir := Relationship{Source: "B", Target: "A", Type: TypeCurrencyRisk}
	if dir.UndirectedKey() != dir.Key() {
		t.Error("directional undirected key should equal Key()")
	}
}
