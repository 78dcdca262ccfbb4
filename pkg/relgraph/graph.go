package relgraph

import (
	"slices"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/errors"
)

// Graph is the relationship store. The zero value is not usable; use New.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	assets   map[string]asset.Asset
	order    []string                  // asset ids in insertion order
	outgoing map[string][]Relationship // asset id -> outgoing edges
	edges    []Relationship            // all stored edges in insertion order
	keys     map[Key]struct{}

	events     map[string]asset.Event
	eventOrder []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		assets:   make(map[string]asset.Asset),
		outgoing: make(map[string][]Relationship),
		keys:     make(map[Key]struct{}),
		events:   make(map[string]asset.Event),
	}
}

// AddAsset inserts an asset and initializes its empty adjacency entry.
// Returns ErrCodeDuplicateAsset if the id is already present; the graph is
// left unchanged in that case.
func (g *Graph) AddAsset(a asset.Asset) error {
	if a.IsZero() {
		return errors.New(errors.ErrCodeInvalidInput, "asset has no id")
	}
	if _, exists := g.assets[a.ID()]; exists {
		return errors.New(errors.ErrCodeDuplicateAsset, "asset %q already exists", a.ID())
	}
	g.assets[a.ID()] = a
	g.order = append(g.order, a.ID())
	g.outgoing[a.ID()] = nil
	return nil
}

// RemoveAsset deletes an asset together with every relationship touching it.
// Returns ErrCodeUnknownAsset if the asset does not exist. Events keep
// referring to the id; discovery ignores ids that are not in the graph.
func (g *Graph) RemoveAsset(id string) error {
	if _, ok := g.assets[id]; !ok {
		return errors.New(errors.ErrCodeUnknownAsset, "asset %q not found", id)
	}
	delete(g.assets, id)
	delete(g.outgoing, id)
	g.order = slices.DeleteFunc(g.order, func(s string) bool { return s == id })

	g.edges = slices.DeleteFunc(g.edges, func(r Relationship) bool {
		if r.Touches(id) {
			delete(g.keys, r.Key())
			return true
		}
		return false
	})
	for src, out := range g.outgoing {
		g.outgoing[src] = slices.DeleteFunc(out, func(r Relationship) bool { return r.Target == id })
	}
	return nil
}

// AddRelationship inserts r after validating it.
//
// Returns ErrCodeUnknownAsset if either endpoint is absent,
// ErrCodeInvalidStrength if the strength lies outside [0, 1], and
// ErrCodeInvalidInput for self-loops. A triple that
// already exists is not inserted again. For bidirectional relationships the
// mirrored edge is ensured as well, unless a directional edge of the same type
// already links the pair in either direction; then nothing is inserted.
//
// The returned bool reports whether at least one edge was inserted.
func (g *Graph) AddRelationship(r Relationship) (bool, error) {
	if _, ok := g.assets[r.Source]; !ok {
		return false, errors.New(errors.ErrCodeUnknownAsset, "unknown source asset %q", r.Source)
	}
	if _, ok := g.assets[r.Target]; !ok {
		return false, errors.New(errors.ErrCodeUnknownAsset, "unknown target asset %q", r.Target)
	}
	if r.Source == r.Target {
		return false, errors.New(errors.ErrCodeInvalidInput, "relationship %s links asset %q to itself", r.Type, r.Source)
	}
	if err := errors.ValidateStrength(r.Strength); err != nil {
		return false, err
	}

	if r.Bidirectional {
		if existing, ok := g.find(r.Reverse().Key()); ok && !existing.Bidirectional {
			return false, nil
		}
	}

	added := g.insert(r)
	if !r.Bidirectional {
		return added, nil
	}
	// An existing directional triple keeps its semantics; only mirror edges
	// whose forward half is bidirectional.
	if existing, ok := g.find(r.Key()); ok && !existing.Bidirectional {
		return added, nil
	}
	if g.insert(r.Reverse()) {
		added = true
	}
	return added, nil
}

func (g *Graph) insert(r Relationship) bool {
	k := r.Key()
	if _, exists := g.keys[k]; exists {
		return false
	}
	g.keys[k] = struct{}{}
	g.edges = append(g.edges, r)
	g.outgoing[r.Source] = append(g.outgoing[r.Source], r)
	return true
}

func (g *Graph) find(k Key) (Relationship, bool) {
	for _, r := range g.outgoing[k.Source] {
		if r.Target == k.Target && r.Type == k.Type {
			return r, true
		}
	}
	return Relationship{}, false
}

// HasRelationship reports whether the directed triple is stored.
func (g *Graph) HasRelationship(source, target string, typ Type) bool {
	_, ok := g.keys[Key{Source: source, Target: target, Type: typ}]
	return ok
}

// RelationshipsFor returns a copy of the outgoing relationships of an asset
// in insertion order. Returns ErrCodeUnknownAsset for a missing id.
func (g *Graph) RelationshipsFor(id string) ([]Relationship, error) {
	out, ok := g.outgoing[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownAsset, "asset %q not found", id)
	}
	return slices.Clone(out), nil
}

// Asset returns the asset with the given id.
func (g *Graph) Asset(id string) (asset.Asset, bool) {
	a, ok := g.assets[id]
	return a, ok
}

// Assets returns all assets in insertion order.
func (g *Graph) Assets() []asset.Asset {
	out := make([]asset.Asset, len(g.order))
	for i, id := range g.order {
		out[i] = g.assets[id]
	}
	return out
}

// AssetIDs returns all asset ids in insertion order.
func (g *Graph) AssetIDs() []string { return slices.Clone(g.order) }

// Relationships returns every stored edge in insertion order. Bidirectional
// relationships appear twice, once per direction.
func (g *Graph) Relationships() []Relationship { return slices.Clone(g.edges) }

// UniqueRelationships returns stored edges in insertion order with the mirror
// half of every bidirectional relationship removed.
func (g *Graph) UniqueRelationships() []Relationship {
	seen := make(map[Key]struct{}, len(g.edges))
	out := make([]Relationship, 0, len(g.edges))
	for _, r := range g.edges {
		k := r.UndirectedKey()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Len returns the number of assets.
func (g *Graph) Len() int { return len(g.order) }

// RelationshipCount returns the number of stored directed edges.
func (g *Graph) RelationshipCount() int { return len(g.edges) }

// AddEvent attaches a regulatory event. Returns ErrCodeDuplicateEvent if an
// event with the same id is already attached. Affected ids need not exist.
func (g *Graph) AddEvent(e asset.Event) error {
	if e.ID() == "" {
		return errors.New(errors.ErrCodeInvalidInput, "event has no id")
	}
	if _, exists := g.events[e.ID()]; exists {
		return errors.New(errors.ErrCodeDuplicateEvent, "event %q already exists", e.ID())
	}
	g.events[e.ID()] = e
	g.eventOrder = append(g.eventOrder, e.ID())
	return nil
}

// Event returns the event with the given id.
func (g *Graph) Event(id string) (asset.Event, bool) {
	e, ok := g.events[id]
	return e, ok
}

// Events returns all attached events in insertion order.
func (g *Graph) Events() []asset.Event {
	out := make([]asset.Event, len(g.eventOrder))
	for i, id := range g.eventOrder {
		out[i] = g.events[id]
	}
	return out
}

// Clone returns an independent copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, id := range g.order {
		c.assets[id] = g.assets[id]
		c.outgoing[id] = slices.Clone(g.outgoing[id])
	}
	c.order = slices.Clone(g.order)
	c.edges = slices.Clone(g.edges)
	for k := range g.keys {
		c.keys[k] = struct{}{}
	}
	for _, id := range g.eventOrder {
		c.events[id] = g.events[id]
	}
	c.eventOrder = slices.Clone(g.eventOrder)
	return c
}
