// Package relgraph provides the relationship store: the set of assets of a
// market network and the typed, weighted edges between them.
//
// # Overview
//
// A [Graph] owns a mapping from asset id to [asset.Asset] and an adjacency
// list of outgoing [Relationship] records per asset. Both are private to the
// graph; every read returns a copy.
//
//	g := relgraph.New()
//	g.AddAsset(xom)
//	g.AddAsset(crude)
//	g.AddRelationship(relgraph.Relationship{
//	    Source:   "CL",
//	    Target:   "XOM",
//	    Type:     relgraph.TypeCommodityExposure,
//	    Strength: 0.9,
//	})
//
// # Edge Semantics
//
// A relationship is unique per (source, target, type) triple. Re-adding an
// existing triple is a no-op, which is what makes discovery idempotent.
//
// Bidirectional relationships are stored symmetrically: adding A→B also
// ensures B→A with the same type and strength. Directional relationships are
// stored once. Aggregations that must count a bidirectional edge once use
// [Relationship.UndirectedKey] or [Graph.UniqueRelationships].
//
// # Ordering
//
// [Graph.Assets] and [Graph.Relationships] return insertion-ordered
// snapshots, so downstream processing (discovery, layout, export) is
// deterministic for a given sequence of insertions.
//
// # Concurrency
//
// Graph performs no locking. Mutations must be serialized by the caller and
// must not overlap with reads; concurrent reads are safe.
package relgraph
