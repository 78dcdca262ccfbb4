// Package graph provides the serialization types for 3-D visualizations of
// asset relationship graphs.
//
// This package defines the canonical wire format for assetgraph's
// visualization payloads, used for JSON files, API responses, caching, and
// the DOT renderer.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Visualization], [Node], [Edge], [Arrow]: serialization types (this package)
//   - pkg/relgraph.Graph: internal relationship store
//   - pkg/layout.Positions: internal coordinates
//
// pkg/export converts from the internal types to a [Visualization].
//
// # Format
//
//	{
//	  "nodes":  [{"id": "XOM", "class": "equity", "position": [1.2, -0.4, 3.1], ...}],
//	  "edges":  [{"source": "XOM", "target": "CVX", "type": "same_sector", "strength": 0.8, "bidirectional": true}],
//	  "arrows": [{"source": "CL", "target": "XOM", "type": "commodity_exposure", "start": [...], "end": [...]}],
//	  "seed":   42
//	}
//
// Edges list every relationship once; bidirectional relationships are not
// repeated. Arrows are emitted for directional relationships only.
//
// Common operations:
//
//	v, _ := graph.ReadVisualizationFile("viz.json")    // File → Visualization
//	graph.WriteVisualizationFile(v, "viz.json")        // Visualization → File
//	data, _ := graph.MarshalVisualization(v)           // Visualization → []byte
//	parsed, _ := graph.UnmarshalVisualization(data)    // []byte → Visualization
//
// Decoding validates the payload: node ids must be unique and every edge and
// arrow must reference a known node.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
