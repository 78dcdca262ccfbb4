// Package export turns a laid-out relationship graph into a visualization
// payload.
//
// [Arrows] is the validating entry point used by every caller that hands
// coordinates to the renderer. Its inputs are deliberately loosely typed so
// that positions decoded from JSON, produced by [layout.Compute], or built by
// hand all pass through the same checks. The checks run in a fixed order and
// the first failure is returned:
//
//  1. the graph exposes its relationships, else TYPE_MISMATCH
//  2. positions and asset ids are both present
//  3. positions coerce to a numeric 2-D array
//  4. the array has shape (n, 3)
//  5. there is one asset id per row
//  6. every coordinate is finite
//  7. every asset id is a non-empty string
//
// Steps 2 to 7 fail with INVALID_INPUT and one of the errors.Reason*
// messages. Only then are arrows emitted: one per directional relationship,
// from the source's coordinates to the target's. Bidirectional relationships
// never produce arrows.
//
// [Visualization] assembles nodes, unique edges and arrows into a
// [graph.Visualization].
package export
