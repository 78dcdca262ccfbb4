// Package layout places the assets of a relationship graph in 3-D space.
//
// [Compute] is a force-directed (Fruchterman–Reingold) layout run for a
// fixed number of iterations from a seeded initial placement. It is a pure
// function of the ordered asset ids, the ordered relationships and the
// [Options]: the same inputs always produce the same coordinates, which is
// what lets the visualization pipeline cache its output by content hash.
//
// Relationships pull their endpoints together in proportion to their
// strength; every pair of assets pushes apart. The final positions are
// centered on the origin and scaled so the farthest asset sits on a sphere
// of [Options.Radius].
package layout
