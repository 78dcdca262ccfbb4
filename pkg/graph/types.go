package graph

import (
	"math"

	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/metrics"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node colors per asset class.
const (
	ColorEquity    = "#4e79a7"
	ColorBond      = "#59a14f"
	ColorCommodity = "#f28e2b"
	ColorCurrency  = "#e15759"
	ColorUnknown   = "#bab0ac"
)

// Node sizing: BaseNodeSize plus DegreeNodeSize per relationship.
const (
	BaseNodeSize   = 1.0
	DegreeNodeSize = 0.25
)

// ClassColor returns the node color for an asset class name.
func ClassColor(class string) string {
	switch class {
	case "equity":
		return ColorEquity
	case "bond":
		return ColorBond
	case "commodity":
		return ColorCommodity
	case "currency":
		return ColorCurrency
	default:
		return ColorUnknown
	}
}

// NodeSize returns the rendered size of a node with the given degree.
func NodeSize(degree int) float64 {
	return BaseNodeSize + DegreeNodeSize*float64(degree)
}

// =============================================================================
// Visualization - 3-D Payload
// =============================================================================

// Vec3 is a point in 3-D space, encoded as a three-element array.
type Vec3 [3]float64

// IsFinite reports whether every component is finite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Visualization is the canonical serialization format for a laid-out graph.
type Visualization struct {
	Nodes   []Node          `json:"nodes"`
	Edges   []Edge          `json:"edges"`
	Arrows  []Arrow         `json:"arrows"`
	Seed    uint64          `json:"seed"`
	Metrics *metrics.Report `json:"metrics,omitempty"`
}

// Node is a positioned asset.
type Node struct {
	ID         string         `json:"id"`
	Name       string         `json:"name,omitempty"`
	Class      string         `json:"class"`
	Sector     string         `json:"sector,omitempty"`
	Position   Vec3           `json:"position"`
	Color      string         `json:"color"`
	Size       float64        `json:"size"`
	Degree     int            `json:"degree"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// DisplayLabel returns the name if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Edge is a relationship between two nodes. Bidirectional relationships
// appear once.
type Edge struct {
	Source        string  `json:"source"`
	Target        string  `json:"target"`
	Type          string  `json:"type"`
	Strength      float64 `json:"strength"`
	Bidirectional bool    `json:"bidirectional"`
}

// Arrow marks the direction of a directional relationship, from the source
// position to the target position.
type Arrow struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
	Start    Vec3    `json:"start"`
	End      Vec3    `json:"end"`
}

// Direction returns End - Start.
func (a Arrow) Direction() Vec3 {
	return Vec3{a.End[0] - a.Start[0], a.End[1] - a.Start[1], a.End[2] - a.Start[2]}
}

// Length returns the distance between Start and End.
func (a Arrow) Length() float64 {
	d := a.Direction()
	return math.Sqrt(d[0]*d[0] + d[1]*d[1] + d[2]*d[2])
}

// Node returns the node with the given id.
func (v *Visualization) Node(id string) (Node, bool) {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Validate checks referential integrity. It returns ErrCodeInvalidFormat.
func (v *Visualization) Validate() error {
	ids := make(map[string]struct{}, len(v.Nodes))
	for i, n := range v.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidFormat, "node %d has no id", i)
		}
		if _, dup := ids[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate node %q", n.ID)
		}
		if !n.Position.IsFinite() {
			return errors.New(errors.ErrCodeInvalidFormat, "node %q has a non-finite position", n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	known := func(id string) bool {
		_, ok := ids[id]
		return ok
	}
	for _, e := range v.Edges {
		if !known(e.Source) || !known(e.Target) {
			return errors.New(errors.ErrCodeInvalidFormat, "edge %s→%s references an unknown node", e.Source, e.Target)
		}
	}
	for _, a := range v.Arrows {
		if !known(a.Source) || !known(a.Target) {
			return errors.New(errors.ErrCodeInvalidFormat, "arrow %s→%s references an unknown node", a.Source, a.Target)
		}
	}
	return nil
}
