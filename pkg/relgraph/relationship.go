package relgraph

import "fmt"

// Type names the rule that produced a relationship.
type Type string

// Relationship types produced by discovery.
const (
	TypeSameSector            Type = "same_sector"
	TypeCorporateBondToEquity Type = "corporate_bond_to_equity"
	TypeCommodityExposure     Type = "commodity_exposure"
	TypeCurrencyRisk          Type = "currency_risk"
	TypeIncomeComparison      Type = "income_comparison"
	TypeEventImpact           Type = "event_impact"
)

// Types lists the built-in relationship types in display order.
var Types = []Type{
	TypeSameSector,
	TypeCorporateBondToEquity,
	TypeCommodityExposure,
	TypeCurrencyRisk,
	TypeIncomeComparison,
	TypeEventImpact,
}

// Relationship is a typed, weighted edge between two assets.
// Strength is normalized to [0, 1]. A bidirectional relationship is stored in
// both directions; a directional one points from Source to Target only.
type Relationship struct {
	Source        string
	Target        string
	Type          Type
	Strength      float64
	Bidirectional bool
}

// Key identifies a directed (source, target, type) triple.
type Key struct {
	Source string
	Target string
	Type   Type
}

// Key returns the uniqueness key of the relationship.
func (r Relationship) Key() Key {
	return Key{Source: r.Source, Target: r.Target, Type: r.Type}
}

// UndirectedKey returns a key shared by both stored halves of a bidirectional
// relationship. For directional relationships it equals Key.
func (r Relationship) UndirectedKey() Key {
	if r.Bidirectional && r.Target < r.Source {
		return Key{Source: r.Target, Target: r.Source, Type: r.Type}
	}
	return r.Key()
}

// Reverse returns the mirrored relationship.
func (r Relationship) Reverse() Relationship {
	r.Source, r.Target = r.Target, r.Source
	return r
}

// Touches reports whether id is an endpoint.
func (r Relationship) Touches(id string) bool {
	return r.Source == id || r.Target == id
}

// String implements fmt.Stringer.
func (r Relationship) String() string {
	arrow := "->"
	if r.Bidirectional {
		arrow = "<->"
	}
	return fmt.Sprintf("%s %s %s [%s %.2f]", r.Source, arrow, r.Target, r.Type, r.Strength)
}
