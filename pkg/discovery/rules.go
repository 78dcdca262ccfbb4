package discovery

import (
	"math"
	"strings"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// RuleFunc evaluates one rule for an unordered pair. a precedes b in
// insertion order. It returns the inferred relationship, or false when the
// rule does not fire.
type RuleFunc func(a, b asset.Asset, ctx *Context) (relgraph.Relationship, bool)

// Rule is a named discovery rule.
type Rule struct {
	Name string
	Type relgraph.Type
	Eval RuleFunc
}

// Context carries the data shared by every rule during one discovery pass.
type Context struct {
	Params Params

	eventsByAsset map[string][]asset.Event
}

// NewContext indexes events by affected asset.
func NewContext(params Params, events []asset.Event) *Context {
	idx := make(map[string][]asset.Event)
	for _, e := range events {
		for _, id := range e.AffectedAssetIDs() {
			idx[id] = append(idx[id], e)
		}
	}
	return &Context{Params: params, eventsByAsset: idx}
}

// EventsAffecting returns the events that name the asset.
func (c *Context) EventsAffecting(id string) []asset.Event {
	return c.eventsByAsset[id]
}

// DefaultRules returns the built-in rule set in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "sector affinity", Type: relgraph.TypeSameSector, Eval: SectorAffinity},
		{Name: "corporate bond link", Type: relgraph.TypeCorporateBondToEquity, Eval: CorporateBondLink},
		{Name: "commodity exposure", Type: relgraph.TypeCommodityExposure, Eval: CommodityExposure},
		{Name: "currency risk", Type: relgraph.TypeCurrencyRisk, Eval: CurrencyRisk},
		{Name: "income comparison", Type: relgraph.TypeIncomeComparison, Eval: IncomeComparison},
		{Name: "event impact", Type: relgraph.TypeEventImpact, Eval: EventImpact},
	}
}

// pick returns the pair reordered so that x has class cx and y has class cy.
func pick(a, b asset.Asset, cx, cy asset.Class) (x, y asset.Asset, ok bool) {
	switch {
	case a.Class() == cx && b.Class() == cy:
		return a, b, true
	case b.Class() == cx && a.Class() == cy:
		return b, a, true
	}
	return asset.Asset{}, asset.Asset{}, false
}

// SectorAffinity links two assets that share a non-empty sector.
func SectorAffinity(a, b asset.Asset, ctx *Context) (relgraph.Relationship, bool) {
	sa, sb := normalize(a.Sector()), normalize(b.Sector())
	if sa == "" || sa != sb {
		return relgraph.Relationship{}, false
	}
	return relgraph.Relationship{
		Source:        a.ID(),
		Target:        b.ID(),
		Type:          relgraph.TypeSameSector,
		Strength:      ctx.Params.SameSectorStrength,
		Bidirectional: true,
	}, true
}

// CorporateBondLink points a bond at the equity of its issuer. The issuer
// must equal the equity's name or ticker, ignoring case.
func CorporateBondLink(a, b asset.Asset, ctx *Context) (relgraph.Relationship, bool) {
	bond, equity, ok := pick(a, b, asset.ClassBond, asset.ClassEquity)
	if !ok {
		return relgraph.Relationship{}, false
	}
	attrs, _ := bond.Bond()
	issuer := strings.TrimSpace(attrs.Issuer)
	if issuer == "" {
		return relgraph.Relationship{}, false
	}
	eq, _ := equity.Equity()
	if !strings.EqualFold(issuer, equity.Name()) && !(eq.Ticker != "" && strings.EqualFold(issuer, eq.Ticker)) {
		return relgraph.Relationship{}, false
	}
	return relgraph.Relationship{
		Source:   bond.ID(),
		Target:   equity.ID(),
		Type:     relgraph.TypeCorporateBondToEquity,
		Strength: ctx.Params.CorporateBondStrength,
	}, true
}

// CommodityExposure points a commodity at an equity whose sector is
// sensitive to the commodity's contract type. Strength is the sector weight.
func CommodityExposure(a, b asset.Asset, ctx *Context) (relgraph.Relationship, bool) {
	commodity, equity, ok := pick(a, b, asset.ClassCommodity, asset.ClassEquity)
	if !ok {
		return relgraph.Relationship{}, false
	}
	attrs, _ := commodity.Commodity()
	weight, ok := ctx.Params.sensitivity(equity.Sector(), attrs.ContractType)
	if !ok || weight <= 0 {
		return relgraph.Relationship{}, false
	}
	return relgraph.Relationship{
		Source:   commodity.ID(),
		Target:   equity.ID(),
		Type:     relgraph.TypeCommodityExposure,
		Strength: weight,
	}, true
}

// CurrencyRisk points a currency pair at a non-currency asset denominated in
// a non-base currency that is one of the pair's legs.
func CurrencyRisk(a, b asset.Asset, ctx *Context) (relgraph.Relationship, bool) {
	fx, target := a, b
	if fx.Class() != asset.ClassCurrency {
		fx, target = b, a
	}
	if fx.Class() != asset.ClassCurrency || target.Class() == asset.ClassCurrency {
		return relgraph.Relationship{}, false
	}

	denom := target.Currency()
	if denom == "" || strings.EqualFold(denom, ctx.Params.BaseCurrency) {
		return relgraph.Relationship{}, false
	}
	pair, _ := fx.Pair()
	base, quote, ok := pair.Legs()
	if !ok || (denom != base && denom != quote) {
		return relgraph.Relationship{}, false
	}
	return relgraph.Relationship{
		Source:   fx.ID(),
		Target:   target.ID(),
		Type:     relgraph.TypeCurrencyRisk,
		Strength: ctx.Params.CurrencyRiskStrength,
	}, true
}

// IncomeComparison links an equity paying a dividend and a bond with a known
// yield. Strength is 1 - |dividend yield - bond yield| / IncomeYieldScale,
// and the rule does not fire once the spread reaches the scale.
func IncomeComparison(a, b asset.Asset, ctx *Context) (relgraph.Relationship, bool) {
	equity, bond, ok := pick(a, b, asset.ClassEquity, asset.ClassBond)
	if !ok {
		return relgraph.Relationship{}, false
	}
	eq, _ := equity.Equity()
	bd, _ := bond.Bond()
	if eq.DividendYield == nil || bd.Yield == nil {
		return relgraph.Relationship{}, false
	}

	spread := math.Abs(*eq.DividendYield - *bd.Yield)
	strength := 1 - spread/ctx.Params.IncomeYieldScale
	if math.IsNaN(strength) || strength <= 0 {
		return relgraph.Relationship{}, false
	}
	return relgraph.Relationship{
		Source:        a.ID(),
		Target:        b.ID(),
		Type:          relgraph.TypeIncomeComparison,
		Strength:      min(strength, 1),
		Bidirectional: true,
	}, true
}

// EventImpact links two assets affected by the same regulatory event.
// Strength is the largest |impact_score| among the shared events; events
// with zero impact do not link anything.
func EventImpact(a, b asset.Asset, ctx *Context) (relgraph.Relationship, bool) {
	strength := 0.0
	for _, e := range ctx.EventsAffecting(a.ID()) {
		if e.Affects(b.ID()) {
			strength = max(strength, e.Magnitude())
		}
	}
	if strength <= 0 {
		return relgraph.Relationship{}, false
	}
	return relgraph.Relationship{
		Source:        a.ID(),
		Target:        b.ID(),
		Type:          relgraph.TypeEventImpact,
		Strength:      min(strength, 1),
		Bidirectional: true,
	}, true
}
