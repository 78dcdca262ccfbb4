package asset

import (
	"fmt"
	"strings"

	"github.com/matzehuels/assetgraph/pkg/errors"
)

// Class is the asset class discriminator.
type Class string

// Asset classes.
const (
	ClassEquity    Class = "equity"
	ClassBond      Class = "bond"
	ClassCommodity Class = "commodity"
	ClassCurrency  Class = "currency"
)

// Classes lists every asset class in display order.
var Classes = []Class{ClassEquity, ClassBond, ClassCommodity, ClassCurrency}

// ParseClass converts a case-insensitive class name into a Class.
func ParseClass(s string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ClassEquity, ClassBond, ClassCommodity, ClassCurrency:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown asset class %q", s)
}

// EquityAttrs holds the attributes of a listed share.
// Yields are expressed in percent (3.2 means 3.2%).
type EquityAttrs struct {
	Ticker        string
	PERatio       *float64
	DividendYield *float64
	EPS           *float64
}

// BondAttrs holds the attributes of a fixed-income instrument.
// Yield is expressed in percent, Duration in years.
type BondAttrs struct {
	Yield        *float64
	Duration     *float64
	CreditRating string
	Issuer       string
}

// CommodityAttrs holds the attributes of a commodity contract.
type CommodityAttrs struct {
	ContractType string
	SpotPrice    *float64
}

// CurrencyAttrs holds the attributes of a currency pair such as "EUR/USD".
type CurrencyAttrs struct {
	Pair         string
	ExchangeRate *float64
}

// Legs splits the pair into its base and quote currency codes.
// Both "EUR/USD" and "EURUSD" are accepted; ok is false otherwise.
func (c CurrencyAttrs) Legs() (base, quote string, ok bool) {
	p := strings.ToUpper(strings.TrimSpace(c.Pair))
	if b, q, found := strings.Cut(p, "/"); found {
		b, q = strings.TrimSpace(b), strings.TrimSpace(q)
		return b, q, b != "" && q != ""
	}
	if len(p) == 6 {
		return p[:3], p[3:], true
	}
	return "", "", false
}

// Asset is an immutable node of the relationship graph.
// The zero value is not usable; build assets with NewEquity, NewBond,
// NewCommodity or NewCurrency.
type Asset struct {
	id       string
	name     string
	class    Class
	sector   string
	currency string

	equity    *EquityAttrs
	bond      *BondAttrs
	commodity *CommodityAttrs
	fx        *CurrencyAttrs
}

// Option sets one of the optional common fields during construction.
type Option func(*Asset)

// WithSector sets the industry sector (e.g. "Energy").
func WithSector(sector string) Option {
	return func(a *Asset) { a.sector = strings.TrimSpace(sector) }
}

// WithCurrency sets the ISO code of the currency the asset is denominated in.
func WithCurrency(code string) Option {
	return func(a *Asset) { a.currency = strings.ToUpper(strings.TrimSpace(code)) }
}

// NewEquity creates an equity asset.
func NewEquity(id, name string, attrs EquityAttrs, opts ...Option) (Asset, error) {
	a, err := newAsset(id, name, ClassEquity, opts)
	if err != nil {
		return Asset{}, err
	}
	attrs = cloneEquity(attrs)
	a.equity = &attrs
	return a, nil
}

// NewBond creates a bond asset.
func NewBond(id, name string, attrs BondAttrs, opts ...Option) (Asset, error) {
	a, err := newAsset(id, name, ClassBond, opts)
	if err != nil {
		return Asset{}, err
	}
	attrs = cloneBond(attrs)
	a.bond = &attrs
	return a, nil
}

// NewCommodity creates a commodity asset.
func NewCommodity(id, name string, attrs CommodityAttrs, opts ...Option) (Asset, error) {
	a, err := newAsset(id, name, ClassCommodity, opts)
	if err != nil {
		return Asset{}, err
	}
	attrs.SpotPrice = cloneFloat(attrs.SpotPrice)
	a.commodity = &attrs
	return a, nil
}

// NewCurrency creates a currency-pair asset.
func NewCurrency(id, name string, attrs CurrencyAttrs, opts ...Option) (Asset, error) {
	a, err := newAsset(id, name, ClassCurrency, opts)
	if err != nil {
		return Asset{}, err
	}
	attrs.ExchangeRate = cloneFloat(attrs.ExchangeRate)
	a.fx = &attrs
	return a, nil
}

func newAsset(id, name string, class Class, opts []Option) (Asset, error) {
	if err := errors.ValidateAssetID(id); err != nil {
		return Asset{}, err
	}
	if name == "" {
		return Asset{}, errors.New(errors.ErrCodeInvalidInput, "%s asset %q requires a name", class, id)
	}
	a := Asset{id: id, name: name, class: class}
	for _, opt := range opts {
		opt(&a)
	}
	return a, nil
}

// ID returns the unique identifier.
func (a Asset) ID() string { return a.id }

// Name returns the display name.
func (a Asset) Name() string { return a.name }

// Class returns the variant tag.
func (a Asset) Class() Class { return a.class }

// Sector returns the industry sector, or "" when unset.
func (a Asset) Sector() string { return a.sector }

// Currency returns the denomination currency code, or "" when unset.
func (a Asset) Currency() string { return a.currency }

// Same reports whether a and b have the same identity.
func (a Asset) Same(b Asset) bool { return a.id == b.id }

// IsZero reports whether a was never constructed.
func (a Asset) IsZero() bool { return a.id == "" }

// Equity returns the equity attributes if a is an equity.
func (a Asset) Equity() (EquityAttrs, bool) {
	if a.equity == nil {
		return EquityAttrs{}, false
	}
	return cloneEquity(*a.equity), true
}

// Bond returns the bond attributes if a is a bond.
func (a Asset) Bond() (BondAttrs, bool) {
	if a.bond == nil {
		return BondAttrs{}, false
	}
	return cloneBond(*a.bond), true
}

// Commodity returns the commodity attributes if a is a commodity.
func (a Asset) Commodity() (CommodityAttrs, bool) {
	if a.commodity == nil {
		return CommodityAttrs{}, false
	}
	c := *a.commodity
	c.SpotPrice = cloneFloat(c.SpotPrice)
	return c, true
}

// Pair returns the currency-pair attributes if a is a currency.
func (a Asset) Pair() (CurrencyAttrs, bool) {
	if a.fx == nil {
		return CurrencyAttrs{}, false
	}
	c := *a.fx
	c.ExchangeRate = cloneFloat(c.ExchangeRate)
	return c, true
}

// String implements fmt.Stringer.
func (a Asset) String() string {
	return fmt.Sprintf("%s(%s)", a.class, a.id)
}

// DisplayAttributes flattens the common and class-specific fields that are
// set into a map suitable for rendering. Unset optionals are omitted.
func (a Asset) DisplayAttributes() map[string]any {
	out := map[string]any{"name": a.name}
	if a.sector != "" {
		out["sector"] = a.sector
	}
	if a.currency != "" {
		out["currency"] = a.currency
	}
	put := func(key string, v *float64) {
		if v != nil {
			out[key] = *v
		}
	}
	putStr := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}

	switch {
	case a.equity != nil:
		putStr("ticker", a.equity.Ticker)
		put("pe_ratio", a.equity.PERatio)
		put("dividend_yield", a.equity.DividendYield)
		put("eps", a.equity.EPS)
	case a.bond != nil:
		put("yield", a.bond.Yield)
		put("duration", a.bond.Duration)
		putStr("credit_rating", a.bond.CreditRating)
		putStr("issuer", a.bond.Issuer)
	case a.commodity != nil:
		putStr("contract_type", a.commodity.ContractType)
		put("spot_price", a.commodity.SpotPrice)
	case a.fx != nil:
		putStr("pair", a.fx.Pair)
		put("exchange_rate", a.fx.ExchangeRate)
	}
	return out
}

// Float returns a pointer to v for optional numeric attributes.
func Float(v float64) *float64 { return &v }

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneEquity(e EquityAttrs) EquityAttrs {
	e.PERatio = cloneFloat(e.PERatio)
	e.DividendYield = cloneFloat(e.DividendYield)
	e.EPS = cloneFloat(e.EPS)
	return e
}

func cloneBond(b BondAttrs) BondAttrs {
	b.Yield = cloneFloat(b.Yield)
	b.Duration = cloneFloat(b.Duration)
	return b
}
