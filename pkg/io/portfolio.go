package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/assetgraph/pkg/asset"
	"github.com/matzehuels/assetgraph/pkg/errors"
	"github.com/matzehuels/assetgraph/pkg/relgraph"
)

// Format is a portfolio file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported portfolio extension %q (want .json or .toml)", filepath.Ext(path))
}

// Portfolio is a decoded portfolio file.
type Portfolio struct {
	Assets        []asset.Asset
	Events        []asset.Event
	Relationships []relgraph.Relationship
}

// Populate adds the portfolio to g: assets first, then events, then
// relationships. It stops at the first error, which carries the code of the
// failing store operation.
func (p Portfolio) Populate(g *relgraph.Graph) error {
	for _, a := range p.Assets {
		if err := g.AddAsset(a); err != nil {
			return err
		}
	}
	for _, e := range p.Events {
		if err := g.AddEvent(e); err != nil {
			return err
		}
	}
	for _, r := range p.Relationships {
		if _, err := g.AddRelationship(r); err != nil {
			return err
		}
	}
	return nil
}

// FromGraph collects the contents of g into a portfolio.
func FromGraph(g *relgraph.Graph) Portfolio {
	return Portfolio{
		Assets:        g.Assets(),
		Events:        g.Events(),
		Relationships: g.UniqueRelationships(),
	}
}

type document struct {
	Assets        []AssetRecord        `json:"assets" toml:"assets"`
	Events        []EventRecord        `json:"events,omitempty" toml:"events,omitempty"`
	Relationships []RelationshipRecord `json:"relationships,omitempty" toml:"relationships,omitempty"`
}

// AssetRecord is the flat wire form of an asset. Class-specific fields are
// ignored for other classes.
type AssetRecord struct {
	ID       string `json:"id" toml:"id"`
	Name     string `json:"name" toml:"name"`
	Class    string `json:"class" toml:"class"`
	Sector   string `json:"sector,omitempty" toml:"sector,omitempty"`
	Currency string `json:"currency,omitempty" toml:"currency,omitempty"`

	// equity
	Ticker        string   `json:"ticker,omitempty" toml:"ticker,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty" toml:"pe_ratio,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty" toml:"dividend_yield,omitempty"`
	EPS           *float64 `json:"eps,omitempty" toml:"eps,omitempty"`

	// bond
	Yield        *float64 `json:"yield,omitempty" toml:"yield,omitempty"`
	Duration     *float64 `json:"duration,omitempty" toml:"duration,omitempty"`
	CreditRating string   `json:"credit_rating,omitempty" toml:"credit_rating,omitempty"`
	Issuer       string   `json:"issuer,omitempty" toml:"issuer,omitempty"`

	// commodity
	ContractType string   `json:"contract_type,omitempty" toml:"contract_type,omitempty"`
	SpotPrice    *float64 `json:"spot_price,omitempty" toml:"spot_price,omitempty"`

	// currency
	Pair         string   `json:"pair,omitempty" toml:"pair,omitempty"`
	ExchangeRate *float64 `json:"exchange_rate,omitempty" toml:"exchange_rate,omitempty"`
}

// EventRecord is the wire form of an event.
type EventRecord struct {
	ID               string   `json:"id,omitempty" toml:"id,omitempty"`
	Type             string   `json:"type" toml:"type"`
	AffectedAssetIDs []string `json:"affected_asset_ids" toml:"affected_asset_ids"`
	ImpactScore      float64  `json:"impact_score" toml:"impact_score"`
	Description      string   `json:"description,omitempty" toml:"description,omitempty"`
}

// RelationshipRecord is the wire form of a relationship.
type RelationshipRecord struct {
	Source        string  `json:"source" toml:"source"`
	Target        string  `json:"target" toml:"target"`
	Type          string  `json:"type" toml:"type"`
	Strength      float64 `json:"strength" toml:"strength"`
	Bidirectional bool    `json:"bidirectional,omitempty" toml:"bidirectional,omitempty"`
}

// ToAsset validates the record and builds the asset.
func (r AssetRecord) ToAsset() (asset.Asset, error) {
	class, err := asset.ParseClass(r.Class)
	if err != nil {
		return asset.Asset{}, err
	}
	opts := []asset.Option{asset.WithSector(r.Sector), asset.WithCurrency(r.Currency)}
	switch class {
	case asset.ClassEquity:
		return asset.NewEquity(r.ID, r.Name, asset.EquityAttrs{
			Ticker: r.Ticker, PERatio: r.PERatio, DividendYield: r.DividendYield, EPS: r.EPS,
		}, opts...)
	case asset.ClassBond:
		return asset.NewBond(r.ID, r.Name, asset.BondAttrs{
			Yield: r.Yield, Duration: r.Duration, CreditRating: r.CreditRating, Issuer: r.Issuer,
		}, opts...)
	case asset.ClassCommodity:
		return asset.NewCommodity(r.ID, r.Name, asset.CommodityAttrs{
			ContractType: r.ContractType, SpotPrice: r.SpotPrice,
		}, opts...)
	default:
		return asset.NewCurrency(r.ID, r.Name, asset.CurrencyAttrs{
			Pair: r.Pair, ExchangeRate: r.ExchangeRate,
		}, opts...)
	}
}

// NewAssetRecord flattens a into its wire form.
func NewAssetRecord(a asset.Asset) AssetRecord {
	r := AssetRecord{
		ID:       a.ID(),
		Name:     a.Name(),
		Class:    string(a.Class()),
		Sector:   a.Sector(),
		Currency: a.Currency(),
	}
	if e, ok := a.Equity(); ok {
		r.Ticker, r.PERatio, r.DividendYield, r.EPS = e.Ticker, e.PERatio, e.DividendYield, e.EPS
	}
	if b, ok := a.Bond(); ok {
		r.Yield, r.Duration, r.CreditRating, r.Issuer = b.Yield, b.Duration, b.CreditRating, b.Issuer
	}
	if c, ok := a.Commodity(); ok {
		r.ContractType, r.SpotPrice = c.ContractType, c.SpotPrice
	}
	if p, ok := a.Pair(); ok {
		r.Pair, r.ExchangeRate = p.Pair, p.ExchangeRate
	}
	return r
}

func (r EventRecord) ToEvent() (asset.Event, error) {
	typ, err := asset.ParseEventType(r.Type)
	if err != nil {
		return asset.Event{}, err
	}
	return asset.NewEvent(r.ID, typ, r.AffectedAssetIDs, r.ImpactScore, r.Description)
}

func NewEventRecord(e asset.Event) EventRecord {
	return EventRecord{
		ID:               e.ID(),
		Type:             string(e.Type()),
		AffectedAssetIDs: e.AffectedAssetIDs(),
		ImpactScore:      e.ImpactScore(),
		Description:      e.Description(),
	}
}

// ToRelationship checks the type and strength. Endpoint existence is left
// to the graph.
func (r RelationshipRecord) ToRelationship() (relgraph.Relationship, error) {
	if strings.TrimSpace(r.Type) == "" {
		return relgraph.Relationship{}, errors.New(errors.ErrCodeInvalidInput, "relationship %s→%s has no type", r.Source, r.Target)
	}
	if err := errors.ValidateStrength(r.Strength); err != nil {
		return relgraph.Relationship{}, err
	}
	return relgraph.Relationship{
		Source:        r.Source,
		Target:        r.Target,
		Type:          relgraph.Type(r.Type),
		Strength:      r.Strength,
		Bidirectional: r.Bidirectional,
	}, nil
}

func NewRelationshipRecord(r relgraph.Relationship) RelationshipRecord {
	return RelationshipRecord{
		Source:        r.Source,
		Target:        r.Target,
		Type:          string(r.Type),
		Strength:      r.Strength,
		Bidirectional: r.Bidirectional,
	}
}
