package discovery

import (
	"strings"

	"github.com/matzehuels/assetgraph/pkg/errors"
)

// Default strength constants.
const (
	DefaultSameSectorStrength    = 0.8
	DefaultCorporateBondStrength = 0.9
	DefaultCurrencyRiskStrength  = 0.6
	DefaultIncomeYieldScale      = 5.0 // percentage points
	DefaultBaseCurrency          = "USD"
)

// SectorSensitivity describes how strongly an equity sector reacts to the
// prices of the listed commodity contract types.
type SectorSensitivity struct {
	Sector        string   `toml:"sector" json:"sector"`
	Weight        float64  `toml:"weight" json:"weight"`
	ContractTypes []string `toml:"contract_types" json:"contract_types"`
}

// Params holds the tunable constants of the built-in rules.
type Params struct {
	SameSectorStrength    float64             `toml:"same_sector_strength" json:"same_sector_strength"`
	CorporateBondStrength float64             `toml:"corporate_bond_strength" json:"corporate_bond_strength"`
	CurrencyRiskStrength  float64             `toml:"currency_risk_strength" json:"currency_risk_strength"`
	IncomeYieldScale      float64             `toml:"income_yield_scale" json:"income_yield_scale"`
	BaseCurrency          string              `toml:"base_currency" json:"base_currency"`
	SectorSensitivity     []SectorSensitivity `toml:"sector_sensitivity" json:"sector_sensitivity"`
}

// DefaultParams returns the built-in rule parameters.
func DefaultParams() Params {
	return Params{
		SameSectorStrength:    DefaultSameSectorStrength,
		CorporateBondStrength: DefaultCorporateBondStrength,
		CurrencyRiskStrength:  DefaultCurrencyRiskStrength,
		IncomeYieldScale:      DefaultIncomeYieldScale,
		BaseCurrency:          DefaultBaseCurrency,
		SectorSensitivity: []SectorSensitivity{
			{Sector: "energy", Weight: 0.9, ContractTypes: []string{"energy", "crude_oil", "oil", "natural_gas", "gasoline", "heating_oil"}},
			{Sector: "materials", Weight: 0.7, ContractTypes: []string{"metals", "industrial_metals", "precious_metals", "copper", "gold", "silver", "aluminum", "iron_ore"}},
			{Sector: "utilities", Weight: 0.5, ContractTypes: []string{"energy", "natural_gas", "coal"}},
			{Sector: "industrials", Weight: 0.4, ContractTypes: []string{"metals", "industrial_metals", "copper", "aluminum"}},
			{Sector: "consumer_staples", Weight: 0.3, ContractTypes: []string{"agriculture", "grains", "softs", "livestock", "wheat", "corn", "sugar", "coffee"}},
		},
	}
}

// Validate checks that every strength and weight is normalized.
func (p Params) Validate() error {
	strengths := []struct {
		name  string
		value float64
	}{
		{"same_sector_strength", p.SameSectorStrength},
		{"corporate_bond_strength", p.CorporateBondStrength},
		{"currency_risk_strength", p.CurrencyRiskStrength},
	}
	for _, s := range strengths {
		if errors.ValidateStrength(s.value) != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must be in [0, 1], got %v", s.name, s.value)
		}
	}
	if !(p.IncomeYieldScale > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "income_yield_scale must be positive, got %v", p.IncomeYieldScale)
	}
	if strings.TrimSpace(p.BaseCurrency) == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "base_currency must not be empty")
	}
	for _, s := range p.SectorSensitivity {
		if normalize(s.Sector) == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "sector_sensitivity entry without sector")
		}
		if errors.ValidateStrength(s.Weight) != nil {
			return errors.New(errors.ErrCodeInvalidConfig, "sector %q weight must be in [0, 1], got %v", s.Sector, s.Weight)
		}
	}
	return nil
}

// sensitivity returns the weight linking an equity sector to a commodity
// contract type, or false when the pair is not in the table.
func (p Params) sensitivity(sector, contractType string) (float64, bool) {
	sector, contractType = normalize(sector), normalize(contractType)
	if sector == "" || contractType == "" {
		return 0, false
	}
	for _, s := range p.SectorSensitivity {
		if normalize(s.Sector) != sector {
			continue
		}
		for _, ct := range s.ContractTypes {
			if normalize(ct) == contractType {
				return s.Weight, true
			}
		}
	}
	return 0, false
}

// normalize lowercases s and folds spaces and hyphens into underscores so
// "Consumer Staples", "consumer-staples" and "consumer_staples" compare equal.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
}
