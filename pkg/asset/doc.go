// Package asset defines the financial instruments and regulatory events that
// populate a relationship graph.
//
// # Overview
//
// An [Asset] is a tagged variant: every asset carries the common fields (id,
// name, class, optional sector and denomination currency) and exactly one set
// of class-specific attributes. The variant is selected by [Class] and read
// through the capability accessors:
//
//	if eq, ok := a.Equity(); ok {
//	    // eq.DividendYield, eq.Ticker, ...
//	}
//
// Discovery rules dispatch on the class tag rather than on methods overridden
// per asset type, which keeps each rule a plain function of two assets.
//
// # Immutability
//
// Assets and events are values. Fields are unexported and accessors return
// copies, so an asset cannot be modified after construction; replacing an
// asset means removing it from the graph and adding a new one.
//
// Optional numeric attributes are *float64 and nil when unset. Use [Float] to
// build them inline:
//
//	a, err := asset.NewEquity("XOM", "Exxon Mobil", asset.EquityAttrs{
//	    Ticker:        "XOM",
//	    DividendYield: asset.Float(3.4),
//	}, asset.WithSector("Energy"))
//
// # Regulatory Events
//
// An [Event] names the assets it affects and an impact score in [-1, 1].
// Events are attached to a graph and consumed read-only by discovery.
package asset
