// Package io reads and writes portfolio files: the assets, regulatory events
// and manually asserted relationships that populate a relationship graph.
//
// # Formats
//
// Portfolios are JSON or TOML; the format is chosen from the file extension
// by [FormatFromPath]. Both encodings share the same field names:
//
//	[[assets]]
//	id = "XOM"
//	name = "Exxon Mobil"
//	class = "equity"
//	sector = "Energy"
//	currency = "USD"
//	ticker = "XOM"
//	dividend_yield = 3.4
//
//	[[assets]]
//	id = "CL"
//	name = "WTI Crude"
//	class = "commodity"
//	contract_type = "crude_oil"
//
//	[[events]]
//	id = "sec-2024-17"
//	type = "regulatory_action"
//	affected_asset_ids = ["XOM", "CVX"]
//	impact_score = -0.4
//
//	[[relationships]]
//	source = "XOM"
//	target = "CL"
//	type = "commodity_exposure"
//	strength = 0.5
//
// Class-specific fields that do not apply to an asset's class are ignored.
// Relationships are optional; discovery infers the rest.
//
// # Import
//
// Use [ImportPortfolio] to read a file, or [ReadPortfolio] for any io.Reader.
// Records are validated as they are read. Checks that need the whole graph,
// such as duplicate ids or relationships to unknown assets, happen in
// [Portfolio.Populate].
//
// # Export
//
// [ExportPortfolio] and [WritePortfolio] write a graph's assets, events and
// relationships back out. Bidirectional relationships are written once.
// Re-importing the output reproduces the graph.
package io
