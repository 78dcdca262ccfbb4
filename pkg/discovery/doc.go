// Package discovery infers relationships between the assets of a graph.
//
// # Rules
//
// A [Rule] is a pure function of two assets and a shared [Context]. It returns
// the relationship it infers, or false when it does not fire. Rules never
// fail: a rule whose attributes are missing on either asset simply does not
// fire. The built-in rules are:
//
//   - sector affinity: same_sector, bidirectional
//   - corporate bond link: corporate_bond_to_equity, Bond → Equity
//   - commodity exposure: commodity_exposure, Commodity → Equity
//   - currency risk: currency_risk, Currency → Asset
//   - income comparison: income_comparison, bidirectional
//   - event impact: event_impact, bidirectional between co-affected assets
//
// Rules are independent; several may fire for the same pair. New rules are
// appended with [WithRules] without touching the existing ones.
//
// # Engine
//
// [Engine.Run] evaluates every unordered pair of distinct assets, in
// insertion order, against every rule and inserts the results into the
// graph. The store deduplicates (source, target, type) triples, so running
// discovery again on an unchanged graph adds nothing, and running it after
// new assets arrive adds only the newly satisfied relationships.
//
// # Parameters
//
// Strength constants and the sector sensitivity table live in [Params] and
// can be overridden from the configuration file. [DefaultParams] returns the
// built-in values.
package discovery
