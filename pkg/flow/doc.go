// Package flow derives a three-tier weighted flow graph from loosely-typed
// tabular records.
//
// # Overview
//
// Each record describes one individual with a country, one or more category
// labels (a discipline or event) and a sub-group label. The package turns a
// record sequence into a graph of the form
//
//	country → category → subgroup
//
// suitable for a flow (Sankey) diagram. Nodes are partitioned into three
// tiers and the graph only ever links consecutive tiers.
//
// # Pipeline
//
// [Build] runs every stage top-to-bottom and returns an immutable [Graph]:
//
//  1. [Sanitize] - trim fields and substitute fallback labels for blanks
//  2. focus filter - keep only the focused country when a [Focus] is set
//  3. [TopN] on country - keep the N most frequent countries (skipped under focus)
//  4. [Explode] - one row per atomic category label
//  5. [TopN] on category - counted on the country-filtered rows only
//  6. [Aggregate] - merge duplicate (source, target) pairs by summing weights
//  7. [OrderNodes] - tier-major, alphabetical within a tier
//  8. [Resolve] - rewrite edges as dense index triples
//
// Every stage is a pure function of its inputs. Running [Build] twice on the
// same records and [Options] yields identical graphs: ties in the frequency
// ranking are broken by first-seen order.
//
// # Focus
//
// A [Focus] is a single optional country. [Coordinator] owns the process-wide
// value and replaces it wholesale on every toggle; selecting the active value
// again clears it. Pipelines receive the current value through [Options.Focus].
//
// # Labels
//
// Node labels carry a tier prefix ("C:", "D:", "G:") so that a raw value that
// appears in two columns still yields two distinct nodes.
package flow
