// Package dag provides a row-based directed acyclic graph used to check and
// measure the layered structure of flow graphs.
//
// # Overview
//
// A flow graph has three tiers and links only between neighbouring tiers.
// [FromFlow] turns a [flow.Graph] into a [DAG] whose rows are the tiers, so
// that [DAG.Validate] can confirm the two structural guarantees a flow
// layout engine relies on: every edge spans exactly one row, and there are
// no cycles.
//
//	d, err := dag.FromFlow(g)
//	if err != nil {
//	    return err
//	}
//	if err := d.Validate(); err != nil {
//	    return err
//	}
//
// # Edge Crossings
//
// A flow diagram reads best when few links cross. The tier-alphabetical node
// order is fixed, so crossings are a property of the data, and the pipeline
// reports them as a statistic. [CountCrossings] and [CountLayerCrossings]
// count inversions with a Fenwick tree (binary indexed tree) in O(E log V);
// [WeightedCrossings] weighs each crossing by the widths of both links.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Counting crossings on a
// graph nobody modifies is safe from several goroutines.
package dag
