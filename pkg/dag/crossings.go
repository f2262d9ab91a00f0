package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of link crossings for the given
// row orderings, summed over each pair of consecutive rows. Rows without
// entries in orders are treated as empty.
//
//	orders := map[int][]string{
//	    0: {"C:FRA", "C:USA"},
//	    1: {"D:Judo", "D:Swimming"},
//	}
//	crossings := dag.CountCrossings(g, orders)
func CountCrossings(g *DAG, orders map[int][]string) int {
	return sumLayers(g, orders, false)
}

// WeightedCrossings is like [CountCrossings] but weighs every crossing by
// the product of both link weights. In a flow diagram, where link width
// is proportional to weight, this approximates the crossed area.
func WeightedCrossings(g *DAG, orders map[int][]string) int {
	return sumLayers(g, orders, true)
}

func sumLayers(g *DAG, orders map[int][]string, weighted bool) int {
	rows := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for _, r := range rows {
		lower, ok := orders[r+1]
		if !ok {
			continue
		}
		crossings += layerCrossings(g, orders[r], lower, weighted)
	}
	return crossings
}

// CountLayerCrossings counts link crossings between two adjacent rows.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// This is the number of inversions in the target positions once edges are
// sorted by source position; a Fenwick tree counts them in O(E log V).
// Returns 0 if either row is empty.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	return layerCrossings(g, upper, lower, false)
}

func layerCrossings(g *DAG, upper, lower []string, weighted bool) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	upperPos := PosMap(upper)
	lowerPos := PosMap(lower)

	type edge struct{ upper, lower, weight int }
	var edges []edge
	for _, e := range g.edges {
		u, okU := upperPos[e.From]
		l, okL := lowerPos[e.To]
		if !okU || !okL {
			continue
		}
		w := 1
		if weighted {
			w = e.Weight
		}
		edges = append(edges, edge{u, l, w})
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	// fenwick[i] accumulates the weight of processed edges by target position
	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += e.weight * (total - lessOrEqual)

		total += e.weight
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx] += e.weight
		}
	}
	return crossings
}
