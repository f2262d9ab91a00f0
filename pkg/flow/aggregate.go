package flow

// pairKey identifies a (source, target) pair. A comparable struct key
// cannot collide the way joined strings can.
type pairKey struct {
	source Label
	target Label
}

// Aggregate builds the country→category and category→subgroup edges of the
// given rows. Each row adds one unit of weight to both of its pairs; a pair
// appears at most once in the result. Edges are returned in first-seen order.
func Aggregate(rows []ExplodedRecord) []Edge {
	index := make(map[pairKey]int)
	var edges []Edge

	add := func(source, target Label) {
		k := pairKey{source, target}
		if i, ok := index[k]; ok {
			edges[i].Weight++
			return
		}
		index[k] = len(edges)
		edges = append(edges, Edge{Source: source, Target: target, Weight: 1})
	}

	for _, r := range rows {
		country := NewLabel(TierCountry, r.Country)
		category := NewLabel(TierCategory, r.Category)
		add(country, category)
		add(category, NewLabel(TierSubgroup, r.Subgroup))
	}
	return edges
}
