package dag_test

import (
	"fmt"

	"github.com/matzehuels/tierflow/pkg/dag"
	"github.com/matzehuels/tierflow/pkg/flow"
)

func ExampleFromFlow() {
	g := flow.Graph{
		Nodes: []flow.Label{"C:USA", "D:Judo", "D:Swimming", "G:Male"},
		Links: []flow.Link{
			{Source: 0, Target: 1, Weight: 1},
			{Source: 0, Target: 2, Weight: 2},
			{Source: 1, Target: 3, Weight: 1},
			{Source: 2, Target: 3, Weight: 2},
		},
	}

	d, err := dag.FromFlow(g)
	if err != nil {
		panic(err)
	}
	fmt.Println("Rows:", d.RowIDs())
	fmt.Println("Valid:", d.Validate() == nil)
	fmt.Println("Into G:Male:", d.InFlow("G:Male"))
	// Output:
	// Rows: [0 1 2]
	// Valid: true
	// Into G:Male: 3
}

func ExampleCountLayerCrossings() {
	d := dag.New()
	_ = d.AddNode(dag.Node{ID: "C:a", Row: 0})
	_ = d.AddNode(dag.Node{ID: "C:b", Row: 0})
	_ = d.AddNode(dag.Node{ID: "D:x", Row: 1})
	_ = d.AddNode(dag.Node{ID: "D:y", Row: 1})

	// a→y and b→x cross when a is left of b
	_ = d.AddEdge(dag.Edge{From: "C:a", To: "D:y", Weight: 3})
	_ = d.AddEdge(dag.Edge{From: "C:b", To: "D:x", Weight: 2})

	upper := []string{"C:a", "C:b"}
	lower := []string{"D:x", "D:y"}
	fmt.Println("Crossings:", dag.CountLayerCrossings(d, upper, lower))
	fmt.Println("Weighted:", dag.WeightedCrossings(d, map[int][]string{0: upper, 1: lower}))

	upper = []string{"C:b", "C:a"}
	fmt.Println("After reorder:", dag.CountLayerCrossings(d, upper, lower))
	// Output:
	// Crossings: 1
	// Weighted: 6
	// After reorder: 0
}
