package graph_test

import (
	"fmt"

	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/graph"
)

func ExampleMarshalGraph() {
	g := flow.Graph{
		Nodes: []flow.Label{"C:USA", "D:Judo"},
		Links: []flow.Link{{Source: 0, Target: 1, Weight: 3}},
	}

	data, _ := graph.MarshalGraph(g)
	fmt.Print(string(data))
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "label": "C:USA",
	//       "name": "USA",
	//       "tier": "country"
	//     },
	//     {
	//       "label": "D:Judo",
	//       "name": "Judo",
	//       "tier": "category"
	//     }
	//   ],
	//   "links": [
	//     {
	//       "source": 0,
	//       "target": 1,
	//       "value": 3
	//     }
	//   ]
	// }
}
