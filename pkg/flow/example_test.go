package flow_test

import (
	"fmt"

	"github.com/matzehuels/tierflow/pkg/flow"
)

func ExampleBuild() {
	records := []flow.RawRecord{
		{"country": "USA", "discipline": "Swimming", "gender": "Male"},
		{"country": "USA", "discipline": "Swimming", "gender": "Female"},
		{"country": "USA", "discipline": "Athletics", "gender": "Male"},
	}

	opts := flow.DefaultOptions()
	opts.TopCountries = 1
	opts.TopCategories = 2

	g, err := flow.Build(records, opts)
	if err != nil {
		panic(err)
	}

	fmt.Println(g.Nodes)
	for _, e := range g.Edges() {
		fmt.Printf("%s -> %s: %d\n", e.Source, e.Target, e.Weight)
	}
	// Output:
	// [C:USA D:Athletics D:Swimming G:Female G:Male]
	// C:USA -> D:Swimming: 2
	// D:Swimming -> G:Male: 1
	// D:Swimming -> G:Female: 1
	// C:USA -> D:Athletics: 1
	// D:Athletics -> G:Male: 1
}

func ExampleExplodeCategory() {
	fmt.Println(flow.ExplodeCategory("Judo", false))
	fmt.Println(flow.ExplodeCategory("Trampoline, Vault", false))
	// A quoted list is one composite label by default; splitQuoted yields
	// the atomic labels ["Freestyle" "Relay"].
	fmt.Printf("%q\n", flow.ExplodeCategory("['Freestyle', 'Relay']", false))
	fmt.Printf("%q\n", flow.ExplodeCategory("['Freestyle', 'Relay']", true))
	// Output:
	// [Judo]
	// [Trampoline Vault]
	// ["Freestyle, Relay"]
	// ["Freestyle" "Relay"]
}

func ExampleCoordinator() {
	c := flow.NewCoordinator(flow.NoFocus())
	fmt.Println(c.Toggle("USA"))
	fmt.Println(c.Toggle("USA"))
	// Output:
	// USA
	// <none>
}
