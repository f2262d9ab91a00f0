// Package graph provides the serialization format for flow graphs.
//
// This package defines the JSON form handed to flow-diagram renderers and
// stored in the build cache. It sits at the boundary between [flow.Graph]
// and external tools.
//
// # Format
//
// Nodes are listed tier by tier; links reference them by index:
//
//	{
//	  "nodes": [
//	    {"label": "C:USA", "name": "USA", "tier": "country"},
//	    {"label": "D:Judo", "name": "Judo", "tier": "category"}
//	  ],
//	  "links": [{"source": 0, "target": 1, "value": 3}]
//	}
//
// This is the node/link shape most Sankey layout engines accept directly.
//
// Common operations:
//
//	data, _ := graph.MarshalGraph(g)          // flow.Graph → []byte
//	g, _ := graph.UnmarshalGraph(data)        // []byte → flow.Graph
//	graph.WriteGraphFile(g, "flow.json")      // flow.Graph → File
//	g, _ := graph.ReadGraphFile("flow.json")  // File → flow.Graph
//
// Reading always validates: out-of-range indices, orphan nodes, duplicate
// labels or links and non-positive values are rejected.
//
// # Concurrency
//
// All functions are safe for concurrent use.
package graph
