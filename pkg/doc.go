// Package pkg holds the libraries behind tierflow, which aggregates tabular
// athlete records into three-tier country → category → subgroup flow graphs.
//
// # Architecture
//
// The data flow of one build:
//
//	Record file (CSV, JSON, JSON Lines)
//	         ↓
//	    [records] package (decode into raw records)
//	         ↓
//	    [flow] package (sanitize → country top-N → explode → category top-N → aggregate)
//	         ↓
//	    [dag] package (row-layered validation + crossing counts)
//	         ↓
//	    [render/nodelink] and [graph] packages (DOT, SVG, PNG, JSON)
//
// [pipeline] ties these together behind a cache-aware [pipeline.Runner] and
// an interactive [pipeline.Session] that recomputes every chart when the
// shared country focus changes. [chart] computes the sibling bar and scatter
// charts from the same records.
//
// # Quick Start
//
//	recs, _ := records.ReadFile("athletes.csv")
//	opts := pipeline.DefaultOptions()
//	opts.Focus = "USA"
//	res, _ := pipeline.Build(ctx, recs, opts)
//	data, _ := graph.MarshalGraph(res.Graph)
//
// # Supporting Packages
//
// [cache] stores built graphs and rendered artifacts in files or Redis.
// [config] loads the TOML config file. [errors] defines coded errors.
// [observability] exposes hooks for build, cache and session events.
//
// [records]: github.com/matzehuels/tierflow/pkg/records
// [flow]: github.com/matzehuels/tierflow/pkg/flow
// [dag]: github.com/matzehuels/tierflow/pkg/dag
// [render/nodelink]: github.com/matzehuels/tierflow/pkg/render/nodelink
// [graph]: github.com/matzehuels/tierflow/pkg/graph
// [pipeline]: github.com/matzehuels/tierflow/pkg/pipeline
// [chart]: github.com/matzehuels/tierflow/pkg/chart
// [cache]: github.com/matzehuels/tierflow/pkg/cache
// [config]: github.com/matzehuels/tierflow/pkg/config
// [errors]: github.com/matzehuels/tierflow/pkg/errors
// [observability]: github.com/matzehuels/tierflow/pkg/observability
package pkg
