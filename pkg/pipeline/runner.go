package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/tierflow/pkg/cache"
	"github.com/matzehuels/tierflow/pkg/flow"
	"github.com/matzehuels/tierflow/pkg/graph"
	"github.com/matzehuels/tierflow/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the default expiration of every cache entry when set.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Built is the cacheable output of the build stage.
type Built struct {
	Graph      flow.Graph
	Countries  []flow.KeyCount
	Categories []flow.KeyCount
	Records    int
	Filtered   int
	Exploded   int
	Retained   int
}

type builtJSON struct {
	Graph      graph.Graph     `json:"graph"`
	Countries  []flow.KeyCount `json:"countries"`
	Categories []flow.KeyCount `json:"categories"`
	Records    int             `json:"records"`
	Filtered   int             `json:"filtered"`
	Exploded   int             `json:"exploded"`
	Retained   int             `json:"retained"`
}

func (b Built) marshal() ([]byte, error) {
	return json.Marshal(builtJSON{
		Graph:      graph.FromFlow(b.Graph),
		Countries:  b.Countries,
		Categories: b.Categories,
		Records:    b.Records,
		Filtered:   b.Filtered,
		Exploded:   b.Exploded,
		Retained:   b.Retained,
	})
}

func unmarshalBuilt(data []byte) (Built, error) {
	var raw builtJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Built{}, err
	}
	g, err := graph.ToFlow(raw.Graph)
	if err != nil {
		return Built{}, err
	}
	return Built{
		Graph:      g,
		Countries:  raw.Countries,
		Categories: raw.Categories,
		Records:    raw.Records,
		Filtered:   raw.Filtered,
		Exploded:   raw.Exploded,
		Retained:   raw.Retained,
	}, nil
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, records []flow.RawRecord, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Build
	buildStart := time.Now()
	built, buildHit, err := r.BuildWithCacheInfo(ctx, records, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = built.Graph
	result.Countries = built.Countries
	result.Categories = built.Categories
	result.CacheInfo.BuildHit = buildHit
	result.Stats.BuildTime = time.Since(buildStart)
	result.Stats.Records = built.Records
	result.Stats.Filtered = built.Filtered
	result.Stats.Exploded = built.Exploded
	result.Stats.Retained = built.Retained
	result.Stats.NodeCount = len(built.Graph.Nodes)
	result.Stats.EdgeCount = len(built.Graph.Links)
	result.Stats.TotalWeight = built.Graph.TotalWeight()

	layering, err := Verify(built.Graph)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}
	result.Stats.Crossings = layering.Crossings
	result.Stats.WeightedCrossings = layering.WeightedCrossings

	graphData, err := graph.MarshalGraph(built.Graph)
	if err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	logger.Info("built flow graph",
		"variant", opts.Variant,
		"focus", opts.FocusValue(),
		"nodes", result.Stats.NodeCount,
		"links", result.Stats.EdgeCount,
		"crossings", result.Stats.Crossings,
		"cached", buildHit,
		"duration", result.Stats.BuildTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, built.Graph, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// BuildWithCacheInfo builds the flow graph with caching and returns cache
// hit info.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, records []flow.RawRecord, opts Options) (Built, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Built{}, false, err
	}

	cacheKey := r.Keyer.GraphKey(HashRecords(records, opts.Columns), opts.GraphKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if built, err := unmarshalBuilt(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return built, true, nil
			}
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	built, err := Build(ctx, records, opts)
	if err != nil {
		return Built{}, false, err
	}

	if data, err := built.marshal(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLGraph)); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}
	return built, false, nil
}

// Build runs the uncached build stage.
func Build(ctx context.Context, records []flow.RawRecord, opts Options) (Built, error) {
	if err := ctx.Err(); err != nil {
		return Built{}, err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Built{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Variant, len(records))
	start := time.Now()

	res, err := flow.Run(records, opts.FlowOptions())
	hooks.OnBuildComplete(ctx, opts.Variant, len(res.Graph.Nodes), len(res.Graph.Links), time.Since(start), err)
	if err != nil {
		return Built{}, err
	}
	return Built{
		Graph:      res.Graph,
		Countries:  res.Countries.Ranked,
		Categories: res.Categories.Ranked,
		Records:    res.Records,
		Filtered:   res.Filtered,
		Exploded:   res.Exploded,
		Retained:   res.Retained,
	}, nil
}

// RenderWithCacheInfo renders all requested formats with caching and
// returns whether every artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g flow.Graph, graphHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := opts.artifactKey(r.Keyer, graphHash, format)
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit && !opts.Refresh {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, g, renderOpts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		artifacts[format] = data
		key := opts.artifactKey(r.Keyer, graphHash, format)
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// HashRecords returns a content hash of the tracked columns of records.
// Values are hashed in the string form the sanitizer reads, so records that
// build the same graph hash equally and untracked columns are ignored.
func HashRecords(records []flow.RawRecord, cols flow.Columns) string {
	buf := make([]byte, 0, 64*len(records))
	for _, r := range records {
		for _, col := range []string{cols.Country, cols.Category, cols.Subgroup} {
			v := flow.Coerce(r[col])
			buf = fmt.Appendf(buf, "%d:%s", len(v), v)
		}
	}
	return cache.Hash(buf)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
