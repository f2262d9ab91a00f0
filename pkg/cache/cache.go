// Package cache stores built flow graphs and rendered artifacts.
//
// Building a graph is cheap, but the CLI re-reads large record files and
// renders SVG through Graphviz; caching both by content hash makes repeated
// runs on unchanged input instant. Every [Cache] is a plain byte store with
// expiration, so backends are interchangeable:
//
//   - [FileCache]: one JSON file per entry under the XDG cache directory
//   - [RedisCache]: shared cache for several machines
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer] and always hash every input that influences the
// cached value.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// Missing or expired entries are a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default time-to-live values.
const (
	TTLGraph    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// GraphKeyOpts holds every option that changes a built graph.
type GraphKeyOpts struct {
	Variant          string `json:"variant"`
	TopCountries     int    `json:"top_countries"`
	TopCategories    int    `json:"top_categories"`
	Focus            string `json:"focus,omitempty"`
	FocusActive      bool   `json:"focus_active,omitempty"`
	SplitQuotedLists bool   `json:"split_quoted_lists,omitempty"`
	CountryColumn    string `json:"country_column"`
	CategoryColumn   string `json:"category_column"`
	SubgroupColumn   string `json:"subgroup_column"`
}

// Keyer generates cache keys.
type Keyer interface {
	// GraphKey returns the key of the graph built from the records with the
	// given content hash.
	GraphKey(recordsHash string, opts GraphKeyOpts) string

	// ArtifactKey returns the key of one rendered format of a graph.
	ArtifactKey(graphHash, format string) string
}

// DefaultKeyer produces "graph:<sha256>" and "artifact:<format>:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey hashes the records hash together with the options.
func (DefaultKeyer) GraphKey(recordsHash string, opts GraphKeyOpts) string {
	return hashKey("graph", recordsHash, opts)
}

// ArtifactKey hashes the graph hash; the format stays readable in the key.
func (DefaultKeyer) ArtifactKey(graphHash, format string) string {
	return hashKey(fmt.Sprintf("artifact:%s", format), graphHash)
}
