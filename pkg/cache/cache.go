// Package cache provides content-addressed caching for layout results and
// rendered artifacts.
//
// A Cache stores opaque byte values under string keys with optional
// expiration. A Keyer derives those keys from content hashes plus the
// options that influenced the result, so identical inputs always map to the
// same entry and any option change produces a fresh one.
package cache

import (
	"context"
	"time"
)

// TTLs for the different entry kinds. Entries are content addressed, so
// they never go stale; the TTLs only bound disk usage over time.
const (
	// TTLLayout is the lifetime of cached layout documents.
	TTLLayout = 30 * 24 * time.Hour

	// TTLArtifact is the lifetime of cached rendered artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with expiration.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the layout options that feed into a layout cache key.
type LayoutKeyOpts struct {
	RankDir   string  `json:"rankdir"`
	NodeSep   float64 `json:"nodesep"`
	RankSep   float64 `json:"ranksep"`
	EdgeSep   float64 `json:"edgesep"`
	MarginX   float64 `json:"marginx"`
	MarginY   float64 `json:"marginy"`
	Ranker    string  `json:"ranker"`
	Acyclicer string  `json:"acyclicer"`
	KeepOrder bool    `json:"keep_order"`
}

// ArtifactKeyOpts are the render options that feed into an artifact cache key.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey generates a key for a laid out graph, derived from the
	// content hash of the input document and the effective layout options.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact, derived from the
	// content hash of the laid out document and the render options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
