// Package cache provides pluggable result caching for the rendering
// pipeline.
//
// Three backends are available:
//   - FileCache: directory-based cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op cache when caching is disabled
//
// The pipeline memoizes whole results only: serialized molecule documents,
// scene documents, and rendered artifacts, each keyed by a hash of the full
// notation plus the options that shaped the output. Layout positions are
// always recomputed from their inputs, never merged across runs.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per cached document class. Notation is immutable input, so
// entries can live long; TTLs mostly bound cache growth.
const (
	TTLMolecule = 30 * 24 * time.Hour
	TTLScene    = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Keyer generates cache keys for the pipeline's document classes.
type Keyer interface {
	// MoleculeKey keys a parsed molecule document by notation hash.
	MoleculeKey(notationHash string) string

	// SceneKey keys a scene document by notation hash and layout options.
	SceneKey(notationHash string, opts SceneKeyOpts) string

	// ArtifactKey keys a rendered artifact by scene hash and render options.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// SceneKeyOpts are the layout options that change scene output.
type SceneKeyOpts struct {
	Seed string `json:"seed"`
}

// ArtifactKeyOpts are the render options that change artifact output.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale"`
	Background string  `json:"background"`
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// MoleculeKey generates a key for molecule document caching.
func (k *DefaultKeyer) MoleculeKey(notationHash string) string {
	return hashKey("molecule", notationHash)
}

// SceneKey generates a key for scene document caching.
func (k *DefaultKeyer) SceneKey(notationHash string, opts SceneKeyOpts) string {
	return hashKey("scene", notationHash, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneHash, opts)
}
