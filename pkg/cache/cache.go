// Package cache stores built scenes and rendered artifacts between runs.
//
// Two backends are provided: [FileCache] for the CLI (one JSON file per
// entry under the user cache directory) and [RedisCache] for sharing
// artifacts between machines. [NullCache] disables caching.
//
// Keys are produced by a [Keyer] so that every option that changes the
// output also changes the key:
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(sceneID, cache.ArtifactKeyOpts{Format: "svg", Style: "simple"})
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero ttl never expires.
type Cache interface {
	// Get returns the stored value and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLArtifact is how long rendered outputs are kept. Artifacts are keyed
// by content, so the TTL only bounds disk use.
const TTLArtifact = 30 * 24 * time.Hour

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys a rendered output by the scene it was rendered from.
	ArtifactKey(sceneID string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render settings that affect the output bytes.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Style       string  `json:"style,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
	Margin      float64 `json:"margin,omitempty"`
	Font        string  `json:"font,omitempty"`
	FontSize    float64 `json:"fontsize,omitempty"`
	Color       string  `json:"color,omitempty"`
	Background  string  `json:"background,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Seed        uint64  `json:"seed,omitempty"`
	Detailed    bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(sceneID string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneID, opts)
}
