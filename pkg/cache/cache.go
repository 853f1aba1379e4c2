// Package cache stores rendered artifacts between pipeline runs.
//
// # Overview
//
// Rendering a copy graph through Graphviz is the slowest stage of a run.
// The pipeline hashes the snapshot of the final expansion and looks the
// artifact up under a key derived from that hash and the render options,
// so rerunning an unchanged script skips rendering.
//
// # Implementations
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [MemoryCache]: an in-process map, for tests and long-lived runners
//   - [NullCache]: stores nothing, disables caching
//
// # Keys
//
// Keys are built by a [Keyer]. [DefaultKeyer] hashes its inputs with
// SHA-256. [ScopedKeyer] prefixes another keyer's keys; the CLI scopes keys
// by binary version so renders from an older release are never reused.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// TTLArtifact is the lifetime of cached rendered artifacts.
const TTLArtifact = 7 * 24 * time.Hour

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey keys an artifact rendered from a snapshot.
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
	Colored  bool   `json:"colored,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a [DefaultKeyer].
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return "artifact:" + digest(snapshotHash, opts)
}

// Hash returns the hex SHA-256 digest of data. Snapshots are hashed with it
// before they are keyed.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// digest hashes the JSON encoding of parts. Unencodable parts hash as null.
func digest(parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte("null")
	}
	return Hash(data)
}

var _ Keyer = DefaultKeyer{}

// ScopedKeyer prefixes the keys of another keyer.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix to the keys of
// inner, or of a [DefaultKeyer] if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(snapshotHash, opts)
}

// Fetch returns the data stored under key. On a miss it calls fn and
// stores the result with ttl. Errors from the cache itself count as misses
// and a failed store is ignored, so a broken cache only costs time.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, fn func() ([]byte, error)) (data []byte, hit bool, err error) {
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}
	data, err = fn()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}
