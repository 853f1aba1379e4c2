// Package observability lets callers watch route script runs without the
// pipeline depending on any metrics or UI code.
//
// The pipeline reports through the process-wide hooks returned by
// [Pipeline] and [Cache]. They default to no-ops. A front end registers its
// own implementation before a run and calls [Reset] afterwards:
//
//	observability.SetPipelineHooks(progressHooks{})
//	defer observability.Reset()
//
// Implementations usually embed [NoopPipelineHooks] and override the events
// they care about.
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from route script runs. Steps are indexed
// from zero; crossings is the crossing count of the expansion after the
// event.
type PipelineHooks interface {
	OnRunStart(ctx context.Context, runID string, nodeCount, edgeCount int)
	OnRunComplete(ctx context.Context, runID string, crossings int, duration time.Duration, err error)

	OnStepStart(ctx context.Context, runID string, index int, op string)
	OnStepComplete(ctx context.Context, runID string, index int, op string, crossings int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache lookups. kind names what was looked
// up, currently always "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnRunStart(context.Context, string, int, int)                     {}
func (NoopPipelineHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnStepStart(context.Context, string, int, string)                 {}
func (NoopPipelineHooks) OnStepComplete(context.Context, string, int, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// CacheCounter tallies cache events. It is safe for concurrent use.
type CacheCounter struct {
	hits, misses, written atomic.Int64
}

func (c *CacheCounter) OnCacheHit(context.Context, string)  { c.hits.Add(1) }
func (c *CacheCounter) OnCacheMiss(context.Context, string) { c.misses.Add(1) }
func (c *CacheCounter) OnCacheSet(_ context.Context, _ string, size int) {
	c.written.Add(int64(size))
}

// Hits returns the number of lookups served from the cache.
func (c *CacheCounter) Hits() int64 { return c.hits.Load() }

// Misses returns the number of lookups that had to render.
func (c *CacheCounter) Misses() int64 { return c.misses.Load() }

// Written returns the number of bytes stored.
func (c *CacheCounter) Written() int64 { return c.written.Load() }

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
)

// SetPipelineHooks registers h for subsequent runs. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	pipelineHooks = h
	hooksMu.Unlock()
}

// SetCacheHooks registers h for subsequent lookups. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	cacheHooks = h
	hooksMu.Unlock()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	hooksMu.Unlock()
}
