// Package observability lets the host application observe card rendering
// without the library depending on a metrics or tracing backend.
//
// Hooks are registered once at startup; libraries emit events through the
// registered hooks, which default to no-ops:
//
//	observability.SetPipelineHooks(&myHooks{})
//
//	observability.Pipeline().OnExtract(ctx, cached, duration)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives card rendering events.
type PipelineHooks interface {
	OnLoad(ctx context.Context, kind string, duration time.Duration, err error)
	OnExtract(ctx context.Context, cached bool, duration time.Duration)
	OnLayout(ctx context.Context, players, visible int, duration time.Duration)
	OnCompose(ctx context.Context, template string, duration time.Duration)
	OnExport(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is "image", "theme" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives image download events.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoad(context.Context, string, time.Duration, error)        {}
func (NoopPipelineHooks) OnExtract(context.Context, bool, time.Duration)              {}
func (NoopPipelineHooks) OnLayout(context.Context, int, int, time.Duration)           {}
func (NoopPipelineHooks) OnCompose(context.Context, string, time.Duration)            {}
func (NoopPipelineHooks) OnExport(context.Context, string, int, time.Duration, error) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetPipelineHooks registers pipeline hooks. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
