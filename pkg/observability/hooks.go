// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about graph evaluation and scenario runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the graph core
// free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    counter := &observability.Counter{}
//	    observability.SetGraphHooks(counter)
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Graph().OnCacheMiss(graph.KindBinary)
//	observability.Scenario().OnRunComplete(ctx, name, run, value, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Graph Hooks
// =============================================================================

// GraphHooks receives events from graph nodes. Kind is the node kind
// ("input", "unary" or "binary").
//
// Graph hooks are called synchronously on the evaluation path and must be
// cheap.
type GraphHooks interface {
	// OnCacheMiss records a node evaluating its operation.
	OnCacheMiss(kind string)

	// OnInvalidate records a node being invalidated.
	OnInvalidate(kind string)

	// OnInputSet records a new value being installed on a named input.
	OnInputSet(name string)
}

// =============================================================================
// Scenario Hooks
// =============================================================================

// ScenarioHooks receives events from scenario execution.
type ScenarioHooks interface {
	OnRunStart(ctx context.Context, scenario string, run int)
	OnRunComplete(ctx context.Context, scenario string, run int, value float64, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGraphHooks is a no-op implementation of GraphHooks.
type NoopGraphHooks struct{}

func (NoopGraphHooks) OnCacheMiss(string)  {}
func (NoopGraphHooks) OnInvalidate(string) {}
func (NoopGraphHooks) OnInputSet(string)   {}

// NoopScenarioHooks is a no-op implementation of ScenarioHooks.
type NoopScenarioHooks struct{}

func (NoopScenarioHooks) OnRunStart(context.Context, string, int) {}
func (NoopScenarioHooks) OnRunComplete(context.Context, string, int, float64, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	graphHooks    GraphHooks    = NoopGraphHooks{}
	scenarioHooks ScenarioHooks = NoopScenarioHooks{}
	hooksMu       sync.RWMutex
)

// SetGraphHooks registers custom graph hooks.
// This should be called once at application startup before any graph is built.
func SetGraphHooks(h GraphHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		graphHooks = h
	}
}

// SetScenarioHooks registers custom scenario hooks.
func SetScenarioHooks(h ScenarioHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		scenarioHooks = h
	}
}

// Graph returns the registered graph hooks.
func Graph() GraphHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return graphHooks
}

// Scenario returns the registered scenario hooks.
func Scenario() ScenarioHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return scenarioHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	graphHooks = NoopGraphHooks{}
	scenarioHooks = NoopScenarioHooks{}
}
