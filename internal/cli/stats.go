package cli

import (
	"context"
	"time"

	"github.com/matzehuels/compgraph/pkg/observability"
)

// runStats collects graph counters per scenario run. It is registered as
// both graph and scenario hooks; the counter is reset when a run starts and
// snapshotted when it completes.
type runStats struct {
	observability.Counter
	runs map[int]observability.CounterSnapshot
}

func newRunStats() *runStats {
	return &runStats{runs: make(map[int]observability.CounterSnapshot)}
}

func (s *runStats) OnRunStart(context.Context, string, int) {
	s.Reset()
}

func (s *runStats) OnRunComplete(_ context.Context, _ string, run int, _ float64, _ time.Duration, _ error) {
	s.runs[run] = s.Snapshot()
}

// register installs s as the global graph and scenario hooks and returns a
// function restoring the defaults.
func (s *runStats) register() func() {
	observability.SetGraphHooks(s)
	observability.SetScenarioHooks(s)
	return observability.Reset
}

var (
	_ observability.GraphHooks    = (*runStats)(nil)
	_ observability.ScenarioHooks = (*runStats)(nil)
)
