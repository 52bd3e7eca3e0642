// README: Experiment tracking contract; failures never abort training.
package tracking

import "context"

// Tracker records named parameters and metrics against a run identifier.
// Implementations are best-effort collaborators: callers log and continue
// when a call fails.
type Tracker interface {
	LogParam(ctx context.Context, runID, key, value string) error
	LogMetric(ctx context.Context, runID, key string, value float64) error
}

// Nop discards everything. Used in tests and offline runs.
type Nop struct{}

func (Nop) LogParam(context.Context, string, string, string) error   { return nil }
func (Nop) LogMetric(context.Context, string, string, float64) error { return nil }
