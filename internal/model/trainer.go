// README: Trainer state machine: build, fit, evaluate, save.
package model

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"farecast/internal/dataset"
	"farecast/internal/features"
	"farecast/internal/tracking"
)

var ErrState = errors.New("invalid trainer state")

type State int

const (
	StateUninitialized State = iota
	StateBuilt
	StateFitted
	StateEvaluated
)

// Saver persists a fitted pipeline. Implemented by the artifact stores.
type Saver interface {
	Save(ctx context.Context, p *Pipeline) error
}

// Trainer owns the pipeline from construction until it is persisted. It is
// single-owner: callers must not drive state transitions concurrently.
type Trainer struct {
	state    State
	pipeline *Pipeline

	forestCfg ForestConfig
	loc       *time.Location

	tracker tracking.Tracker
	runID   string
}

// NewTrainer wires a trainer with an explicit tracking handle; pass
// tracking.Nop{} when no collaborator is configured.
func NewTrainer(cfg ForestConfig, loc *time.Location, tracker tracking.Tracker) *Trainer {
	if tracker == nil {
		tracker = tracking.Nop{}
	}
	return &Trainer{forestCfg: cfg, loc: loc, tracker: tracker}
}

func (t *Trainer) State() State        { return t.state }
func (t *Trainer) Pipeline() *Pipeline { return t.pipeline }
func (t *Trainer) RunID() string       { return t.runID }

// Build assembles a fresh unfitted pipeline. Calling it again discards any
// previously learned state.
func (t *Trainer) Build() {
	t.pipeline = &Pipeline{
		Pre: features.NewPreprocessor(t.loc),
		Reg: NewForest(t.forestCfg),
	}
	t.runID = uuid.NewString()
	t.state = StateBuilt
}

// WithProgress registers a per-tree progress callback on the regressor.
// Must be called after Build.
func (t *Trainer) WithProgress(fn func(done, total int)) {
	if t.pipeline != nil {
		t.pipeline.Reg.Progress = fn
	}
}

func (t *Trainer) Fit(ds *dataset.Dataset, y []float64) error {
	if t.state < StateBuilt {
		return fmt.Errorf("%w: fit before build", ErrState)
	}
	if err := t.pipeline.Fit(ds, y); err != nil {
		return err
	}
	t.state = StateFitted
	t.logParams(ds.Len())
	return nil
}

// Evaluate predicts the held-out rows with the already-fitted pipeline and
// reports RMSE and MAE. Metric logging is best-effort: a tracking failure is
// logged and training continues.
func (t *Trainer) Evaluate(ds *dataset.Dataset, y []float64) (Metrics, error) {
	if t.state < StateFitted {
		return Metrics{}, ErrNotFitted
	}
	if ds.Len() != len(y) {
		return Metrics{}, fmt.Errorf("%w: %d rows, %d labels", ErrRowMismatch, ds.Len(), len(y))
	}
	pred, err := t.pipeline.Predict(ds)
	if err != nil {
		return Metrics{}, err
	}
	m := computeMetrics(pred, y)
	t.logMetric("rmse", m.RMSE)
	t.logMetric("mae", m.MAE)
	t.state = StateEvaluated
	return m, nil
}

// Save persists the fitted pipeline as one unit.
func (t *Trainer) Save(ctx context.Context, store Saver) error {
	if t.state < StateFitted {
		return ErrNotFitted
	}
	return store.Save(ctx, t.pipeline)
}

func (t *Trainer) logParams(nrows int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	params := map[string]string{
		"model":      "random_forest",
		"trees":      strconv.Itoa(t.forestCfg.Trees),
		"max_depth":  strconv.Itoa(t.forestCfg.MaxDepth),
		"train_rows": strconv.Itoa(nrows),
	}
	for k, v := range params {
		if err := t.tracker.LogParam(ctx, t.runID, k, v); err != nil {
			log.Printf("tracking: log param %s: %v", k, err)
		}
	}
}

func (t *Trainer) logMetric(name string, v float64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.tracker.LogMetric(ctx, t.runID, name, v); err != nil {
		log.Printf("tracking: log metric %s: %v", name, err)
	}
}
