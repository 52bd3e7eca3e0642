// README: Fitted pipeline combining the preprocessor and the regressor.
package model

import (
	"errors"
	"fmt"

	"farecast/internal/dataset"
	"farecast/internal/features"
)

var (
	ErrNotFitted   = errors.New("model not fitted")
	ErrRowMismatch = errors.New("feature rows and labels differ in length")
)

// Pipeline couples the feature preprocessor with the regressor into one
// fit/predict unit. The two are always persisted and reloaded together: a
// preprocessor from one fit paired with a regressor from another silently
// corrupts predictions, so they never travel separately.
type Pipeline struct {
	Pre *features.Preprocessor
	Reg *Forest
}

// Fit fits the preprocessor and the regressor jointly on the same rows.
func (p *Pipeline) Fit(ds *dataset.Dataset, y []float64) error {
	if ds.Len() != len(y) {
		return fmt.Errorf("%w: %d rows, %d labels", ErrRowMismatch, ds.Len(), len(y))
	}
	if err := p.Pre.Fit(ds); err != nil {
		return err
	}
	x, err := p.Pre.Transform(ds)
	if err != nil {
		return err
	}
	return p.Reg.Fit(x, y)
}

// Predict transforms the dataset with the already-fitted preprocessor and
// returns one fare prediction per row.
func (p *Pipeline) Predict(ds *dataset.Dataset) ([]float64, error) {
	if !p.Pre.Fitted() || len(p.Reg.Roots) == 0 {
		return nil, ErrNotFitted
	}
	x, err := p.Pre.Transform(ds)
	if err != nil {
		return nil, err
	}
	return p.Reg.Predict(x), nil
}
