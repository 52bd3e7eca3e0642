// README: Column-wise preprocessor combining the distance and time branches.
package features

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"farecast/internal/dataset"
)

// Preprocessor fans the cleaned dataset out into two branches and
// concatenates their outputs into one feature matrix:
//
//	distance: DistanceTransformer -> StandardScaler  (1 column)
//	time:     TimeFeaturesEncoder -> OneHotEncoder   (one column per category)
//
// Column layout is [scaled distance | one-hot time], fixed at fit time.
// Columns not consumed by either branch (passenger count, key) are dropped.
// Re-fitting replaces all learned state; it never merges with a previous fit.
type Preprocessor struct {
	Distance DistanceTransformer `json:"-"`
	Time     TimeFeaturesEncoder `json:"-"`
	Scaler   StandardScaler      `json:"scaler"`
	OneHot   OneHotEncoder       `json:"one_hot"`

	// Reference timezone name, persisted so a reloaded pipeline rebuilds
	// the same time branch.
	Timezone string `json:"timezone"`

	fitted bool
}

func NewPreprocessor(loc *time.Location) *Preprocessor {
	enc := NewTimeFeaturesEncoder(loc)
	return &Preprocessor{
		Time:     enc,
		Timezone: enc.Loc.String(),
	}
}

func (p *Preprocessor) Fit(ds *dataset.Dataset) error {
	p.fitted = false
	p.Scaler = StandardScaler{}
	p.OneHot = OneHotEncoder{}

	dist, err := p.Distance.Transform(ds)
	if err != nil {
		return fmt.Errorf("distance branch: %w", err)
	}
	if err := p.Scaler.Fit(dist); err != nil {
		return fmt.Errorf("distance branch: %w", err)
	}
	if err := p.OneHot.Fit(p.Time.Transform(ds)); err != nil {
		return fmt.Errorf("time branch: %w", err)
	}
	p.fitted = true
	return nil
}

func (p *Preprocessor) Transform(ds *dataset.Dataset) (*mat.Dense, error) {
	if !p.fitted {
		return nil, ErrNotFitted
	}
	dist, err := p.Distance.Transform(ds)
	if err != nil {
		return nil, fmt.Errorf("distance branch: %w", err)
	}
	scaled, err := p.Scaler.Transform(dist)
	if err != nil {
		return nil, fmt.Errorf("distance branch: %w", err)
	}
	encoded, err := p.OneHot.Transform(p.Time.Transform(ds))
	if err != nil {
		return nil, fmt.Errorf("time branch: %w", err)
	}

	rows := ds.Len()
	out := mat.NewDense(rows, 1+p.OneHot.Width(), nil)
	for i := 0; i < rows; i++ {
		out.Set(i, 0, scaled.At(i, 0))
		for j := 0; j < p.OneHot.Width(); j++ {
			out.Set(i, 1+j, encoded.At(i, j))
		}
	}
	return out, nil
}

// MarkFitted restores the fitted flag on a pipeline rebuilt from a
// persisted artifact, after its learned parameters have been loaded.
func (p *Preprocessor) MarkFitted() {
	p.fitted = p.Scaler.Mean != nil && p.OneHot.Categories != nil
}

// Fitted reports whether Fit has completed on this preprocessor.
func (p *Preprocessor) Fitted() bool { return p.fitted }
