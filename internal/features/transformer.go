// README: Fit/transform contract shared by all feature stages.
package features

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"farecast/internal/dataset"
)

var ErrNotFitted = errors.New("pipeline not fitted")

// Transformer turns a cleaned dataset into a block of numeric feature
// columns. Fit learns whatever parameters the stage needs; stateless stages
// implement it as a no-op. Transform must never mutate its input.
type Transformer interface {
	Fit(ds *dataset.Dataset) error
	Transform(ds *dataset.Dataset) (*mat.Dense, error)
}
