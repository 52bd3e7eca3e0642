// README: Zero-mean unit-variance scaling with statistics frozen at fit time.
package features

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler learns per-column mean and standard deviation at fit time
// and applies (x - mean) / std thereafter. A constant column (std 0) maps to
// zero rather than dividing by zero.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func (s *StandardScaler) Fit(x *mat.Dense) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return fmt.Errorf("scaler fit: empty matrix")
	}
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		s.Mean[j], s.Std[j] = stat.MeanStdDev(col, nil)
	}
	return nil
}

func (s *StandardScaler) Transform(x *mat.Dense) (*mat.Dense, error) {
	if s.Mean == nil {
		return nil, ErrNotFitted
	}
	rows, cols := x.Dims()
	if cols != len(s.Mean) {
		return nil, fmt.Errorf("scaler transform: got %d columns, fitted on %d", cols, len(s.Mean))
	}
	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := x.At(i, j) - s.Mean[j]
			if s.Std[j] > 0 {
				v /= s.Std[j]
			} else {
				v = 0
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}
