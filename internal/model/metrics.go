// README: Regression quality measures.
package model

import "math"

// Metrics holds the scalar quality measures of one evaluation. Computed once
// per Evaluate call and read-only afterward.
type Metrics struct {
	RMSE float64
	MAE  float64
}

func computeMetrics(pred, actual []float64) Metrics {
	n := float64(len(actual))
	var ss, abs float64
	for i := range actual {
		d := pred[i] - actual[i]
		ss += d * d
		abs += math.Abs(d)
	}
	return Metrics{
		RMSE: math.Sqrt(ss / n),
		MAE:  abs / n,
	}
}
