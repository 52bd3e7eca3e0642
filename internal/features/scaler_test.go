package features

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestScalerCentersAndScales(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{2, 4, 6, 8})
	var s StandardScaler
	if err := s.Fit(x); err != nil {
		t.Fatal(err)
	}
	if s.Mean[0] != 5 {
		t.Errorf("mean = %v, want 5", s.Mean[0])
	}

	out, err := s.Transform(x)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for i := 0; i < 4; i++ {
		sum += out.At(i, 0)
	}
	if math.Abs(sum) > 1e-12 {
		t.Errorf("scaled column sum = %v, want 0", sum)
	}
}

func TestScalerConstantColumn(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{7, 7, 7})
	var s StandardScaler
	if err := s.Fit(x); err != nil {
		t.Fatal(err)
	}
	out, err := s.Transform(x)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if out.At(i, 0) != 0 {
			t.Errorf("constant column scaled to %v, want 0", out.At(i, 0))
		}
	}
}

func TestScalerUnfitted(t *testing.T) {
	var s StandardScaler
	if _, err := s.Transform(mat.NewDense(1, 1, []float64{1})); !errors.Is(err, ErrNotFitted) {
		t.Errorf("got %v, want ErrNotFitted", err)
	}
}

func TestScalerFrozenAfterFit(t *testing.T) {
	train := mat.NewDense(3, 1, []float64{0, 5, 10})
	var s StandardScaler
	if err := s.Fit(train); err != nil {
		t.Fatal(err)
	}
	mean, std := s.Mean[0], s.Std[0]

	// Transforming different data must not move the learned statistics.
	if _, err := s.Transform(mat.NewDense(2, 1, []float64{100, 200})); err != nil {
		t.Fatal(err)
	}
	if s.Mean[0] != mean || s.Std[0] != std {
		t.Error("transform mutated learned statistics")
	}
}
