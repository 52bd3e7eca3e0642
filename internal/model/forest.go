// README: Random-forest regressor built from bootstrap-sampled trees.
package model

import (
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Regressor is the learning unit behind the feature pipeline.
type Regressor interface {
	Fit(x *mat.Dense, y []float64) error
	Predict(x *mat.Dense) []float64
}

// ForestConfig controls forest shape. The zero value is unusable; use
// DefaultForestConfig.
type ForestConfig struct {
	Trees      int   `json:"trees" yaml:"trees"`
	MaxDepth   int   `json:"max_depth" yaml:"max_depth"`
	MinSamples int   `json:"min_samples" yaml:"min_samples"`
	Seed       int64 `json:"seed" yaml:"seed"`
}

func DefaultForestConfig() ForestConfig {
	return ForestConfig{Trees: 50, MaxDepth: 10, MinSamples: 2, Seed: 1}
}

// Forest averages the predictions of bootstrap-sampled regression trees.
// Training is deterministic for a fixed config: all randomness flows from
// the configured seed.
type Forest struct {
	Config ForestConfig `json:"config"`
	Roots  []*treeNode  `json:"roots"`

	// Progress, when set, is called after each tree finishes fitting.
	Progress func(done, total int) `json:"-"`
}

func NewForest(cfg ForestConfig) *Forest {
	return &Forest{Config: cfg}
}

type treeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Value     float64   `json:"value"`
	IsLeaf    bool      `json:"is_leaf"`
}

func (f *Forest) Fit(x *mat.Dense, y []float64) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return fmt.Errorf("forest fit: no training rows")
	}
	if rows != len(y) {
		return fmt.Errorf("forest fit: %d feature rows, %d labels", rows, len(y))
	}

	rng := rand.New(rand.NewSource(f.Config.Seed))
	// Feature subsampling per split, the usual p/3 heuristic for regression.
	mtry := cols / 3
	if mtry < 1 {
		mtry = 1
	}

	f.Roots = make([]*treeNode, f.Config.Trees)
	for t := 0; t < f.Config.Trees; t++ {
		sampleX := make([][]float64, rows)
		sampleY := make([]float64, rows)
		for i := 0; i < rows; i++ {
			k := rng.Intn(rows)
			sampleX[i] = x.RawRowView(k)
			sampleY[i] = y[k]
		}
		f.Roots[t] = buildTree(sampleX, sampleY, 0, f.Config, mtry, rng)
		if f.Progress != nil {
			f.Progress(t+1, f.Config.Trees)
		}
	}
	return nil
}

func (f *Forest) Predict(x *mat.Dense) []float64 {
	rows, _ := x.Dims()
	out := make([]float64, rows)
	if len(f.Roots) == 0 {
		return out
	}
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		sum := 0.0
		for _, root := range f.Roots {
			sum += predictTree(root, row)
		}
		out[i] = sum / float64(len(f.Roots))
	}
	return out
}

func buildTree(x [][]float64, y []float64, depth int, cfg ForestConfig, mtry int, rng *rand.Rand) *treeNode {
	if depth >= cfg.MaxDepth || len(y) < cfg.MinSamples || isConstant(y) {
		return &treeNode{IsLeaf: true, Value: mean(y)}
	}

	feature, threshold, gain := bestSplit(x, y, mtry, rng)
	if gain <= 0 {
		return &treeNode{IsLeaf: true, Value: mean(y)}
	}

	lx, ly, rx, ry := partition(x, y, feature, threshold)
	if len(ly) == 0 || len(ry) == 0 {
		return &treeNode{IsLeaf: true, Value: mean(y)}
	}
	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(lx, ly, depth+1, cfg, mtry, rng),
		Right:     buildTree(rx, ry, depth+1, cfg, mtry, rng),
	}
}

var splitQuantiles = []float64{0.25, 0.5, 0.75}

// bestSplit searches a random feature subset for the threshold with the
// largest variance reduction, trying the quartiles of each feature.
func bestSplit(x [][]float64, y []float64, mtry int, rng *rand.Rand) (int, float64, float64) {
	cols := len(x[0])
	bestFeature, bestThreshold, bestGain := 0, 0.0, 0.0
	parent := variance(y)

	values := make([]float64, len(x))
	for _, feature := range rng.Perm(cols)[:mtry] {
		for i, row := range x {
			values[i] = row[feature]
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		for _, q := range splitQuantiles {
			threshold := stat.Quantile(q, stat.Empirical, sorted, nil)
			_, ly, _, ry := partition(x, y, feature, threshold)
			if len(ly) == 0 || len(ry) == 0 {
				continue
			}
			lw := float64(len(ly)) / float64(len(y))
			rw := float64(len(ry)) / float64(len(y))
			gain := parent - (lw*variance(ly) + rw*variance(ry))
			if gain > bestGain {
				bestFeature, bestThreshold, bestGain = feature, threshold, gain
			}
		}
	}
	return bestFeature, bestThreshold, bestGain
}

func partition(x [][]float64, y []float64, feature int, threshold float64) ([][]float64, []float64, [][]float64, []float64) {
	var lx, rx [][]float64
	var ly, ry []float64
	for i, row := range x {
		if row[feature] <= threshold {
			lx = append(lx, row)
			ly = append(ly, y[i])
		} else {
			rx = append(rx, row)
			ry = append(ry, y[i])
		}
	}
	return lx, ly, rx, ry
}

func predictTree(node *treeNode, row []float64) float64 {
	for !node.IsLeaf {
		if row[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

func isConstant(y []float64) bool {
	for _, v := range y {
		if v != y[0] {
			return false
		}
	}
	return true
}

func mean(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range y {
		sum += v
	}
	return sum / float64(len(y))
}

func variance(y []float64) float64 {
	if len(y) < 2 {
		return 0
	}
	m := mean(y)
	ss := 0.0
	for _, v := range y {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(y))
}
