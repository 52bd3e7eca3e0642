// README: One-hot encoding with open-category tolerance for unseen values.
package features

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// OneHotEncoder learns the distinct categories of each input column at fit
// time and freezes them. A category never seen during fit encodes as an
// all-zero vector instead of failing, so a new hour/weekday combination at
// inference never crashes the service.
type OneHotEncoder struct {
	// Categories[j] holds the sorted distinct values of column j.
	Categories [][]string `json:"categories"`
}

func (e *OneHotEncoder) Fit(values [][]string) error {
	if len(values) == 0 {
		return fmt.Errorf("one-hot fit: no rows")
	}
	cols := len(values[0])
	seen := make([]map[string]struct{}, cols)
	for j := range seen {
		seen[j] = make(map[string]struct{})
	}
	for _, row := range values {
		if len(row) != cols {
			return fmt.Errorf("one-hot fit: ragged row of %d values, want %d", len(row), cols)
		}
		for j, v := range row {
			seen[j][v] = struct{}{}
		}
	}
	e.Categories = make([][]string, cols)
	for j, set := range seen {
		cats := make([]string, 0, len(set))
		for v := range set {
			cats = append(cats, v)
		}
		sort.Strings(cats)
		e.Categories[j] = cats
	}
	return nil
}

func (e *OneHotEncoder) Transform(values [][]string) (*mat.Dense, error) {
	if e.Categories == nil {
		return nil, ErrNotFitted
	}
	width := 0
	for _, cats := range e.Categories {
		width += len(cats)
	}
	out := mat.NewDense(len(values), width, nil)
	for i, row := range values {
		if len(row) != len(e.Categories) {
			return nil, fmt.Errorf("one-hot transform: got %d columns, fitted on %d", len(row), len(e.Categories))
		}
		offset := 0
		for j, v := range row {
			cats := e.Categories[j]
			if k := sort.SearchStrings(cats, v); k < len(cats) && cats[k] == v {
				out.Set(i, offset+k, 1)
			}
			offset += len(cats)
		}
	}
	return out, nil
}

// Width is the number of output columns once fitted.
func (e *OneHotEncoder) Width() int {
	w := 0
	for _, cats := range e.Categories {
		w += len(cats)
	}
	return w
}
