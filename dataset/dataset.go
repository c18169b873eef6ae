// Package dataset loads and generates the labelled tabular data that the
// estimators are fitted on.
package dataset

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// Dataset is a design matrix with binary labels and an optional binary group.
type Dataset struct {
	X            *mat.Dense
	Y            *mat.VecDense
	Group        []float64 // nil when no group column was selected
	FeatureNames []string
}

// Rows returns the number of samples.
func (d *Dataset) Rows() int {
	r, _ := d.X.Dims()
	return r
}

// Features returns the number of feature columns.
func (d *Dataset) Features() int {
	_, c := d.X.Dims()
	return c
}

// Validate checks that all parts agree in size and Y and Group are binary.
func (d *Dataset) Validate() error {
	if d.X == nil || d.Y == nil {
		return errors.NewModelError("Dataset.Validate", "missing X or Y", errors.ErrEmptyData)
	}
	r, c := d.X.Dims()
	if d.Y.Len() != r {
		return errors.NewDimensionError("Dataset.Validate", r, d.Y.Len(), 0)
	}
	if d.Group != nil && len(d.Group) != r {
		return errors.NewDimensionError("Dataset.Validate", r, len(d.Group), 0)
	}
	if len(d.FeatureNames) != c {
		return errors.NewDimensionError("Dataset.Validate", c, len(d.FeatureNames), 1)
	}
	for i := 0; i < r; i++ {
		if v := d.Y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValidationError("y", "labels must be 0 or 1", v)
		}
	}
	for _, g := range d.Group {
		if g != 0 && g != 1 {
			return errors.NewValidationError("group", "group must be binary 0/1", g)
		}
	}
	return nil
}

// PositiveRate returns the share of rows with y = 1, overall and per group.
// The per-group rates are zero without a group.
func (d *Dataset) PositiveRate() (all, group0, group1 float64) {
	var n0, n1, p0, p1 float64
	for i := 0; i < d.Y.Len(); i++ {
		y := d.Y.AtVec(i)
		all += y
		if d.Group == nil {
			continue
		}
		if d.Group[i] == 1 {
			n1++
			p1 += y
		} else {
			n0++
			p0 += y
		}
	}
	all /= float64(d.Y.Len())
	if n0 > 0 {
		group0 = p0 / n0
	}
	if n1 > 0 {
		group1 = p1 / n1
	}
	return all, group0, group1
}

func defaultNames(n int) []string {
	names := make([]string, n)
	for j := range names {
		names[j] = "x" + strconv.Itoa(j+1)
	}
	return names
}
