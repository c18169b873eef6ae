package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/core/parallel"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// WeightedLeastSquares solves the penalised weighted normal equations
//
//	(XᵀWX + diag(penalty)) β = XᵀWz
//
// by Cholesky factorisation. w must be non-negative; penalty may be nil.
func WeightedLeastSquares(X mat.Matrix, w, z, penalty []float64) ([]float64, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("WeightedLeastSquares", "empty data", errors.ErrEmptyData)
	}
	if len(w) != r {
		return nil, errors.NewDimensionError("WeightedLeastSquares", r, len(w), 0)
	}
	if len(z) != r {
		return nil, errors.NewDimensionError("WeightedLeastSquares", r, len(z), 0)
	}
	if penalty != nil && len(penalty) != c {
		return nil, errors.NewDimensionError("WeightedLeastSquares", c, len(penalty), 1)
	}

	for _, wi := range w {
		if wi < 0 || math.IsNaN(wi) {
			return nil, errors.NewValidationError("w", "weights must be non-negative", wi)
		}
	}

	// rows of √W·X and W·z
	sqrtWX := mat.NewDense(r, c, nil)
	wz := mat.NewVecDense(r, nil)
	parallel.Rows(r, func(i int) {
		sw := math.Sqrt(w[i])
		row := sqrtWX.RawRowView(i)
		for j := range row {
			row[j] = sw * X.At(i, j)
		}
		wz.SetVec(i, w[i]*z[i])
	})

	// XᵀWX
	var a mat.SymDense
	a.SymOuterK(1, sqrtWX.T())
	for j, pj := range penalty {
		a.SetSym(j, j, a.At(j, j)+pj)
	}

	var xtwz mat.VecDense
	xtwz.MulVec(X.T(), wz)

	var chol mat.Cholesky
	if ok := chol.Factorize(&a); !ok {
		return nil, errors.NewModelError("WeightedLeastSquares", "singular matrix", errors.ErrSingularMatrix)
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xtwz); err != nil {
		return nil, errors.NewModelError("WeightedLeastSquares", "ill-conditioned system", err)
	}
	return append([]float64(nil), beta.RawVector().Data...), nil
}
