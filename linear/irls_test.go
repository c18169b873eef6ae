package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

func TestWeightedLeastSquares(t *testing.T) {
	X := mat.NewDense(5, 2, []float64{
		1, 0,
		1, 1,
		1, 2,
		1, 3,
		1, 4,
	})
	beta := []float64{0.5, -2}
	z := make([]float64, 5)
	for i := range z {
		z[i] = beta[0]*X.At(i, 0) + beta[1]*X.At(i, 1)
	}

	t.Run("exact fit", func(t *testing.T) {
		got, err := WeightedLeastSquares(X, []float64{1, 2, 3, 4, 5}, z, nil)
		require.NoError(t, err)
		assert.InDeltaSlice(t, beta, got, 1e-10)
	})

	t.Run("penalty shrinks", func(t *testing.T) {
		w := []float64{1, 1, 1, 1, 1}
		got, err := WeightedLeastSquares(X, w, z, []float64{0, 10})
		require.NoError(t, err)
		assert.Less(t, -got[1], -beta[1])
	})

	tests := []struct {
		name    string
		w, z    []float64
		penalty []float64
		target  error
	}{
		{name: "weights length", w: []float64{1}, z: z},
		{name: "response length", w: []float64{1, 1, 1, 1, 1}, z: []float64{1}},
		{name: "penalty length", w: []float64{1, 1, 1, 1, 1}, z: z, penalty: []float64{1}},
		{name: "negative weight", w: []float64{1, -1, 1, 1, 1}, z: z},
		{name: "all zero weights", w: make([]float64, 5), z: z, target: errors.ErrSingularMatrix},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WeightedLeastSquares(X, tt.w, tt.z, tt.penalty)
			require.Error(t, err)
			if tt.target != nil {
				assert.True(t, errors.Is(err, tt.target), "got %v", err)
			}
		})
	}
}

func TestFitIRLS(t *testing.T) {
	ds := synthetic(t, 300, []float64{-0.5, 1, 2}, 21)

	res, err := FitIRLS(ds.X, ds.Y, true, 0)
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Less(t, res.Iterations, 20)
	require.Len(t, res.Coefficients, 3)
	// loose recovery of the generating coefficients
	assert.InDelta(t, -0.5, res.Coefficients[0], 0.5)
	assert.InDelta(t, 1, res.Coefficients[1], 0.5)
	assert.InDelta(t, 2, res.Coefficients[2], 0.7)

	noInt, err := FitIRLS(ds.X, ds.Y, false, 1)
	require.NoError(t, err)
	assert.Len(t, noInt.Coefficients, 2)

	_, err = FitIRLS(ds.X, ds.Y, true, -1)
	assert.Error(t, err)
	_, err = FitIRLS(&mat.Dense{}, &mat.Dense{}, true, 0)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}
