package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestGroupMeans(t *testing.T) {
	p := mat.NewVecDense(6, []float64{0.9, 0.7, 0.8, 0.2, 0.4, 0.3})
	g := []float64{0, 0, 0, 1, 1, 1}

	r, err := GroupMeans(p, g)
	require.NoError(t, err)
	assert.Equal(t, 3, r.N0)
	assert.Equal(t, 3, r.N1)
	assert.InDelta(t, 0.8, r.Mean0, 1e-12)
	assert.InDelta(t, 0.3, r.Mean1, 1e-12)
	assert.InDelta(t, 0.5, r.Difference(), 1e-12)
	assert.InDelta(t, 0.375, r.Ratio(), 1e-12)

	d, err := GroupMeanDifference(p, g)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, d, 1e-12)

	ratio, err := DemographicParityRatio(p, g)
	require.NoError(t, err)
	assert.InDelta(t, 0.375, ratio, 1e-12)
}

func TestGroupMeansErrors(t *testing.T) {
	p := mat.NewVecDense(3, []float64{0.1, 0.2, 0.3})

	tests := []struct {
		name  string
		pred  *mat.VecDense
		group []float64
	}{
		{"nil predictions", nil, []float64{0, 1}},
		{"length mismatch", p, []float64{0, 1}},
		{"non-binary group", p, []float64{0, 1, 2}},
		{"single group", p, []float64{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GroupMeans(tt.pred, tt.group)
			assert.Error(t, err)
		})
	}
}

func TestRatioBothZero(t *testing.T) {
	assert.Equal(t, 1.0, GroupRates{}.Ratio())
}

func TestEqualOpportunityDifference(t *testing.T) {
	yTrue := mat.NewVecDense(6, []float64{1, 1, 0, 1, 1, 0})
	yPred := mat.NewVecDense(6, []float64{1, 1, 1, 1, 0, 0})
	g := []float64{0, 0, 0, 1, 1, 1}

	d, err := EqualOpportunityDifference(yTrue, yPred, g)
	require.NoError(t, err)
	// TPR0 = 1, TPR1 = 0.5
	assert.InDelta(t, 0.5, d, 1e-12)

	_, err = EqualOpportunityDifference(mat.NewVecDense(2, []float64{0, 0}), mat.NewVecDense(2, []float64{1, 0}), []float64{0, 1})
	assert.Error(t, err)
}
