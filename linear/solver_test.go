package linear

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
	"github.com/YuminosukeSato/adiscriminator/pkg/log"
)

// bowl is ½‖θ‖² with an optional broken gradient.
type bowl struct {
	nanGrad bool
}

func (b bowl) Cost(theta []float64) float64 {
	var s float64
	for _, v := range theta {
		s += v * v
	}
	return s / 2
}

func (b bowl) Grad(grad, theta []float64) {
	copy(grad, theta)
	if b.nanGrad {
		grad[len(grad)-1] = math.NaN()
	}
}

func TestMinimize(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelError)
	settings := solverSettings{method: MethodLBFGS, maxIter: 100, tol: 1e-8}

	theta, diag, err := minimize(context.Background(), bowl{}, []float64{1, -2}, settings, logger)
	require.NoError(t, err)
	assert.True(t, diag.Converged)
	assert.InDeltaSlice(t, []float64{0, 0}, theta, 1e-6)
}

func TestMinimize_NonFiniteGradient(t *testing.T) {
	logger, _ := log.NewTestLogger(log.LevelError)
	settings := solverSettings{method: MethodLBFGS, maxIter: 100, tol: 1e-8}

	theta, _, err := minimize(context.Background(), bowl{nanGrad: true}, []float64{1, -2}, settings, logger)
	require.Error(t, err)
	assert.Nil(t, theta)

	var nie *errors.NumericalInstabilityError
	require.True(t, errors.As(err, &nie), "got %v", err)
	assert.Equal(t, "gradient", nie.Operation)
	assert.Equal(t, 1, nie.Iteration)

	var ce *errors.ConvergenceError
	assert.False(t, errors.As(err, &ce))
}
