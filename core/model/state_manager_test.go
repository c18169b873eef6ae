package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerr "github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

func TestStateManager_Lifecycle(t *testing.T) {
	s := NewStateManager()
	assert.Equal(t, Unfit, s.State())

	err := s.RequireFitted("LogisticRegression", "Predict")
	var nf *scerr.NotFittedError
	require.True(t, scerr.As(err, &nf))

	require.NoError(t, s.BeginFit("LogisticRegression"))
	assert.Equal(t, Fitting, s.State())
	assert.Error(t, s.BeginFit("LogisticRegression"), "second fit while fitting")

	s.Finish(3, 100)
	assert.True(t, s.IsFitted())
	assert.NoError(t, s.RequireFitted("LogisticRegression", "Predict"))
	nFeatures, nSamples := s.GetDimensions()
	assert.Equal(t, 3, nFeatures)
	assert.Equal(t, 100, nSamples)

	err = s.BeginFit("LogisticRegression")
	var me *scerr.ModelError
	assert.True(t, scerr.As(err, &me), "refit of a fitted model is rejected")

	s.Reset()
	assert.Equal(t, Unfit, s.State())
	assert.Equal(t, ModelState{State: "unfit"}, s.GetState())
}

func TestStateManager_Fail(t *testing.T) {
	s := NewStateManager()
	require.NoError(t, s.BeginFit("LogisticRegression"))

	cause := scerr.NewNumericalInstabilityError("cost", []float64{0}, 1)
	s.Fail(cause)

	assert.Equal(t, Failed, s.State())
	assert.Equal(t, "failed", s.State().String())
	assert.Same(t, cause, s.Err())
	assert.Error(t, s.RequireFitted("LogisticRegression", "Predict"))
}

func TestStateManager_ResetWhileFitting(t *testing.T) {
	s := NewStateManager()
	require.NoError(t, s.BeginFit("m"))
	s.Reset()
	assert.Equal(t, Fitting, s.State())
}

func TestStateManager_Abort(t *testing.T) {
	s := NewStateManager()
	require.NoError(t, s.BeginFit("m"))
	s.Abort()
	assert.Equal(t, Unfit, s.State())
	assert.NoError(t, s.Err())

	require.NoError(t, s.BeginFit("m"))
	s.Finish(1, 1)
	s.Abort()
	assert.Equal(t, Fitted, s.State(), "abort only affects a fit in progress")
}

func TestStateManager_ConcurrentBeginFit(t *testing.T) {
	s := NewStateManager()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.BeginFit("m") == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestStateManager_Restore(t *testing.T) {
	s := NewStateManager()
	require.NoError(t, s.Restore("m", 4, 0))
	assert.True(t, s.IsFitted())
	assert.Error(t, s.Restore("m", 4, 0))
}

func TestBaseEstimator(t *testing.T) {
	a := NewBaseEstimator("LogisticRegression")
	b := NewBaseEstimator("LogisticRegression")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.IsFitted())

	var zero BaseEstimator
	assert.NotNil(t, zero.State())
}
