// Package model provides the estimator lifecycle, shared interfaces and
// weight serialisation used by the estimators in this module.
package model

import (
	"sync"

	scerr "github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// Lifecycle is the fit state of an estimator.
type Lifecycle int

const (
	// Unfit は学習前の状態
	Unfit Lifecycle = iota
	// Fitting は学習中の状態
	Fitting
	// Fitted は学習済みの状態（収束しなかった場合も含む）
	Fitted
	// Failed は学習が数値エラー等で失敗した状態
	Failed
)

func (l Lifecycle) String() string {
	switch l {
	case Unfit:
		return "unfit"
	case Fitting:
		return "fitting"
	case Fitted:
		return "fitted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// StateManager tracks the lifecycle of a model in a thread-safe manner.
// A model moves Unfit -> Fitting -> Fitted | Failed exactly once; Reset
// returns it to Unfit.
type StateManager struct {
	mu sync.RWMutex

	state   Lifecycle
	lastErr error

	NFeatures int
	NSamples  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{state: Unfit}
}

// State returns the current lifecycle state.
func (s *StateManager) State() Lifecycle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	return s.State() == Fitted
}

// BeginFit moves Unfit to Fitting. Any other state is an error, so a
// second concurrent Fit on the same model is rejected.
func (s *StateManager) BeginFit(modelName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Unfit {
		return scerr.NewModelError(modelName+".Fit", "invalid state",
			scerr.Newf("model is %s; create a new estimator or call Reset()", s.state))
	}
	s.state = Fitting
	s.lastErr = nil
	return nil
}

// Finish moves Fitting to Fitted and records the training shape.
func (s *StateManager) Finish(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Fitted
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// Fail moves Fitting to Failed and records the cause.
func (s *StateManager) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Failed
	s.lastErr = err
}

// Err returns the error that failed the last fit, if any.
func (s *StateManager) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Reset returns the model to Unfit. It is a no-op while fitting.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Fitting {
		return
	}
	s.state = Unfit
	s.lastErr = nil
	s.NFeatures = 0
	s.NSamples = 0
}

// GetDimensions returns the number of features and samples seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples
}

// RequireFitted returns a NotFittedError unless the model is Fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return scerr.NewNotFittedError(modelName, method)
	}
	return nil
}

// ModelState is a serialisable snapshot of a StateManager.
type ModelState struct {
	State     string `json:"state"`
	NFeatures int    `json:"n_features,omitempty"`
	NSamples  int    `json:"n_samples,omitempty"`
}

// GetState returns the current state as a ModelState.
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ModelState{
		State:     s.state.String(),
		NFeatures: s.NFeatures,
		NSamples:  s.NSamples,
	}
}

// Restore marks a model Fitted from imported weights. It fails unless the
// model is Unfit.
func (s *StateManager) Restore(modelName string, nFeatures, nSamples int) error {
	if err := s.BeginFit(modelName); err != nil {
		return err
	}
	s.Finish(nFeatures, nSamples)
	return nil
}

// Abort moves Fitting back to Unfit, for fits rejected by input
// validation before any computation.
func (s *StateManager) Abort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Fitting {
		s.state = Unfit
	}
}
