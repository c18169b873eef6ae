package linear

import (
	"context"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/YuminosukeSato/adiscriminator/objective"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
	"github.com/YuminosukeSato/adiscriminator/pkg/log"
)

// Diagnostics describes how an optimiser run ended.
type Diagnostics struct {
	Converged       bool
	Status          string
	Method          string
	Iterations      int
	FuncEvaluations int
	GradEvaluations int
	Cost            float64
	GradNorm        float64
	CostHistory     []float64
	Runtime         time.Duration
}

type solverSettings struct {
	method  Method
	maxIter int
	tol     float64
}

func (s solverSettings) optimizer() (optimize.Method, error) {
	switch s.method {
	case MethodLBFGS, "":
		return &optimize.LBFGS{}, nil
	case MethodBFGS:
		return &optimize.BFGS{}, nil
	case MethodCG:
		return &optimize.CG{}, nil
	case MethodGradientDescent:
		return &optimize.GradientDescent{}, nil
	default:
		return nil, errors.NewValidationError("method", "unknown optimiser", string(s.method))
	}
}

func converged(status optimize.Status) bool {
	switch status {
	case optimize.Success,
		optimize.FunctionThreshold,
		optimize.FunctionConvergence,
		optimize.GradientThreshold,
		optimize.StepConvergence,
		optimize.MethodConverge:
		return true
	}
	return false
}

// progressRecorder implements optimize.Recorder. It collects the cost
// after each major iteration and stops the run when ctx is done.
type progressRecorder struct {
	ctx     context.Context
	logger  log.Logger
	debug   bool
	history []float64
}

func (r *progressRecorder) Init() error {
	r.debug = r.logger.Enabled(r.ctx, log.LevelDebug)
	return nil
}

func (r *progressRecorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if err := r.ctx.Err(); err != nil {
		return errors.Wrap(err, "fit cancelled")
	}
	if op != optimize.MajorIteration {
		return nil
	}
	r.history = append(r.history, loc.F)
	if r.debug {
		r.logger.Debug("iteration",
			log.IterationKey, stats.MajorIterations,
			log.LossKey, loc.F,
			log.GradNormKey, floats.Norm(loc.Gradient, math.Inf(1)),
		)
	}
	return nil
}

// finiteGuard wraps f and remembers the first non-finite cost or gradient.
type finiteGuard struct {
	f     objective.Function
	evals int
	err   error
}

func (g *finiteGuard) cost(x []float64) float64 {
	g.evals++
	v := g.f.Cost(x)
	if g.err == nil {
		g.err = errors.CheckScalar("cost", v, g.evals)
	}
	return v
}

func (g *finiteGuard) grad(grad, x []float64) {
	g.f.Grad(grad, x)
	if g.err == nil {
		g.err = errors.CheckNumericalStability("gradient", grad, g.evals)
	}
}

func (g *finiteGuard) status() (optimize.Status, error) {
	if g.err != nil {
		return optimize.Failure, g.err
	}
	return optimize.NotTerminated, nil
}

// minimize runs the configured gonum method on f from x0.
//
// A run that stops without converging returns θ, diagnostics and a
// *errors.ConvergenceError. Non-finite values return a
// *errors.NumericalInstabilityError, cancellation returns the context
// error; in both cases θ is nil.
func minimize(ctx context.Context, f objective.Function, x0 []float64, s solverSettings, logger log.Logger) ([]float64, Diagnostics, error) {
	method, err := s.optimizer()
	if err != nil {
		return nil, Diagnostics{}, err
	}

	guard := &finiteGuard{f: f}
	problem := optimize.Problem{
		Func:   guard.cost,
		Grad:   guard.grad,
		Status: guard.status,
	}
	recorder := &progressRecorder{ctx: ctx, logger: logger}
	settings := &optimize.Settings{
		GradientThreshold: s.tol,
		MajorIterations:   s.maxIter,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-14,
			Relative:   1e-14,
			Iterations: 50,
		},
		Recorder: recorder,
	}

	result, err := optimize.Minimize(problem, x0, settings, method)
	if guard.err != nil {
		return nil, Diagnostics{}, guard.err
	}
	if err != nil && ctx.Err() != nil {
		return nil, Diagnostics{}, errors.Wrap(ctx.Err(), "fit cancelled")
	}
	if result == nil {
		if err == nil {
			err = errors.New("optimizer returned no result")
		}
		return nil, Diagnostics{}, errors.NewModelError("minimize", "optimizer failed", err)
	}

	diag := Diagnostics{
		Converged:       err == nil && converged(result.Status),
		Status:          result.Status.String(),
		Method:          string(s.method),
		Iterations:      result.MajorIterations,
		FuncEvaluations: result.FuncEvaluations,
		GradEvaluations: result.GradEvaluations,
		Cost:            result.F,
		CostHistory:     recorder.history,
		Runtime:         result.Runtime,
	}
	if result.Gradient != nil {
		diag.GradNorm = floats.Norm(result.Gradient, math.Inf(1))
	}
	if diag.Method == "" {
		diag.Method = string(MethodLBFGS)
	}

	theta := append([]float64(nil), result.X...)
	if err := errors.CheckNumericalStability("coefficients", theta, guard.evals); err != nil {
		return nil, diag, err
	}
	if !diag.Converged {
		return theta, diag, errors.NewConvergenceError(diag.Method, diag.Status, diag.Iterations, diag.Cost, err)
	}
	return theta, diag, nil
}
