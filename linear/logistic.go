package linear

import (
	"context"
	"fmt"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/core/model"
	"github.com/YuminosukeSato/adiscriminator/core/parallel"
	"github.com/YuminosukeSato/adiscriminator/objective"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
	"github.com/YuminosukeSato/adiscriminator/pkg/log"
	"github.com/YuminosukeSato/adiscriminator/preprocessing"
)

const modelName = "LogisticRegression"

// LogisticRegression is a binary classifier fitted by minimising the mean
// log-loss with an optional ridge penalty and an optional penalty on the
// difference in mean predicted probability between two groups.
//
// Configuration is fixed at construction. A model is fitted once; use a
// new instance (or Reset) to refit.
type LogisticRegression struct {
	model.BaseEstimator

	fitIntercept      bool
	standardise       bool
	regularisation    Regularisation
	lambda            float64
	penaliseIntercept *bool
	group             []float64
	fairnessLambda    float64
	method            Method
	maxIter           int
	tol               float64
	logger            log.Logger
	featureNames      []string

	// set once by a successful fit
	nFeatures   int
	scaler      *preprocessing.StandardScaler
	coef        []float64
	stdCoef     []float64
	names       []string
	diagnostics Diagnostics
	groupCounts [2]int
	groupGap    float64
}

var (
	_ model.ProbabilisticClassifier = (*LogisticRegression)(nil)
	_ model.LinearModel             = (*LogisticRegression)(nil)
	_ model.WeightExporter          = (*LogisticRegression)(nil)
)

// NewLogisticRegression creates an unfitted model.
//
//	lr := linear.NewLogisticRegression(
//	    linear.WithRidge(5),
//	    linear.WithGroup(sex, 10),
//	)
//	if err := lr.Fit(X, y); err != nil { ... }
//	proba, _ := lr.PredictProba(Xtest)
func NewLogisticRegression(opts ...Option) *LogisticRegression {
	lr := &LogisticRegression{
		BaseEstimator:  model.NewBaseEstimator(modelName),
		fitIntercept:   true,
		standardise:    true,
		regularisation: RegularisationNone,
		method:         MethodLBFGS,
		maxIter:        DefaultMaxIter,
		tol:            DefaultTol,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// NewRidgeRegression is a LogisticRegression with the L2 penalty λ.
func NewRidgeRegression(lambda float64, opts ...Option) *LogisticRegression {
	return NewLogisticRegression(append([]Option{WithRidge(lambda)}, opts...)...)
}

// NewGroupMeanEqualisingRegression is a LogisticRegression with the
// group-fairness penalty λ for the binary group.
func NewGroupMeanEqualisingRegression(group []float64, lambda float64, opts ...Option) *LogisticRegression {
	return NewLogisticRegression(append([]Option{WithGroup(group, lambda)}, opts...)...)
}

// penalisesIntercept resolves the tri-state default.
func (lr *LogisticRegression) penalisesIntercept() bool {
	if lr.penaliseIntercept != nil {
		return *lr.penaliseIntercept
	}
	return !lr.fitIntercept
}

func (lr *LogisticRegression) ridgeLambda() float64 {
	if lr.regularisation == RegularisationL2 {
		return lr.lambda
	}
	return 0
}

func (lr *LogisticRegression) contextLogger() log.Logger {
	return lr.Logger(lr.logger)
}

// validate checks the configuration. It runs before any computation.
func (lr *LogisticRegression) validate() error {
	switch lr.regularisation {
	case RegularisationNone:
		if lr.lambda != 0 {
			return errors.NewValidationError("lambda", "requires l2 regularisation", lr.lambda)
		}
	case RegularisationL2:
	case RegularisationL1, RegularisationElasticNet:
		return errors.NewValidationErrorWithCause("regularisation",
			fmt.Sprintf("%s penalty is not implemented", lr.regularisation),
			string(lr.regularisation), errors.ErrNotImplemented)
	default:
		return errors.NewValidationError("regularisation", "unknown kind", string(lr.regularisation))
	}
	if lr.lambda < 0 {
		return errors.NewValidationError("lambda", "must be non-negative", lr.lambda)
	}
	if lr.fairnessLambda < 0 {
		return errors.NewValidationError("fairness_lambda", "must be non-negative", lr.fairnessLambda)
	}
	if lr.maxIter <= 0 {
		return errors.NewValidationError("max_iter", "must be positive", lr.maxIter)
	}
	if lr.tol < 0 {
		return errors.NewValidationError("tol", "must be non-negative", lr.tol)
	}
	if _, err := (solverSettings{method: lr.method}).optimizer(); err != nil {
		return err
	}
	return nil
}

// labels extracts y (m×1 or a vector) and checks it is binary.
func labels(y mat.Matrix, m int) ([]float64, error) {
	ry, cy := y.Dims()
	if ry != m {
		return nil, errors.NewDimensionError(modelName+".Fit", m, ry, 0)
	}
	if cy != 1 {
		return nil, errors.NewValueError(modelName+".Fit", "y must be a column vector")
	}
	out := make([]float64, m)
	for i := range out {
		v := y.At(i, 0)
		if v != 0 && v != 1 {
			return nil, errors.NewValidationError("y", fmt.Sprintf("labels must be 0 or 1 (row %d)", i), v)
		}
		out[i] = v
	}
	return out, nil
}

// withIntercept returns [1 | X] or a dense copy of X.
func withIntercept(X mat.Matrix, intercept bool) *mat.Dense {
	r, c := X.Dims()
	offset := 0
	if intercept {
		offset = 1
	}
	out := mat.NewDense(r, c+offset, nil)
	parallel.Rows(r, func(i int) {
		row := out.RawRowView(i)
		if intercept {
			row[0] = 1
		}
		for j := 0; j < c; j++ {
			row[j+offset] = X.At(i, j)
		}
	})
	return out
}

// fitPlan is everything a fit needs, built and validated before the
// optimiser starts.
type fitPlan struct {
	m, n     int
	scaler   *preprocessing.StandardScaler
	problem  *objective.Problem
	f        objective.Function
	fairness *objective.GroupMeanDifference
}

func (lr *LogisticRegression) prepare(X, y mat.Matrix) (*fitPlan, error) {
	m, n := X.Dims()
	if m == 0 || n == 0 {
		return nil, errors.NewModelError(modelName+".Fit", "empty data", errors.ErrEmptyData)
	}
	yv, err := labels(y, m)
	if err != nil {
		return nil, err
	}
	if len(lr.featureNames) > 0 && len(lr.featureNames) != n {
		return nil, errors.NewDimensionError(modelName+".Fit", n, len(lr.featureNames), 1)
	}
	nCoef := n
	if lr.fitIntercept {
		nCoef++
	}
	if m < nCoef {
		return nil, errors.NewValidationError("X", fmt.Sprintf("need at least %d rows for %d coefficients", nCoef, nCoef), m)
	}
	if err := errors.CheckMatrix("X", X, m, n, 0); err != nil {
		return nil, err
	}

	plan := &fitPlan{m: m, n: n}
	work := X
	if lr.standardise {
		plan.scaler = preprocessing.NewStandardScalerDefault()
		if work, err = plan.scaler.FitTransform(X); err != nil {
			return nil, err
		}
	}

	if plan.problem, err = objective.NewProblem(withIntercept(work, lr.fitIntercept), yv, lr.fitIntercept); err != nil {
		return nil, err
	}
	if lr.group != nil {
		if plan.problem, err = plan.problem.WithGroup(lr.group); err != nil {
			return nil, err
		}
		plan.fairness = objective.NewGroupMeanDifference(plan.problem, lr.fairnessLambda)
	}

	// the ridge term is always present; λ = 0 contributes nothing
	terms := []objective.Function{
		objective.NewLogLoss(plan.problem),
		objective.NewRidge(plan.problem, lr.ridgeLambda(), lr.penalisesIntercept()),
	}
	if plan.fairness != nil {
		terms = append(terms, plan.fairness)
	}
	plan.f = objective.Sum(terms...)
	return plan, nil
}

// Fit fits the model on X (m×n) and binary y (m×1).
func (lr *LogisticRegression) Fit(X, y mat.Matrix) error {
	return lr.FitContext(context.Background(), X, y)
}

// FitContext is Fit with cancellation checked between optimiser iterations.
//
// On success the model is Fitted. If the optimiser stops without
// converging the model is still Fitted with the final θ, Converged reports
// false, and a *errors.ConvergenceError is returned. Validation errors
// leave the model Unfit; numerical failures, panics and cancellation
// leave it Failed.
func (lr *LogisticRegression) FitContext(ctx context.Context, X, y mat.Matrix) (err error) {
	if err := lr.validate(); err != nil {
		return err
	}
	if err := lr.State().BeginFit(lr.Name); err != nil {
		return err
	}

	logger := lr.contextLogger()
	validating := true
	defer func() {
		if err == nil {
			return
		}
		var convErr *errors.ConvergenceError
		switch {
		case validating && !isPanic(err):
			lr.State().Abort()
		case !errors.As(err, &convErr):
			lr.State().Fail(err)
			logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
		}
	}()
	defer errors.Recover(&err, modelName+".Fit")

	plan, err := lr.prepare(X, y)
	if err != nil {
		return err
	}
	validating = false

	logger.Info("fit started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, plan.m,
		log.FeaturesKey, plan.n,
		log.MethodKey, string(lr.method),
		log.RegularizationKey, string(lr.regularisation),
		log.LambdaKey, lr.ridgeLambda(),
		log.FairnessLambdaKey, lr.fairnessLambda,
	)

	start := time.Now()
	theta, diag, solveErr := minimize(ctx, plan.f, make([]float64, plan.problem.Cols()),
		solverSettings{method: lr.method, maxIter: lr.maxIter, tol: lr.tol}, logger)
	var convErr *errors.ConvergenceError
	if solveErr != nil && !errors.As(solveErr, &convErr) {
		return solveErr
	}

	coef := theta
	if plan.scaler != nil {
		if coef, err = plan.scaler.Destandardise(theta, lr.fitIntercept); err != nil {
			return err
		}
	}

	lr.nFeatures = plan.n
	lr.scaler = plan.scaler
	lr.stdCoef = theta
	lr.coef = coef
	lr.names = coefficientNames(lr.featureNames, plan.n, lr.fitIntercept)
	lr.diagnostics = diag
	if plan.fairness != nil {
		n0, n1 := plan.problem.GroupCounts()
		lr.groupCounts = [2]int{n0, n1}
		lr.groupGap = plan.fairness.Difference(theta)
	}
	lr.State().Finish(plan.n, plan.m)

	fields := []any{
		log.OperationKey, log.OperationFit,
		log.ConvergedKey, diag.Converged,
		log.StatusKey, diag.Status,
		log.IterationKey, diag.Iterations,
		log.FuncEvaluationsKey, diag.FuncEvaluations,
		log.LossKey, diag.Cost,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	}
	if plan.fairness != nil {
		fields = append(fields, log.GroupGapKey, lr.groupGap, log.GroupCountsKey, lr.groupCounts[:])
	}
	if solveErr != nil {
		errors.Warn(errors.NewConvergenceWarning(diag.Method, diag.Iterations, diag.Status))
		logger.Warn("fit did not converge", fields...)
		return solveErr
	}
	logger.Info("fit finished", fields...)
	return nil
}

func isPanic(err error) bool {
	var p *errors.PanicError
	return errors.As(err, &p)
}

// checkInput validates a prediction matrix against the fitted width.
func (lr *LogisticRegression) checkInput(X mat.Matrix, method string) (int, error) {
	if err := lr.State().RequireFitted(lr.Name, method); err != nil {
		return 0, err
	}
	r, c := X.Dims()
	if c != lr.nFeatures {
		return 0, errors.NewDimensionError(modelName+"."+method, lr.nFeatures, c, 1)
	}
	return r, nil
}

// DecisionFunction returns the linear score θ₀ + Xθ on raw features, m×1.
func (lr *LogisticRegression) DecisionFunction(X mat.Matrix) (mat.Matrix, error) {
	r, err := lr.checkInput(X, "DecisionFunction")
	if err != nil {
		return nil, err
	}
	return lr.scores(X, r), nil
}

func (lr *LogisticRegression) scores(X mat.Matrix, r int) *mat.Dense {
	offset, intercept := 0, 0.0
	if lr.fitIntercept {
		offset, intercept = 1, lr.coef[0]
	}
	w := lr.coef[offset:]
	out := mat.NewDense(r, 1, nil)
	parallel.Rows(r, func(i int) {
		z := intercept
		for j, wj := range w {
			z += X.At(i, j) * wj
		}
		out.Set(i, 0, z)
	})
	return out
}

// PredictProba returns P(y=1 | x) for each row of X, m×1.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	r, err := lr.checkInput(X, "PredictProba")
	if err != nil {
		return nil, err
	}
	z := lr.scores(X, r)
	z.Apply(func(_, _ int, v float64) float64 { return objective.Sigmoid(v) }, z)
	return z, nil
}

// Predict returns 1 where PredictProba ≥ 0.5 and 0 elsewhere, m×1.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, err := lr.checkInput(X, "Predict")
	if err != nil {
		return nil, err
	}
	z := lr.scores(X, r)
	z.Apply(func(_, _ int, v float64) float64 {
		if v >= 0 {
			return 1
		}
		return 0
	}, z)
	return z, nil
}

// Coefficients returns θ on the raw feature scale, intercept first when
// fitted with one.
func (lr *LogisticRegression) Coefficients() ([]float64, error) {
	if err := lr.State().RequireFitted(lr.Name, "Coefficients"); err != nil {
		return nil, err
	}
	return append([]float64(nil), lr.coef...), nil
}

// StandardisedCoefficients returns θ as fitted on standardised features.
// Without standardisation it equals Coefficients.
func (lr *LogisticRegression) StandardisedCoefficients() ([]float64, error) {
	if err := lr.State().RequireFitted(lr.Name, "StandardisedCoefficients"); err != nil {
		return nil, err
	}
	return append([]float64(nil), lr.stdCoef...), nil
}

// CoefficientNames returns "intercept" (if fitted) followed by the feature names.
func (lr *LogisticRegression) CoefficientNames() []string {
	return append([]string(nil), lr.names...)
}

// Weights returns the raw-scale feature coefficients without the intercept.
func (lr *LogisticRegression) Weights() []float64 {
	if !lr.IsFitted() {
		return nil
	}
	if lr.fitIntercept {
		return append([]float64(nil), lr.coef[1:]...)
	}
	return append([]float64(nil), lr.coef...)
}

// Intercept returns the fitted intercept, or 0.
func (lr *LogisticRegression) Intercept() float64 {
	if !lr.IsFitted() || !lr.fitIntercept {
		return 0
	}
	return lr.coef[0]
}

// Diagnostics returns the optimiser diagnostics of the fit.
func (lr *LogisticRegression) Diagnostics() (Diagnostics, error) {
	if err := lr.State().RequireFitted(lr.Name, "Diagnostics"); err != nil {
		return Diagnostics{}, err
	}
	d := lr.diagnostics
	d.CostHistory = append([]float64(nil), d.CostHistory...)
	return d, nil
}

// Converged reports whether the fit reached a converged optimiser status.
func (lr *LogisticRegression) Converged() bool {
	return lr.IsFitted() && lr.diagnostics.Converged
}

// GroupCounts returns the training row counts of group 0 and group 1.
// Both are zero without a group.
func (lr *LogisticRegression) GroupCounts() (n0, n1 int) {
	return lr.groupCounts[0], lr.groupCounts[1]
}

// GroupGap returns d(θ) on the training data at the fitted θ, or 0
// without a group.
func (lr *LogisticRegression) GroupGap() float64 {
	return lr.groupGap
}

// Scaler returns the scaler fitted during Fit, or nil without standardisation.
func (lr *LogisticRegression) Scaler() *preprocessing.StandardScaler {
	return lr.scaler
}

// GetParams returns the configuration.
func (lr *LogisticRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"fit_intercept":      lr.fitIntercept,
		"standardise":        lr.standardise,
		"regularisation":     string(lr.regularisation),
		"lambda":             lr.lambda,
		"penalise_intercept": lr.penalisesIntercept(),
		"fairness_lambda":    lr.fairnessLambda,
		"method":             string(lr.method),
		"max_iter":           lr.maxIter,
		"tol":                lr.tol,
	}
}

func (lr *LogisticRegression) String() string {
	return fmt.Sprintf("LogisticRegression(regularisation=%s, lambda=%g, fairness_lambda=%g, state=%s)",
		lr.regularisation, lr.lambda, lr.fairnessLambda, lr.State().State())
}

// Reset discards the fitted state so the model can be fitted again.
func (lr *LogisticRegression) Reset() {
	if lr.State().State() == model.Fitting {
		return
	}
	lr.State().Reset()
	lr.nFeatures = 0
	lr.scaler = nil
	lr.coef = nil
	lr.stdCoef = nil
	lr.names = nil
	lr.diagnostics = Diagnostics{}
	lr.groupCounts = [2]int{}
	lr.groupGap = 0
}
