package linear

import (
	"github.com/YuminosukeSato/adiscriminator/pkg/log"
)

// Regularisation selects the coefficient penalty.
type Regularisation string

const (
	// RegularisationNone fits the plain log-likelihood.
	RegularisationNone Regularisation = "none"
	// RegularisationL2 adds the ridge penalty λ/(2m) Σθ².
	RegularisationL2 Regularisation = "l2"
	// RegularisationL1 is recognised but not implemented.
	RegularisationL1 Regularisation = "l1"
	// RegularisationElasticNet is recognised but not implemented.
	RegularisationElasticNet Regularisation = "elasticnet"
)

// Method selects the gonum optimiser.
type Method string

const (
	MethodLBFGS           Method = "lbfgs"
	MethodBFGS            Method = "bfgs"
	MethodCG              Method = "cg"
	MethodGradientDescent Method = "gradient-descent"
)

// Defaults used by NewLogisticRegression.
const (
	DefaultMaxIter = 1000
	DefaultTol     = 1e-6
)

// Option configures a LogisticRegression at construction.
type Option func(*LogisticRegression)

// WithFitIntercept sets whether an intercept column is prepended (default true).
func WithFitIntercept(fit bool) Option {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithStandardise sets whether features are standardised before fitting
// (default true). Reported coefficients are always on the raw scale.
func WithStandardise(standardise bool) Option {
	return func(lr *LogisticRegression) {
		lr.standardise = standardise
	}
}

// WithRegularisation sets the penalty kind (default none).
func WithRegularisation(kind Regularisation) Option {
	return func(lr *LogisticRegression) {
		lr.regularisation = kind
	}
}

// WithLambda sets the ridge strength λ.
func WithLambda(lambda float64) Option {
	return func(lr *LogisticRegression) {
		lr.lambda = lambda
	}
}

// WithRidge is WithRegularisation(RegularisationL2) plus WithLambda(lambda).
func WithRidge(lambda float64) Option {
	return func(lr *LogisticRegression) {
		lr.regularisation = RegularisationL2
		lr.lambda = lambda
	}
}

// WithPenaliseIntercept sets whether the ridge penalty includes the
// intercept. Unset, it is the negation of fit_intercept.
func WithPenaliseIntercept(penalise bool) Option {
	return func(lr *LogisticRegression) {
		lr.penaliseIntercept = &penalise
	}
}

// WithGroup attaches a binary group (values 0 and 1, one per training row)
// and the fairness penalty strength λ.
func WithGroup(group []float64, lambda float64) Option {
	return func(lr *LogisticRegression) {
		lr.group = append([]float64(nil), group...)
		lr.fairnessLambda = lambda
	}
}

// WithMethod sets the optimiser (default lbfgs).
func WithMethod(method Method) Option {
	return func(lr *LogisticRegression) {
		lr.method = method
	}
}

// WithMaxIter sets the maximum number of major iterations.
func WithMaxIter(maxIter int) Option {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithTol sets the gradient infinity-norm threshold for convergence.
func WithTol(tol float64) Option {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLogger sets the logger. The default is log.GetLogger().
func WithLogger(logger log.Logger) Option {
	return func(lr *LogisticRegression) {
		lr.logger = logger
	}
}

// WithFeatureNames names the feature columns in the coefficient table.
// The default names are x1..xn.
func WithFeatureNames(names ...string) Option {
	return func(lr *LogisticRegression) {
		lr.featureNames = append([]string(nil), names...)
	}
}
