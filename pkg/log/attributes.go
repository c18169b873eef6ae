package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "LogisticRegression".
	ModelNameKey = "model.name"

	// EstimatorIDKey is a per-instance UUID.
	EstimatorIDKey = "estimator.id"

	// OperationKey is one of the Operation* values below.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package doing the work, e.g. "linear".
	ComponentKey = "ml.component"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"

	// GroupCountsKey records the number of rows in group 0 and group 1.
	GroupCountsKey = "data.group_counts"
)

// Performance and training progress.
const (
	DurationMsKey = "perf.duration_ms"

	AccuracyKey = "metrics.accuracy"
	LossKey     = "metrics.loss"

	// GroupGapKey records the difference in mean predicted probability
	// between group 0 and group 1.
	GroupGapKey = "metrics.group_gap"

	IterationKey       = "training.iteration"
	FuncEvaluationsKey = "training.func_evaluations"
	GradEvaluationsKey = "training.grad_evaluations"
	GradNormKey        = "training.grad_norm"
	StatusKey          = "training.status"
	ConvergedKey       = "training.converged"
)

// Prediction context.
const (
	PredsKey     = "preds.count"
	ThresholdKey = "preds.threshold"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
)

// Hyperparameters.
const (
	MethodKey         = "hyperparams.method"
	RegularizationKey = "hyperparams.regularization"
	LambdaKey         = "hyperparams.lambda"
	FairnessLambdaKey = "hyperparams.fairness_lambda"
	MaxIterKey        = "hyperparams.max_iter"
	RandomSeedKey     = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
	ErrorNumerical         = "NUMERICAL_INSTABILITY"
)
