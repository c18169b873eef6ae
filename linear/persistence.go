package linear

import (
	"github.com/YuminosukeSato/adiscriminator/core/model"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
	"github.com/YuminosukeSato/adiscriminator/preprocessing"
)

// ExportWeights returns the fitted coefficients in serialisable form.
func (lr *LogisticRegression) ExportWeights() (*model.ModelWeights, error) {
	if err := lr.State().RequireFitted(lr.Name, "ExportWeights"); err != nil {
		return nil, err
	}
	w := &model.ModelWeights{
		ModelType:       modelName,
		Version:         model.WeightsVersion,
		Coefficients:    lr.Weights(),
		Intercept:       lr.Intercept(),
		FitIntercept:    lr.fitIntercept,
		StdCoefficients: append([]float64(nil), lr.stdCoef...),
		Features:        append([]string(nil), lr.names[len(lr.names)-lr.nFeatures:]...),
		Hyperparameters: lr.GetParams(),
		Metadata: map[string]interface{}{
			"converged":  lr.diagnostics.Converged,
			"status":     lr.diagnostics.Status,
			"iterations": lr.diagnostics.Iterations,
			"cost":       lr.diagnostics.Cost,
		},
		IsFitted: true,
	}
	if lr.scaler != nil {
		w.ScalerMean = append([]float64(nil), lr.scaler.Mean...)
		w.ScalerScale = append([]float64(nil), lr.scaler.Scale...)
	}
	if lr.group != nil {
		w.Metadata["group_counts"] = []int{lr.groupCounts[0], lr.groupCounts[1]}
		w.Metadata["group_gap"] = lr.groupGap
	}
	return w, nil
}

// ImportWeights restores a fitted model from w. The model must be unfit.
// Hyperparameters in w are informational; the receiver's configuration
// is kept.
func (lr *LogisticRegression) ImportWeights(w *model.ModelWeights) error {
	if w == nil {
		return errors.NewValueError(modelName+".ImportWeights", "weights are nil")
	}
	if err := w.Validate(); err != nil {
		return err
	}
	if w.ModelType != modelName {
		return errors.NewValidationError("model_type", "expected "+modelName, w.ModelType)
	}
	if !w.IsFitted {
		return errors.NewValidationError("is_fitted", "weights are not fitted", false)
	}
	if w.FitIntercept != lr.fitIntercept {
		return errors.NewValidationError("fit_intercept", "does not match the estimator", w.FitIntercept)
	}

	n := len(w.Coefficients)
	coef := make([]float64, 0, n+1)
	if w.FitIntercept {
		coef = append(coef, w.Intercept)
	}
	coef = append(coef, w.Coefficients...)

	var scaler *preprocessing.StandardScaler
	if len(w.ScalerMean) > 0 {
		var err error
		if scaler, err = preprocessing.NewStandardScalerFromParams(w.ScalerMean, w.ScalerScale); err != nil {
			return err
		}
	}
	stdCoef := append([]float64(nil), w.StdCoefficients...)
	if len(stdCoef) == 0 {
		stdCoef = append([]float64(nil), coef...)
	}
	if len(stdCoef) != len(coef) {
		return errors.NewDimensionError(modelName+".ImportWeights", len(coef), len(stdCoef), 1)
	}

	if err := lr.State().BeginFit(lr.Name); err != nil {
		return err
	}
	lr.nFeatures = n
	lr.coef = coef
	lr.stdCoef = stdCoef
	lr.scaler = scaler
	lr.names = coefficientNames(w.Features, n, w.FitIntercept)
	if converged, ok := w.Metadata["converged"].(bool); ok {
		lr.diagnostics.Converged = converged
	}
	if status, ok := w.Metadata["status"].(string); ok {
		lr.diagnostics.Status = status
	}
	lr.State().Finish(n, 0)
	return nil
}
