package main

import (
	"flag"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/core/model"
	"github.com/YuminosukeSato/adiscriminator/dataset"
	"github.com/YuminosukeSato/adiscriminator/linear"
	"github.com/YuminosukeSato/adiscriminator/metrics"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// summary holds the evaluation of a fitted model on its training data.
type summary struct {
	Accuracy float64
	AUC      float64
	LogLoss  float64
	Brier    float64
	// zero without a group
	GroupGap    float64
	ParityRatio float64
	HasGroup    bool
}

func evaluate(lr *linear.LogisticRegression, ds *dataset.Dataset) (summary, error) {
	var s summary
	proba, err := lr.PredictProba(ds.X)
	if err != nil {
		return s, err
	}
	pred, err := lr.Predict(ds.X)
	if err != nil {
		return s, err
	}
	p := mat.VecDenseCopyOf(proba.(*mat.Dense).ColView(0))
	yhat := mat.VecDenseCopyOf(pred.(*mat.Dense).ColView(0))

	if s.Accuracy, err = metrics.Accuracy(ds.Y, yhat); err != nil {
		return s, err
	}
	if s.AUC, err = metrics.AUC(ds.Y, p); err != nil {
		return s, err
	}
	if s.LogLoss, err = metrics.BinaryLogLoss(ds.Y, p); err != nil {
		return s, err
	}
	if s.Brier, err = metrics.BrierScore(ds.Y, p); err != nil {
		return s, err
	}
	if ds.Group != nil {
		s.HasGroup = true
		if s.GroupGap, err = metrics.GroupMeanDifference(p, ds.Group); err != nil {
			return s, err
		}
		if s.ParityRatio, err = metrics.DemographicParityRatio(yhat, ds.Group); err != nil {
			return s, err
		}
	}
	return s, nil
}

// fitModel fits and tolerates non-convergence, which is reported
// through the model's diagnostics.
func fitModel(ds *dataset.Dataset, opts []linear.Option) (*linear.LogisticRegression, error) {
	lr := linear.NewLogisticRegression(opts...)
	err := lr.Fit(ds.X, ds.Y)
	var conv *errors.ConvergenceError
	if err != nil && !errors.As(err, &conv) {
		return nil, err
	}
	return lr, nil
}

func runFit(args []string, stdout io.Writer, getenv func(string) string) error {
	fs, common := newFlagSet("fit", stdout)
	output := fs.String("output", "", "write the fitted weights as JSON to this file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg, err := common.load(fs, getenv)
	if err != nil {
		return err
	}
	if *output != "" {
		cfg.Output = *output
	}

	ds, err := cfg.Dataset()
	if err != nil {
		return err
	}
	lr, err := fitModel(ds, cfg.Options(ds.Group, ds.FeatureNames))
	if err != nil {
		return err
	}

	table, err := lr.CoefficientTable()
	if err != nil {
		return err
	}
	diag, err := lr.Diagnostics()
	if err != nil {
		return err
	}
	s, err := evaluate(lr, ds)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n\n", lr)
	if _, err := table.WriteTo(stdout); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nconverged: %t (%s, %d iterations, cost %.6f)\n",
		diag.Converged, diag.Status, diag.Iterations, diag.Cost)
	fmt.Fprintf(stdout, "accuracy: %.4f  auc: %.4f  log-loss: %.4f  brier: %.4f\n",
		s.Accuracy, s.AUC, s.LogLoss, s.Brier)
	if s.HasGroup {
		n0, n1 := countGroups(ds.Group)
		fmt.Fprintf(stdout, "groups: %d / %d  mean-probability gap: %.4f  parity ratio: %.4f\n",
			n0, n1, s.GroupGap, s.ParityRatio)
	}

	if cfg.Output != "" {
		if err := model.SaveWeights(lr, cfg.Output); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "weights written to %s\n", cfg.Output)
	}
	return nil
}

func countGroups(group []float64) (n0, n1 int) {
	for _, g := range group {
		if g == 1 {
			n1++
		} else {
			n0++
		}
	}
	return n0, n1
}
