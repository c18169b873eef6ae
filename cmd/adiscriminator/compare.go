package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/YuminosukeSato/adiscriminator/linear"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

func runCompare(args []string, stdout io.Writer, getenv func(string) string) error {
	fs, common := newFlagSet("compare", stdout)
	tolerance := fs.Float64("tolerance", 1e-3, "largest accepted coefficient difference")
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
	if cfg.Model.FairnessLambda != 0 {
		return errors.New("compare fits without the fairness penalty; unset fairness λ")
	}

	ds, err := cfg.Dataset()
	if err != nil {
		return err
	}
	// IRLS works on the raw features, so the ridge penalty must too
	opts := append(cfg.Options(nil, ds.FeatureNames),
		linear.WithStandardise(false),
		linear.WithFitIntercept(true),
		linear.WithPenaliseIntercept(false),
	)
	lr := linear.NewLogisticRegression(opts...)
	if err := lr.Fit(ds.X, ds.Y); err != nil {
		return err
	}
	got, err := lr.Coefficients()
	if err != nil {
		return err
	}

	lambda := 0.0
	if cfg.Model.Regularisation == string(linear.RegularisationL2) {
		lambda = cfg.Model.Lambda
	}
	ref, err := linear.FitIRLS(ds.X, ds.Y, true, lambda)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "name\toptimiser\tirls\tdiff\t")
	names := lr.CoefficientNames()
	var worst float64
	for j := range got {
		d := math.Abs(got[j] - ref.Coefficients[j])
		worst = math.Max(worst, d)
		fmt.Fprintf(tw, "%s\t%.6f\t%.6f\t%.2e\t\n", names[j], got[j], ref.Coefficients[j], d)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "irls: %d iterations, converged %t; max difference %.2e\n",
		ref.Iterations, ref.Converged, worst)

	if worst > *tolerance {
		return errors.Newf("coefficients differ by %.2e, more than %.2e", worst, *tolerance)
	}
	return nil
}
