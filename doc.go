// Package adiscriminator fits binary logistic regression with an optional
// L2 ridge penalty and an optional penalty on the gap in mean predicted
// probability between two groups.
//
// The group penalty, λ·(−log(1−d²)) with d the difference of the group
// mean probabilities, trades a little log-loss for predictions whose
// average does not depend on a protected attribute.
//
// # Packages
//
//   - linear: the LogisticRegression estimator, its options, and an IRLS
//     reference fit
//   - objective: cost and gradient terms (log-loss, ridge, group mean
//     difference) that the optimiser minimises
//   - preprocessing: StandardScaler and coefficient de-standardisation
//   - dataset: CSV loading (including the UCI Adult layout) and seeded
//     synthetic data
//   - metrics: AUC, log-loss, accuracy and group fairness metrics
//   - config: YAML and environment configuration for the command
//   - core/model: lifecycle state, weight export and import
//   - pkg/errors, pkg/log: typed errors and structured logging
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/adiscriminator/dataset"
//	    "github.com/YuminosukeSato/adiscriminator/linear"
//	)
//
//	func main() {
//	    ds, err := dataset.LoadCSVFile("adult.data", dataset.AdultOptions("sex", "Female"))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    lr := linear.NewGroupMeanEqualisingRegression(ds.Group, 10,
//	        linear.WithRidge(1),
//	        linear.WithFeatureNames(ds.FeatureNames...),
//	    )
//	    if err := lr.Fit(ds.X, ds.Y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    table, _ := lr.CoefficientTable()
//	    fmt.Print(table)
//	    fmt.Printf("group gap: %.4f\n", lr.GroupGap())
//	}
//
// # Errors
//
// Errors are typed (see pkg/errors) and carry stack traces. A fit that
// stops before converging still leaves a usable model and returns a
// *errors.ConvergenceError:
//
//	err := lr.Fit(X, y)
//	var conv *errors.ConvergenceError
//	if errors.As(err, &conv) {
//	    // lr.Converged() == false, lr.Diagnostics() explains why
//	}
//
// # Logging
//
// Estimators log through pkg/log. The default backend is zerolog at warn
// level; use log.SetLogger or linear.WithLogger to change it.
package adiscriminator
