// Package objective implements the cost functions minimised when fitting
// a logistic regression, each with its exact analytic gradient.
//
// A fit builds one immutable Problem (design matrix with the intercept
// column already prepended, labels, optional binary group) and composes
// terms over it:
//
//	prob, _ := objective.NewProblem(X, y, true)
//	prob, _ = prob.WithGroup(g)
//	f := objective.Sum(
//	    objective.NewLogLoss(prob),
//	    objective.NewRidge(prob, lambda, false),
//	    objective.NewGroupMeanDifference(prob, fairness),
//	)
//	cost := f.Cost(theta)
//	f.Grad(grad, theta)
//
// Terms never clamp or guard their inputs. Non-finite values are left for
// the optimiser driver to detect.
package objective
