package objective

import "math"

// GroupMeanDifference penalises a gap between the mean predicted
// probability of the two groups:
//
//	d(θ) = mean(p | g=0) − mean(p | g=1)
//	P(θ) = λ · −log(1 − d²)
//
// With ḡₖ the group-k mean of p(1−p)x, ∂d/∂θ = ḡ₀ − ḡ₁ and
//
//	∇P = λ · 2d · (ḡ₀ − ḡ₁) / (1 − d²)
//
// P is zero at d = 0 and grows without bound as |d| → 1.
type GroupMeanDifference struct {
	p      *Problem
	lambda float64
}

// NewGroupMeanDifference returns the fairness penalty. p must carry a
// group (see Problem.WithGroup).
func NewGroupMeanDifference(p *Problem, lambda float64) *GroupMeanDifference {
	if !p.HasGroup() {
		panic("objective: GroupMeanDifference requires a problem with a group")
	}
	return &GroupMeanDifference{p: p, lambda: lambda}
}

// Difference returns d(θ).
func (f *GroupMeanDifference) Difference(theta []float64) float64 {
	mean0, mean1 := f.p.GroupMeans(f.p.Probabilities(theta))
	return mean0 - mean1
}

func (f *GroupMeanDifference) Cost(theta []float64) float64 {
	d := f.Difference(theta)
	return f.lambda * -math.Log(1-d*d)
}

func (f *GroupMeanDifference) Grad(grad, theta []float64) {
	prob := f.p.Probabilities(theta)
	mean0, mean1 := f.p.GroupMeans(prob)
	d := mean0 - mean1

	// a = w/n0 on group 0 and −w/n1 on group 1, so Xᵀa = ḡ₀ − ḡ₁
	a := make([]float64, len(prob))
	n0, n1 := f.p.GroupCounts()
	for _, i := range f.p.group[0] {
		a[i] = prob[i] * (1 - prob[i]) / float64(n0)
	}
	for _, i := range f.p.group[1] {
		a[i] = -prob[i] * (1 - prob[i]) / float64(n1)
	}
	f.p.mulT(grad, a)

	scale := f.lambda * 2 * d / (1 - d*d)
	for i := range grad {
		grad[i] *= scale
	}
}
