package objective

// Ridge is the L2 penalty
//
//	R(θ) = λ/(2m) Σ θᵢ²
//
// with gradient (λ/m)θ. When the problem has an intercept and it is not
// penalised, index 0 is left out of both.
type Ridge struct {
	lambda    float64
	m         float64
	skipFirst bool
}

// NewRidge returns the penalty for p. With lambda = 0 it contributes
// exactly zero to cost and gradient.
func NewRidge(p *Problem, lambda float64, penaliseIntercept bool) *Ridge {
	return &Ridge{
		lambda:    lambda,
		m:         float64(p.Rows()),
		skipFirst: p.HasIntercept() && !penaliseIntercept,
	}
}

func (r *Ridge) start() int {
	if r.skipFirst {
		return 1
	}
	return 0
}

func (r *Ridge) Cost(theta []float64) float64 {
	ss := 0.0
	for _, v := range theta[r.start():] {
		ss += v * v
	}
	return r.lambda / (2 * r.m) * ss
}

func (r *Ridge) Grad(grad, theta []float64) {
	scale := r.lambda / r.m
	for i, v := range theta {
		grad[i] = scale * v
	}
	if r.skipFirst {
		grad[0] = 0
	}
}
