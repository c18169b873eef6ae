package objective

// LogLoss is the mean binary cross-entropy
//
//	J(θ) = (1/m) Σ [ −y log p − (1−y) log(1−p) ],  p = sigmoid(Xθ)
//
// with gradient (1/m) Xᵀ(p − y).
type LogLoss struct {
	p *Problem
}

// NewLogLoss returns the base cost over p.
func NewLogLoss(p *Problem) *LogLoss {
	return &LogLoss{p: p}
}

// Cost evaluates J. For y in {0,1} the summand equals log(1+exp(z)) − y·z,
// which is what is computed.
func (l *LogLoss) Cost(theta []float64) float64 {
	z := l.p.Scores(theta)
	total := 0.0
	for i, zi := range z {
		total += softplus(zi) - l.p.y[i]*zi
	}
	return total / float64(len(z))
}

func (l *LogLoss) Grad(grad, theta []float64) {
	prob := l.p.Probabilities(theta)
	m := float64(len(prob))
	for i := range prob {
		prob[i] = (prob[i] - l.p.y[i]) / m
	}
	l.p.mulT(grad, prob)
}
