package objective

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sigmoid returns 1/(1+exp(-z)).
func Sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// SigmoidVec applies Sigmoid element-wise, storing the result in dst.
// dst may alias z.
func SigmoidVec(dst, z []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(z))
	}
	for i, v := range z {
		dst[i] = Sigmoid(v)
	}
	return dst
}

// SigmoidDense applies Sigmoid element-wise to a matrix.
func SigmoidDense(z mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return Sigmoid(v) }, z)
	return &out
}

// softplus returns log(1+exp(z)) without overflow for large z.
func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}
