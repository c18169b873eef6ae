package objective

import "gonum.org/v1/gonum/floats"

type sum struct {
	terms   []Function
	scratch []float64
}

// Sum returns the term-wise sum of fs. The result is not safe for
// concurrent use because Grad reuses a scratch buffer.
func Sum(fs ...Function) Function {
	terms := make([]Function, 0, len(fs))
	for _, f := range fs {
		if f != nil {
			terms = append(terms, f)
		}
	}
	return &sum{terms: terms}
}

func (s *sum) Cost(theta []float64) float64 {
	total := 0.0
	for _, f := range s.terms {
		total += f.Cost(theta)
	}
	return total
}

func (s *sum) Grad(grad, theta []float64) {
	if len(s.scratch) != len(grad) {
		s.scratch = make([]float64, len(grad))
	}
	for i := range grad {
		grad[i] = 0
	}
	for _, f := range s.terms {
		f.Grad(s.scratch, theta)
		floats.Add(grad, s.scratch)
	}
}
