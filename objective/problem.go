package objective

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// Function is a differentiable cost over the coefficient vector θ.
type Function interface {
	// Cost returns the value at theta.
	Cost(theta []float64) float64
	// Grad overwrites grad with the gradient at theta.
	Grad(grad, theta []float64)
}

// Problem is the immutable data a fit optimises over. X already carries
// the intercept column (if any) at index 0 and is standardised if the
// model standardises.
type Problem struct {
	x            *mat.Dense
	y            []float64
	hasIntercept bool

	// row indices per group level; nil without a group
	group [2][]int
}

// NewProblem validates y and builds a Problem. X is not copied and must
// not be modified while the Problem is in use.
func NewProblem(X *mat.Dense, y []float64, hasIntercept bool) (*Problem, error) {
	m, n := X.Dims()
	if m == 0 || n == 0 {
		return nil, errors.NewModelError("objective.NewProblem", "empty data", errors.ErrEmptyData)
	}
	if len(y) != m {
		return nil, errors.NewDimensionError("objective.NewProblem", m, len(y), 0)
	}
	for i, v := range y {
		if v != 0 && v != 1 {
			return nil, errors.NewValidationError("y", fmt.Sprintf("labels must be 0 or 1 (row %d)", i), v)
		}
	}
	return &Problem{
		x:            X,
		y:            append([]float64(nil), y...),
		hasIntercept: hasIntercept,
	}, nil
}

// WithGroup returns a copy of p carrying the binary group g. Both levels
// must be present.
func (p *Problem) WithGroup(g []float64) (*Problem, error) {
	m := p.Rows()
	if len(g) != m {
		return nil, errors.NewDimensionError("objective.WithGroup", m, len(g), 0)
	}
	var idx [2][]int
	for i, v := range g {
		switch v {
		case 0:
			idx[0] = append(idx[0], i)
		case 1:
			idx[1] = append(idx[1], i)
		default:
			return nil, errors.NewValidationError("group", fmt.Sprintf("group must be binary 0/1 (row %d)", i), v)
		}
	}
	for level, rows := range idx {
		if len(rows) == 0 {
			return nil, errors.NewValidationError("group", fmt.Sprintf("group level %d has no rows", level), 0)
		}
	}
	cp := *p
	cp.group = idx
	return &cp, nil
}

// Rows returns m.
func (p *Problem) Rows() int {
	m, _ := p.x.Dims()
	return m
}

// Cols returns the length of θ.
func (p *Problem) Cols() int {
	_, n := p.x.Dims()
	return n
}

// X returns the design matrix. Callers must not modify it.
func (p *Problem) X() mat.Matrix { return p.x }

// Y returns the labels. Callers must not modify them.
func (p *Problem) Y() []float64 { return p.y }

// HasIntercept reports whether column 0 is the intercept column.
func (p *Problem) HasIntercept() bool { return p.hasIntercept }

// HasGroup reports whether WithGroup was applied.
func (p *Problem) HasGroup() bool { return p.group[0] != nil }

// GroupCounts returns the number of rows in group 0 and group 1.
func (p *Problem) GroupCounts() (n0, n1 int) {
	return len(p.group[0]), len(p.group[1])
}

// Scores returns z = Xθ.
func (p *Problem) Scores(theta []float64) []float64 {
	n := p.Cols()
	if len(theta) != n {
		panic(mat.ErrShape)
	}
	z := mat.NewVecDense(p.Rows(), nil)
	z.MulVec(p.x, mat.NewVecDense(n, theta))
	return z.RawVector().Data
}

// Probabilities returns sigmoid(Xθ).
func (p *Problem) Probabilities(theta []float64) []float64 {
	z := p.Scores(theta)
	return SigmoidVec(z, z)
}

// GroupMeans returns the mean predicted probability in group 0 and group 1.
func (p *Problem) GroupMeans(prob []float64) (mean0, mean1 float64) {
	for _, i := range p.group[0] {
		mean0 += prob[i]
	}
	for _, i := range p.group[1] {
		mean1 += prob[i]
	}
	return mean0 / float64(len(p.group[0])), mean1 / float64(len(p.group[1]))
}

// mulT stores Xᵀv in grad.
func (p *Problem) mulT(grad, v []float64) {
	n := p.Cols()
	if len(grad) != n {
		panic(mat.ErrShape)
	}
	g := mat.NewVecDense(n, grad)
	g.MulVec(p.x.T(), mat.NewVecDense(len(v), v))
}
