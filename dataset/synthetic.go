package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/adiscriminator/objective"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// SyntheticConfig describes a logistic model to sample from.
type SyntheticConfig struct {
	Rows int
	// Beta is the true coefficient vector, intercept first; the number of
	// features is len(Beta)-1.
	Beta []float64
	Seed uint64
}

// GroupConfig adds a binary group to a SyntheticConfig.
type GroupConfig struct {
	// Share is P(g = 1).
	Share float64
	// Shift is added to feature 1 for rows in group 1.
	Shift float64
	// Effect is added to the logit for rows in group 1, so base rates differ.
	Effect float64
}

type sampler struct {
	rng *rand.Rand
}

func newSampler(seed uint64) *sampler {
	return &sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *sampler) uniform() float64 {
	for {
		if u := s.rng.Float64(); u > 0 {
			return u
		}
	}
}

// normal draws from N(0,1) by inverting the normal CDF.
func (s *sampler) normal() float64 {
	return distuv.UnitNormal.Quantile(s.uniform())
}

func (s *sampler) bernoulli(p float64) float64 {
	if s.uniform() < p {
		return 1
	}
	return 0
}

func validateSynthetic(cfg SyntheticConfig) error {
	if cfg.Rows <= 0 {
		return errors.NewValidationError("rows", "must be positive", cfg.Rows)
	}
	if len(cfg.Beta) < 2 {
		return errors.NewValidationError("beta", "need an intercept and at least one feature", len(cfg.Beta))
	}
	return nil
}

// Synthetic samples standard-normal features and labels
// y ~ Bernoulli(sigmoid(β₀ + xβ)). The same config always yields the same data.
func Synthetic(cfg SyntheticConfig) (*Dataset, error) {
	if err := validateSynthetic(cfg); err != nil {
		return nil, err
	}
	return sample(cfg, nil)
}

// SyntheticGroups is Synthetic with a binary group that shifts feature 1
// and the logit. Both group levels are guaranteed to be present.
func SyntheticGroups(cfg SyntheticConfig, g GroupConfig) (*Dataset, error) {
	if err := validateSynthetic(cfg); err != nil {
		return nil, err
	}
	if g.Share <= 0 || g.Share >= 1 {
		return nil, errors.NewValidationError("share", "must be in (0, 1)", g.Share)
	}
	if cfg.Rows < 2 {
		return nil, errors.NewValidationError("rows", "need at least 2 rows for two groups", cfg.Rows)
	}
	return sample(cfg, &g)
}

func sample(cfg SyntheticConfig, gc *GroupConfig) (*Dataset, error) {
	s := newSampler(cfg.Seed)
	n := len(cfg.Beta) - 1
	X := mat.NewDense(cfg.Rows, n, nil)
	y := mat.NewVecDense(cfg.Rows, nil)
	var group []float64
	if gc != nil {
		group = make([]float64, cfg.Rows)
	}

	for i := 0; i < cfg.Rows; i++ {
		g := 0.0
		if gc != nil {
			g = s.bernoulli(gc.Share)
			// keep both levels present
			if i == 0 {
				g = 0
			} else if i == 1 {
				g = 1
			}
			group[i] = g
		}
		row := X.RawRowView(i)
		z := cfg.Beta[0]
		for j := range row {
			row[j] = s.normal()
			if j == 0 && gc != nil {
				row[j] += gc.Shift * g
			}
			z += cfg.Beta[j+1] * row[j]
		}
		if gc != nil {
			z += gc.Effect * g
		}
		y.SetVec(i, s.bernoulli(objective.Sigmoid(z)))
	}

	return &Dataset{
		X:            X,
		Y:            y,
		Group:        group,
		FeatureNames: defaultNames(n),
	}, nil
}
