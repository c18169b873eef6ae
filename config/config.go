// Package config holds the command-line fit configuration: a YAML file
// with ADISC_* environment overrides.
package config

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/adiscriminator/dataset"
	"github.com/YuminosukeSato/adiscriminator/linear"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ADISC_"

// Fit is a complete fit run.
type Fit struct {
	Data     Data   `yaml:"data"`
	Model    Model  `yaml:"model"`
	LogLevel string `yaml:"log_level"`
	// Output is the path the fitted weights are written to as JSON; empty skips export.
	Output string `yaml:"output"`
}

// Data selects the training data. Without a path, synthetic data is generated.
type Data struct {
	Path string `yaml:"path"`
	// Adult reads Path as the headerless UCI Adult file.
	Adult         bool      `yaml:"adult"`
	Features      []string  `yaml:"features"`
	Label         string    `yaml:"label"`
	PositiveLabel string    `yaml:"positive_label"`
	Group         string    `yaml:"group"`
	GroupValue    string    `yaml:"group_value"`
	Synthetic     Synthetic `yaml:"synthetic"`
}

// Synthetic configures dataset.SyntheticGroups.
type Synthetic struct {
	Rows        int       `yaml:"rows"`
	Beta        []float64 `yaml:"beta"`
	Seed        uint64    `yaml:"seed"`
	GroupShare  float64   `yaml:"group_share"`
	GroupShift  float64   `yaml:"group_shift"`
	GroupEffect float64   `yaml:"group_effect"`
}

// Model mirrors the linear.LogisticRegression options.
type Model struct {
	FitIntercept      *bool   `yaml:"fit_intercept"`
	Standardise       *bool   `yaml:"standardise"`
	Regularisation    string  `yaml:"regularisation"`
	Lambda            float64 `yaml:"lambda"`
	PenaliseIntercept *bool   `yaml:"penalise_intercept"`
	FairnessLambda    float64 `yaml:"fairness_lambda"`
	Method            string  `yaml:"method"`
	MaxIter           int     `yaml:"max_iter"`
	Tol               float64 `yaml:"tol"`
}

// Default returns a synthetic two-group run with an unpenalised model.
func Default() Fit {
	return Fit{
		Data: Data{
			Synthetic: Synthetic{
				Rows:        1000,
				Beta:        []float64{-0.5, 1, -1, 0.5},
				Seed:        1,
				GroupShare:  0.5,
				GroupShift:  1,
				GroupEffect: 1.5,
			},
		},
		Model: Model{
			Regularisation: string(linear.RegularisationNone),
			Method:         string(linear.MethodLBFGS),
			MaxIter:        linear.DefaultMaxIter,
			Tol:            linear.DefaultTol,
		},
		LogLevel: "info",
	}
}

// Load decodes YAML from r over Default. Unknown keys are an error.
func Load(r io.Reader) (Fit, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Fit{}, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

// LoadFile reads path with Load.
func LoadFile(path string) (Fit, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fit{}, errors.Wrapf(err, "read config %s", path)
	}
	return Load(bytes.NewReader(raw))
}

// FromEnv is Default with environment overrides applied.
func FromEnv() (Fit, error) {
	cfg := Default()
	err := cfg.ApplyEnv(os.Getenv)
	return cfg, err
}

// ApplyEnv overrides fields from ADISC_* variables looked up with getenv.
// Empty variables are ignored.
func (c *Fit) ApplyEnv(getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	float := func(name string, dst *float64) error {
		v := getenv(EnvPrefix + name)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.NewValidationErrorWithCause(EnvPrefix+name, "not a number", v, err)
		}
		*dst = f
		return nil
	}

	str("DATA", &c.Data.Path)
	str("LABEL", &c.Data.Label)
	str("POSITIVE_LABEL", &c.Data.PositiveLabel)
	str("GROUP", &c.Data.Group)
	str("GROUP_VALUE", &c.Data.GroupValue)
	str("REGULARISATION", &c.Model.Regularisation)
	str("METHOD", &c.Model.Method)
	str("LOG_LEVEL", &c.LogLevel)
	str("OUTPUT", &c.Output)
	if v := getenv(EnvPrefix + "FEATURES"); v != "" {
		c.Data.Features = splitList(v)
	}
	if v := getenv(EnvPrefix + "ADULT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.NewValidationErrorWithCause(EnvPrefix+"ADULT", "not a boolean", v, err)
		}
		c.Data.Adult = b
	}
	if err := float("LAMBDA", &c.Model.Lambda); err != nil {
		return err
	}
	if err := float("FAIRNESS_LAMBDA", &c.Model.FairnessLambda); err != nil {
		return err
	}
	if err := float("TOL", &c.Model.Tol); err != nil {
		return err
	}
	if v := getenv(EnvPrefix + "MAX_ITER"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.NewValidationErrorWithCause(EnvPrefix+"MAX_ITER", "not an integer", v, err)
		}
		c.Model.MaxIter = n
	}
	if v := getenv(EnvPrefix + "SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.NewValidationErrorWithCause(EnvPrefix+"SEED", "not an unsigned integer", v, err)
		}
		c.Data.Synthetic.Seed = n
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks what can be checked without data. The estimator
// repeats its own checks at fit time.
func (c *Fit) Validate() error {
	switch linear.Regularisation(c.Model.Regularisation) {
	case linear.RegularisationNone, linear.RegularisationL2,
		linear.RegularisationL1, linear.RegularisationElasticNet:
	default:
		return errors.NewValidationError("model.regularisation", "unknown kind", c.Model.Regularisation)
	}
	if c.Model.Lambda < 0 {
		return errors.NewValidationError("model.lambda", "must be non-negative", c.Model.Lambda)
	}
	if c.Model.Regularisation == string(linear.RegularisationNone) && c.Model.Lambda != 0 {
		return errors.NewValidationError("model.lambda", "requires l2 regularisation", c.Model.Lambda)
	}
	if c.Model.FairnessLambda < 0 {
		return errors.NewValidationError("model.fairness_lambda", "must be non-negative", c.Model.FairnessLambda)
	}
	if c.Model.MaxIter <= 0 {
		return errors.NewValidationError("model.max_iter", "must be positive", c.Model.MaxIter)
	}
	if c.Model.Tol < 0 {
		return errors.NewValidationError("model.tol", "must be non-negative", c.Model.Tol)
	}
	if c.Data.Path != "" && !c.Data.Adult && c.Data.Label == "" {
		return errors.NewValidationError("data.label", "required for CSV input", c.Data.Label)
	}
	if c.Data.Path == "" {
		s := c.Data.Synthetic
		if s.Rows <= 0 {
			return errors.NewValidationError("data.synthetic.rows", "must be positive", s.Rows)
		}
		if len(s.Beta) < 2 {
			return errors.NewValidationError("data.synthetic.beta", "need an intercept and one feature", s.Beta)
		}
	}
	return nil
}

// CSVOptions converts the data section for dataset.LoadCSV.
func (c *Fit) CSVOptions() dataset.CSVOptions {
	if c.Data.Adult {
		opts := dataset.AdultOptions(c.Data.Group, c.Data.GroupValue)
		if len(c.Data.Features) > 0 {
			opts.Features = c.Data.Features
		}
		return opts
	}
	return dataset.CSVOptions{
		Features:      c.Data.Features,
		Label:         c.Data.Label,
		PositiveLabel: c.Data.PositiveLabel,
		Group:         c.Data.Group,
		GroupValue:    c.Data.GroupValue,
	}
}

// Dataset loads the CSV file or generates synthetic data.
func (c *Fit) Dataset() (*dataset.Dataset, error) {
	if c.Data.Path != "" {
		return dataset.LoadCSVFile(c.Data.Path, c.CSVOptions())
	}
	s := c.Data.Synthetic
	return dataset.SyntheticGroups(
		dataset.SyntheticConfig{Rows: s.Rows, Beta: s.Beta, Seed: s.Seed},
		dataset.GroupConfig{Share: s.GroupShare, Shift: s.GroupShift, Effect: s.GroupEffect},
	)
}

// Options converts the model section into estimator options. group is
// attached only when the fairness penalty is on.
func (c *Fit) Options(group []float64, featureNames []string) []linear.Option {
	m := c.Model
	opts := []linear.Option{
		linear.WithRegularisation(linear.Regularisation(m.Regularisation)),
		linear.WithLambda(m.Lambda),
		linear.WithMethod(linear.Method(m.Method)),
		linear.WithMaxIter(m.MaxIter),
		linear.WithTol(m.Tol),
	}
	if m.FitIntercept != nil {
		opts = append(opts, linear.WithFitIntercept(*m.FitIntercept))
	}
	if m.Standardise != nil {
		opts = append(opts, linear.WithStandardise(*m.Standardise))
	}
	if m.PenaliseIntercept != nil {
		opts = append(opts, linear.WithPenaliseIntercept(*m.PenaliseIntercept))
	}
	if group != nil && m.FairnessLambda > 0 {
		opts = append(opts, linear.WithGroup(group, m.FairnessLambda))
	}
	if len(featureNames) > 0 {
		opts = append(opts, linear.WithFeatureNames(featureNames...))
	}
	return opts
}
