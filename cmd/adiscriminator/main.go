// Command adiscriminator fits fairness-penalised logistic regression on a
// CSV file or on synthetic two-group data.
//
//	adiscriminator fit -config fit.yaml
//	adiscriminator fit -data adult.data -adult -group sex -group-value Female -fairness-lambda 10
//	adiscriminator path -lambdas 0,1,5,25 -out path.png
//	adiscriminator compare -lambda 5
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/adiscriminator/config"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
	"github.com/YuminosukeSato/adiscriminator/pkg/log"
)

const usage = `usage: adiscriminator <command> [flags]

commands:
  fit      fit one model and print coefficients, diagnostics and metrics
  path     fit over a grid of fairness λ and plot group gap and log-loss
  compare  fit with the gradient optimiser and cross-check against IRLS

run "adiscriminator <command> -h" for the flags of a command.
`

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "adiscriminator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, getenv func(string) string) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return errors.New("missing command")
	}
	switch args[0] {
	case "fit":
		return runFit(args[1:], stdout, getenv)
	case "path":
		return runPath(args[1:], stdout, getenv)
	case "compare":
		return runCompare(args[1:], stdout, getenv)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stdout, usage)
		return errors.Newf("unknown command %q", args[0])
	}
}

// commonFlags are shared by every command. Flags that are set override
// the config file and the environment.
type commonFlags struct {
	configPath     string
	data           string
	adult          bool
	label          string
	positiveLabel  string
	features       string
	group          string
	groupValue     string
	regularisation string
	lambda         float64
	fairnessLambda float64
	method         string
	maxIter        int
	tol            float64
	seed           uint64
	rows           int
	logLevel       string
	logFormat      string
}

func newFlagSet(name string, stdout io.Writer) (*flag.FlagSet, *commonFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdout)
	c := &commonFlags{}
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.data, "data", "", "CSV file; synthetic data when empty")
	fs.BoolVar(&c.adult, "adult", false, "read -data as the headerless UCI Adult file")
	fs.StringVar(&c.label, "label", "", "label column")
	fs.StringVar(&c.positiveLabel, "positive-label", "", "label value mapped to 1")
	fs.StringVar(&c.features, "features", "", "comma-separated feature columns")
	fs.StringVar(&c.group, "group", "", "group column")
	fs.StringVar(&c.groupValue, "group-value", "", "group value mapped to 1")
	fs.StringVar(&c.regularisation, "regularisation", "", "none or l2")
	fs.Float64Var(&c.lambda, "lambda", 0, "ridge λ")
	fs.Float64Var(&c.fairnessLambda, "fairness-lambda", 0, "group fairness λ")
	fs.StringVar(&c.method, "method", "", "lbfgs, bfgs, cg or gradient-descent")
	fs.IntVar(&c.maxIter, "max-iter", 0, "maximum optimiser iterations")
	fs.Float64Var(&c.tol, "tol", 0, "gradient tolerance")
	fs.Uint64Var(&c.seed, "seed", 0, "synthetic data seed")
	fs.IntVar(&c.rows, "rows", 0, "synthetic data rows")
	fs.StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&c.logFormat, "log-format", "console", "console or json")
	return fs, c
}

// load builds the configuration: file (or defaults), then environment,
// then explicitly set flags.
func (c *commonFlags) load(fs *flag.FlagSet, getenv func(string) string) (config.Fit, error) {
	cfg := config.Default()
	if c.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(c.configPath); err != nil {
			return config.Fit{}, err
		}
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return config.Fit{}, err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
		switch f.Name {
		case "data":
			cfg.Data.Path = c.data
		case "adult":
			cfg.Data.Adult = c.adult
		case "label":
			cfg.Data.Label = c.label
		case "positive-label":
			cfg.Data.PositiveLabel = c.positiveLabel
		case "features":
			cfg.Data.Features = splitList(c.features)
		case "group":
			cfg.Data.Group = c.group
		case "group-value":
			cfg.Data.GroupValue = c.groupValue
		case "regularisation":
			cfg.Model.Regularisation = c.regularisation
		case "lambda":
			cfg.Model.Lambda = c.lambda
		case "fairness-lambda":
			cfg.Model.FairnessLambda = c.fairnessLambda
		case "method":
			cfg.Model.Method = c.method
		case "max-iter":
			cfg.Model.MaxIter = c.maxIter
		case "tol":
			cfg.Model.Tol = c.tol
		case "seed":
			cfg.Data.Synthetic.Seed = c.seed
		case "rows":
			cfg.Data.Synthetic.Rows = c.rows
		case "log-level":
			cfg.LogLevel = c.logLevel
		}
	})
	// a bare -lambda implies l2; an explicit -regularisation is kept as given
	if set["lambda"] && !set["regularisation"] && cfg.Model.Regularisation == "none" && cfg.Model.Lambda > 0 {
		cfg.Model.Regularisation = "l2"
	}
	if err := cfg.Validate(); err != nil {
		return config.Fit{}, err
	}
	if err := setupLogging(cfg.LogLevel, c.logFormat); err != nil {
		return config.Fit{}, err
	}
	return cfg, nil
}

func setupLogging(level, format string) error {
	lv, err := log.ToLogLevel(level)
	if err != nil {
		return err
	}
	var logger log.Logger
	switch format {
	case "json":
		if err := log.SetupLogger(level); err != nil {
			return err
		}
		logger = log.NewSlogLogger(slog.Default())
	case "console", "":
		logger = log.NewConsoleLogger(log.Level(lv))
	default:
		return errors.Newf("unknown log format %q", format)
	}
	log.SetLogger(logger)
	log.RouteWarnings(logger)
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloats(v string) ([]float64, error) {
	parts := splitList(v)
	out := make([]float64, len(parts))
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %q", p)
		}
		out[i] = f
	}
	return out, nil
}
