package main

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/adiscriminator/linear"
	"github.com/YuminosukeSato/adiscriminator/pkg/errors"
)

// pathPoint is one fit of a fairness λ grid.
type pathPoint struct {
	Lambda    float64
	Converged bool
	summary
}

func runPath(args []string, stdout io.Writer, getenv func(string) string) error {
	fs, common := newFlagSet("path", stdout)
	grid := fs.String("lambdas", "0,0.5,1,2,5,10,25", "comma-separated fairness λ values")
	out := fs.String("out", "", "write a PNG plot of the path to this file")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	cfg, err := common.load(fs, getenv)
	if err != nil {
		return err
	}
	lambdas, err := parseFloats(*grid)
	if err != nil {
		return err
	}
	if len(lambdas) == 0 {
		return errors.New("empty λ grid")
	}

	ds, err := cfg.Dataset()
	if err != nil {
		return err
	}
	if ds.Group == nil {
		return errors.New("path needs a group column")
	}

	points := make([]pathPoint, 0, len(lambdas))
	for _, lambda := range lambdas {
		if lambda < 0 {
			return errors.Newf("negative fairness λ %g", lambda)
		}
		opts := append(cfg.Options(nil, ds.FeatureNames), linear.WithGroup(ds.Group, lambda))
		lr, err := fitModel(ds, opts)
		if err != nil {
			return errors.Wrapf(err, "fit λ=%g", lambda)
		}
		s, err := evaluate(lr, ds)
		if err != nil {
			return err
		}
		points = append(points, pathPoint{Lambda: lambda, Converged: lr.Converged(), summary: s})
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "lambda\tgap\tparity\tlog-loss\taccuracy\tconverged\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%g\t%.4f\t%.4f\t%.4f\t%.4f\t%t\t\n",
			p.Lambda, p.GroupGap, p.ParityRatio, p.LogLoss, p.Accuracy, p.Converged)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if *out != "" {
		if err := plotPath(points, *out); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "plot written to %s\n", *out)
	}
	return nil
}

// plotPath draws |gap| and log-loss against λ. The file format follows
// the extension of filename.
func plotPath(points []pathPoint, filename string) error {
	p := plot.New()
	p.Title.Text = "Fairness penalty path"
	p.X.Label.Text = "fairness λ"
	p.Y.Label.Text = "value"

	gap := make(plotter.XYs, len(points))
	loss := make(plotter.XYs, len(points))
	for i, pt := range points {
		g := pt.GroupGap
		if g < 0 {
			g = -g
		}
		gap[i] = plotter.XY{X: pt.Lambda, Y: g}
		loss[i] = plotter.XY{X: pt.Lambda, Y: pt.LogLoss}
	}

	gapLine, gapPoints, err := plotter.NewLinePoints(gap)
	if err != nil {
		return errors.Wrap(err, "gap series")
	}
	lossLine, lossPoints, err := plotter.NewLinePoints(loss)
	if err != nil {
		return errors.Wrap(err, "log-loss series")
	}
	gapLine.Color, gapPoints.Color = plotutil.Color(0), plotutil.Color(0)
	lossLine.Color, lossPoints.Color = plotutil.Color(1), plotutil.Color(1)
	lossLine.Dashes = plotutil.Dashes(1)
	lossPoints.Shape = plotutil.Shape(1)

	p.Add(plotter.NewGrid(), gapLine, gapPoints, lossLine, lossPoints)
	p.Legend.Add("|group gap|", gapLine, gapPoints)
	p.Legend.Add("log-loss", lossLine, lossPoints)
	p.Legend.Top = true

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "save plot %s", filename)
	}
	return nil
}
