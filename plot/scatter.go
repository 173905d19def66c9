// Package plot renders quick-look charts of a dataset before modeling.
package plot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/tabreg/tabreg/dataset"
	"github.com/tabreg/tabreg/pkg/errors"
)

// Scatter renders a scatter plot of two numeric columns to an image file
// (format chosen by the path extension, e.g. .png). Both columns must be
// free of missing values.
func Scatter(t *dataset.Table, xColumn, yColumn, path string) error {
	xs, err := t.NumericColumn(xColumn)
	if err != nil {
		return err
	}
	ys, err := t.NumericColumn(yColumn)
	if err != nil {
		return err
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := plot.New()
	p.Title.Text = xColumn + " vs " + yColumn
	p.X.Label.Text = xColumn
	p.Y.Label.Text = yColumn

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return errors.Wrap(err, "failed to build scatter")
	}
	p.Add(s)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot to %s", path)
	}
	return nil
}
