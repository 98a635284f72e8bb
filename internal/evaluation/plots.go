package evaluation

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotResidualsOverTime writes a PNG scatter of residuals against the
// test timestamps with a zero reference line.
func PlotResidualsOverTime(path, modelName string, timestamps []time.Time, residuals []float64) error {
	if len(timestamps) != len(residuals) {
		return fmt.Errorf("have %d timestamps but %d residuals", len(timestamps), len(residuals))
	}
	if len(residuals) == 0 {
		return fmt.Errorf("no residuals to plot")
	}
	timestamps, residuals = downsampleResiduals(timestamps, residuals, maxPlotPoints)

	p := plot.New()
	p.Title.Text = modelName + " - Residuals Over Time"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Residual"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	pts := make(plotter.XYs, len(residuals))
	for i := range residuals {
		pts[i] = plotter.XY{X: float64(timestamps[i].Unix()), Y: residuals[i]}
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("build residual scatter: %w", err)
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 20, G: 80, B: 200, A: 160}
	scatter.GlyphStyle.Radius = vg.Points(1.8)
	p.Add(scatter)

	zero, err := plotter.NewLine(plotter.XYs{
		{X: pts[0].X, Y: 0},
		{X: pts[len(pts)-1].X, Y: 0},
	})
	if err != nil {
		return fmt.Errorf("build zero line: %w", err)
	}
	zero.Color = color.RGBA{R: 200, G: 30, B: 30, A: 220}
	zero.Width = vg.Points(1)
	p.Add(zero)

	p.Add(plotter.NewGrid())

	if err := ensurePlotDir(path); err != nil {
		return err
	}
	if err := p.Save(12*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save residual plot: %w", err)
	}
	return nil
}

// PlotResidualHistogram writes a PNG histogram of the residual
// distribution, normalized to unit area, with a fitted normal density
// overlaid when the residuals have spread.
func PlotResidualHistogram(path, modelName string, residuals []float64) error {
	if len(residuals) == 0 {
		return fmt.Errorf("no residuals to plot")
	}

	p := plot.New()
	p.Title.Text = modelName + " - Distribution of Residuals"
	p.X.Label.Text = "Residual"
	p.Y.Label.Text = "Density"

	hist, err := plotter.NewHist(plotter.Values(residuals), 40)
	if err != nil {
		return fmt.Errorf("build residual histogram: %w", err)
	}
	hist.Normalize(1)
	hist.FillColor = color.RGBA{R: 120, G: 120, B: 200, A: 200}
	p.Add(hist)

	mean, std := stat.MeanStdDev(residuals, nil)
	if std > 0 {
		normal := distuv.Normal{Mu: mean, Sigma: std}
		density := plotter.NewFunction(normal.Prob)
		density.Color = color.RGBA{R: 200, G: 30, B: 30, A: 220}
		density.Width = vg.Points(1.5)
		density.Samples = 200
		p.Add(density)
	}

	if err := ensurePlotDir(path); err != nil {
		return err
	}
	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save histogram plot: %w", err)
	}
	return nil
}

func ensurePlotDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create plots directory: %w", err)
	}
	return nil
}
