package trace

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrEmptyTrace is returned when there is nothing to plot.
var ErrEmptyTrace = errors.New("trace has no states")

// SavePlot renders the sampled trajectory (x/y plane) with collision markers.
// The image format follows the file extension (.png, .svg, .pdf, ...).
func SavePlot(st *SimulationTrace, path string) error {
	if st == nil || len(st.States) == 0 {
		return ErrEmptyTrace
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Trajectory %s", st.RunID)
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(st.States))
	for i, s := range st.States {
		pts[i].X = s.X
		pts[i].Y = s.Y
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building trajectory line: %w", err)
	}
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("base", line)

	if len(st.Collisions) > 0 {
		hits := make(plotter.XYs, len(st.Collisions))
		for i, c := range st.Collisions {
			hits[i].X = c.X
			hits[i].Y = c.Y
		}
		scatter, err := plotter.NewScatter(hits)
		if err != nil {
			return fmt.Errorf("building collision markers: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.CrossGlyph{}
		scatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		scatter.GlyphStyle.Radius = vg.Points(5)
		p.Add(scatter)
		p.Legend.Add("collision", scatter)
	}

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("cannot write plot: %w", err)
	}
	return nil
}
