package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"serve-tracer/pkg/geometry"
)

// SpeedPlot renders the per-frame pixel speed of a trajectory as a PNG line
// chart. metersPerPixel scales pixel distances to meters; pass a calibrated
// scale or a rough constant. Trajectories with fewer than two points have
// no speed series and are an error.
func SpeedPlot(trajectory []geometry.Point2D, fps, metersPerPixel float64, path string) error {
	if len(trajectory) < 2 {
		return fmt.Errorf("need at least 2 trajectory points to plot speed, got %d", len(trajectory))
	}

	pts := make(plotter.XYs, len(trajectory)-1)
	for i := 1; i < len(trajectory); i++ {
		dist := trajectory[i].Distance(trajectory[i-1]) * metersPerPixel
		pts[i-1].X = float64(i)
		pts[i-1].Y = dist * fps * 3.6
	}

	p := plot.New()
	p.Title.Text = "Ball Speed per Frame"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Speed (km/h)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building speed series: %w", err)
	}
	p.Add(line)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving speed plot: %w", err)
	}
	return nil
}
