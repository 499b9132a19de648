// Package annotate renders analysis results onto frames: the calibrated
// court overlay, the ball trajectory and a metrics panel. It also encodes
// annotated frame sequences as downscaled GIFs.
package annotate

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"serve-tracer/internal/court"
	"serve-tracer/internal/metrics"
	"serve-tracer/pkg/geometry"
)

var (
	boundaryGreen = color.RGBA{R: 0, G: 255, B: 0, A: 0}
	netBlue       = color.RGBA{R: 0, G: 0, B: 255, A: 0}
	serviceRed    = color.RGBA{R: 255, G: 0, B: 0, A: 0}
	trailYellow   = color.RGBA{R: 255, G: 255, B: 0, A: 0}
	textWhite     = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	panelBlack    = color.RGBA{A: 0}
)

func toImagePt(p geometry.Point2D) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// DrawCourtOverlay draws the projected court geometry onto the frame in
// place: boundary in green, net in blue, service lines in red.
func DrawCourtOverlay(frame *gocv.Mat, overlay *court.Overlay) {
	n := len(overlay.Boundary)
	for i := 0; i < n; i++ {
		p1 := toImagePt(overlay.Boundary[i])
		p2 := toImagePt(overlay.Boundary[(i+1)%n])
		gocv.Line(frame, p1, p2, boundaryGreen, 2)
	}

	gocv.Line(frame, toImagePt(overlay.Net[0]), toImagePt(overlay.Net[1]), netBlue, 2)

	for _, sl := range overlay.ServiceLines {
		gocv.Line(frame, toImagePt(sl[0]), toImagePt(sl[1]), serviceRed, 1)
	}
}

// DrawTrajectory draws the ball path up to the current point: a polyline
// through all positions plus markers that shrink with age, so the most
// recent position stands out.
func DrawTrajectory(frame *gocv.Mat, trajectory []geometry.Point2D) {
	for i := 1; i < len(trajectory); i++ {
		gocv.Line(frame, toImagePt(trajectory[i-1]), toImagePt(trajectory[i]), trailYellow, 2)
	}

	last := len(trajectory) - 1
	for i, p := range trajectory {
		radius := 5 - (last-i)/3
		if radius < 2 {
			radius = 2
		}
		gocv.Circle(frame, toImagePt(p), radius, trailYellow, -1)
	}
}

// DrawMetricsPanel writes the serve metrics into a translucent box in the
// top-left corner of the frame.
func DrawMetricsPanel(frame *gocv.Mat, m metrics.Metrics) {
	const (
		panelX, panelY = 10, 10
		panelW, panelH = 260, 110
	)

	// Translucent background: blend a filled rectangle over the region.
	panel := frame.Clone()
	defer panel.Close()
	gocv.Rectangle(&panel, image.Rect(panelX, panelY, panelX+panelW, panelY+panelH), panelBlack, -1)
	gocv.AddWeighted(panel, 0.6, *frame, 0.4, 0, frame)

	lines := []string{
		fmt.Sprintf("Speed: %.1f km/h", m.BallSpeedKMH),
		fmt.Sprintf("Toss height: %.0f px", m.TossHeightPixels),
		fmt.Sprintf("Direction: %s", m.ServeDirection),
		fmt.Sprintf("Smoothness: %.2f", m.Smoothness),
	}
	for i, line := range lines {
		origin := image.Pt(panelX+10, panelY+25*(i+1))
		gocv.PutText(frame, line, origin, gocv.FontHersheySimplex, 0.55, textWhite, 1)
	}
}
