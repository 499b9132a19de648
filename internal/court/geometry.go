// Package court recovers real-world court geometry from video frames.
// A Calibrator fits a planar homography from four pixel/court corner
// correspondences; the resulting Transform converts ball positions from
// pixels to meters and back.
package court

import (
	"serve-tracer/pkg/geometry"
)

// Geometry describes the reference court in meters. The court plane uses
// x along the length of the court and y across its width, origin at the
// bottom-left corner.
type Geometry struct {
	// Length is the baseline-to-baseline distance.
	Length float64
	// Width is the sideline-to-sideline distance.
	Width float64
	// ServiceOffset is the distance from the net to each service line.
	ServiceOffset float64
}

// DefaultGeometry returns the dimensions of a regulation tennis court.
func DefaultGeometry() Geometry {
	return Geometry{
		Length:        23.77,
		Width:         10.97,
		ServiceOffset: 6.40,
	}
}

// Corners returns the four court corners in meters, ordered bottom-left,
// bottom-right, top-right, top-left. Calibration corners must be supplied
// in this same order.
func (g Geometry) Corners() [4]geometry.Point2D {
	return [4]geometry.Point2D{
		{X: 0, Y: 0},
		{X: g.Length, Y: 0},
		{X: g.Length, Y: g.Width},
		{X: 0, Y: g.Width},
	}
}

// NetLine returns the net line endpoints in court coordinates. The net
// crosses the court at half its length.
func (g Geometry) NetLine() [2]geometry.Point2D {
	netX := g.Length / 2
	return [2]geometry.Point2D{
		{X: netX, Y: 0},
		{X: netX, Y: g.Width},
	}
}

// ServiceLines returns both service lines in court coordinates, the one on
// the origin side of the net first.
func (g Geometry) ServiceLines() [2][2]geometry.Point2D {
	netX := g.Length / 2
	return [2][2]geometry.Point2D{
		{{X: netX - g.ServiceOffset, Y: 0}, {X: netX - g.ServiceOffset, Y: g.Width}},
		{{X: netX + g.ServiceOffset, Y: 0}, {X: netX + g.ServiceOffset, Y: g.Width}},
	}
}
