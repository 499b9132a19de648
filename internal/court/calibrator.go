package court

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"serve-tracer/pkg/geometry"
)

// Minimum pixel length for a detected segment to count as a court line.
const minCourtLineLength = 200.0

// Calibrator owns the court reference geometry and the homography fitted
// against it. It starts uncalibrated; Calibrate transitions it to the
// calibrated state, after which Transform and Overlay become usable.
type Calibrator struct {
	geom      Geometry
	corners   []geometry.Point2D
	transform *Transform
}

// NewCalibrator creates an uncalibrated calibrator for the given court.
func NewCalibrator(geom Geometry) *Calibrator {
	return &Calibrator{geom: geom}
}

// Calibrated reports whether a homography has been computed.
func (c *Calibrator) Calibrated() bool {
	return c.transform != nil
}

// Geometry returns the reference court geometry.
func (c *Calibrator) Geometry() Geometry {
	return c.geom
}

// Transform returns the pixel/court transform, or nil while uncalibrated.
func (c *Calibrator) Transform() *Transform {
	return c.transform
}

// Corners returns the pixel corners used for the current calibration.
func (c *Calibrator) Corners() []geometry.Point2D {
	return c.corners
}

// Calibrate fits the homography from four pixel corners to the reference
// court corners. If manualCorners is non-nil it must hold exactly four
// points ordered bottom-left, bottom-right, top-right, top-left; the order
// is a caller contract and is not verified. With nil manualCorners an
// automatic estimate is attempted from detected court lines.
//
// On any failure the calibrator stays in its previous state.
func (c *Calibrator) Calibrate(frame gocv.Mat, manualCorners []geometry.Point2D) error {
	corners := manualCorners
	if corners == nil {
		lines := DetectCourtLines(frame)
		est, err := estimateCorners(lines, frame.Cols(), frame.Rows())
		if err != nil {
			return err
		}
		corners = est
	}
	if len(corners) != 4 {
		return fmt.Errorf("need exactly 4 calibration corners, got %d", len(corners))
	}

	courtCorners := c.geom.Corners()
	h, err := geometry.FitHomography(corners, courtCorners[:])
	if err != nil {
		return fmt.Errorf("computing homography: %w", err)
	}

	c.corners = corners
	c.transform = NewTransform(h)
	return nil
}

// Line is a detected straight segment in pixel space.
type Line struct {
	P1, P2 geometry.Point2D
}

// Length returns the segment length in pixels.
func (l Line) Length() float64 {
	return l.P1.Distance(l.P2)
}

// DetectCourtLines extracts long straight segments from a frame: grayscale,
// Gaussian blur, Canny edges, then a probabilistic Hough transform. Only
// segments longer than minCourtLineLength are kept, since court lines span
// a large part of the frame.
func DetectCourtLines(frame gocv.Mat) []Line {
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, 50, 150)

	segments := gocv.NewMat()
	defer segments.Close()
	gocv.HoughLinesPWithParams(edges, &segments, 1, math.Pi/180, 100, 100, 10)

	var lines []Line
	for i := 0; i < segments.Rows(); i++ {
		v := segments.GetVeciAt(i, 0)
		line := Line{
			P1: geometry.Point2D{X: float64(v[0]), Y: float64(v[1])},
			P2: geometry.Point2D{X: float64(v[2]), Y: float64(v[3])},
		}
		if line.Length() > minCourtLineLength {
			lines = append(lines, line)
		}
	}
	return lines
}

// estimateCorners guesses the court corners once enough lines are visible.
//
// This is a placeholder, not real corner detection: it gates on at least
// four usable lines and then returns fixed fractional offsets of the frame,
// without intersecting the detected lines. Manual corners are the supported
// calibration path; callers relying on this estimate get a homography that
// is only roughly aligned with the actual court.
func estimateCorners(lines []Line, width, height int) ([]geometry.Point2D, error) {
	if len(lines) < 4 {
		return nil, fmt.Errorf("%w: found %d usable lines, need 4", ErrInsufficientLines, len(lines))
	}

	w, h := float64(width), float64(height)
	return []geometry.Point2D{
		{X: w * 0.1, Y: h * 0.8}, // bottom left
		{X: w * 0.9, Y: h * 0.8}, // bottom right
		{X: w * 0.9, Y: h * 0.2}, // top right
		{X: w * 0.1, Y: h * 0.2}, // top left
	}, nil
}

// Overlay holds court reference geometry projected into pixel space for
// drawing on top of frames.
type Overlay struct {
	Boundary     []geometry.Point2D
	Net          [2]geometry.Point2D
	ServiceLines [2][2]geometry.Point2D
}

// Overlay projects the court boundary, net line and service lines into
// pixel space. It is a pure read and fails with ErrNotCalibrated until
// Calibrate has succeeded.
func (c *Calibrator) Overlay() (*Overlay, error) {
	if !c.Calibrated() {
		return nil, ErrNotCalibrated
	}

	corners := c.geom.Corners()
	boundary, err := c.transform.CourtToPixel(corners[:])
	if err != nil {
		return nil, err
	}

	netLine := c.geom.NetLine()
	net, err := c.transform.CourtToPixel(netLine[:])
	if err != nil {
		return nil, err
	}

	var overlay Overlay
	overlay.Boundary = boundary
	overlay.Net = [2]geometry.Point2D{net[0], net[1]}

	for i, sl := range c.geom.ServiceLines() {
		pts, err := c.transform.CourtToPixel(sl[:])
		if err != nil {
			return nil, err
		}
		overlay.ServiceLines[i] = [2]geometry.Point2D{pts[0], pts[1]}
	}

	return &overlay, nil
}
