package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serve-tracer/pkg/geometry"
)

// scaleConverter maps pixels to meters with a fixed scale, standing in for
// a calibrated court transform.
type scaleConverter struct {
	metersPerPixel float64
}

func (c scaleConverter) PixelToCourt(points []geometry.Point2D) ([]geometry.Point2D, error) {
	out := make([]geometry.Point2D, len(points))
	for i, p := range points {
		out[i] = geometry.Point2D{X: p.X * c.metersPerPixel, Y: p.Y * c.metersPerPixel}
	}
	return out, nil
}

type failingConverter struct{}

func (failingConverter) PixelToCourt([]geometry.Point2D) ([]geometry.Point2D, error) {
	return nil, assert.AnError
}

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

// line builds a straight trajectory of n points stepping by (dx,dy).
func line(n int, start geometry.Point2D, dx, dy float64) []geometry.Point2D {
	out := make([]geometry.Point2D, n)
	for i := range out {
		out[i] = pt(start.X+float64(i)*dx, start.Y+float64(i)*dy)
	}
	return out
}

func TestAnalyzeInsufficientData(t *testing.T) {
	_, err := Analyze([]geometry.Point2D{pt(0, 0), pt(1, 1)}, 30, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Analyze(nil, 30, nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestEstimateSpeedCalibrated(t *testing.T) {
	// Pixel (0,0) -> court (0,0), pixel (100,0) -> court (10,0): 10 m in
	// one frame at 30 fps = 300 m/s = 1080 km/h.
	conv := scaleConverter{metersPerPixel: 0.1}
	positions := []geometry.Point2D{pt(0, 0), pt(100, 0)}
	timestamps := []float64{0, 1.0 / 30}

	speed, err := EstimateSpeed(positions, timestamps, conv)
	require.NoError(t, err)
	assert.InDelta(t, 1080.0, speed, 1e-9)
}

func TestEstimateSpeedDegenerateInputs(t *testing.T) {
	conv := scaleConverter{metersPerPixel: 0.1}

	speed, err := EstimateSpeed([]geometry.Point2D{pt(1, 1)}, []float64{0}, conv)
	require.NoError(t, err)
	assert.Zero(t, speed)

	// All time deltas non-positive: speed reported as zero, not Inf.
	speed, err = EstimateSpeed(
		[]geometry.Point2D{pt(0, 0), pt(100, 0)}, []float64{1, 1}, conv)
	require.NoError(t, err)
	assert.Zero(t, speed)
}

func TestAnalyzeFallsBackWhenConverterFails(t *testing.T) {
	traj := line(20, pt(0, 100), 10, 0)
	m, err := Analyze(traj, 30, failingConverter{})
	require.NoError(t, err)

	// Pixel fallback: indices 5..15, 100 px * 0.05 m/px over 10/30 s.
	want := (100 * 0.05) / (10.0 / 30.0) * 3.6
	assert.InDelta(t, want, m.BallSpeedKMH, 1e-9)
}

func TestPixelSpeedRequiresLongTrajectory(t *testing.T) {
	traj := line(10, pt(0, 100), 10, 0)
	m, err := Analyze(traj, 30, nil)
	require.NoError(t, err)
	assert.Zero(t, m.BallSpeedKMH)
	assert.Equal(t, "unknown", m.ServeDirection)
}

func TestServeDirection(t *testing.T) {
	right := line(12, pt(0, 100), 10, 0)
	m, err := Analyze(right, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, "right", m.ServeDirection)

	left := line(12, pt(500, 100), -10, 0)
	m, err = Analyze(left, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, "left", m.ServeDirection)
}

func TestTossPeakAndContact(t *testing.T) {
	// Ball rises (y decreases) for 6 frames, then falls.
	traj := make([]geometry.Point2D, 15)
	for i := range traj {
		y := 400.0 - 20*float64(i)
		if i > 6 {
			y = 400.0 - 20*6 + 25*float64(i-6)
		}
		traj[i] = pt(150+5*float64(i), y)
	}

	m, err := Analyze(traj, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, m.TossPeakFrame)
	assert.Equal(t, 9, m.ContactFrame)
	assert.InDelta(t, 120.0, m.TossHeightPixels, 1e-9)
}

func TestTossPeakSearchWindowIsLimited(t *testing.T) {
	// The global minimum y sits past frame 20 and must be ignored.
	traj := line(30, pt(0, 400), 5, -1)
	m, err := Analyze(traj, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, 19, m.TossPeakFrame)
}

func TestSmoothnessStraightLine(t *testing.T) {
	assert.Equal(t, 1.0, Smoothness(line(20, pt(0, 0), 7, 3)))
}

func TestSmoothnessZigZag(t *testing.T) {
	// Alternating 90-degree turns: every triple is a direction change.
	traj := make([]geometry.Point2D, 20)
	for i := range traj {
		x := float64(i) * 10
		y := 0.0
		if i%2 == 1 {
			y = 10
		}
		traj[i] = pt(x, y)
	}
	s := Smoothness(traj)
	assert.Less(t, s, 0.5)
	assert.GreaterOrEqual(t, s, 0.0)
}

func TestSmoothnessBounds(t *testing.T) {
	trajectories := [][]geometry.Point2D{
		line(5, pt(0, 0), 1, 0),
		{pt(0, 0), pt(0, 0), pt(0, 0)},              // zero-length steps skipped
		{pt(0, 0), pt(1, 0), pt(0, 0), pt(1, 0)},    // full reversals
		{pt(0, 0), pt(1, 1)},                        // too short: 1 by definition
	}
	for i, traj := range trajectories {
		s := Smoothness(traj)
		assert.GreaterOrEqual(t, s, 0.0, "trajectory %d", i)
		assert.LessOrEqual(t, s, 1.0, "trajectory %d", i)
	}
}

func TestAnalyzeTotalTime(t *testing.T) {
	traj := line(31, pt(0, 0), 1, 0)
	m, err := Analyze(traj, 30, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, m.TotalTimeSeconds, 1e-9)
	assert.Equal(t, 31, m.TrajectoryLength)
}
