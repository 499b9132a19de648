// Package metrics derives serve metrics from a finished ball trajectory:
// toss peak and height, contact frame, speed, direction and a smoothness
// score.
package metrics

import (
	"errors"
	"fmt"
	"math"

	"serve-tracer/pkg/geometry"
)

// ErrInsufficientData is returned when the trajectory is too short for any
// meaningful analysis.
var ErrInsufficientData = errors.New("trajectory too short for analysis")

// CourtConverter maps pixel points onto the court plane in meters.
// *court.Transform satisfies it; a nil converter selects the approximate
// pixel-based speed estimate.
type CourtConverter interface {
	PixelToCourt(points []geometry.Point2D) ([]geometry.Point2D, error)
}

const (
	// Frames searched for the toss apex at the start of the trajectory.
	tossSearchWindow = 20
	// Racket contact follows the toss apex by a few frames; this offset is
	// a heuristic, not physics.
	contactFrameOffset = 3
	// Fallback scale when no calibration is available. Very rough: assumes
	// a camera distance where one pixel covers about 5 cm of court.
	fallbackMetersPerPixel = 0.05
	// Speed and direction need a reasonably long flight to be meaningful.
	minPointsForSpeed = 11
	// A direction change sharper than this counts against smoothness.
	sharpTurnRadians = math.Pi / 4
)

// Metrics is the analysis result for one serve. Field names follow the
// JSON report contract.
type Metrics struct {
	BallSpeedKMH     float64 `json:"ball_speed_kmh"`
	TossHeightPixels float64 `json:"toss_height_pixels"`
	ContactFrame     int     `json:"contact_frame"`
	ServeDirection   string  `json:"serve_direction"`
	TrajectoryLength int     `json:"trajectory_length"`
	TotalTimeSeconds float64 `json:"total_time_seconds"`
	TossPeakFrame    int     `json:"toss_peak_frame"`
	Smoothness       float64 `json:"trajectory_smoothness"`
}

// Analyze computes serve metrics from a trajectory sampled at fps frames
// per second. conv may be nil, in which case speed falls back to the
// pixel-based estimate; a converter that fails (e.g. not calibrated) falls
// back the same way. Trajectories shorter than 3 points fail with
// ErrInsufficientData.
func Analyze(trajectory []geometry.Point2D, fps float64, conv CourtConverter) (Metrics, error) {
	if len(trajectory) < 3 {
		return Metrics{}, fmt.Errorf("%w: %d points", ErrInsufficientData, len(trajectory))
	}

	timestamps := make([]float64, len(trajectory))
	for i := range timestamps {
		timestamps[i] = float64(i) / fps
	}

	peakIdx := tossPeakIndex(trajectory)

	speed := 0.0
	if conv != nil {
		if s, err := EstimateSpeed(trajectory, timestamps, conv); err == nil {
			speed = s
		} else {
			speed = pixelSpeedEstimate(trajectory, timestamps)
		}
	} else {
		speed = pixelSpeedEstimate(trajectory, timestamps)
	}

	return Metrics{
		BallSpeedKMH:     speed,
		TossHeightPixels: trajectory[0].Y - trajectory[peakIdx].Y,
		ContactFrame:     peakIdx + contactFrameOffset,
		ServeDirection:   serveDirection(trajectory),
		TrajectoryLength: len(trajectory),
		TotalTimeSeconds: timestamps[len(timestamps)-1],
		TossPeakFrame:    peakIdx,
		Smoothness:       Smoothness(trajectory),
	}, nil
}

// tossPeakIndex finds the apex of the toss: the minimum y (screen-up)
// within the opening frames of the trajectory.
func tossPeakIndex(trajectory []geometry.Point2D) int {
	window := len(trajectory)
	if window > tossSearchWindow {
		window = tossSearchWindow
	}

	peak := 0
	for i := 1; i < window; i++ {
		if trajectory[i].Y < trajectory[peak].Y {
			peak = i
		}
	}
	return peak
}

// EstimateSpeed computes the average ball speed in km/h by mapping the
// trajectory onto the court plane and summing distance over time. Pairs
// with a non-positive time delta are skipped. Fewer than two points yield
// zero speed.
func EstimateSpeed(positions []geometry.Point2D, timestamps []float64, conv CourtConverter) (float64, error) {
	if len(positions) < 2 {
		return 0, nil
	}

	courtPoints, err := conv.PixelToCourt(positions)
	if err != nil {
		return 0, err
	}

	var totalDistance, totalTime float64
	for i := 1; i < len(courtPoints); i++ {
		dt := timestamps[i] - timestamps[i-1]
		if dt <= 0 {
			continue
		}
		totalDistance += courtPoints[i].Distance(courtPoints[i-1])
		totalTime += dt
	}

	if totalTime == 0 {
		return 0, nil
	}
	return totalDistance / totalTime * 3.6, nil
}

// pixelSpeedEstimate is the uncalibrated fallback: pixel distance between
// two fixed sample frames scaled by a rough meters-per-pixel constant.
// Short trajectories report zero.
func pixelSpeedEstimate(trajectory []geometry.Point2D, timestamps []float64) float64 {
	if len(trajectory) < minPointsForSpeed {
		return 0
	}

	startIdx := 5
	endIdx := 15
	if endIdx > len(trajectory)-1 {
		endIdx = len(trajectory) - 1
	}

	dt := timestamps[endIdx] - timestamps[startIdx]
	if dt <= 0 {
		return 0
	}

	meters := trajectory[endIdx].Distance(trajectory[startIdx]) * fallbackMetersPerPixel
	return meters / dt * 3.6
}

// serveDirection reports which way the serve traveled across the frame, or
// "unknown" for trajectories too short to call.
func serveDirection(trajectory []geometry.Point2D) string {
	if len(trajectory) < minPointsForSpeed {
		return "unknown"
	}
	if trajectory[len(trajectory)-1].X > trajectory[0].X {
		return "right"
	}
	return "left"
}

// Smoothness scores the trajectory in [0,1], higher meaning fewer sharp
// direction changes. Each consecutive triple contributes a direction
// change when the angle between its two step vectors exceeds 45 degrees;
// triples with a zero-length step are skipped. Trajectories with fewer
// than three points score 1.
func Smoothness(trajectory []geometry.Point2D) float64 {
	if len(trajectory) < 3 {
		return 1
	}

	changes := 0
	for i := 2; i < len(trajectory); i++ {
		v1 := trajectory[i-1].Sub(trajectory[i-2])
		v2 := trajectory[i].Sub(trajectory[i-1])

		m1, m2 := v1.Norm(), v2.Norm()
		if m1 == 0 || m2 == 0 {
			continue
		}

		cos := v1.Dot(v2) / (m1 * m2)
		cos = math.Max(-1, math.Min(1, cos))
		if math.Acos(cos) > sharpTurnRadians {
			changes++
		}
	}

	return 1 - float64(changes)/float64(len(trajectory)-2)
}
