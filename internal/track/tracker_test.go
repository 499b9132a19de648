package track

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"serve-tracer/pkg/geometry"
)

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func TestNoCandidatesNoTrack(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < 5; i++ {
		tr.Observe(nil)
	}
	assert.Equal(t, NoTrack, tr.State())
	assert.Empty(t, tr.Trajectory())
}

func TestFirstCandidateStartsTrack(t *testing.T) {
	tr := NewTracker()
	tr.Observe(nil)
	tr.Observe([]geometry.Point2D{pt(100, 100), pt(400, 50)})

	assert.Equal(t, Tracking, tr.State())
	assert.Equal(t, []geometry.Point2D{pt(100, 100)}, tr.Trajectory())
}

func TestNearestNeighborSelection(t *testing.T) {
	tr := NewTracker()
	tr.Observe([]geometry.Point2D{pt(100, 100)})
	// The distractor at (300,300) is farther from the last accepted point.
	tr.Observe([]geometry.Point2D{pt(300, 300), pt(108, 95)})

	traj := tr.Trajectory()
	assert.Equal(t, pt(108, 95), traj[1])
}

func TestConstantVelocityExtrapolation(t *testing.T) {
	tr := NewTracker()
	tr.Observe([]geometry.Point2D{pt(100, 100)})
	tr.Observe([]geometry.Point2D{pt(110, 90)})
	tr.Observe(nil)

	traj := tr.Trajectory()
	assert.Equal(t, []geometry.Point2D{pt(100, 100), pt(110, 90), pt(120, 80)}, traj)
}

func TestSinglePointHoldsPosition(t *testing.T) {
	tr := NewTracker()
	tr.Observe([]geometry.Point2D{pt(50, 60)})
	tr.Observe(nil)

	traj := tr.Trajectory()
	assert.Equal(t, []geometry.Point2D{pt(50, 60), pt(50, 60)}, traj)
}

func TestTotality(t *testing.T) {
	// Whatever the candidate availability pattern, the trajectory spans
	// every frame from the first detection to the last frame.
	patterns := [][][]geometry.Point2D{
		{nil, nil, {pt(1, 1)}, nil, {pt(3, 3)}, nil, nil},
		{{pt(0, 0)}, nil, nil, nil, nil},
		{nil, {pt(5, 5)}, {pt(6, 6)}, nil, {pt(8, 8)}},
	}
	firstDetection := []int{2, 0, 1}

	for i, frames := range patterns {
		tr := NewTracker()
		for _, candidates := range frames {
			tr.Observe(candidates)
		}
		want := len(frames) - firstDetection[i]
		assert.Len(t, tr.Trajectory(), want, "pattern %d", i)
	}
}

func TestTrajectoryIsACopy(t *testing.T) {
	tr := NewTracker()
	tr.Observe([]geometry.Point2D{pt(1, 2)})

	traj := tr.Trajectory()
	traj[0] = pt(9, 9)
	assert.Equal(t, pt(1, 2), tr.Trajectory()[0])
}
