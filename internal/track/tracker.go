// Package track resolves per-frame candidate sets into a single ball
// trajectory using a nearest-neighbor heuristic with constant-velocity
// gap filling.
package track

import (
	"serve-tracer/pkg/geometry"
)

// State is the tracker's lifecycle state.
type State int

const (
	// NoTrack means no ball has been seen yet; nothing is recorded until
	// the first candidate appears.
	NoTrack State = iota
	// Tracking means at least one position has been accepted and every
	// subsequent frame appends exactly one point.
	Tracking
)

// Tracker builds the trajectory online, one frame at a time. Observe never
// fails: frames without candidates are bridged by extrapolation or by
// holding the last position, so the finished trajectory has no gaps from
// the first detection onward.
type Tracker struct {
	state  State
	points []geometry.Point2D
}

// NewTracker creates a tracker in the NoTrack state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	return t.state
}

// Observe consumes the candidate set for the next frame, in frame order.
func (t *Tracker) Observe(candidates []geometry.Point2D) {
	switch t.state {
	case NoTrack:
		t.observeNoTrack(candidates)
	case Tracking:
		t.observeTracking(candidates)
	}
}

// observeNoTrack starts the track on the first candidate seen. With no
// prior position there is nothing to disambiguate with, so the first
// candidate wins.
func (t *Tracker) observeNoTrack(candidates []geometry.Point2D) {
	if len(candidates) == 0 {
		return
	}
	t.points = append(t.points, candidates[0])
	t.state = Tracking
}

// observeTracking appends exactly one point per frame: the candidate
// nearest the last accepted position, or a synthesized position when the
// detector came up empty.
func (t *Tracker) observeTracking(candidates []geometry.Point2D) {
	last := t.points[len(t.points)-1]

	if len(candidates) > 0 {
		best := candidates[0]
		bestDist := best.Distance(last)
		for _, c := range candidates[1:] {
			if d := c.Distance(last); d < bestDist {
				best, bestDist = c, d
			}
		}
		t.points = append(t.points, best)
		return
	}

	if len(t.points) >= 2 {
		// Constant-velocity extrapolation from the last two points.
		prev := t.points[len(t.points)-2]
		t.points = append(t.points, last.Add(last.Sub(prev)))
		return
	}

	// Only one point known: hold position.
	t.points = append(t.points, last)
}

// Trajectory returns a copy of the accepted path, one point per frame from
// the first detection onward. It may be empty if no candidate ever
// appeared.
func (t *Tracker) Trajectory() []geometry.Point2D {
	out := make([]geometry.Point2D, len(t.points))
	copy(out, t.points)
	return out
}
