package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"serve-tracer/pkg/geometry"
)

// ballYellow is tennis-ball yellow in BGR, hue ~30 in OpenCV's 0-180 range.
var ballYellow = color.RGBA{R: 0, G: 255, B: 255, A: 0}

func blankFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 480, 640, gocv.MatTypeCV8UC3)
}

func frameWithBall(center image.Point) gocv.Mat {
	frame := blankFrame()
	gocv.Circle(&frame, center, 8, ballYellow, -1)
	return frame
}

func nearestDistance(candidates []geometry.Point2D, target geometry.Point2D) float64 {
	best := -1.0
	for _, c := range candidates {
		d := c.Distance(target)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func TestColorDetectorFindsBall(t *testing.T) {
	d := NewDetector(DefaultParams())
	defer d.Close()

	frame := frameWithBall(image.Pt(320, 200))
	defer frame.Close()

	candidates := d.Detect(frame)
	require.NotEmpty(t, candidates)
	assert.Less(t, nearestDistance(candidates, geometry.Point2D{X: 320, Y: 200}), 10.0)
}

func TestDetectEmptyOnBlankFrames(t *testing.T) {
	d := NewDetector(DefaultParams())
	defer d.Close()

	// A static black scene yields neither motion nor ball-colored blobs
	// once the background model has seen a frame.
	for i := 0; i < 5; i++ {
		frame := blankFrame()
		candidates := d.Detect(frame)
		frame.Close()
		if i > 0 {
			assert.Empty(t, candidates, "frame %d", i)
		}
	}
}

func TestMovingBallTrackedAcrossFrames(t *testing.T) {
	d := NewDetector(DefaultParams())
	defer d.Close()

	// Prime the background model with the empty scene.
	for i := 0; i < 10; i++ {
		frame := blankFrame()
		d.Detect(frame)
		frame.Close()
	}

	// The ball appears and moves; each frame should yield a candidate at
	// the current position.
	for i := 0; i < 5; i++ {
		center := image.Pt(100+i*30, 300-i*20)
		frame := frameWithBall(center)
		candidates := d.Detect(frame)
		frame.Close()

		require.NotEmpty(t, candidates, "frame %d", i)
		target := geometry.Point2D{X: float64(center.X), Y: float64(center.Y)}
		assert.Less(t, nearestDistance(candidates, target), 10.0, "frame %d", i)
	}
}

func TestDetectRespectsDedupRadius(t *testing.T) {
	d := NewDetector(DefaultParams())
	defer d.Close()

	// Two balls 15 px apart merge under the 20 px dedup radius; two balls
	// far apart both survive.
	frame := blankFrame()
	defer frame.Close()
	gocv.Circle(&frame, image.Pt(100, 100), 6, ballYellow, -1)
	gocv.Circle(&frame, image.Pt(115, 100), 6, ballYellow, -1)
	gocv.Circle(&frame, image.Pt(400, 300), 6, ballYellow, -1)

	candidates := d.Detect(frame)
	for i := range candidates {
		for j := i + 1; j < len(candidates); j++ {
			assert.GreaterOrEqual(t, candidates[i].Distance(candidates[j]), 20.0)
		}
	}
}

func TestAreaFilterRejectsLargeBlobs(t *testing.T) {
	d := NewDetector(DefaultParams())
	defer d.Close()

	// A large yellow region (e.g. a banner) is far beyond MaxArea.
	frame := blankFrame()
	defer frame.Close()
	gocv.Rectangle(&frame, image.Rect(50, 50, 250, 150), ballYellow, -1)

	candidates := d.Detect(frame)
	assert.Empty(t, candidates)
}
