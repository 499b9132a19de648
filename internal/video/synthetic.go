package video

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	courtGreen = color.RGBA{R: 34, G: 139, B: 34, A: 0}
	lineWhite  = color.RGBA{R: 255, G: 255, B: 255, A: 0}
	ballYellow = color.RGBA{R: 255, G: 255, B: 0, A: 0}
)

// SyntheticServe renders a simplified court with a ball following a
// parabolic serve arc for roughly the first two thirds of the clip, plus a
// little sensor noise. Useful when no real footage is available and for
// exercising the full pipeline in tests. The caller must release the
// frames with CloseFrames.
func SyntheticServe(frameCount, width, height int) []gocv.Mat {
	netY := height / 2
	serviceTopY := netY - 80
	serviceBottomY := netY + 80
	midX := width / 2

	ballVisible := frameCount * 2 / 3

	startX, startY := 150.0, float64(serviceBottomY+20)
	endX, endY := float64(width-200), float64(serviceTopY+30)

	frames := make([]gocv.Mat, frameCount)
	for idx := range frames {
		frame := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC3)

		// Court surface and outline.
		gocv.Rectangle(&frame, image.Rect(50, 50, width-50, height-50), courtGreen, -1)
		gocv.Rectangle(&frame, image.Rect(100, 100, width-100, height-100), lineWhite, 2)

		// Net and service box lines.
		gocv.Line(&frame, image.Pt(100, netY), image.Pt(width-100, netY), lineWhite, 3)
		gocv.Line(&frame, image.Pt(midX, serviceTopY), image.Pt(midX, serviceBottomY), lineWhite, 2)
		gocv.Line(&frame, image.Pt(100, serviceTopY), image.Pt(width-100, serviceTopY), lineWhite, 2)
		gocv.Line(&frame, image.Pt(100, serviceBottomY), image.Pt(width-100, serviceBottomY), lineWhite, 2)

		if idx < ballVisible {
			t := float64(idx) / float64(ballVisible)
			ballX := int(startX + (endX-startX)*t)
			// Linear blend plus a parabolic arc term for the toss.
			ballY := int(startY + (endY-startY)*t - 100*t*(1-t))

			gocv.Circle(&frame, image.Pt(ballX, ballY), 8, ballYellow, -1)
			gocv.Circle(&frame, image.Pt(ballX, ballY), 10, lineWhite, 1)
		}

		addNoise(&frame)
		frames[idx] = frame
	}
	return frames
}

// addNoise overlays mild uniform noise so the synthetic frames are not
// perfectly clean for the background model.
func addNoise(frame *gocv.Mat) {
	noise := gocv.NewMatWithSize(frame.Rows(), frame.Cols(), frame.Type())
	defer noise.Close()
	gocv.RandU(&noise, gocv.NewScalar(0, 0, 0, 0), gocv.NewScalar(20, 20, 20, 0))
	gocv.Add(*frame, noise, frame)
}
