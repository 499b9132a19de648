// Package video acquires frame sequences, either from a video file or from
// a synthetic serve generator used for demos and tests.
package video

import (
	"fmt"

	"gocv.io/x/gocv"
)

// DefaultFPS is assumed when the container does not report a frame rate.
const DefaultFPS = 30.0

// LoadFrames decodes every frame of a video file into memory and returns
// the container's frame rate. The caller owns the returned mats and must
// release them with CloseFrames.
func LoadFrames(path string) ([]gocv.Mat, float64, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer capture.Close()

	fps := capture.Get(gocv.VideoCaptureFPS)
	if fps <= 0 {
		fps = DefaultFPS
	}

	var frames []gocv.Mat
	for {
		frame := gocv.NewMat()
		if ok := capture.Read(&frame); !ok || frame.Empty() {
			frame.Close()
			break
		}
		frames = append(frames, frame)
	}

	if len(frames) == 0 {
		return nil, 0, fmt.Errorf("no frames decoded from %s", path)
	}
	return frames, fps, nil
}

// CloseFrames releases every mat in the slice.
func CloseFrames(frames []gocv.Mat) {
	for i := range frames {
		frames[i].Close()
	}
}
