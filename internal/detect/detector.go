// Package detect finds ball-sized candidates in video frames by fusing a
// motion detector (adaptive background subtraction) with a color detector
// (HSV band for ball yellow).
package detect

import (
	"image"

	"gocv.io/x/gocv"

	"serve-tracer/pkg/geometry"
)

// Detector produces deduplicated ball candidates per frame. It owns an
// adaptive background model that accumulates statistics on every Detect
// call, so a Detector is bound to a single video: frames must be fed in
// temporal order and never shared across concurrent analyses.
type Detector struct {
	params Params
	bg     gocv.BackgroundSubtractorMOG2
	kernel gocv.Mat
}

// NewDetector creates a detector with a fresh background model. Close must
// be called to release the model.
func NewDetector(params Params) *Detector {
	return &Detector{
		params: params,
		bg: gocv.NewBackgroundSubtractorMOG2WithParams(
			params.History, params.VarThreshold, params.DetectShadows),
		kernel: gocv.GetStructuringElement(gocv.MorphEllipse, image.Point{X: 3, Y: 3}),
	}
}

// Close releases the background model.
func (d *Detector) Close() {
	d.bg.Close()
	d.kernel.Close()
}

// Detect returns the deduplicated candidate set for one frame and updates
// the background model as a side effect. All pairwise distances between
// returned candidates are at least params.DedupRadius.
func (d *Detector) Detect(frame gocv.Mat) []geometry.Point2D {
	candidates := d.motionCandidates(frame)
	candidates = append(candidates, d.colorCandidates(frame)...)
	return Dedup(candidates, d.params.DedupRadius)
}

// motionCandidates finds ball-sized moving blobs against the accumulated
// background model.
func (d *Detector) motionCandidates(frame gocv.Mat) []geometry.Point2D {
	mask := gocv.NewMat()
	defer mask.Close()
	d.bg.Apply(frame, &mask)

	// MOG2 marks shadow pixels at a mid-gray value; keep only confident
	// foreground before cleaning up speckle noise.
	gocv.Threshold(mask, &mask, 200, 255, gocv.ThresholdBinary)
	gocv.MorphologyEx(mask, &mask, gocv.MorphOpen, d.kernel)

	return ballSizedCentroids(mask, d.params)
}

// colorCandidates finds ball-sized blobs inside the configured HSV band,
// independent of motion.
func (d *Detector) colorCandidates(frame gocv.Mat) []geometry.Point2D {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(frame, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	defer mask.Close()
	lower := gocv.NewScalar(d.params.HueMin, d.params.SatMin, d.params.ValMin, 0)
	upper := gocv.NewScalar(d.params.HueMax, d.params.SatMax, d.params.ValMax, 0)
	gocv.InRangeWithScalar(hsv, lower, upper, &mask)

	return ballSizedCentroids(mask, d.params)
}

// ballSizedCentroids extracts connected components from a binary mask,
// keeps those within the configured area band and returns their centers.
func ballSizedCentroids(mask gocv.Mat, params Params) []geometry.Point2D {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var centers []geometry.Point2D
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area < params.MinArea || area > params.MaxArea {
			continue
		}
		x, y, _ := gocv.MinEnclosingCircle(contour)
		centers = append(centers, geometry.Point2D{X: float64(x), Y: float64(y)})
	}
	return centers
}
