// Package analysis runs the full per-video pipeline: calibrate the court
// from the first frame, detect and track the ball across all frames, derive
// serve metrics, then render the annotated GIF and speed plot.
package analysis

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"serve-tracer/internal/annotate"
	"serve-tracer/internal/court"
	"serve-tracer/internal/detect"
	"serve-tracer/internal/metrics"
	"serve-tracer/internal/report"
	"serve-tracer/internal/track"
	"serve-tracer/internal/video"
	"serve-tracer/pkg/geometry"
)

// Config holds the per-run pipeline settings.
type Config struct {
	// OutputDir receives the annotated GIF and speed plot per video.
	OutputDir string
	// GIFMaxWidth caps the width of exported GIF frames.
	GIFMaxWidth int
	// CalibrationFile, when set, is tried before corner estimation and
	// updated after a successful fresh calibration.
	CalibrationFile string

	Detection detect.Params
	Court     court.Geometry
}

// DefaultConfig returns pipeline settings for regulation courts and
// broadcast-style footage.
func DefaultConfig(outputDir string) Config {
	return Config{
		OutputDir:   outputDir,
		GIFMaxWidth: 480,
		Detection:   detect.DefaultParams(),
		Court:       court.DefaultGeometry(),
	}
}

// Pipeline analyzes one video at a time. It is not safe for concurrent use;
// run one Pipeline per goroutine for parallel batches.
type Pipeline struct {
	cfg Config
}

// NewPipeline creates a pipeline with the given settings.
func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// AnalyzeVideo loads a video file and runs the full analysis. Per-video
// failures are reported in the result rather than returned, so a batch can
// keep going; the returned error covers only frame loading.
func (p *Pipeline) AnalyzeVideo(path string) (report.VideoResult, error) {
	name := filepath.Base(path)

	frames, fps, err := video.LoadFrames(path)
	if err != nil {
		return report.VideoResult{VideoName: name, Error: err.Error()}, err
	}
	defer video.CloseFrames(frames)

	return p.AnalyzeFrames(name, frames, fps), nil
}

// AnalyzeFrames runs the analysis over an in-memory frame sequence. The
// caller keeps ownership of the frames.
func (p *Pipeline) AnalyzeFrames(name string, frames []gocv.Mat, fps float64) report.VideoResult {
	result := report.VideoResult{
		VideoName:      name,
		FramesAnalyzed: len(frames),
	}
	if len(frames) == 0 {
		result.Error = "no frames"
		return result
	}

	calibrator := p.calibrate(frames[0])
	result.CourtCalibrated = calibrator.Calibrated()

	trajectory := p.trackBall(frames)
	result.TrajectoryPoints = len(trajectory)

	m, err := metrics.Analyze(trajectory, fps, converterFor(calibrator))
	if err != nil {
		result.Error = fmt.Sprintf("analyzing trajectory: %v", err)
		return result
	}
	result.Metrics = &m
	result.AnalysisSuccess = true

	p.renderOutputs(name, frames, calibrator, trajectory, m, fps, &result)
	return result
}

// calibrate fits the court homography from the first frame. A saved
// calibration is tried first; otherwise manual corner placement at fixed
// frame fractions is used, matching a camera behind the baseline. A fresh
// calibration is persisted when a calibration file is configured.
func (p *Pipeline) calibrate(first gocv.Mat) *court.Calibrator {
	calibrator := court.NewCalibrator(p.cfg.Court)

	if p.cfg.CalibrationFile != "" {
		if err := calibrator.Load(p.cfg.CalibrationFile); err == nil {
			return calibrator
		}
	}

	corners := manualCorners(first.Cols(), first.Rows())
	if err := calibrator.Calibrate(first, corners); err != nil {
		log.Printf("court calibration failed: %v", err)
		return calibrator
	}

	if p.cfg.CalibrationFile != "" {
		if err := calibrator.Save(p.cfg.CalibrationFile); err != nil {
			log.Printf("saving calibration: %v", err)
		}
	}
	return calibrator
}

// manualCorners places the court corners at fixed frame fractions, the
// standard framing for a camera behind the baseline.
func manualCorners(width, height int) []geometry.Point2D {
	w, h := float64(width), float64(height)
	return []geometry.Point2D{
		{X: w * 0.15, Y: h * 0.85}, // bottom left
		{X: w * 0.85, Y: h * 0.85}, // bottom right
		{X: w * 0.85, Y: h * 0.25}, // top right
		{X: w * 0.15, Y: h * 0.25}, // top left
	}
}

// trackBall runs detection and tracking over every frame in order.
func (p *Pipeline) trackBall(frames []gocv.Mat) []geometry.Point2D {
	detector := detect.NewDetector(p.cfg.Detection)
	defer detector.Close()

	tracker := track.NewTracker()
	for i := range frames {
		tracker.Observe(detector.Detect(frames[i]))
	}
	return tracker.Trajectory()
}

// converterFor adapts a calibrator into the metrics converter, or nil when
// uncalibrated so the pixel fallback is used.
func converterFor(c *court.Calibrator) metrics.CourtConverter {
	if !c.Calibrated() {
		return nil
	}
	return c.Transform()
}

// renderOutputs writes the annotated GIF and the speed plot. Rendering
// failures are logged but never fail the analysis.
func (p *Pipeline) renderOutputs(name string, frames []gocv.Mat, calibrator *court.Calibrator,
	trajectory []geometry.Point2D, m metrics.Metrics, fps float64, result *report.VideoResult) {

	stem := strings.TrimSuffix(name, filepath.Ext(name))

	annotated := p.annotateFrames(frames, calibrator, trajectory, m)
	defer video.CloseFrames(annotated)

	gifName := stem + "_annotated.gif"
	gifPath := filepath.Join(p.cfg.OutputDir, gifName)
	if err := annotate.WriteGIF(annotated, gifPath, p.cfg.GIFMaxWidth, fps); err != nil {
		log.Printf("writing %s: %v", gifName, err)
	} else {
		result.GIFCreated = true
		result.GIFFilename = gifName
	}

	plotPath := filepath.Join(p.cfg.OutputDir, stem+"_speed.png")
	if err := report.SpeedPlot(trajectory, fps, courtScale(calibrator, trajectory), plotPath); err != nil {
		log.Printf("plotting %s: %v", name, err)
	}
}

// annotateFrames clones every frame and draws the overlay, the trajectory
// up to that frame and the metrics panel.
func (p *Pipeline) annotateFrames(frames []gocv.Mat, calibrator *court.Calibrator,
	trajectory []geometry.Point2D, m metrics.Metrics) []gocv.Mat {

	var overlay *court.Overlay
	if calibrator.Calibrated() {
		if o, err := calibrator.Overlay(); err == nil {
			overlay = o
		}
	}

	// The trajectory starts at the first detection, not at frame zero.
	startFrame := len(frames) - len(trajectory)

	annotated := make([]gocv.Mat, len(frames))
	for i := range frames {
		frame := frames[i].Clone()
		if overlay != nil {
			annotate.DrawCourtOverlay(&frame, overlay)
		}
		if shown := i - startFrame + 1; shown > 0 {
			if shown > len(trajectory) {
				shown = len(trajectory)
			}
			annotate.DrawTrajectory(&frame, trajectory[:shown])
		}
		annotate.DrawMetricsPanel(&frame, m)
		annotated[i] = frame
	}
	return annotated
}

// courtScale derives an average meters-per-pixel scale from the calibrated
// transform along the trajectory, falling back to a rough constant.
func courtScale(calibrator *court.Calibrator, trajectory []geometry.Point2D) float64 {
	const fallback = 0.05

	if !calibrator.Calibrated() || len(trajectory) < 2 {
		return fallback
	}
	courtPts, err := calibrator.Transform().PixelToCourt(trajectory)
	if err != nil {
		return fallback
	}

	var pixels, meters float64
	for i := 1; i < len(trajectory); i++ {
		pixels += trajectory[i].Distance(trajectory[i-1])
		meters += courtPts[i].Distance(courtPts[i-1])
	}
	if pixels == 0 {
		return fallback
	}
	return meters / pixels
}
