package analysis

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serve-tracer/internal/video"
)

func TestAnalyzeFramesSyntheticServe(t *testing.T) {
	frames := video.SyntheticServe(60, 640, 480)
	defer video.CloseFrames(frames)

	cfg := DefaultConfig(t.TempDir())
	result := NewPipeline(cfg).AnalyzeFrames("synthetic.mp4", frames, 30)

	require.True(t, result.AnalysisSuccess, "error: %s", result.Error)
	assert.True(t, result.CourtCalibrated)
	assert.Equal(t, 60, result.FramesAnalyzed)
	assert.Greater(t, result.TrajectoryPoints, 10)

	require.NotNil(t, result.Metrics)
	assert.Equal(t, "right", result.Metrics.ServeDirection)
	assert.Positive(t, result.Metrics.BallSpeedKMH)

	assert.True(t, result.GIFCreated)
	assert.FileExists(t, filepath.Join(cfg.OutputDir, result.GIFFilename))
	assert.FileExists(t, filepath.Join(cfg.OutputDir, "synthetic_speed.png"))
}

func TestAnalyzeFramesEmpty(t *testing.T) {
	result := NewPipeline(DefaultConfig(t.TempDir())).AnalyzeFrames("empty.mp4", nil, 30)
	assert.False(t, result.AnalysisSuccess)
	assert.NotEmpty(t, result.Error)
}

func TestCalibrationFileRoundTrip(t *testing.T) {
	frames := video.SyntheticServe(5, 640, 480)
	defer video.CloseFrames(frames)

	cfg := DefaultConfig(t.TempDir())
	cfg.CalibrationFile = filepath.Join(t.TempDir(), "calibration.json")

	p := NewPipeline(cfg)
	first := p.calibrate(frames[0])
	require.True(t, first.Calibrated())
	assert.FileExists(t, cfg.CalibrationFile)

	// A second run must reuse the saved calibration.
	second := p.calibrate(frames[0])
	require.True(t, second.Calibrated())
	assert.Equal(t, first.Corners(), second.Corners())
}
