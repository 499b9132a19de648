// Package report aggregates per-video analysis results into a batch summary
// and persists it as JSON, plus an optional speed plot per video.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"serve-tracer/internal/metrics"
)

// VideoResult records the outcome of analyzing one video.
type VideoResult struct {
	VideoName        string           `json:"video_name"`
	CourtCalibrated  bool             `json:"court_calibrated"`
	Metrics          *metrics.Metrics `json:"metrics,omitempty"`
	TrajectoryPoints int              `json:"trajectory_points"`
	FramesAnalyzed   int              `json:"frames_analyzed"`
	GIFCreated       bool             `json:"gif_created"`
	GIFFilename      string           `json:"gif_filename,omitempty"`
	AnalysisSuccess  bool             `json:"analysis_success"`
	Error            string           `json:"error,omitempty"`
}

// BatchResult is the summary across all analyzed videos.
type BatchResult struct {
	TotalVideos        int           `json:"total_videos"`
	SuccessfulAnalyses int           `json:"successful_analyses"`
	AverageSpeedKMH    float64       `json:"average_speed_kmh"`
	IndividualResults  []VideoResult `json:"individual_results"`
	LastUpdated        string        `json:"last_updated"`
}

// Summarize builds the batch summary. The average speed covers only
// successful analyses that produced metrics.
func Summarize(results []VideoResult) BatchResult {
	batch := BatchResult{
		TotalVideos:       len(results),
		IndividualResults: results,
		LastUpdated:       time.Now().Format(time.RFC3339),
	}

	var speedSum float64
	var speedCount int
	for _, r := range results {
		if !r.AnalysisSuccess {
			continue
		}
		batch.SuccessfulAnalyses++
		if r.Metrics != nil {
			speedSum += r.Metrics.BallSpeedKMH
			speedCount++
		}
	}
	if speedCount > 0 {
		batch.AverageSpeedKMH = speedSum / float64(speedCount)
	}
	return batch
}

// Save writes the batch summary to path as indented JSON.
func (b BatchResult) Save(path string) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding batch result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
