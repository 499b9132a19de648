// Command synthtest runs the full analysis pipeline over generated serve
// footage and prints the resulting metrics. Useful for checking the detector
// and tracker without real video files.
package main

import (
	"flag"
	"fmt"
	"os"

	"serve-tracer/internal/analysis"
	"serve-tracer/internal/video"
)

func main() {
	frameCount := flag.Int("n", 60, "Number of synthetic frames")
	outputDir := flag.String("o", "output", "Output directory for GIF and plot")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create %s: %v\n", *outputDir, err)
		os.Exit(1)
	}

	fmt.Printf("=== Generating %d synthetic frames ===\n", *frameCount)
	frames := video.SyntheticServe(*frameCount, 640, 480)
	defer video.CloseFrames(frames)

	pipeline := analysis.NewPipeline(analysis.DefaultConfig(*outputDir))
	result := pipeline.AnalyzeFrames("synthetic_serve.mp4", frames, video.DefaultFPS)

	fmt.Printf("\n=== Result ===\n")
	fmt.Printf("  calibrated:        %v\n", result.CourtCalibrated)
	fmt.Printf("  trajectory points: %d\n", result.TrajectoryPoints)
	if !result.AnalysisSuccess {
		fmt.Fprintf(os.Stderr, "Analysis failed: %s\n", result.Error)
		os.Exit(1)
	}

	m := result.Metrics
	fmt.Printf("  speed:             %.1f km/h\n", m.BallSpeedKMH)
	fmt.Printf("  direction:         %s\n", m.ServeDirection)
	fmt.Printf("  toss peak frame:   %d\n", m.TossPeakFrame)
	fmt.Printf("  contact frame:     %d\n", m.ContactFrame)
	fmt.Printf("  smoothness:        %.2f\n", m.Smoothness)
	if result.GIFCreated {
		fmt.Printf("\nAnnotated GIF: %s/%s\n", *outputDir, result.GIFFilename)
	}
}
