// Command calibtest runs court calibration on a single frame and prints the
// results: detected lines, the fitted homography and a corner round trip.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gocv.io/x/gocv"

	"serve-tracer/internal/court"
	"serve-tracer/pkg/geometry"
)

func main() {
	imagePath := flag.String("i", "", "Path to a video frame image")
	cornerSpec := flag.String("c", "", "Manual corners as x1,y1,x2,y2,x3,y3,x4,y4 (BL,BR,TR,TL)")
	savePath := flag.String("save", "", "Write the calibration record to this JSON file")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: calibtest -i <frame> [-c x1,y1,...,x4,y4] [-save calibration.json]")
		os.Exit(1)
	}

	frame := gocv.IMRead(*imagePath, gocv.IMReadColor)
	if frame.Empty() {
		fmt.Fprintf(os.Stderr, "Failed to read %s\n", *imagePath)
		os.Exit(1)
	}
	defer frame.Close()

	lines := court.DetectCourtLines(frame)
	fmt.Printf("=== Line detection: %d usable lines ===\n", len(lines))
	for i, l := range lines {
		fmt.Printf("  line %d: (%.0f,%.0f)-(%.0f,%.0f) length %.0f px\n",
			i, l.P1.X, l.P1.Y, l.P2.X, l.P2.Y, l.Length())
	}

	var corners []geometry.Point2D
	if *cornerSpec != "" {
		var err error
		corners, err = parseCorners(*cornerSpec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad -c value: %v\n", err)
			os.Exit(1)
		}
	}

	calibrator := court.NewCalibrator(court.DefaultGeometry())
	if err := calibrator.Calibrate(frame, corners); err != nil {
		fmt.Fprintf(os.Stderr, "Calibration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n=== Homography (pixel -> court) ===")
	for _, row := range calibrator.Transform().Homography().Matrix() {
		fmt.Printf("  %12.6f %12.6f %12.6f\n", row[0], row[1], row[2])
	}

	fmt.Println("\n=== Corner round trip ===")
	pixelCorners := calibrator.Corners()
	courtPts, err := calibrator.Transform().PixelToCourt(pixelCorners)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Transform failed: %v\n", err)
		os.Exit(1)
	}
	for i, p := range pixelCorners {
		fmt.Printf("  (%.0f,%.0f) px -> (%.2f,%.2f) m\n", p.X, p.Y, courtPts[i].X, courtPts[i].Y)
	}

	if *savePath != "" {
		if err := calibrator.Save(*savePath); err != nil {
			fmt.Fprintf(os.Stderr, "Save failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nCalibration written to %s\n", *savePath)
	}
}

// parseCorners reads eight comma-separated coordinates.
func parseCorners(spec string) ([]geometry.Point2D, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 8 {
		return nil, fmt.Errorf("need 8 values, got %d", len(parts))
	}

	vals := make([]float64, 8)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i+1, err)
		}
		vals[i] = v
	}

	corners := make([]geometry.Point2D, 4)
	for i := range corners {
		corners[i] = geometry.Point2D{X: vals[2*i], Y: vals[2*i+1]}
	}
	return corners, nil
}
