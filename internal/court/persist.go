package court

import (
	"encoding/json"
	"fmt"
	"os"

	"serve-tracer/pkg/geometry"
)

// Record is the on-disk form of a calibration. Field names match the
// original analysis output so previously saved calibrations keep loading.
// Pointer fields distinguish absent keys from zero values.
type Record struct {
	Homography   *[3][3]float64 `json:"homography_matrix"`
	Corners      *[4][2]float64 `json:"court_corners_2d"`
	CourtCorners *[4][2]float64 `json:"court_points_3d"`
}

// Save writes the calibration to path as a JSON record. It fails with
// ErrNotCalibrated while uncalibrated.
func (c *Calibrator) Save(path string) error {
	if !c.Calibrated() {
		return ErrNotCalibrated
	}

	var rec Record
	m := c.transform.Homography().Matrix()
	rec.Homography = &m

	var corners [4][2]float64
	for i, p := range c.corners {
		corners[i] = [2]float64{p.X, p.Y}
	}
	rec.Corners = &corners

	var courtCorners [4][2]float64
	for i, p := range c.geom.Corners() {
		courtCorners[i] = [2]float64{p.X, p.Y}
	}
	rec.CourtCorners = &courtCorners

	data, err := json.MarshalIndent(&rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load restores a calibration previously written by Save. A record missing
// any field fails with ErrMissingField and leaves the calibrator unchanged.
// The stored homography is not re-validated against the stored corners;
// that is the caller's responsibility.
func (c *Calibrator) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parsing calibration record: %w", err)
	}

	switch {
	case rec.Homography == nil:
		return fmt.Errorf("%w: homography_matrix", ErrMissingField)
	case rec.Corners == nil:
		return fmt.Errorf("%w: court_corners_2d", ErrMissingField)
	case rec.CourtCorners == nil:
		return fmt.Errorf("%w: court_points_3d", ErrMissingField)
	}

	corners := make([]geometry.Point2D, 4)
	for i, p := range rec.Corners {
		corners[i] = geometry.Point2D{X: p[0], Y: p[1]}
	}

	// The record stores the court corners the homography was fitted
	// against; recover the court dimensions from them.
	c.geom.Length = rec.CourtCorners[1][0]
	c.geom.Width = rec.CourtCorners[2][1]
	c.corners = corners
	c.transform = NewTransform(geometry.HomographyFromMatrix(*rec.Homography))
	return nil
}
