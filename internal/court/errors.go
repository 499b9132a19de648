package court

import "errors"

var (
	// ErrNotCalibrated is returned when a coordinate conversion is requested
	// before a homography has been computed.
	ErrNotCalibrated = errors.New("court not calibrated")

	// ErrSingularMatrix is returned when the calibration homography cannot
	// be inverted, which indicates degenerate calibration input.
	ErrSingularMatrix = errors.New("homography is not invertible")

	// ErrInsufficientLines is returned when automatic corner estimation
	// cannot find enough court lines to proceed.
	ErrInsufficientLines = errors.New("not enough court lines detected")

	// ErrMissingField is returned when a persisted calibration record lacks
	// a required field.
	ErrMissingField = errors.New("calibration record is missing a field")
)
