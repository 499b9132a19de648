package court

import (
	"fmt"

	"serve-tracer/pkg/geometry"
)

// Transform converts between image pixel coordinates and court coordinates
// in meters. Both directions are pure; the inverse is computed on first use
// and cached.
type Transform struct {
	h   *geometry.Homography
	inv *geometry.Homography
}

// NewTransform wraps a forward (pixel -> court) homography.
func NewTransform(h *geometry.Homography) *Transform {
	return &Transform{h: h}
}

// PixelToCourt maps pixel points onto the court plane in meters.
func (t *Transform) PixelToCourt(points []geometry.Point2D) ([]geometry.Point2D, error) {
	if t == nil || t.h == nil {
		return nil, ErrNotCalibrated
	}
	return t.h.ApplyAll(points), nil
}

// CourtToPixel maps court points in meters back into pixel space.
func (t *Transform) CourtToPixel(points []geometry.Point2D) ([]geometry.Point2D, error) {
	if t == nil || t.h == nil {
		return nil, ErrNotCalibrated
	}
	if t.inv == nil {
		inv, err := t.h.Inverse()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
		}
		t.inv = inv
	}
	return t.inv.ApplyAll(points), nil
}

// Homography exposes the forward homography, e.g. for persistence.
func (t *Transform) Homography() *geometry.Homography {
	if t == nil {
		return nil
	}
	return t.h
}
