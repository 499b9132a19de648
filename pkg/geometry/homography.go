package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Homography is a 3x3 projective transform mapping points on one plane to
// points on another. Unlike an affine transform it preserves straight lines
// but not parallelism, which is what a perspective camera does to a flat
// court.
type Homography struct {
	m *mat.Dense
}

// FitHomography computes the homography mapping src[i] -> dst[i] from exactly
// four point correspondences using the direct linear transform, with the
// bottom-right element fixed to 1. The correspondences must not be collinear.
func FitHomography(src, dst []Point2D) (*Homography, error) {
	if len(src) != 4 || len(dst) != 4 {
		return nil, fmt.Errorf("need exactly 4 point pairs, got %d and %d", len(src), len(dst))
	}

	// Each correspondence contributes two rows:
	//   u = (h00 x + h01 y + h02) / (h20 x + h21 y + 1)
	//   v = (h10 x + h11 y + h12) / (h20 x + h21 y + 1)
	// Multiplying out the denominator gives a linear system in h00..h21.
	A := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)

	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		u, v := dst[i].X, dst[i].Y
		r := 2 * i

		A.Set(r, 0, x)
		A.Set(r, 1, y)
		A.Set(r, 2, 1)
		A.Set(r, 6, -x*u)
		A.Set(r, 7, -y*u)
		b.SetVec(r, u)

		A.Set(r+1, 3, x)
		A.Set(r+1, 4, y)
		A.Set(r+1, 5, 1)
		A.Set(r+1, 6, -x*v)
		A.Set(r+1, 7, -y*v)
		b.SetVec(r+1, v)
	}

	var h mat.VecDense
	if err := h.SolveVec(A, b); err != nil {
		return nil, fmt.Errorf("degenerate correspondences: %w", err)
	}

	m := mat.NewDense(3, 3, []float64{
		h.AtVec(0), h.AtVec(1), h.AtVec(2),
		h.AtVec(3), h.AtVec(4), h.AtVec(5),
		h.AtVec(6), h.AtVec(7), 1,
	})

	return &Homography{m: m}, nil
}

// HomographyFromMatrix creates a Homography from a row-major 3x3 array.
func HomographyFromMatrix(elems [3][3]float64) *Homography {
	m := mat.NewDense(3, 3, nil)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m.Set(r, c, elems[r][c])
		}
	}
	return &Homography{m: m}
}

// Matrix returns the transform as a row-major 3x3 array.
func (h *Homography) Matrix() [3][3]float64 {
	var out [3][3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r][c] = h.m.At(r, c)
		}
	}
	return out
}

// Apply maps a single point through the transform, dividing by the
// homogeneous w component.
func (h *Homography) Apply(p Point2D) Point2D {
	w := h.m.At(2, 0)*p.X + h.m.At(2, 1)*p.Y + h.m.At(2, 2)
	return Point2D{
		X: (h.m.At(0, 0)*p.X + h.m.At(0, 1)*p.Y + h.m.At(0, 2)) / w,
		Y: (h.m.At(1, 0)*p.X + h.m.At(1, 1)*p.Y + h.m.At(1, 2)) / w,
	}
}

// ApplyAll maps a batch of points through the transform.
func (h *Homography) ApplyAll(points []Point2D) []Point2D {
	out := make([]Point2D, len(points))
	for i, p := range points {
		out[i] = h.Apply(p)
	}
	return out
}

// Inverse returns the inverse transform. It fails if the matrix is singular
// or so ill-conditioned that the inverse is meaningless.
func (h *Homography) Inverse() (*Homography, error) {
	var inv mat.Dense
	if err := inv.Inverse(h.m); err != nil {
		return nil, err
	}
	return &Homography{m: &inv}, nil
}
