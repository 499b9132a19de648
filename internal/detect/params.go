package detect

// Params controls ball candidate detection.
type Params struct {
	// Connected-component pixel area accepted as ball-sized.
	MinArea float64
	MaxArea float64

	// Minimum pixel distance between any two retained candidates.
	DedupRadius float64

	// HSV band for the color detector. OpenCV hue range is 0-180.
	HueMin, HueMax float64
	SatMin, SatMax float64
	ValMin, ValMax float64

	// Background model tuning.
	History       int
	VarThreshold  float64
	DetectShadows bool
}

// DefaultParams returns detection parameters tuned for a yellow tennis ball
// on broadcast-style footage.
func DefaultParams() Params {
	return Params{
		MinArea:     20,
		MaxArea:     300,
		DedupRadius: 20,

		// Tennis-ball yellow: warm hue, strongly saturated, bright.
		HueMin: 15,
		HueMax: 35,
		SatMin: 100,
		SatMax: 255,
		ValMin: 100,
		ValMax: 255,

		History:       500,
		VarThreshold:  50,
		DetectShadows: true,
	}
}

// WithAreaRange returns a copy of params with a custom component area band.
func (p Params) WithAreaRange(minArea, maxArea float64) Params {
	p.MinArea = minArea
	p.MaxArea = maxArea
	return p
}

// WithHSV returns a copy of params with a custom ball color band. Useful
// for balls other than optic yellow or unusual lighting.
func (p Params) WithHSV(hMin, hMax, sMin, sMax, vMin, vMax float64) Params {
	p.HueMin = hMin
	p.HueMax = hMax
	p.SatMin = sMin
	p.SatMax = sMax
	p.ValMin = vMin
	p.ValMax = vMax
	return p
}
