package detect

import (
	"serve-tracer/pkg/geometry"
)

// Dedup greedily filters candidates so that every retained point is at
// least radius pixels from every other retained point. Candidates are
// visited in order and earlier ones win, so the caller's ordering decides
// which detector's hit survives when both fire on the same blob.
func Dedup(candidates []geometry.Point2D, radius float64) []geometry.Point2D {
	var kept []geometry.Point2D
	for _, c := range candidates {
		tooClose := false
		for _, k := range kept {
			if c.Distance(k) < radius {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}
	return kept
}
