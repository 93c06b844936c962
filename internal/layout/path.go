package layout

import (
	"fmt"
	"math"
)

// Curve multipliers for arc radii. The arc radius is the endpoint distance
// times the multiplier, so a larger multiplier yields a flatter curve.
// Edges with both endpoints on the inner circle curve tighter than edges
// touching the outer ring. Multipliers stay above 0.5 so the arc radius is
// always at least half the chord length.
const (
	OuterCurveMultiplier = 1.4
	InnerCurveMultiplier = 0.9
)

// ArcPath returns an SVG path drawing a single circular arc from a to b
// with radius proportional to their distance. Coincident endpoints produce
// an empty path.
func ArcPath(a, b Point, multiplier float64) string {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return ""
	}
	r := dist * multiplier
	return fmt.Sprintf("M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f", a.X, a.Y, r, r, b.X, b.Y)
}

// EdgePath computes the curved path between two positioned nodes, choosing
// the curve multiplier from the endpoints' placement. The second return is
// false when either endpoint is missing from the layout; callers skip such
// edges instead of failing.
func (r *Result) EdgePath(sourceID, targetID string) (string, bool) {
	a, ok := r.Position(sourceID)
	if !ok {
		return "", false
	}
	b, ok := r.Position(targetID)
	if !ok {
		return "", false
	}

	mult := OuterCurveMultiplier
	if r.inner[sourceID] && r.inner[targetID] {
		mult = InnerCurveMultiplier
	}
	return ArcPath(a, b, mult), true
}
