package engine

// TrackedPoint is the player's control input for one frame
// Valid is false when the estimator reported no usable detection
type TrackedPoint struct {
	X     int
	Y     int
	Valid bool
}

// NoDetection is the tracked point for frames without a fingertip
var NoDetection = TrackedPoint{}

// PointAt returns a detected point at pixel (x, y)
func PointAt(x, y int) TrackedPoint {
	return TrackedPoint{X: x, Y: y, Valid: true}
}

// IsHit reports whether the point lies strictly inside the square of side 2*radius centered on the target
func IsHit(p TrackedPoint, t Target) bool {
	if !p.Valid {
		return false
	}
	return absInt(p.X-t.X) < t.Radius && absInt(p.Y-t.Y) < t.Radius
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
