package pose

import "github.com/NexbytesTech/OpenCV-game/engine"

// Tracker turns estimator output into the per-tick tracked point
type Tracker struct {
	Estimator Estimator
	Bounds    engine.Bounds
	Mirror    bool
}

// Point returns the fingertip of the first hand in the latest frame
func (t Tracker) Point() engine.TrackedPoint {
	if t.Estimator == nil {
		return engine.NoDetection
	}
	frame, ok := t.Estimator.Latest()
	if !ok {
		return engine.NoDetection
	}
	hands := frame.Hands
	if t.Mirror {
		hands = Mirror(hands)
	}
	return FingertipPoint(hands, t.Bounds)
}
