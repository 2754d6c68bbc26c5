// Package pose maps hand landmark estimates onto the game's tracked point
package pose

import (
	"math"

	"github.com/NexbytesTech/OpenCV-game/engine"
)

// Landmark is one normalized keypoint; X and Y are in [0,1] when on screen
type Landmark struct {
	X, Y, Z float64
}

// Hand is the ordered landmark set of one detected hand
type Hand []Landmark

// Hand landmark indices, 21 per hand
const (
	Wrist = iota
	ThumbCMC
	ThumbMCP
	ThumbIP
	ThumbTip
	IndexFingerMCP
	IndexFingerPIP
	IndexFingerDIP
	IndexFingerTip
	MiddleFingerMCP
	MiddleFingerPIP
	MiddleFingerDIP
	MiddleFingerTip
	RingFingerMCP
	RingFingerPIP
	RingFingerDIP
	RingFingerTip
	PinkyMCP
	PinkyPIP
	PinkyDIP
	PinkyTip

	LandmarksPerHand
)

// normalizedTolerance accepts values a rounding step past 1.0
const normalizedTolerance = 1e-9

func validNormalized(v float64) bool {
	return v >= 0 && v <= 1+normalizedTolerance
}

// NormalizedToPixel maps a normalized coordinate to a pixel inside a w x h frame
// Coordinates off the frame yield ok=false
func NormalizedToPixel(x, y float64, w, h int) (px, py int, ok bool) {
	if w <= 0 || h <= 0 || !validNormalized(x) || !validNormalized(y) {
		return 0, 0, false
	}
	px = min(int(math.Floor(x*float64(w))), w-1)
	py = min(int(math.Floor(y*float64(h))), h-1)
	return px, py, true
}

// FingertipPoint returns the index fingertip of the first hand in pixel space
// Extra hands are ignored; no hands or an off-frame tip is NoDetection
func FingertipPoint(hands []Hand, bounds engine.Bounds) engine.TrackedPoint {
	if len(hands) == 0 || len(hands[0]) <= IndexFingerTip {
		return engine.NoDetection
	}
	tip := hands[0][IndexFingerTip]
	x, y, ok := NormalizedToPixel(tip.X, tip.Y, bounds.Width, bounds.Height)
	if !ok {
		return engine.NoDetection
	}
	return engine.PointAt(x, y)
}

// Mirror flips hands horizontally for a selfie view
func Mirror(hands []Hand) []Hand {
	out := make([]Hand, len(hands))
	for i, h := range hands {
		m := make(Hand, len(h))
		for j, lm := range h {
			m[j] = Landmark{X: 1 - lm.X, Y: lm.Y, Z: lm.Z}
		}
		out[i] = m
	}
	return out
}
