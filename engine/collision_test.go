package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHit(t *testing.T) {
	target := Target{X: 100, Y: 100, Radius: 25}

	tests := []struct {
		name  string
		point TrackedPoint
		want  bool
	}{
		{"center", PointAt(100, 100), true},
		{"inside right edge", PointAt(124, 100), true},
		{"on right edge", PointAt(125, 100), false},
		{"inside left edge", PointAt(76, 100), true},
		{"on left edge", PointAt(75, 100), false},
		{"inside bottom edge", PointAt(100, 124), true},
		{"on top edge", PointAt(100, 75), false},
		{"square corner outside circle", PointAt(120, 120), true},
		{"far away", PointAt(400, 300), false},
		{"no detection at center", NoDetection, false},
		{"invalid point with matching coords", TrackedPoint{X: 100, Y: 100}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsHit(tc.point, target))
		})
	}
}

func TestIsHitSymmetric(t *testing.T) {
	target := Target{X: 200, Y: 150, Radius: 25}

	for d := 0; d <= 30; d++ {
		right := IsHit(PointAt(200+d, 150), target)
		left := IsHit(PointAt(200-d, 150), target)
		down := IsHit(PointAt(200, 150+d), target)
		up := IsHit(PointAt(200, 150-d), target)
		assert.Equal(t, right, left, "offset %d", d)
		assert.Equal(t, right, down, "offset %d", d)
		assert.Equal(t, right, up, "offset %d", d)
		assert.Equal(t, d < 25, right, "offset %d", d)
	}
}
