package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NexbytesTech/OpenCV-game/engine"
)

func testViewport() Viewport {
	return Viewport{X: 0, Y: 1, Width: 58, Height: 22, Frame: engine.Bounds{Width: 640, Height: 480}}
}

func TestPixelToCellCorners(t *testing.T) {
	vp := testViewport()

	cx, cy := vp.PixelToCell(0, 0)
	assert.Equal(t, [2]int{0, 1}, [2]int{cx, cy})

	cx, cy = vp.PixelToCell(639, 479)
	assert.Equal(t, [2]int{57, 22}, [2]int{cx, cy})

	cx, cy = vp.PixelToCell(-50, 9000)
	assert.Equal(t, [2]int{0, 22}, [2]int{cx, cy}, "clamped")
}

func TestCellToPixelRoundTrip(t *testing.T) {
	vp := testViewport()
	for cy := vp.Y; cy < vp.Y+vp.Height; cy++ {
		for cx := vp.X; cx < vp.X+vp.Width; cx++ {
			px, py, ok := vp.CellToPixel(cx, cy)
			require.True(t, ok)
			require.Less(t, px, vp.Frame.Width)
			require.Less(t, py, vp.Frame.Height)

			bx, by := vp.PixelToCell(px, py)
			require.Equal(t, [2]int{cx, cy}, [2]int{bx, by})
		}
	}
}

func TestCellOutsideViewport(t *testing.T) {
	vp := testViewport()

	_, _, ok := vp.CellToPixel(58, 5)
	assert.False(t, ok)
	_, _, ok = vp.CellToPixel(3, 0)
	assert.False(t, ok, "HUD row")

	assert.Equal(t, engine.NoDetection, vp.PointAt(70, 5))
	assert.True(t, vp.PointAt(29, 12).Valid)
	assert.True(t, Viewport{}.Empty())
}
