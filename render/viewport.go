package render

import "github.com/NexbytesTech/OpenCV-game/engine"

// Viewport maps frame pixels onto a rectangle of terminal cells
type Viewport struct {
	X, Y          int // top-left cell
	Width, Height int // size in cells
	Frame         engine.Bounds
}

// Empty reports whether the viewport has no cells to draw into
func (v Viewport) Empty() bool {
	return v.Width <= 0 || v.Height <= 0 || v.Frame.Width <= 0 || v.Frame.Height <= 0
}

// Contains reports whether the cell lies inside the viewport
func (v Viewport) Contains(cx, cy int) bool {
	return cx >= v.X && cx < v.X+v.Width && cy >= v.Y && cy < v.Y+v.Height
}

// PixelToCell returns the cell showing frame pixel (px, py)
// Pixels outside the frame are clamped to the viewport edge
func (v Viewport) PixelToCell(px, py int) (cx, cy int) {
	px = min(max(px, 0), v.Frame.Width-1)
	py = min(max(py, 0), v.Frame.Height-1)
	return v.X + px*v.Width/v.Frame.Width, v.Y + py*v.Height/v.Frame.Height
}

// CellToPixel returns the frame pixel at the center of a cell
func (v Viewport) CellToPixel(cx, cy int) (px, py int, ok bool) {
	if v.Empty() || !v.Contains(cx, cy) {
		return 0, 0, false
	}
	px = (2*(cx-v.X) + 1) * v.Frame.Width / (2 * v.Width)
	py = (2*(cy-v.Y) + 1) * v.Frame.Height / (2 * v.Height)
	return px, py, true
}

// PointAt maps a cell to a tracked point, NoDetection outside the viewport
func (v Viewport) PointAt(cx, cy int) engine.TrackedPoint {
	px, py, ok := v.CellToPixel(cx, cy)
	if !ok {
		return engine.NoDetection
	}
	return engine.PointAt(px, py)
}
