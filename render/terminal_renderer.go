// Package render draws session snapshots on a tcell screen
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/NexbytesTech/OpenCV-game/engine"
	"github.com/NexbytesTech/OpenCV-game/leaderboard"
)

// Layout constants in cells
const (
	hudRows          = 1
	helpRows         = 1
	panelWidth       = 22
	minWidthForPanel = 60
)

const helpText = "1/2/3 level  s start  p pause  x stop  q quit"

// View is everything drawn in one frame
type View struct {
	Snapshot    engine.Snapshot
	Difficulty  engine.Difficulty
	Pointer     engine.TrackedPoint
	Leaderboard []leaderboard.Entry
	Message     string // replaces the help line when set
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	frame  engine.Bounds
}

// NewTerminalRenderer draws a frame of the given pixel size onto screen
func NewTerminalRenderer(screen tcell.Screen, frame engine.Bounds) *TerminalRenderer {
	return &TerminalRenderer{screen: screen, frame: frame}
}

// Viewport returns the play area for the current screen size
func (r *TerminalRenderer) Viewport() Viewport {
	w, h := r.screen.Size()
	playWidth := w
	if w >= minWidthForPanel {
		playWidth = w - panelWidth
	}
	return Viewport{
		X:      0,
		Y:      hudRows,
		Width:  playWidth,
		Height: h - hudRows - helpRows,
		Frame:  r.frame,
	}
}

// Draw renders the entire frame
func (r *TerminalRenderer) Draw(v View) {
	w, h := r.screen.Size()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	vp := r.Viewport()
	if !vp.Empty() {
		r.drawPlayfield(vp)
		if v.Snapshot.State != engine.StateNotStarted {
			r.drawTarget(vp, v.Snapshot)
		}
		r.drawPointer(vp, v.Pointer, v.Snapshot)
		r.drawBanner(vp, v.Snapshot)
	}

	r.drawHUD(w, v, defaultStyle)
	if w >= minWidthForPanel {
		r.drawLeaderboard(vp.Width+1, hudRows, panelWidth-1, v.Leaderboard, defaultStyle)
	}

	help := helpText
	if v.Message != "" {
		help = v.Message
	}
	r.drawText(0, h-1, w, help, defaultStyle.Foreground(RgbHelpText))

	r.screen.Show()
}

func (r *TerminalRenderer) drawPlayfield(vp Viewport) {
	style := tcell.StyleDefault.Background(RgbPlayfield)
	for y := vp.Y; y < vp.Y+vp.Height; y++ {
		for x := vp.X; x < vp.X+vp.Width; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawTarget fills the cells covering the square hit region
func (r *TerminalRenderer) drawTarget(vp Viewport, s engine.Snapshot) {
	reach := max(s.TargetRadius-1, 0)
	x0, y0 := vp.PixelToCell(s.TargetX-reach, s.TargetY-reach)
	x1, y1 := vp.PixelToCell(s.TargetX+reach, s.TargetY+reach)

	style := tcell.StyleDefault.Foreground(TargetColor(s.TargetColor)).Background(RgbPlayfield)
	if s.Terminal {
		style = style.Dim(true)
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.screen.SetContent(x, y, '█', nil, style)
		}
	}
}

func (r *TerminalRenderer) drawPointer(vp Viewport, p engine.TrackedPoint, s engine.Snapshot) {
	if !p.Valid {
		return
	}
	cx, cy := vp.PixelToCell(p.X, p.Y)
	color := RgbPointer
	if s.State != engine.StateNotStarted && engine.IsHit(p, s.Target()) {
		color = RgbPointerOnHit
	}
	r.screen.SetContent(cx, cy, '●', nil, tcell.StyleDefault.Foreground(color).Background(RgbPlayfield).Bold(true))
}

// drawBanner centers the lifecycle message in the play area
func (r *TerminalRenderer) drawBanner(vp Viewport, s engine.Snapshot) {
	var text string
	switch s.State {
	case engine.StateNotStarted:
		text = "Press s to start"
	case engine.StatePaused:
		text = "Paused"
	case engine.StateEnded:
		text = fmt.Sprintf("%s - Score: %d", s.Outcome, s.Score)
	default:
		return
	}
	runes := []rune(" " + text + " ")
	x := vp.X + (vp.Width-len(runes))/2
	y := vp.Y + vp.Height/2
	style := tcell.StyleDefault.Foreground(RgbStatusText).Background(stateBackground(s.State)).Bold(true)
	r.drawText(max(x, vp.X), y, vp.Width, string(runes), style)
}

// drawHUD writes the time, score and level line
func (r *TerminalRenderer) drawHUD(width int, v View, defaultStyle tcell.Style) {
	s := v.Snapshot
	x := 0

	badge := fmt.Sprintf(" %s ", s.State)
	x += r.drawText(x, 0, width, badge, tcell.StyleDefault.Foreground(RgbStatusText).Background(stateBackground(s.State)))

	timeStyle := defaultStyle.Foreground(RgbStatusBar)
	if s.State == engine.StateRunning && s.RemainingSeconds() < lowTimeSeconds {
		timeStyle = timeStyle.Foreground(RgbLowTime).Bold(true)
	}
	x += r.drawText(x, 0, width-x, fmt.Sprintf(" Time: %ds ", s.DisplaySeconds()), timeStyle)
	x += r.drawText(x, 0, width-x, fmt.Sprintf(" Score: %d ", s.Score), defaultStyle.Foreground(RgbStatusBar))
	r.drawText(x, 0, width-x, fmt.Sprintf(" Level: %s ", v.Difficulty), defaultStyle.Foreground(RgbHelpText))
}

func (r *TerminalRenderer) drawLeaderboard(x, y, width int, entries []leaderboard.Entry, defaultStyle tcell.Style) {
	r.drawText(x, y, width, "Leaderboard", defaultStyle.Foreground(RgbPanelTitle).Bold(true))
	if len(entries) == 0 {
		r.drawText(x, y+2, width, "no scores yet", defaultStyle.Foreground(RgbHelpText))
		return
	}
	for i, line := range leaderboard.Lines(entries) {
		r.drawText(x, y+2+i, width, line, defaultStyle.Foreground(RgbPanelText))
	}
}

// drawText writes s left to right, clipped to width; returns cells written
func (r *TerminalRenderer) drawText(x, y, width int, s string, style tcell.Style) int {
	n := 0
	for _, ch := range s {
		if n >= width {
			break
		}
		r.screen.SetContent(x+n, y, ch, nil, style)
		n++
	}
	return n
}
