package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/NexbytesTech/OpenCV-game/engine"
)

var (
	RgbBackground   = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbPlayfield    = tcell.NewRGBColor(32, 34, 48)    // Slightly lifted play area
	RgbStatusBar    = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusText   = tcell.NewRGBColor(0, 0, 0)       // Dark text on status backgrounds
	RgbHelpText     = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbPointer      = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbPointerOnHit = tcell.NewRGBColor(255, 255, 255) // White while over the target
	RgbPanelTitle   = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbPanelText    = tcell.NewRGBColor(200, 200, 200)

	// Status bar backgrounds per session state
	RgbIdleBg    = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbRunningBg = tcell.NewRGBColor(144, 238, 144) // Light grass green
	RgbPausedBg  = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbEndedBg   = tcell.NewRGBColor(200, 50, 50)   // Red

	RgbLowTime = tcell.NewRGBColor(255, 80, 80) // Remaining time under lowTimeSeconds
)

const lowTimeSeconds = 5

// TargetColor converts a target color to a terminal color
func TargetColor(c engine.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// stateBackground picks the status badge color
func stateBackground(s engine.SessionState) tcell.Color {
	switch s {
	case engine.StateRunning:
		return RgbRunningBg
	case engine.StatePaused:
		return RgbPausedBg
	case engine.StateEnded:
		return RgbEndedBg
	default:
		return RgbIdleBg
	}
}
