package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NexbytesTech/OpenCV-game/engine"
	"github.com/NexbytesTech/OpenCV-game/leaderboard"
)

var testFrame = engine.Bounds{Width: 640, Height: 480}

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return b.String()
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	runes := cells[y*w+x].Runes
	if len(runes) == 0 {
		return ' '
	}
	return runes[0]
}

func screenText(s tcell.SimulationScreen) string {
	_, _, h := s.GetContents()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(s, y)
	}
	return strings.Join(rows, "\n")
}

func runningSnapshot() engine.Snapshot {
	return engine.Snapshot{
		TargetX:      320,
		TargetY:      240,
		TargetRadius: 25,
		TargetColor:  engine.DefaultTargetColor,
		Score:        3,
		Remaining:    12500 * time.Millisecond,
		State:        engine.StateRunning,
	}
}

func TestDrawIdleScreen(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, testFrame)

	r.Draw(View{
		Snapshot:   engine.Snapshot{State: engine.StateNotStarted, Remaining: 30 * time.Second},
		Difficulty: engine.DifficultyEasy,
	})

	hud := rowText(screen, 0)
	assert.Contains(t, hud, "Time: 30s")
	assert.Contains(t, hud, "Score: 0")
	assert.Contains(t, hud, "Level: Easy")
	assert.Contains(t, screenText(screen), "Press s to start")
	assert.Contains(t, screenText(screen), "no scores yet")
	assert.Contains(t, rowText(screen, 23), "s start")
}

func TestDrawTargetAndPointer(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, testFrame)
	vp := r.Viewport()
	require.Equal(t, 58, vp.Width)
	require.Equal(t, 22, vp.Height)

	r.Draw(View{
		Snapshot: runningSnapshot(),
		Pointer:  engine.PointAt(40, 40),
	})

	cx, cy := vp.PixelToCell(320, 240)
	assert.Equal(t, '█', runeAt(screen, cx, cy))
	px, py := vp.PixelToCell(40, 40)
	assert.Equal(t, '●', runeAt(screen, px, py))
	assert.Contains(t, rowText(screen, 0), "Time: 12s")
	assert.Contains(t, rowText(screen, 0), "Score: 3")
	assert.NotContains(t, screenText(screen), "Press s to start")
}

func TestDrawEndedBanner(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, testFrame)
	snap := runningSnapshot()
	snap.State = engine.StateEnded
	snap.Terminal = true
	snap.Outcome = engine.OutcomeGameOver
	snap.Remaining = 0

	r.Draw(View{Snapshot: snap})

	assert.Contains(t, screenText(screen), "Game Over - Score: 3")
	assert.Contains(t, rowText(screen, 0), "Time: 0s")
}

func TestDrawLeaderboardPanel(t *testing.T) {
	screen := newTestScreen(t, 80, 24)
	r := NewTerminalRenderer(screen, testFrame)

	r.Draw(View{
		Snapshot:    engine.Snapshot{State: engine.StateNotStarted},
		Leaderboard: leaderboard.Top([]int{4, 12, 7}, leaderboard.DefaultTopN),
		Message:     "leaderboard unavailable",
	})

	assert.Contains(t, rowText(screen, 1), "Leaderboard")
	assert.Contains(t, rowText(screen, 3), "1. Score: 12")
	assert.Contains(t, rowText(screen, 5), "3. Score: 4")
	assert.Contains(t, rowText(screen, 23), "leaderboard unavailable")
}

func TestNarrowScreenDropsPanel(t *testing.T) {
	screen := newTestScreen(t, 40, 12)
	r := NewTerminalRenderer(screen, testFrame)

	vp := r.Viewport()
	assert.Equal(t, 40, vp.Width)
	assert.Equal(t, 10, vp.Height)

	r.Draw(View{Leaderboard: leaderboard.Top([]int{1}, 5)})
	assert.NotContains(t, screenText(screen), "Leaderboard")
}
