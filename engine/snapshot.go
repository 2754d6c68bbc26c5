package engine

import (
	"fmt"
	"time"
)

// SessionState is the lifecycle phase of a session
type SessionState int

const (
	StateNotStarted SessionState = iota
	StateRunning
	StatePaused
	StateEnded
)

func (s SessionState) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateEnded:
		return "Ended"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

// Outcome tells how an ended session finished
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGameOver
	OutcomeStopped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGameOver:
		return "Game Over"
	case OutcomeStopped:
		return "Stopped"
	default:
		return ""
	}
}

// Snapshot is the render-ready view of a session after a tick
type Snapshot struct {
	TargetX      int
	TargetY      int
	TargetRadius int
	TargetColor  Color

	Score     int
	Remaining time.Duration
	Terminal  bool

	State        SessionState
	Outcome      Outcome
	Hit          bool // target was hit this tick
	TimedRespawn bool // target relocated on idle timeout this tick
}

// RemainingSeconds returns the remaining budget in seconds
func (s Snapshot) RemainingSeconds() float64 {
	return s.Remaining.Seconds()
}

// DisplaySeconds truncates the remaining budget to whole seconds for the HUD
func (s Snapshot) DisplaySeconds() int {
	if s.Remaining <= 0 {
		return 0
	}
	return int(s.Remaining / time.Second)
}

// Target returns the target fields as a Target
func (s Snapshot) Target() Target {
	return Target{X: s.TargetX, Y: s.TargetY, Radius: s.TargetRadius, Color: s.TargetColor}
}
