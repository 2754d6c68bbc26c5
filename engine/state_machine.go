package engine

import (
	"math/rand/v2"
	"time"
)

// validTransitions lists every lifecycle edge the state machine accepts
var validTransitions = map[SessionState][]SessionState{
	StateNotStarted: {StateRunning},
	StateRunning:    {StatePaused, StateEnded},
	StatePaused:     {StateRunning, StateEnded},
	StateEnded:      {StateRunning, StateNotStarted},
}

// CanTransition reports whether from -> to is a lifecycle edge
func CanTransition(from, to SessionState) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// StateMachine owns one session's score, time budget and target
// It is driven by explicit timestamps and performs no I/O
type StateMachine struct {
	cfg     Config
	factor  float64
	spawner *TargetSpawner

	state   SessionState
	outcome Outcome

	score       int
	timeBudget  time.Duration
	startTime   time.Time
	pausedAt    time.Time
	pausedTotal time.Duration

	last Snapshot
}

// NewStateMachine validates cfg and prepares a machine in NotStarted
func NewStateMachine(cfg Config, rng *rand.Rand) (*StateMachine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	spawner, err := NewTargetSpawner(cfg.Bounds, cfg.TargetRadius, cfg.TargetColor, cfg.ColorPolicy, cfg.IdleRespawnTimeout, rng)
	if err != nil {
		return nil, err
	}
	m := &StateMachine{
		cfg:     cfg,
		factor:  cfg.Difficulty.Factor(),
		spawner: spawner,
		state:   StateNotStarted,
	}
	m.last = m.snapshot(cfg.InitialTimeLimit)
	return m, nil
}

// State returns the lifecycle phase
func (m *StateMachine) State() SessionState { return m.state }

// Outcome returns how the session ended, OutcomeNone until it has
func (m *StateMachine) Outcome() Outcome { return m.outcome }

// Score returns the current score
func (m *StateMachine) Score() int { return m.score }

// TimeBudget returns the budget including every bonus earned so far
func (m *StateMachine) TimeBudget() time.Duration { return m.timeBudget }

// Target returns the current target
func (m *StateMachine) Target() Target { return m.spawner.Target() }

// Difficulty returns the level the machine scales time with
func (m *StateMachine) Difficulty() Difficulty { return m.cfg.Difficulty }

// Snapshot returns the last snapshot produced
func (m *StateMachine) Snapshot() Snapshot { return m.last }

// SetDifficulty changes the level between sessions only
func (m *StateMachine) SetDifficulty(d Difficulty) error {
	if m.state == StateRunning || m.state == StatePaused {
		return ErrSessionActive
	}
	if !d.Valid() {
		return configErr("difficulty", "unknown level %d", int(d))
	}
	m.cfg.Difficulty = d
	m.factor = d.Factor()
	return nil
}

// Start resets the session bookkeeping, spawns the first target and enters Running
func (m *StateMachine) Start(now time.Time) error {
	if !CanTransition(m.state, StateRunning) || m.state == StatePaused {
		return transitionErr("start", m.state)
	}
	m.score = 0
	m.timeBudget = m.cfg.InitialTimeLimit
	m.startTime = now
	m.pausedAt = time.Time{}
	m.pausedTotal = 0
	m.outcome = OutcomeNone
	m.spawner.Respawn(now, RespawnInitial)
	m.state = StateRunning
	m.last = m.snapshot(m.timeBudget)
	return nil
}

// Tick advances the session to now
// Outside Running it returns the last snapshot without mutating anything
func (m *StateMachine) Tick(p TrackedPoint, now time.Time) Snapshot {
	if m.state != StateRunning {
		return m.last
	}

	elapsed := m.scaledElapsed(now)
	remaining := m.timeBudget - elapsed
	if remaining <= 0 {
		m.state = StateEnded
		m.outcome = OutcomeGameOver
		m.last = m.snapshot(0)
		return m.last
	}

	// Nothing below can fail, so the tick's mutations land together
	timed := m.spawner.MaybeTimedRespawn(now)

	hit := IsHit(p, m.spawner.Target())
	if hit {
		m.score++
		m.timeBudget += m.cfg.ScoreBonus
		remaining += m.cfg.ScoreBonus
		m.spawner.Respawn(now, RespawnHit)
	}

	snap := m.snapshot(remaining)
	snap.Hit = hit
	snap.TimedRespawn = timed
	m.last = snap
	return snap
}

// Stop ends a Running or Paused session on user request
func (m *StateMachine) Stop(now time.Time) error {
	if m.state != StateRunning && m.state != StatePaused {
		return transitionErr("stop", m.state)
	}
	at := now
	if m.state == StatePaused {
		at = m.pausedAt
	}
	remaining := m.timeBudget - m.scaledElapsed(at)
	if remaining < 0 {
		remaining = 0
	}
	m.state = StateEnded
	m.outcome = OutcomeStopped
	m.last = m.snapshot(remaining)
	return nil
}

// Pause freezes the budget and the idle-respawn timer
func (m *StateMachine) Pause(now time.Time) error {
	if m.state != StateRunning {
		return transitionErr("pause", m.state)
	}
	m.pausedAt = now
	m.state = StatePaused
	m.last.State = StatePaused
	m.last.Hit = false
	m.last.TimedRespawn = false
	return nil
}

// Resume continues a paused session; the paused span does not count as elapsed
func (m *StateMachine) Resume(now time.Time) error {
	if m.state != StatePaused {
		return transitionErr("resume", m.state)
	}
	paused := sinceClamped(now, m.pausedAt)
	m.pausedTotal += paused
	m.spawner.shift(paused)
	m.pausedAt = time.Time{}
	m.state = StateRunning
	m.last.State = StateRunning
	return nil
}

// Reset returns an ended session to NotStarted
func (m *StateMachine) Reset() error {
	if m.state != StateEnded {
		return transitionErr("reset", m.state)
	}
	m.state = StateNotStarted
	m.outcome = OutcomeNone
	m.score = 0
	m.timeBudget = 0
	m.last = m.snapshot(m.cfg.InitialTimeLimit)
	return nil
}

func (m *StateMachine) scaledElapsed(now time.Time) time.Duration {
	active := sinceClamped(now, m.startTime) - m.pausedTotal
	if active < 0 {
		active = 0
	}
	return time.Duration(float64(active) * m.factor)
}

func (m *StateMachine) snapshot(remaining time.Duration) Snapshot {
	t := m.spawner.Target()
	return Snapshot{
		TargetX:      t.X,
		TargetY:      t.Y,
		TargetRadius: t.Radius,
		TargetColor:  t.Color,
		Score:        m.score,
		Remaining:    remaining,
		Terminal:     m.state == StateEnded,
		State:        m.state,
		Outcome:      m.outcome,
	}
}
