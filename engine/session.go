package engine

import (
	"context"
	"math/rand/v2"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/NexbytesTech/OpenCV-game/status"
)

// Recorder receives the final score of every ended session
// Implementations handle their own failures; the session never sees them
type Recorder interface {
	RecordFinalScore(ctx context.Context, score int)
}

// Listener observes gameplay events, e.g. for sound cues
type Listener interface {
	OnHit(Snapshot)
	OnTimedRespawn(Snapshot)
	OnEnd(Result)
}

// Result is the final account of a session
type Result struct {
	Score    int
	Outcome  Outcome
	Recorded bool // false when the score had already been handed to the recorder
}

// Session composes the state machine with a clock, a score recorder and observers
// It is owned by a single game loop and is not safe for concurrent use
type Session struct {
	cfg      Config
	clock    TimeProvider
	rng      *rand.Rand
	recorder Recorder
	listener Listener
	log      *zap.Logger

	machine   *StateMachine
	finalized bool

	statTicks      *atomic.Int64
	statDetections *atomic.Int64
	statHits       *atomic.Int64
	statTimed      *atomic.Int64
	statStarted    *atomic.Int64
	statEnded      *atomic.Int64
	statRemaining  *status.Gauge
}

// Option configures a Session
type Option func(*Session)

// WithTimeProvider replaces the monotonic clock, typically with a ManualClock
func WithTimeProvider(p TimeProvider) Option {
	return func(s *Session) { s.clock = p }
}

// WithRand replaces the seeded random source
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithRecorder sets where final scores go
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithListener registers a gameplay observer
func WithListener(l Listener) Option {
	return func(s *Session) { s.listener = l }
}

// WithLogger sets the session logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithMetrics publishes session counters into reg
func WithMetrics(reg *status.Registry) Option {
	return func(s *Session) { s.bindMetrics(reg) }
}

// NewSession creates a session in NotStarted; cfg is validated by Start
func NewSession(cfg Config, opts ...Option) *Session {
	s := &Session{
		cfg:   cfg,
		clock: NewMonotonicTimeProvider(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newRand(cfg.Seed)
	}
	if s.statTicks == nil {
		s.bindMetrics(status.NewRegistry())
	}
	return s
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func (s *Session) bindMetrics(reg *status.Registry) {
	s.statTicks = reg.Counter(status.KeyTicks)
	s.statDetections = reg.Counter(status.KeyDetections)
	s.statHits = reg.Counter(status.KeyHits)
	s.statTimed = reg.Counter(status.KeyTimedRespawns)
	s.statStarted = reg.Counter(status.KeySessions)
	s.statEnded = reg.Counter(status.KeyEnded)
	s.statRemaining = reg.Gauge(status.KeyRemaining)
}

// Config returns the configuration the next Start will use
func (s *Session) Config() Config { return s.cfg }

// State returns the lifecycle phase
func (s *Session) State() SessionState {
	if s.machine == nil {
		return StateNotStarted
	}
	return s.machine.State()
}

// Snapshot returns the most recent snapshot
func (s *Session) Snapshot() Snapshot {
	if s.machine == nil {
		return Snapshot{State: StateNotStarted, Remaining: s.cfg.InitialTimeLimit}
	}
	return s.machine.Snapshot()
}

// SetDifficulty selects the level for the next session
// It is rejected with ErrSessionActive while a session is Running or Paused
func (s *Session) SetDifficulty(d Difficulty) error {
	switch s.State() {
	case StateRunning, StatePaused:
		return ErrSessionActive
	}
	if !d.Valid() {
		return configErr("difficulty", "unknown level %d", int(d))
	}
	s.cfg.Difficulty = d
	return nil
}

// Start begins a new session from NotStarted or Ended
// A previous session that ended without End is finalized first
// Configuration problems are reported here as *ConfigurationError
func (s *Session) Start() error {
	switch s.State() {
	case StateRunning, StatePaused:
		return transitionErr("start", s.State())
	case StateEnded:
		if !s.finalized {
			s.End(context.Background())
		}
	}
	m, err := NewStateMachine(s.cfg, s.rng)
	if err != nil {
		return err
	}
	if err := m.Start(s.clock.Now()); err != nil {
		return err
	}
	s.machine = m
	s.finalized = false
	s.statStarted.Add(1)
	s.log.Info("session started",
		zap.Stringer("difficulty", s.cfg.Difficulty),
		zap.Duration("time_limit", s.cfg.InitialTimeLimit),
		zap.Int("target_x", m.Target().X),
		zap.Int("target_y", m.Target().Y),
	)
	return nil
}

// Tick advances the session with this frame's tracked point
// It never performs leaderboard I/O; call End once the snapshot is terminal
func (s *Session) Tick(p TrackedPoint) Snapshot {
	if s.machine == nil {
		return s.Snapshot()
	}
	if s.machine.State() != StateRunning {
		return s.machine.Snapshot()
	}

	snap := s.machine.Tick(p, s.clock.Now())
	s.statTicks.Add(1)
	if p.Valid {
		s.statDetections.Add(1)
	}
	s.statRemaining.Set(snap.RemainingSeconds())

	if snap.TimedRespawn {
		s.statTimed.Add(1)
		s.log.Debug("target relocated", zap.Int("x", snap.TargetX), zap.Int("y", snap.TargetY))
		if s.listener != nil {
			s.listener.OnTimedRespawn(snap)
		}
	}
	if snap.Hit {
		s.statHits.Add(1)
		s.log.Debug("target hit", zap.Int("score", snap.Score), zap.Float64("remaining", snap.RemainingSeconds()))
		if s.listener != nil {
			s.listener.OnHit(snap)
		}
	}
	if snap.Terminal {
		s.log.Info("time is up", zap.Int("score", snap.Score))
	}
	return snap
}

// Pause freezes a running session
func (s *Session) Pause() error {
	if s.machine == nil {
		return transitionErr("pause", StateNotStarted)
	}
	return s.machine.Pause(s.clock.Now())
}

// Resume continues a paused session
func (s *Session) Resume() error {
	if s.machine == nil {
		return transitionErr("resume", StateNotStarted)
	}
	return s.machine.Resume(s.clock.Now())
}

// Stop aborts a running or paused session and finalizes it
func (s *Session) Stop(ctx context.Context) Result {
	return s.End(ctx)
}

// End finalizes the session: an active session is stopped, and the final
// score is handed to the recorder exactly once
func (s *Session) End(ctx context.Context) Result {
	if s.machine == nil {
		return Result{}
	}
	switch s.machine.State() {
	case StateRunning, StatePaused:
		_ = s.machine.Stop(s.clock.Now())
	case StateNotStarted:
		return Result{}
	}

	res := Result{Score: s.machine.Score(), Outcome: s.machine.Outcome()}
	if s.finalized {
		return res
	}
	s.finalized = true
	res.Recorded = true
	s.statEnded.Add(1)

	if s.recorder != nil {
		s.recorder.RecordFinalScore(ctx, res.Score)
	}
	s.log.Info("session ended", zap.Int("score", res.Score), zap.Stringer("outcome", res.Outcome))
	if s.listener != nil {
		s.listener.OnEnd(res)
	}
	return res
}
