package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NexbytesTech/OpenCV-game/status"
)

type recorderStub struct {
	scores []int
}

func (r *recorderStub) RecordFinalScore(_ context.Context, score int) {
	r.scores = append(r.scores, score)
}

type listenerStub struct {
	hits    int
	timed   int
	results []Result
}

func (l *listenerStub) OnHit(Snapshot)          { l.hits++ }
func (l *listenerStub) OnTimedRespawn(Snapshot) { l.timed++ }
func (l *listenerStub) OnEnd(r Result)          { l.results = append(l.results, r) }

type sessionFixture struct {
	session  *Session
	clock    *ManualClock
	recorder *recorderStub
	listener *listenerStub
	metrics  *status.Registry
}

func newSessionFixture(t *testing.T, cfg Config) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		clock:    NewManualClock(testEpoch),
		recorder: &recorderStub{},
		listener: &listenerStub{},
		metrics:  status.NewRegistry(),
	}
	f.session = NewSession(cfg,
		WithTimeProvider(f.clock),
		WithRand(testRand()),
		WithRecorder(f.recorder),
		WithListener(f.listener),
		WithMetrics(f.metrics),
	)
	return f
}

func (f *sessionFixture) tickAt(p TrackedPoint, seconds float64) Snapshot {
	f.clock.Set(at(seconds))
	return f.session.Tick(p)
}

func TestSessionLifecycle(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session
	assert.Equal(t, StateNotStarted, s.State())
	assert.Equal(t, 30*time.Second, s.Snapshot().Remaining)

	require.NoError(t, s.Start())
	assert.Equal(t, StateRunning, s.State())
	require.ErrorIs(t, s.Start(), ErrInvalidTransition)

	snap := f.tickAt(NoDetection, 31)
	require.True(t, snap.Terminal)
	assert.Equal(t, OutcomeGameOver, snap.Outcome)
	assert.Empty(t, f.recorder.scores, "tick never records")

	res := s.End(context.Background())
	assert.Equal(t, Result{Score: 0, Outcome: OutcomeGameOver, Recorded: true}, res)
	assert.Equal(t, []int{0}, f.recorder.scores)
	require.Len(t, f.listener.results, 1)

	again := s.End(context.Background())
	assert.False(t, again.Recorded)
	assert.Equal(t, []int{0}, f.recorder.scores, "final score is recorded once")
	assert.Len(t, f.listener.results, 1)
}

func TestSessionRestartRecordsTimedOutSession(t *testing.T) {
	cfg := testConfig()
	cfg.IdleRespawnTimeout = time.Minute
	f := newSessionFixture(t, cfg)
	s := f.session
	require.NoError(t, s.Start())

	tg := s.Snapshot().Target()
	require.True(t, f.tickAt(PointAt(tg.X, tg.Y), 1).Hit)
	require.True(t, f.tickAt(NoDetection, 40).Terminal)

	require.NoError(t, s.Start())
	assert.Equal(t, []int{1}, f.recorder.scores, "ended session is recorded before the restart")
	assert.Equal(t, StateRunning, s.State())
	assert.Equal(t, 0, s.Snapshot().Score)

	require.True(t, f.tickAt(NoDetection, 80).Terminal)
	require.NoError(t, s.Start())
	assert.Equal(t, []int{1, 0}, f.recorder.scores)
	assert.Len(t, f.listener.results, 2)

	res := s.End(context.Background())
	assert.Equal(t, OutcomeStopped, res.Outcome)
	assert.Equal(t, []int{1, 0, 0}, f.recorder.scores)
}

func TestSessionStopRecordsOnce(t *testing.T) {
	cfg := testConfig()
	cfg.IdleRespawnTimeout = time.Minute
	f := newSessionFixture(t, cfg)
	s := f.session
	require.NoError(t, s.Start())

	tg := s.Snapshot().Target()
	snap := f.tickAt(PointAt(tg.X+5, tg.Y-5), 2)
	require.True(t, snap.Hit)
	assert.Equal(t, 1, f.listener.hits)

	f.clock.Set(at(4))
	res := s.Stop(context.Background())
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, OutcomeStopped, res.Outcome)
	assert.True(t, res.Recorded)
	assert.Equal(t, []int{1}, f.recorder.scores)

	after := f.tickAt(PointAt(tg.X, tg.Y), 5)
	assert.True(t, after.Terminal)
	assert.Equal(t, 1, after.Score)

	s.Stop(context.Background())
	assert.Equal(t, []int{1}, f.recorder.scores)
}

func TestSessionEndBeforeStart(t *testing.T) {
	f := newSessionFixture(t, testConfig())

	res := f.session.End(context.Background())

	assert.Equal(t, Result{}, res)
	assert.Empty(t, f.recorder.scores)
	assert.Equal(t, StateNotStarted, f.session.Tick(NoDetection).State)
}

func TestSessionConfigurationErrorSurfacesFromStart(t *testing.T) {
	cfg := testConfig()
	cfg.Bounds = Bounds{Width: 30, Height: 480}
	f := newSessionFixture(t, cfg)

	err := f.session.Start()

	require.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, StateNotStarted, f.session.State())
}

func TestSessionDifficultyOnlyBetweenSessions(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session

	require.NoError(t, s.SetDifficulty(DifficultyHard))
	require.NoError(t, s.Start())
	require.ErrorIs(t, s.SetDifficulty(DifficultyEasy), ErrSessionActive)
	assert.Equal(t, DifficultyHard, s.Config().Difficulty)

	assert.False(t, f.tickAt(NoDetection, 14.5).Terminal)
	assert.True(t, f.tickAt(NoDetection, 15).Terminal)

	require.NoError(t, s.SetDifficulty(DifficultyEasy))
	require.ErrorIs(t, s.SetDifficulty(Difficulty(9)), ErrConfiguration)
}

func TestSessionPauseResume(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session
	require.ErrorIs(t, s.Pause(), ErrInvalidTransition)

	require.NoError(t, s.Start())
	f.clock.Set(at(10))
	require.NoError(t, s.Pause())
	assert.False(t, f.tickAt(NoDetection, 100).Terminal)

	require.NoError(t, s.Resume())
	snap := f.tickAt(NoDetection, 105)
	assert.Equal(t, 15*time.Second, snap.Remaining)
}

func TestSessionMetrics(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	require.NoError(t, f.session.Start())

	f.tickAt(NoDetection, 1)
	f.tickAt(PointAt(1, 1), 2)
	f.tickAt(NoDetection, 3.5)
	f.tickAt(NoDetection, 40)
	f.session.End(context.Background())

	values := f.metrics.Values()
	assert.Equal(t, float64(4), values[status.KeyTicks])
	assert.Equal(t, float64(1), values[status.KeyDetections])
	assert.Equal(t, float64(1), values[status.KeyTimedRespawns])
	assert.Equal(t, float64(1), values[status.KeySessions])
	assert.Equal(t, float64(1), values[status.KeyEnded])
	assert.Equal(t, 1, f.listener.timed)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := newSessionFixture(t, testConfig())
	b := newSessionFixture(t, testConfig())
	require.NoError(t, a.session.Start())
	require.NoError(t, b.session.Start())

	a.tickAt(NoDetection, 31)

	assert.Equal(t, StateEnded, a.session.State())
	assert.Equal(t, StateRunning, b.session.State())
}
