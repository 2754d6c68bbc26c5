package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/NexbytesTech/OpenCV-game/audio"
	"github.com/NexbytesTech/OpenCV-game/config"
	"github.com/NexbytesTech/OpenCV-game/engine"
	"github.com/NexbytesTech/OpenCV-game/leaderboard"
	"github.com/NexbytesTech/OpenCV-game/logger"
	"github.com/NexbytesTech/OpenCV-game/pose"
	"github.com/NexbytesTech/OpenCV-game/render"
	"github.com/NexbytesTech/OpenCV-game/status"
)

var (
	landmarksFlag  = flag.String("landmarks", "", "Landmark feed: path to an NDJSON file or - for stdin; mouse is used when empty")
	difficultyFlag = flag.String("difficulty", "", "Starting level: easy, medium, hard (overrides FINGERTIP_DIFFICULTY)")
	backendFlag    = flag.String("leaderboard", "", "Leaderboard backend: file, sqlite, memory (overrides FINGERTIP_LEADERBOARD_BACKEND)")
)

const recorderCloseTimeout = 2 * time.Second

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if err := applyFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "fingertip: %v\n", err)
		os.Exit(1)
	}
}

func applyFlags(cfg *config.Config) error {
	if *difficultyFlag != "" {
		d, err := engine.ParseDifficulty(*difficultyFlag)
		if err != nil {
			return err
		}
		cfg.Difficulty = d
	}
	if *backendFlag != "" {
		cfg.LeaderboardBackend = *backendFlag
	}
	return cfg.Validate()
}

// openBackend builds the configured leaderboard store and its release func
func openBackend(cfg config.Config) (leaderboard.Backend, func() error, error) {
	noop := func() error { return nil }
	switch cfg.LeaderboardBackend {
	case config.BackendSQLite:
		db, err := leaderboard.OpenSQLite(cfg.LeaderboardFile())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.BackendMemory:
		return leaderboard.NewMemoryBackend(), noop, nil
	default:
		return leaderboard.NewFileBackend(cfg.LeaderboardFile()), noop, nil
	}
}

// openLeaderboard opens the configured store, falling back to memory so a
// broken store never keeps the game from starting
func openLeaderboard(cfg config.Config, log *zap.Logger) (leaderboard.Backend, func() error) {
	backend, closeFn, err := openBackend(cfg)
	if err != nil {
		log.Warn("leaderboard unavailable, scores kept in memory",
			zap.String("backend", cfg.LeaderboardBackend),
			zap.String("path", cfg.LeaderboardFile()),
			zap.Error(err),
		)
		return leaderboard.NewMemoryBackend(), func() error { return nil }
	}
	return backend, closeFn
}

// openFeed returns the landmark source named by -landmarks, nil when unset
func openFeed(name string) (io.ReadCloser, error) {
	switch name {
	case "":
		return nil, nil
	case "-":
		return io.NopCloser(os.Stdin), nil
	default:
		return os.Open(name)
	}
}

func run(cfg config.Config) error {
	log, err := logger.New(cfg.Logger())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer log.Sync()

	backend, closeBackend := openLeaderboard(cfg, log.Named("leaderboard"))
	defer closeBackend()

	board := leaderboard.New(backend, log.Named("leaderboard"))
	recorder := leaderboard.NewAsyncRecorder(board, 16, log.Named("leaderboard"))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), recorderCloseTimeout)
		defer cancel()
		if cerr := recorder.Close(ctx); cerr != nil {
			log.Warn("leaderboard flush incomplete", zap.Error(cerr))
		}
	}()

	sound := audio.NewSoundManager(cfg.Audio(), log.Named("audio"))
	if err := sound.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	defer sound.Cleanup()

	metrics := status.NewRegistry()
	session := engine.NewSession(cfg.Session(),
		engine.WithRecorder(recorder),
		engine.WithListener(audio.Cues{Player: sound}),
		engine.WithLogger(log.Named("session")),
		engine.WithMetrics(metrics),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var tracker *pose.Tracker
	feed, err := openFeed(*landmarksFlag)
	if err != nil {
		return fmt.Errorf("open landmark feed: %w", err)
	}
	if feed != nil {
		defer feed.Close()
		est := pose.NewStreamEstimator(feed, cfg.StaleFrame, log.Named("pose"))
		go func() {
			if err := est.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn("landmark feed stopped", zap.Error(err))
			}
		}()
		tracker = &pose.Tracker{Estimator: est, Bounds: cfg.Session().Bounds, Mirror: cfg.Mirror}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Panic recovery: the terminal must be restored before the trace is printed
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mFINGERTIP CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()

	g := &game{
		cfg:      cfg,
		log:      log,
		session:  session,
		board:    board,
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen, cfg.Session().Bounds),
		tracker:  tracker,
		mouse:    engine.NoDetection,
	}
	g.refreshLeaderboard(ctx)
	g.loop(ctx, recorder.Written())

	g.session.End(ctx)
	log.Info("shutdown", zap.Any("metrics", metrics.Values()))
	return nil
}

// game is the thin shell around a session: input in, snapshot out
type game struct {
	cfg      config.Config
	log      *zap.Logger
	session  *engine.Session
	board    *leaderboard.Board
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	tracker  *pose.Tracker

	mouse   engine.TrackedPoint
	pointer engine.TrackedPoint
	entries []leaderboard.Entry
	message string
	ended   bool
}

func (g *game) loop(ctx context.Context, written <-chan struct{}) {
	ticker := time.NewTicker(g.cfg.TickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	g.draw()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleEvent(ctx, ev) {
				return
			}
		case <-written:
			g.refreshLeaderboard(ctx)
		case <-ticker.C:
			g.tick(ctx)
			g.draw()
		}
	}
}

func (g *game) tick(ctx context.Context) {
	g.pointer = g.mouse
	if g.tracker != nil {
		g.pointer = g.tracker.Point()
	}

	snap := g.session.Tick(g.pointer)
	if snap.Terminal && !g.ended {
		g.ended = true
		g.session.End(ctx)
	}
}

func (g *game) draw() {
	g.renderer.Draw(render.View{
		Snapshot:    g.session.Snapshot(),
		Difficulty:  g.session.Config().Difficulty,
		Pointer:     g.pointer,
		Leaderboard: g.entries,
		Message:     g.message,
	})
}

func (g *game) refreshLeaderboard(ctx context.Context) {
	g.entries = g.board.TopN(ctx, g.cfg.LeaderboardTopN)
}

// handleEvent returns false when the player quits
func (g *game) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.handleKey(ctx, ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		g.handleMouse(ev.Position())

	case *tcell.EventResize:
		g.screen.Sync()
		g.draw()
	}
	return true
}

func (g *game) handleKey(ctx context.Context, k tcell.Key, r rune) bool {
	if k == tcell.KeyEscape || k == tcell.KeyCtrlC {
		return false
	}
	if k != tcell.KeyRune {
		return true
	}
	g.message = ""
	switch r {
	case 'q':
		return false
	case '1':
		g.setDifficulty(engine.DifficultyEasy)
	case '2':
		g.setDifficulty(engine.DifficultyMedium)
	case '3':
		g.setDifficulty(engine.DifficultyHard)
	case 's':
		g.start()
	case 'p':
		g.togglePause()
	case 'x':
		if g.session.State() == engine.StateRunning || g.session.State() == engine.StatePaused {
			g.ended = true
			g.session.Stop(ctx)
		}
	}
	g.draw()
	return true
}

// handleMouse tracks the pointer cell as the fallback tracked point
func (g *game) handleMouse(x, y int) {
	g.mouse = g.renderer.Viewport().PointAt(x, y)
}

func (g *game) setDifficulty(d engine.Difficulty) {
	if err := g.session.SetDifficulty(d); err != nil {
		if errors.Is(err, engine.ErrSessionActive) {
			g.message = "level can only change between games"
			return
		}
		g.message = err.Error()
	}
}

func (g *game) start() {
	if err := g.session.Start(); err != nil {
		if errors.Is(err, engine.ErrInvalidTransition) {
			g.message = "a game is already running"
			return
		}
		g.log.Error("start session", zap.Error(err))
		g.message = err.Error()
		return
	}
	g.ended = false
}

func (g *game) togglePause() {
	var err error
	switch g.session.State() {
	case engine.StateRunning:
		err = g.session.Pause()
	case engine.StatePaused:
		err = g.session.Resume()
	default:
		return
	}
	if err != nil {
		g.message = err.Error()
	}
}
