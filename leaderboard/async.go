package leaderboard

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// AsyncRecorder hands final scores to a single writer goroutine
// so the game loop never waits on leaderboard I/O
type AsyncRecorder struct {
	board *Board
	log   *zap.Logger
	queue chan int
	wrote chan struct{}

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewAsyncRecorder starts the writer; buffer is the number of scores that may wait
func NewAsyncRecorder(board *Board, buffer int, log *zap.Logger) *AsyncRecorder {
	if buffer < 1 {
		buffer = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &AsyncRecorder{
		board: board,
		log:   log,
		queue: make(chan int, buffer),
		wrote: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *AsyncRecorder) run() {
	defer close(r.done)
	for score := range r.queue {
		r.board.RecordFinalScore(context.Background(), score)
		select {
		case r.wrote <- struct{}{}:
		default:
		}
	}
}

// Written signals after queued scores reach the board, coalescing bursts
func (r *AsyncRecorder) Written() <-chan struct{} {
	return r.wrote
}

// RecordFinalScore queues score; a full queue or a closed recorder drops it with a warning
func (r *AsyncRecorder) RecordFinalScore(_ context.Context, score int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.log.Warn("leaderboard recorder closed, score dropped", zap.Int("score", score))
		return
	}
	select {
	case r.queue <- score:
	default:
		r.log.Warn("leaderboard queue full, score dropped", zap.Int("score", score))
	}
}

// Close stops accepting scores and waits until queued ones are written or ctx ends
func (r *AsyncRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
