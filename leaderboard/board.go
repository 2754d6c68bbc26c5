package leaderboard

import (
	"context"

	"go.uber.org/zap"
)

// Board fronts a Backend and absorbs its failures
// A broken store never prevents a session from ending
type Board struct {
	backend Backend
	log     *zap.Logger
}

// New creates a Board; a nil logger disables logging
func New(backend Backend, log *zap.Logger) *Board {
	if log == nil {
		log = zap.NewNop()
	}
	return &Board{backend: backend, log: log}
}

// RecordFinalScore appends score; failures are logged and dropped
func (b *Board) RecordFinalScore(ctx context.Context, score int) {
	if score < 0 {
		b.log.Warn("negative final score ignored", zap.Int("score", score))
		return
	}
	if err := b.backend.Append(ctx, score); err != nil {
		b.log.Warn("record final score", zap.Int("score", score), zap.Error(&PersistenceError{Op: "append", Err: err}))
		return
	}
	b.log.Info("final score recorded", zap.Int("score", score))
}

// TopN returns the n best scores; read failures yield an empty view
func (b *Board) TopN(ctx context.Context, n int) []Entry {
	scores, err := b.backend.Scores(ctx)
	if err != nil {
		b.log.Warn("load leaderboard", zap.Error(&PersistenceError{Op: "load", Err: err}))
		return []Entry{}
	}
	return Top(scores, n)
}
