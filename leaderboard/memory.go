package leaderboard

import (
	"context"
	"slices"
	"sync"
)

// MemoryBackend keeps scores for the life of the process
type MemoryBackend struct {
	mu     sync.Mutex
	scores []int
}

// NewMemoryBackend creates a backend seeded with scores in record order
func NewMemoryBackend(scores ...int) *MemoryBackend {
	return &MemoryBackend{scores: slices.Clone(scores)}
}

func (m *MemoryBackend) Append(ctx context.Context, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, score)
	return nil
}

func (m *MemoryBackend) Scores(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.scores), nil
}
