package leaderboard

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackendMissingFileIsEmpty(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "leaderboard.txt"))

	scores, err := b.Scores(context.Background())

	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestFileBackendAppendFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "leaderboard.txt")
	b := NewFileBackend(path)
	ctx := context.Background()

	for _, s := range []int{5, 10, 5, 8} {
		require.NoError(t, b.Append(ctx, s))
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Score: 5\nScore: 10\nScore: 5\nScore: 8\n", string(raw))

	scores, err := b.Scores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10, 5, 8}, scores)
}

func TestFileBackendSkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leaderboard.txt")
	require.NoError(t, os.WriteFile(path, []byte("Score: 3\nnot a score\n\nScore: x\n"), 0o644))
	b := NewFileBackend(path)

	require.NoError(t, b.Append(context.Background(), 6))
	scores, err := b.Scores(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{3, 6}, scores)
}

func TestFileBackendConcurrentAppends(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "leaderboard.txt"))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				assert.NoError(t, b.Append(ctx, score))
			}
		}(i)
	}
	wg.Wait()

	scores, err := b.Scores(ctx)
	require.NoError(t, err)
	assert.Len(t, scores, 200)
}

func TestFileBackendUnreadablePath(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)

	_, err := b.Scores(context.Background())
	assert.Error(t, err)
	assert.Error(t, b.Append(context.Background(), 1))
}
