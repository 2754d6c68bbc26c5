package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncRecorderFlushesOnClose(t *testing.T) {
	mem := NewMemoryBackend()
	rec := NewAsyncRecorder(New(mem, nil), 8, nil)
	ctx := context.Background()

	for _, s := range []int{3, 1, 2} {
		rec.RecordFinalScore(ctx, s)
	}

	closeCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, rec.Close(closeCtx))

	scores, err := mem.Scores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, scores)
}

func TestAsyncRecorderAfterClose(t *testing.T) {
	mem := NewMemoryBackend()
	rec := NewAsyncRecorder(New(mem, nil), 1, nil)
	require.NoError(t, rec.Close(context.Background()))
	require.NoError(t, rec.Close(context.Background()))

	assert.NotPanics(t, func() { rec.RecordFinalScore(context.Background(), 9) })

	scores, err := mem.Scores(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestAsyncRecorderSignalsWrites(t *testing.T) {
	mem := NewMemoryBackend()
	board := New(mem, nil)
	rec := NewAsyncRecorder(board, 4, nil)
	defer rec.Close(context.Background())

	rec.RecordFinalScore(context.Background(), 11)

	select {
	case <-rec.Written():
	case <-time.After(time.Second):
		t.Fatal("no write signal")
	}
	assert.Equal(t, []int{11}, Scores(board.TopN(context.Background(), 5)))
}
