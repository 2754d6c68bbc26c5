package leaderboard

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const recordPrefix = "Score:"

// FileBackend is an append-only text file with one "Score: <n>" record per line
// Appends from one process are serialized so records never interleave
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend uses path, created on first append
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file path
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Append(ctx context.Context, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create leaderboard dir: %w", err)
		}
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open leaderboard: %w", err)
	}
	if _, err := file.WriteString(formatRecord(score)); err != nil {
		_ = file.Close()
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return file.Close()
}

// Scores reads every well-formed record; a missing file is an empty leaderboard
func (f *FileBackend) Scores(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open leaderboard: %w", err)
	}
	defer file.Close()
	return ParseRecords(file)
}

// ParseRecords reads "Score: <n>" lines, skipping blank, malformed and negative records
func ParseRecords(r io.Reader) ([]int, error) {
	scores := []int{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if score, ok := parseRecord(sc.Text()); ok {
			scores = append(scores, score)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return scores, nil
}

func parseRecord(line string) (int, bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(line), recordPrefix)
	if !found {
		return 0, false
	}
	score, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || score < 0 {
		return 0, false
	}
	return score, true
}

func formatRecord(score int) string {
	return fmt.Sprintf("%s %d\n", recordPrefix, score)
}
