// Package leaderboard persists final scores and serves the ranked top-N view
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// DefaultTopN is the size of the live leaderboard view
const DefaultTopN = 5

// ErrPersistence matches every *PersistenceError via errors.Is
var ErrPersistence = errors.New("leaderboard persistence failed")

// PersistenceError wraps a backend failure with the operation that hit it
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("leaderboard %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// Backend stores the unbounded sequence of final scores in record order
type Backend interface {
	Append(ctx context.Context, score int) error
	Scores(ctx context.Context) ([]int, error)
}

// Entry is one ranked score
// Rank is 1-based and Record is the 0-based position in record order; neither is stored
type Entry struct {
	Rank   int
	Score  int
	Record int
}

// Rank sorts scores descending; equal scores keep record order
func Rank(scores []int) []Entry {
	entries := make([]Entry, len(scores))
	for i, s := range scores {
		entries[i] = Entry{Score: s, Record: i}
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		return b.Score - a.Score
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Scores returns the bare scores of entries
func Scores(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

// Top returns the first n ranked entries of scores
func Top(scores []int, n int) []Entry {
	if n <= 0 {
		return []Entry{}
	}
	entries := Rank(scores)
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Lines renders one "1. Score: 12" line per entry
func Lines(entries []Entry) []string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%d. Score: %d", e.Rank, e.Score)
	}
	return lines
}

// Format renders entries the way the leaderboard panel shows them
func Format(entries []Entry) string {
	return strings.Join(Lines(entries), "\n")
}
