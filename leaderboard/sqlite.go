package leaderboard

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS scores (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	score       INTEGER NOT NULL CHECK (score >= 0),
	recorded_at INTEGER NOT NULL
)`

// SQLiteBackend keeps scores in a SQLite table; row ids preserve record order
type SQLiteBackend struct {
	mu    sync.Mutex
	sqlDB *sql.DB
	now   func() time.Time
}

// OpenSQLite opens or creates the database at path and ensures the schema
func OpenSQLite(path string) (*SQLiteBackend, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create scores table: %w", err)
	}
	return &SQLiteBackend{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle
func (s *SQLiteBackend) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteBackend) Append(ctx context.Context, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO scores (score, recorded_at) VALUES (?, ?)`,
		score, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *SQLiteBackend) Scores(ctx context.Context) ([]int, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT score FROM scores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	scores := []int{}
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return scores, nil
}
