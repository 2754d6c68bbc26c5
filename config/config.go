// Package config loads game settings from FINGERTIP_* environment variables
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/NexbytesTech/OpenCV-game/audio"
	"github.com/NexbytesTech/OpenCV-game/engine"
	"github.com/NexbytesTech/OpenCV-game/logger"
)

// Prefix is prepended to every variable name
const Prefix = "FINGERTIP_"

// Leaderboard backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Default store locations when LEADERBOARD_PATH is unset
const (
	DefaultFilePath   = "leaderboard.txt"
	DefaultSQLitePath = "leaderboard.db"
)

// Config is the full application configuration
type Config struct {
	FrameWidth         int                `env:"FRAME_WIDTH" envDefault:"640"`
	FrameHeight        int                `env:"FRAME_HEIGHT" envDefault:"480"`
	TargetRadius       int                `env:"TARGET_RADIUS" envDefault:"25"`
	TargetColor        engine.Color       `env:"TARGET_COLOR" envDefault:"#00ff00"`
	TimeLimit          time.Duration      `env:"TIME_LIMIT" envDefault:"30s"`
	ScoreBonus         time.Duration      `env:"SCORE_BONUS" envDefault:"5s"`
	IdleRespawnTimeout time.Duration      `env:"IDLE_RESPAWN" envDefault:"3s"`
	Difficulty         engine.Difficulty  `env:"DIFFICULTY" envDefault:"easy"`
	ColorPolicy        engine.ColorPolicy `env:"COLOR_POLICY" envDefault:"never"`
	Seed               uint64             `env:"SEED" envDefault:"0"`

	LeaderboardBackend string `env:"LEADERBOARD_BACKEND" envDefault:"file"`
	LeaderboardPath    string `env:"LEADERBOARD_PATH"`
	LeaderboardTopN    int    `env:"LEADERBOARD_TOP" envDefault:"5"`

	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"20ms"`
	StaleFrame   time.Duration `env:"STALE_FRAME" envDefault:"250ms"`
	Mirror       bool          `env:"MIRROR" envDefault:"true"`

	AudioEnabled bool    `env:"AUDIO" envDefault:"true"`
	AudioVolume  float64 `env:"AUDIO_VOLUME" envDefault:"0.5"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// Load reads the process environment
func Load() (Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom reads variables from environ instead of the process environment
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings the engine does not own
func (c Config) Validate() error {
	switch c.LeaderboardBackend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("leaderboard backend %q: want one of %s", c.LeaderboardBackend,
			strings.Join([]string{BackendFile, BackendSQLite, BackendMemory}, ", "))
	}
	if c.LeaderboardTopN <= 0 {
		return fmt.Errorf("leaderboard top must be positive, got %d", c.LeaderboardTopN)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.AudioVolume < 0 || c.AudioVolume > 1 {
		return fmt.Errorf("audio volume must be within [0,1], got %g", c.AudioVolume)
	}
	return nil
}

// LeaderboardFile returns the store path, defaulting per backend so the text
// and sqlite stores never share a file
func (c Config) LeaderboardFile() string {
	if c.LeaderboardPath != "" {
		return c.LeaderboardPath
	}
	switch c.LeaderboardBackend {
	case BackendSQLite:
		return DefaultSQLitePath
	case BackendFile:
		return DefaultFilePath
	}
	return ""
}

// Session converts to the engine configuration
func (c Config) Session() engine.Config {
	return engine.Config{
		Bounds:             engine.Bounds{Width: c.FrameWidth, Height: c.FrameHeight},
		TargetRadius:       c.TargetRadius,
		TargetColor:        c.TargetColor,
		InitialTimeLimit:   c.TimeLimit,
		ScoreBonus:         c.ScoreBonus,
		IdleRespawnTimeout: c.IdleRespawnTimeout,
		Difficulty:         c.Difficulty,
		ColorPolicy:        c.ColorPolicy,
		Seed:               c.Seed,
	}
}

// Audio converts to the sound manager configuration
func (c Config) Audio() audio.Config {
	a := audio.DefaultConfig()
	a.Enabled = c.AudioEnabled
	a.MasterVolume = c.AudioVolume
	return a
}

// Logger converts to the logger configuration
func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, File: c.LogFile}
}
