package engine

import "time"

// Default session tunables
const (
	DefaultFrameWidth         = 640
	DefaultFrameHeight        = 480
	DefaultTargetRadius       = 25
	DefaultInitialTimeLimit   = 30 * time.Second
	DefaultScoreBonus         = 5 * time.Second
	DefaultIdleRespawnTimeout = 3 * time.Second
)

// Config holds everything a session needs before it starts
type Config struct {
	Bounds             Bounds
	TargetRadius       int
	TargetColor        Color
	InitialTimeLimit   time.Duration
	ScoreBonus         time.Duration
	IdleRespawnTimeout time.Duration
	Difficulty         Difficulty
	ColorPolicy        ColorPolicy

	// Seed drives spawn positions and colors; 0 picks a random seed
	Seed uint64
}

// DefaultConfig returns the stock 30 second Easy game on a 640x480 frame
func DefaultConfig() Config {
	return Config{
		Bounds:             Bounds{Width: DefaultFrameWidth, Height: DefaultFrameHeight},
		TargetRadius:       DefaultTargetRadius,
		TargetColor:        DefaultTargetColor,
		InitialTimeLimit:   DefaultInitialTimeLimit,
		ScoreBonus:         DefaultScoreBonus,
		IdleRespawnTimeout: DefaultIdleRespawnTimeout,
		Difficulty:         DifficultyEasy,
		ColorPolicy:        ColorNever,
	}
}

// Validate checks the timing and difficulty settings
// Frame and radius checks live in NewTargetSpawner
func (c Config) Validate() error {
	if c.InitialTimeLimit <= 0 {
		return configErr("initial_time_limit", "must be positive, got %s", c.InitialTimeLimit)
	}
	if c.ScoreBonus < 0 {
		return configErr("score_bonus", "must not be negative, got %s", c.ScoreBonus)
	}
	if c.IdleRespawnTimeout <= 0 {
		return configErr("idle_respawn_timeout", "must be positive, got %s", c.IdleRespawnTimeout)
	}
	if !c.Difficulty.Valid() {
		return configErr("difficulty", "unknown level %d", int(c.Difficulty))
	}
	if !c.ColorPolicy.Valid() {
		return configErr("color_policy", "unknown policy %d", int(c.ColorPolicy))
	}
	return nil
}
