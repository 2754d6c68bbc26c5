package engine

import (
	"fmt"
	"strings"
)

// Difficulty selects how fast elapsed time drains the budget
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

var difficultyFactors = [...]float64{
	DifficultyEasy:   1.0,
	DifficultyMedium: 1.5,
	DifficultyHard:   2.0,
}

var difficultyNames = [...]string{
	DifficultyEasy:   "Easy",
	DifficultyMedium: "Medium",
	DifficultyHard:   "Hard",
}

// Valid reports whether d is one of the enumerated levels
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Factor returns the multiplier applied to elapsed time, 1.0 for unknown levels
func (d Difficulty) Factor() float64 {
	if !d.Valid() {
		return 1.0
	}
	return difficultyFactors[d]
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

// ParseDifficulty accepts level names case-insensitively
func ParseDifficulty(s string) (Difficulty, error) {
	name := strings.TrimSpace(s)
	for i, n := range difficultyNames {
		if strings.EqualFold(n, name) {
			return Difficulty(i), nil
		}
	}
	return DifficultyEasy, configErr("difficulty", "unknown level %q", s)
}

// UnmarshalText lets env and flag decoders fill a Difficulty directly
func (d *Difficulty) UnmarshalText(text []byte) error {
	v, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
