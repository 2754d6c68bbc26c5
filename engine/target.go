package engine

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// Color is an RGB triple
type Color struct {
	R, G, B uint8
}

// DefaultTargetColor is the green used until a policy recolors the target
var DefaultTargetColor = Color{R: 0, G: 255, B: 0}

// String renders the color as #rrggbb
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor accepts #rrggbb or rrggbb
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	var c Color
	if len(hex) != 6 {
		return c, fmt.Errorf("color %q: want #rrggbb", s)
	}
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ColorPolicy decides which respawns pick a new random color
type ColorPolicy int

const (
	ColorNever ColorPolicy = iota
	ColorOnHit
	ColorOnTimedRespawn
)

var colorPolicyNames = [...]string{
	ColorNever:          "never",
	ColorOnHit:          "on_hit",
	ColorOnTimedRespawn: "on_timed_respawn",
}

func (p ColorPolicy) Valid() bool {
	return p >= ColorNever && p <= ColorOnTimedRespawn
}

func (p ColorPolicy) String() string {
	if !p.Valid() {
		return fmt.Sprintf("ColorPolicy(%d)", int(p))
	}
	return colorPolicyNames[p]
}

// ParseColorPolicy accepts never, on_hit and on_timed_respawn
func ParseColorPolicy(s string) (ColorPolicy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range colorPolicyNames {
		if n == name {
			return ColorPolicy(i), nil
		}
	}
	return ColorNever, configErr("color_policy", "unknown policy %q", s)
}

func (p *ColorPolicy) UnmarshalText(text []byte) error {
	v, err := ParseColorPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p ColorPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// RespawnReason tells the spawner why the target moves
type RespawnReason int

const (
	RespawnInitial RespawnReason = iota
	RespawnHit
	RespawnTimed
)

func (p ColorPolicy) recolors(reason RespawnReason) bool {
	switch p {
	case ColorOnHit:
		return reason == RespawnHit
	case ColorOnTimedRespawn:
		return reason == RespawnTimed
	default:
		return false
	}
}

// Bounds is the playable frame size in pixels
type Bounds struct {
	Width  int
	Height int
}

// Target is the marker the player has to touch
type Target struct {
	X      int
	Y      int
	Radius int
	Color  Color
}

// TargetSpawner owns the target and relocates it on hits and idle timeouts
// Positions stay inside the frame minus a margin of one radius
type TargetSpawner struct {
	bounds      Bounds
	margin      int
	policy      ColorPolicy
	idleTimeout time.Duration
	rng         *rand.Rand

	target        Target
	lastSpawnTime time.Time
}

// NewTargetSpawner validates the frame against the radius margin
func NewTargetSpawner(bounds Bounds, radius int, color Color, policy ColorPolicy, idleTimeout time.Duration, rng *rand.Rand) (*TargetSpawner, error) {
	if radius <= 0 {
		return nil, configErr("target_radius", "must be positive, got %d", radius)
	}
	if bounds.Width <= 2*radius {
		return nil, configErr("frame_width", "%d leaves no room for a target of radius %d", bounds.Width, radius)
	}
	if bounds.Height <= 2*radius {
		return nil, configErr("frame_height", "%d leaves no room for a target of radius %d", bounds.Height, radius)
	}
	if !policy.Valid() {
		return nil, configErr("color_policy", "unknown policy %d", int(policy))
	}
	if idleTimeout <= 0 {
		return nil, configErr("idle_respawn_timeout", "must be positive, got %s", idleTimeout)
	}
	if rng == nil {
		return nil, configErr("rand", "random source is required")
	}
	return &TargetSpawner{
		bounds:      bounds,
		margin:      radius,
		policy:      policy,
		idleTimeout: idleTimeout,
		rng:         rng,
		target:      Target{Radius: radius, Color: color},
	}, nil
}

// Target returns the current target
func (s *TargetSpawner) Target() Target {
	return s.target
}

// LastSpawnTime returns when the target last moved
func (s *TargetSpawner) LastSpawnTime() time.Time {
	return s.lastSpawnTime
}

// Respawn moves the target to a new uniform position and stamps the spawn time
// Hit and timed respawns never land on the previous position
func (s *TargetSpawner) Respawn(now time.Time, reason RespawnReason) Target {
	x, y := s.randomPosition()
	if reason != RespawnInitial {
		for x == s.target.X && y == s.target.Y {
			x, y = s.randomPosition()
		}
	}
	s.target.X = x
	s.target.Y = y
	if s.policy.recolors(reason) {
		s.target.Color = s.randomColor()
	}
	s.lastSpawnTime = now
	return s.target
}

// MaybeTimedRespawn relocates an idle target once idleTimeout has passed since the last spawn
func (s *TargetSpawner) MaybeTimedRespawn(now time.Time) bool {
	if now.Sub(s.lastSpawnTime) <= s.idleTimeout {
		return false
	}
	s.Respawn(now, RespawnTimed)
	return true
}

// shift moves the idle timer forward, used to discount paused time
func (s *TargetSpawner) shift(d time.Duration) {
	s.lastSpawnTime = s.lastSpawnTime.Add(d)
}

func (s *TargetSpawner) randomPosition() (int, int) {
	x := s.margin + s.rng.IntN(s.bounds.Width-2*s.margin+1)
	y := s.margin + s.rng.IntN(s.bounds.Height-2*s.margin+1)
	return x, y
}

func (s *TargetSpawner) randomColor() Color {
	return Color{
		R: uint8(s.rng.IntN(256)),
		G: uint8(s.rng.IntN(256)),
		B: uint8(s.rng.IntN(256)),
	}
}
