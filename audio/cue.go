package audio

import "fmt"

// Cue is one gameplay sound
type Cue int

const (
	CueHit     Cue = iota // target touched
	CueRespawn            // target relocated after idling
	CueGameOver           // time budget exhausted
	CueStopped            // session aborted by the player
	cueCount
)

var cueNames = [cueCount]string{"hit", "respawn", "game_over", "stopped"}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return fmt.Sprintf("Cue(%d)", int(c))
	}
	return cueNames[c]
}
