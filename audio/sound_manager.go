package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/NexbytesTech/OpenCV-game/engine"
)

const (
	sampleRate         = beep.SampleRate(48000)
	speakerBufferDelay = 100 * time.Millisecond
)

// Config controls playback
type Config struct {
	Enabled      bool
	MasterVolume float64 // 0..1
	Volumes      map[Cue]float64
}

// DefaultConfig enables audio at half volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		Volumes: map[Cue]float64{
			CueHit:      1.0,
			CueRespawn:  0.4,
			CueGameOver: 0.8,
			CueStopped:  0.6,
		},
	}
}

func (c Config) gain(cue Cue) float64 {
	v, ok := c.Volumes[cue]
	if !ok {
		v = 1
	}
	return clamp01(v) * clamp01(c.MasterVolume)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// SoundManager plays cues through the beep speaker
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	log         *zap.Logger
	initialized bool
	played      [cueCount]int
}

// NewSoundManager creates a manager; call Initialize to open the device
func NewSoundManager(cfg Config, log *zap.Logger) *SoundManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &SoundManager{cfg: cfg, mixer: &beep.Mixer{}, log: log}
}

// Initialize opens the speaker; a disabled config leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(speakerBufferDelay)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup drops pending sounds
// beep has no way to reopen the device, so the speaker itself stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play mixes a cue into the output
func (sm *SoundManager) Play(c Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || c < 0 || c >= cueCount {
		return
	}
	s := NewCueSound(c, sm.cfg.gain(c), sampleRate)
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[c]++
	sm.log.Debug("cue", zap.Stringer("cue", c))
}

// Played returns how many times c reached the mixer
func (sm *SoundManager) Played(c Cue) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if c < 0 || c >= cueCount {
		return 0
	}
	return sm.played[c]
}

// Player plays cues
type Player interface {
	Play(Cue)
}

// Cues maps session events to sound cues
type Cues struct {
	Player Player
}

var _ engine.Listener = Cues{}

func (c Cues) OnHit(engine.Snapshot) { c.play(CueHit) }

func (c Cues) OnTimedRespawn(engine.Snapshot) { c.play(CueRespawn) }

func (c Cues) OnEnd(r engine.Result) {
	switch r.Outcome {
	case engine.OutcomeGameOver:
		c.play(CueGameOver)
	case engine.OutcomeStopped:
		c.play(CueStopped)
	}
}

func (c Cues) play(cue Cue) {
	if c.Player != nil {
		c.Player.Play(cue)
	}
}
