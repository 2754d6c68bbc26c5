package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Cue timings
const (
	hitDuration      = 180 * time.Millisecond
	hitAttack        = 5 * time.Millisecond
	hitRelease       = 150 * time.Millisecond
	respawnDuration  = 120 * time.Millisecond
	respawnAttack    = 20 * time.Millisecond
	respawnRelease   = 80 * time.Millisecond
	gameOverNote     = 220 * time.Millisecond
	gameOverRelease  = 120 * time.Millisecond
	stoppedDuration  = 150 * time.Millisecond
	stoppedRelease   = 60 * time.Millisecond
	noteAttack = 5 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a finite oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewPCG(uint64(freq*1000)+1, 7)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with a linear attack and release
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; zero mutes since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is a shaped oscillator
func tone(freq float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
}

// hitSound is a rising two-note ding
func hitSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		newVolume(tone(880, hitDuration/2, hitAttack, hitRelease/3, WaveSine, rate), 0.8),
		tone(1318.51, hitDuration, hitAttack, hitRelease, WaveSine, rate),
	)
}

// respawnSound is a short noise swish
func respawnSound(rate beep.SampleRate) beep.Streamer {
	return tone(0, respawnDuration, respawnAttack, respawnRelease, WaveNoise, rate)
}

// gameOverSound is three falling saw notes
func gameOverSound(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(392, gameOverNote, noteAttack, gameOverRelease, WaveSaw, rate),
		tone(311.13, gameOverNote, noteAttack, gameOverRelease, WaveSaw, rate),
		tone(261.63, 2*gameOverNote, noteAttack, 2*gameOverRelease, WaveSaw, rate),
	)
}

// stoppedSound is a low square blip
func stoppedSound(rate beep.SampleRate) beep.Streamer {
	return tone(150, stoppedDuration, noteAttack, stoppedRelease, WaveSquare, rate)
}

// NewCueSound builds the streamer for c at the given gain, nil for unknown cues
func NewCueSound(c Cue, gain float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueHit:
		s = hitSound(rate)
	case CueRespawn:
		s = respawnSound(rate)
	case CueGameOver:
		s = gameOverSound(rate)
	case CueStopped:
		s = stoppedSound(rate)
	default:
		return nil
	}
	return newVolume(s, gain)
}
