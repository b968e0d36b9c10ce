// Package audio plays the short synthesized cues of the simulation through
// the system speaker.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/skirmish-game/skirmish/internal/game"
)

const sampleRate = beep.SampleRate(48000)

var _ game.Audio = (*Player)(nil)

// WaveType selects the oscillator shape of a tone.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

type tone struct {
	freq     float64
	duration time.Duration
	wave     WaveType
}

// cue tones, played back to back
var cues = map[string][]tone{
	game.CueShoot:  {{freq: 880, duration: 60 * time.Millisecond, wave: WaveSquare}},
	game.CueHit:    {{freq: 180, duration: 90 * time.Millisecond, wave: WaveSaw}},
	game.CueReload: {{freq: 440, duration: 70 * time.Millisecond, wave: WaveSine}, {freq: 660, duration: 70 * time.Millisecond, wave: WaveSine}},
}

// Player implements game.Audio. Until Init succeeds every cue is dropped.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// New creates a player at the given linear volume in [0, 1].
func New(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker. Hosts without an audio device return an error and
// the player stays silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues the named cue on the mixer. Unknown cues are ignored.
func (p *Player) Play(cue string) {
	s := Cue(cue, sampleRate, p.volume)
	if s == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Cue builds the streamer for a named cue, or nil when the cue is unknown.
func Cue(name string, rate beep.SampleRate, volume float64) beep.Streamer {
	tones, ok := cues[name]
	if !ok {
		return nil
	}
	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		parts = append(parts, newOscillator(t.freq, t.duration, t.wave, rate))
	}
	return newVolume(beep.Seq(parts...), volume)
}

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
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
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}

		// fade the last tenth to avoid a click
		if tail := o.duration / 10; tail > 0 && o.position > o.duration-tail {
			val *= float64(o.duration-o.position) / float64(tail)
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

// math.Log2(0) is -Inf, so zero volume is silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
