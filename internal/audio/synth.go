// Package audio plays the simulation's sound cues through the system
// speaker with procedurally generated effects.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

const sampleRate = beep.SampleRate(44100)

var format = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from freq to
// end over its duration.
type oscillator struct {
	freq, end float64
	phase     float64
	position  int
	duration  int
	wave      WaveType
}

func newOscillator(wave WaveType, freq, end float64, d time.Duration) *oscillator {
	return &oscillator{freq: freq, end: end, duration: sampleRate.N(d), wave: wave}
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
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.duration)
		o.phase += (o.freq + (o.end-o.freq)*t) / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay fades a stream linearly to silence over its length.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := range n {
		vol := 1 - float64(d.position)/float64(d.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

func tone(wave WaveType, freq, end float64, dur time.Duration) beep.Streamer {
	return &decay{streamer: newOscillator(wave, freq, end, dur), total: sampleRate.N(dur)}
}

// gain scales a stream; zero or negative volume silences it.
func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Sound builds the effect for a cue, or nil for CueNone.
func Sound(c core.Cue) beep.Streamer {
	switch c {
	case core.CueBeam:
		return gain(tone(WaveSquare, 1760, 880, 40*time.Millisecond), 0.25)
	case core.CueMissile:
		return gain(tone(WaveSaw, 220, 660, 120*time.Millisecond), 0.3)
	case core.CueExplosionSmall:
		return gain(tone(WaveNoise, 0, 0, 120*time.Millisecond), 0.4)
	case core.CueExplosion:
		return beep.Mix(
			gain(tone(WaveNoise, 0, 0, 300*time.Millisecond), 0.5),
			gain(tone(WaveSine, 110, 55, 300*time.Millisecond), 0.4),
		)
	case core.CueExplosionLarge:
		return beep.Mix(
			gain(tone(WaveNoise, 0, 0, 700*time.Millisecond), 0.6),
			gain(tone(WaveSine, 80, 30, 700*time.Millisecond), 0.5),
		)
	default:
		return nil
	}
}

// render precomputes every cue into a buffer.
func render() map[core.Cue]*beep.Buffer {
	out := make(map[core.Cue]*beep.Buffer)
	for c := core.CueBeam; c <= core.CueExplosionLarge; c++ {
		buf := beep.NewBuffer(format)
		buf.Append(Sound(c))
		out[c] = buf
	}
	return out
}
