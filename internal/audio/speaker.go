package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-shippu/internal/config"
	"github.com/vovakirdan/tui-shippu/internal/core"
)

// maxVoices caps how many effects overlap.
const maxVoices = 16

// Speaker plays cues through the default audio device.
type Speaker struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	sounds  map[core.Cue]*beep.Buffer
	volume  float64
	started bool
}

// NewSpeaker prepares the cue buffers. Call Start to open the device.
func NewSpeaker(volume float64) *Speaker {
	return &Speaker{
		mixer:  &beep.Mixer{},
		sounds: render(),
		volume: volume,
	}
}

// Start opens the audio device.
func (s *Speaker) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(gain(s.mixer, s.volume))
	s.started = true
	return nil
}

// Play queues a cue. It never blocks on playback; when too many effects
// overlap the cue is dropped.
func (s *Speaker) Play(c core.Cue) {
	buf, ok := s.sounds[c]
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}

	speaker.Lock()
	if s.mixer.Len() < maxVoices {
		s.mixer.Add(buf.Streamer(0, buf.Len()))
	}
	speaker.Unlock()
}

// Close stops playback and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.started = false
}

// Open returns a speaker sink for cfg, or a silent sink when audio is
// disabled or the device cannot be opened. The returned close function is
// always safe to call.
func Open(cfg config.AudioConfig, logger *log.Logger) (core.AudioSink, func()) {
	if !cfg.Enabled {
		return core.NopAudio{}, func() {}
	}
	s := NewSpeaker(cfg.Volume)
	if err := s.Start(); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return core.NopAudio{}, func() {}
	}
	return s, s.Close
}
