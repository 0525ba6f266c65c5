package audio

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-shippu/internal/config"
	"github.com/vovakirdan/tui-shippu/internal/core"
)

func TestSoundLengths(t *testing.T) {
	tests := []struct {
		cue  core.Cue
		want time.Duration
	}{
		{core.CueBeam, 40 * time.Millisecond},
		{core.CueMissile, 120 * time.Millisecond},
		{core.CueExplosionSmall, 120 * time.Millisecond},
		{core.CueExplosion, 300 * time.Millisecond},
		{core.CueExplosionLarge, 700 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.cue.String(), func(t *testing.T) {
			s := Sound(tt.cue)
			if s == nil {
				t.Fatal("no sound")
			}
			buf := make([][2]float64, 512)
			total := 0
			for {
				n, ok := s.Stream(buf)
				for _, smp := range buf[:n] {
					if smp[0] < -1.0001 || smp[0] > 1.0001 {
						t.Fatalf("sample %v out of range", smp)
					}
				}
				total += n
				if !ok {
					break
				}
			}
			if want := sampleRate.N(tt.want); total != want {
				t.Errorf("length = %d samples, want %d", total, want)
			}
		})
	}
	if Sound(core.CueNone) != nil {
		t.Error("CueNone should have no sound")
	}
}

func TestRenderCoversEveryCue(t *testing.T) {
	sounds := render()
	if len(sounds) != 5 {
		t.Errorf("rendered %d cues, want 5", len(sounds))
	}
	for c, buf := range sounds {
		if buf.Len() == 0 {
			t.Errorf("cue %s rendered empty", c)
		}
	}
}

func TestOpenDisabledIsSilent(t *testing.T) {
	sink, closeFn := Open(config.AudioConfig{Enabled: false}, nil)
	defer closeFn()
	if _, ok := sink.(core.NopAudio); !ok {
		t.Errorf("sink = %T, want core.NopAudio", sink)
	}
	sink.Play(core.CueBeam)
}

func TestSpeakerIgnoresCuesBeforeStart(t *testing.T) {
	s := NewSpeaker(0.5)
	s.Play(core.CueExplosion)
	s.Close()
}
