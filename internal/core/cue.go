package core

// Cue identifies a sound the simulation asks the platform to play.
type Cue uint8

const (
	CueNone Cue = iota
	CueBeam
	CueMissile
	CueExplosionSmall
	CueExplosion
	CueExplosionLarge
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueBeam:
		return "beam"
	case CueMissile:
		return "missile"
	case CueExplosionSmall:
		return "explosion_small"
	case CueExplosion:
		return "explosion"
	case CueExplosionLarge:
		return "explosion_large"
	default:
		return "none"
	}
}

// AudioSink plays cues fire-and-forget. Implementations never block the tick.
type AudioSink interface {
	Play(c Cue)
}

// NopAudio is the silent sink used when no audio device is available.
type NopAudio struct{}

// Play does nothing.
func (NopAudio) Play(Cue) {}
