package agent

import (
	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Shaping turns tick events into the reward stored with each experience.
// Damage overrides a hit on the same tick; the player's horizontal position
// then scales the result.
type Shaping struct {
	Hit        float64
	Damage     float64
	FarX       int // pixels; beyond this the reward is scaled by FarFactor
	FarFactor  float64
	NearX      int // pixels; before this the reward is scaled by NearFactor
	NearFactor float64
}

// DefaultShaping returns the stock shaping constants.
func DefaultShaping() Shaping {
	return Shaping{
		Hit:        1.0,
		Damage:     -1.0,
		FarX:       core.SceneWidth / 2,
		FarFactor:  0.1,
		NearX:      core.SceneWidth / 4,
		NearFactor: 1.1,
	}
}

// Reward scores one tick.
func (sh Shaping) Reward(res core.StepResult, playerX core.Fixed) float64 {
	r := 0.0
	switch {
	case res.Hurts > 0:
		r = sh.Damage
	case res.Hits > 0:
		r = sh.Hit
	}
	if playerX > core.Fix(sh.FarX) {
		r *= sh.FarFactor
	}
	if playerX < core.Fix(sh.NearX) {
		r *= sh.NearFactor
	}
	return r
}
