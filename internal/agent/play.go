package agent

import (
	"context"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

// Pacer blocks until the next tick may run. *rate.Limiter satisfies it.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PlayConfig tunes a headless playthrough.
type PlayConfig struct {
	MaxTicks int            // 0 means until game over
	Pacer    Pacer          // nil runs as fast as possible
	Audio    core.AudioSink // nil is silent
	OnStep   func(tick int, res core.StepResult)
}

// Play drives s with c until game over, MaxTicks or ctx is done. Nothing is
// learned; the result's Reward stays zero. A truncated playthrough freezes
// its outcome where it stopped.
func Play(ctx context.Context, s *shippu.Scene, c Controller, cfg PlayConfig) (EpisodeResult, error) {
	audio := cfg.Audio
	if audio == nil {
		audio = core.NopAudio{}
	}

	var res EpisodeResult
	for !s.Over() {
		if cfg.MaxTicks > 0 && res.Ticks >= cfg.MaxTicks {
			res.Truncated = true
			s.Status().SetCompleted()
			break
		}
		if cfg.Pacer != nil {
			if err := cfg.Pacer.Wait(ctx); err != nil {
				return res, err
			}
		} else if res.Ticks%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		step := s.Step(c.Input(s))
		for _, cue := range step.Cues {
			audio.Play(cue)
		}
		if cfg.OnStep != nil {
			cfg.OnStep(res.Ticks, step)
		}
		res.Ticks++
		res.Hits += step.Hits
		res.Hurts += step.Hurts
	}
	res.Outcome = s.Status().Outcome()
	return res, nil
}
