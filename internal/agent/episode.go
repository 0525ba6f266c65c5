package agent

import (
	"context"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

// ctxCheckEvery is how many ticks run between context checks.
const ctxCheckEvery = 64

// EpisodeConfig describes one playthrough driven by an agent.
type EpisodeConfig struct {
	Level      *shippu.Level
	EnemySeed  int64
	EffectSeed int64
	Stock      int
	Weights    shippu.Weights
	Epsilon    float64
	MaxTicks   int // 0 means until game over
	Shaping    Shaping
}

// EpisodeResult summarizes a finished playthrough.
type EpisodeResult struct {
	Outcome   shippu.Outcome `json:"outcome"`
	Ticks     int            `json:"ticks"`
	Reward    float64        `json:"reward"`
	Hits      int            `json:"hits"`
	Hurts     int            `json:"hurts"`
	Truncated bool           `json:"truncated"` // stopped by MaxTicks before game over
}

// RunEpisode plays one episode, recording every tick in the agent's memory.
// A truncated episode freezes its outcome where it stopped.
func RunEpisode(ctx context.Context, a *Agent, cfg EpisodeConfig) (EpisodeResult, error) {
	s := shippu.NewScene(shippu.Options{
		EnemySeed:  cfg.EnemySeed,
		EffectSeed: cfg.EffectSeed,
		Stock:      cfg.Stock,
		Weights:    cfg.Weights,
		Level:      cfg.Level,
	})
	a.Begin(cfg.Epsilon)

	var res EpisodeResult
	for !s.Over() {
		if cfg.MaxTicks > 0 && res.Ticks >= cfg.MaxTicks {
			res.Truncated = true
			s.Status().SetCompleted()
			break
		}
		if res.Ticks%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		obs := Observe(s)
		act := a.Decide(obs)
		step := s.Step(core.NewInputFrame(act.Buttons()))
		x, _ := s.Player().Pos()
		r := cfg.Shaping.Reward(step, x)
		a.Remember(Experience{State: obs, Action: act, Reward: r})

		res.Ticks++
		res.Reward += r
		res.Hits += step.Hits
		res.Hurts += step.Hurts
	}
	res.Outcome = s.Status().Outcome()
	return res, nil
}
