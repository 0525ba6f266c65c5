package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

type countingPacer struct {
	waits int
	err   error
}

func (p *countingPacer) Wait(ctx context.Context) error {
	p.waits++
	if p.err != nil {
		return p.err
	}
	return ctx.Err()
}

type cueRecorder struct {
	cues []core.Cue
}

func (r *cueRecorder) Play(c core.Cue) { r.cues = append(r.cues, c) }

// holdFire keeps the main gun held.
type holdFire struct{}

func (holdFire) Input(*shippu.Scene) core.InputFrame { return core.NewInputFrame(core.ButtonA) }

func TestPlayTruncates(t *testing.T) {
	s := shippu.NewScene(shippu.Options{Level: emptyLevel()})
	pacer := &countingPacer{}
	audio := &cueRecorder{}
	steps := 0

	res, err := Play(context.Background(), s, holdFire{}, PlayConfig{
		MaxTicks: 60,
		Pacer:    pacer,
		Audio:    audio,
		OnStep:   func(int, core.StepResult) { steps++ },
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !res.Truncated || res.Ticks != 60 {
		t.Errorf("result = %+v, want truncated at 60", res)
	}
	if pacer.waits != 60 || steps != 60 {
		t.Errorf("waits = %d, steps = %d; want 60 each", pacer.waits, steps)
	}
	if len(audio.cues) == 0 {
		t.Error("no cues forwarded while firing")
	}
	for _, c := range audio.cues {
		if c != core.CueBeam {
			t.Errorf("unexpected cue %v on an empty stage", c)
		}
	}
	if res.Reward != 0 {
		t.Errorf("reward = %v, want 0", res.Reward)
	}
}

func TestPlayStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := shippu.NewScene(shippu.Options{Level: emptyLevel()})
	if _, err := Play(ctx, s, IdleController{}, PlayConfig{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPlayPacerError(t *testing.T) {
	boom := errors.New("boom")
	s := shippu.NewScene(shippu.Options{Level: emptyLevel()})
	res, err := Play(context.Background(), s, IdleController{}, PlayConfig{Pacer: &countingPacer{err: boom}})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if res.Ticks != 0 {
		t.Errorf("ticks = %d, want 0", res.Ticks)
	}
}

func TestPlayMatchesEpisodeTicks(t *testing.T) {
	run := func() EpisodeResult {
		s := shippu.NewScene(shippu.Options{Level: shippu.MustLevel("stage1")})
		res, err := Play(context.Background(), s, NewRandomController(7), PlayConfig{MaxTicks: 300})
		if err != nil {
			t.Fatalf("Play: %v", err)
		}
		return res
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("playthroughs differ:\n%+v\n%+v", a, b)
	}
}
