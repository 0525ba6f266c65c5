package agent

import (
	"context"
	"testing"

	"github.com/vovakirdan/tui-shippu/internal/config"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

type recorder struct {
	episodes    []EpisodeReport
	generations []GenerationReport
}

func (r *recorder) EpisodeFinished(e EpisodeReport) { r.episodes = append(r.episodes, e) }
func (r *recorder) GenerationFinished(g GenerationReport) { r.generations = append(r.generations, g) }

func testOptions() Options {
	cfg := config.DefaultShippuConfig()
	cfg.Agent.Population = 2
	cfg.Agent.MaxTicks = 240
	return OptionsFromConfig(cfg, shippu.MustLevel("stage1"))
}

func TestTrainerGeneration(t *testing.T) {
	tr, err := NewTrainer(testOptions(), nil)
	if err != nil {
		t.Fatalf("NewTrainer: %v", err)
	}
	rec := &recorder{}
	tr.AddObserver(rec)

	rep, err := tr.RunGeneration(context.Background())
	if err != nil {
		t.Fatalf("RunGeneration: %v", err)
	}
	// With elite skipping the elite plays nothing; agent 1 trains then scores.
	if len(rec.episodes) != 2 {
		t.Fatalf("episodes = %d, want 2", len(rec.episodes))
	}
	if rec.episodes[0].Kind != EpisodeTrain || rec.episodes[1].Kind != EpisodeScore {
		t.Errorf("episode order = %s, %s", rec.episodes[0].Kind, rec.episodes[1].Kind)
	}
	if rec.episodes[1].Agent != 1 {
		t.Errorf("scored agent = %d, want 1", rec.episodes[1].Agent)
	}
	if rep.Generation != 1 || tr.Generation() != 2 {
		t.Errorf("generation report %d, trainer at %d", rep.Generation, tr.Generation())
	}
	if len(rep.Fitness) != 2 || rep.Snapshot.Generation != 2 || len(rep.Snapshot.Agents) != 2 {
		t.Errorf("report = %+v", rep)
	}
	if len(rec.generations) != 1 {
		t.Errorf("generation reports = %d", len(rec.generations))
	}
}

func TestTrainerDeterministic(t *testing.T) {
	run := func() []float64 {
		tr, err := NewTrainer(testOptions(), nil)
		if err != nil {
			t.Fatalf("NewTrainer: %v", err)
		}
		var out []float64
		for range 2 {
			rep, err := tr.RunGeneration(context.Background())
			if err != nil {
				t.Fatalf("RunGeneration: %v", err)
			}
			out = append(out, rep.Fitness...)
		}
		return out
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("fitness differs at %d: %v vs %v", i, a, b)
		}
	}
}

func TestResumeTrainer(t *testing.T) {
	tr, err := NewTrainer(testOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	rep, err := tr.RunGeneration(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	resumed, err := ResumeTrainer(testOptions(), rep.Snapshot, nil)
	if err != nil {
		t.Fatalf("ResumeTrainer: %v", err)
	}
	if resumed.Generation() != 2 || resumed.Weights() != tr.Weights() || len(resumed.Agents()) != 2 {
		t.Errorf("resumed trainer at %d with %d agents", resumed.Generation(), len(resumed.Agents()))
	}
	if _, err := ResumeTrainer(testOptions(), Snapshot{}, nil); err == nil {
		t.Error("expected error for an empty snapshot")
	}
	if _, err := NewTrainer(Options{}, nil); err == nil {
		t.Error("expected error for an empty population")
	}
}
