package agent

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-shippu/internal/config"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

// episodeSeeds bounds the reseeding of the scene streams for training.
const episodeSeeds = 65536

// EpisodeKind tells training episodes from scoring ones.
type EpisodeKind string

const (
	EpisodeTrain EpisodeKind = "train"
	EpisodeScore EpisodeKind = "score"
)

// Options configure a Trainer.
type Options struct {
	Population    int
	TrainEpsilon  float64
	ScoreEpsilon  float64
	LearningRate  float64
	Discount      float64
	EliteSkipping bool
	MaxTicks      int
	MetaSeed      int64
	EnemySeed     int64 // scoring episodes always replay these seeds
	EffectSeed    int64
	Stock         int
	Shaping       Shaping
	Level         *shippu.Level
}

// OptionsFromConfig builds trainer options for a level.
func OptionsFromConfig(cfg config.ShippuConfig, level *shippu.Level) Options {
	r := cfg.Reward
	return Options{
		Population:    cfg.Agent.Population,
		TrainEpsilon:  cfg.Agent.TrainEpsilon,
		ScoreEpsilon:  cfg.Agent.ScoreEpsilon,
		LearningRate:  cfg.Agent.LearningRate,
		Discount:      cfg.Agent.Discount,
		EliteSkipping: cfg.Agent.EliteSkipping,
		MaxTicks:      cfg.Agent.MaxTicks,
		MetaSeed:      cfg.Seeds.Agent,
		EnemySeed:     cfg.Seeds.Enemy,
		EffectSeed:    cfg.Seeds.Effect,
		Stock:         cfg.Player.Stock,
		Shaping: Shaping{
			Hit:        r.Hit,
			Damage:     r.Damage,
			FarX:       r.FarX,
			FarFactor:  r.FarFactor,
			NearX:      r.NearX,
			NearFactor: r.NearFactor,
		},
		Level: level,
	}
}

// EpisodeReport describes one finished episode.
type EpisodeReport struct {
	Generation int           `json:"generation"`
	Agent      int           `json:"agent"`
	Kind       EpisodeKind   `json:"kind"`
	Result     EpisodeResult `json:"result"`
	Loss       float64       `json:"loss,omitempty"`
	Fitness    Fitness       `json:"fitness"`
}

// GenerationReport describes one finished generation.
type GenerationReport struct {
	Generation int       `json:"generation"`
	Fitness    []float64 `json:"fitness"`
	Best       float64   `json:"best"`
	BestAgent  int       `json:"best_agent"`
	Mean       float64   `json:"mean"`
	Snapshot   Snapshot  `json:"-"` // population for the next generation
}

// Observer is told about training progress.
type Observer interface {
	EpisodeFinished(EpisodeReport)
	GenerationFinished(GenerationReport)
}

// Trainer evolves a population. Every random choice it makes comes from
// the meta stream, which is kept apart from the scene streams.
type Trainer struct {
	opts       Options
	meta       *rand.Rand
	weights    shippu.Weights
	agents     []*Agent
	generation int
	logger     *log.Logger
	observers  []Observer
}

// NewTrainer creates a fresh population. Policies are initialized from a
// stream derived from the meta seed so the meta sequence itself only sees
// the exploration seeds and the fitness weights.
func NewTrainer(opts Options, logger *log.Logger) (*Trainer, error) {
	if opts.Population < 1 {
		return nil, fmt.Errorf("agent: population must be at least 1, got %d", opts.Population)
	}
	t := newTrainer(opts, opts.MetaSeed, logger)
	init := rand.New(rand.NewSource(^opts.MetaSeed))
	t.agents = make([]*Agent, opts.Population)
	for i := range t.agents {
		t.agents[i] = New(NewLinearQ(init), t.meta)
	}
	t.weights = shippu.Weights{
		Destruction: t.meta.Float64(),
		Frame:       t.meta.Float64(),
		Event:       t.meta.Float64(),
	}
	t.generation = 1
	return t, nil
}

// ResumeTrainer continues from a stored population. The meta stream is
// reseeded from the meta seed and the generation number.
func ResumeTrainer(opts Options, snap Snapshot, logger *log.Logger) (*Trainer, error) {
	if len(snap.Agents) == 0 {
		return nil, fmt.Errorf("agent: cannot resume from an empty snapshot")
	}
	t := newTrainer(opts, opts.MetaSeed+int64(snap.Generation), logger)
	t.agents = snap.Restore()
	t.weights = snap.Weights
	t.generation = snap.Generation
	return t, nil
}

func newTrainer(opts Options, metaSeed int64, logger *log.Logger) *Trainer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Level == nil {
		opts.Level = shippu.MustLevel("stage1")
	}
	return &Trainer{
		opts:   opts,
		meta:   rand.New(rand.NewSource(metaSeed)),
		logger: logger,
	}
}

// AddObserver registers o for progress reports.
func (t *Trainer) AddObserver(o Observer) {
	t.observers = append(t.observers, o)
}

// Generation returns the number of the generation about to run.
func (t *Trainer) Generation() int { return t.generation }

// Weights returns the fitness weights of this run.
func (t *Trainer) Weights() shippu.Weights { return t.weights }

// Agents returns the current population.
func (t *Trainer) Agents() []*Agent { return t.agents }

// Snapshot captures the current population.
func (t *Trainer) Snapshot() (Snapshot, error) {
	return snapshotOf(t.generation, t.weights, t.agents)
}

// Run trains for n generations, or until ctx is done.
func (t *Trainer) Run(ctx context.Context, n int) error {
	for range n {
		if _, err := t.RunGeneration(ctx); err != nil {
			return err
		}
	}
	return nil
}

// RunGeneration gives every agent after the elite a training episode on
// fresh seeds, scores agents on the canonical seeds, then alternates the
// population.
func (t *Trainer) RunGeneration(ctx context.Context) (GenerationReport, error) {
	gen := t.generation
	for i, a := range t.agents {
		if i > 0 {
			if err := t.train(ctx, gen, i, a); err != nil {
				return GenerationReport{}, err
			}
		}
		if !t.opts.EliteSkipping || i > 0 {
			if err := t.score(ctx, gen, i, a); err != nil {
				return GenerationReport{}, err
			}
		}
		t.logger.Info("agent finished",
			"generation", gen,
			"agent", i,
			"score", a.Fitness.Score,
			"destruction", a.Fitness.Destruction,
			"frames", a.Fitness.Frames,
			"events", a.Fitness.Events,
		)
	}

	report := GenerationReport{Generation: gen, Fitness: make([]float64, len(t.agents))}
	total := 0.0
	for i, a := range t.agents {
		report.Fitness[i] = a.Fitness.Score
		total += a.Fitness.Score
		if a.Fitness.Score > report.Fitness[report.BestAgent] {
			report.BestAgent = i
		}
	}
	report.Best = report.Fitness[report.BestAgent]
	report.Mean = total / float64(len(t.agents))

	t.agents = Alternate(t.agents, t.meta)
	t.generation++
	snap, err := t.Snapshot()
	if err != nil {
		return report, err
	}
	report.Snapshot = snap
	t.logger.Info("generation finished", "generation", gen, "best", report.Best, "mean", report.Mean)
	for _, o := range t.observers {
		o.GenerationFinished(report)
	}
	return report, nil
}

func (t *Trainer) train(ctx context.Context, gen, i int, a *Agent) error {
	enemy := int64(t.meta.Intn(episodeSeeds))
	effect := int64(t.meta.Intn(episodeSeeds))
	a.UpdateEpsilonSeed(t.meta)
	res, err := RunEpisode(ctx, a, t.episode(enemy, effect, t.opts.TrainEpsilon))
	if err != nil {
		return err
	}
	fit := t.fitness(res)
	loss := a.Train(t.meta, t.opts.LearningRate, t.opts.Discount)
	t.logger.Debug("training episode", "generation", gen, "agent", i, "ticks", res.Ticks, "loss", loss)
	t.report(EpisodeReport{Generation: gen, Agent: i, Kind: EpisodeTrain, Result: res, Loss: loss, Fitness: fit})
	return nil
}

func (t *Trainer) score(ctx context.Context, gen, i int, a *Agent) error {
	res, err := RunEpisode(ctx, a, t.episode(t.opts.EnemySeed, t.opts.EffectSeed, t.opts.ScoreEpsilon))
	if err != nil {
		return err
	}
	a.Forget()
	a.Fitness = t.fitness(res)
	t.report(EpisodeReport{Generation: gen, Agent: i, Kind: EpisodeScore, Result: res, Fitness: a.Fitness})
	return nil
}

func (t *Trainer) episode(enemy, effect int64, epsilon float64) EpisodeConfig {
	return EpisodeConfig{
		Level:      t.opts.Level,
		EnemySeed:  enemy,
		EffectSeed: effect,
		Stock:      t.opts.Stock,
		Weights:    t.weights,
		Epsilon:    epsilon,
		MaxTicks:   t.opts.MaxTicks,
		Shaping:    t.opts.Shaping,
	}
}

// fitness is the weighted outcome plus a small jitter from the meta stream
// that breaks ties between equal outcomes.
func (t *Trainer) fitness(res EpisodeResult) Fitness {
	return Fitness{
		Score:       res.Outcome.Final + t.meta.Float64(),
		Destruction: res.Outcome.Destruction,
		Frames:      res.Outcome.Frames,
		Events:      res.Outcome.Events,
	}
}

func (t *Trainer) report(r EpisodeReport) {
	for _, o := range t.observers {
		o.EpisodeFinished(r)
	}
}
