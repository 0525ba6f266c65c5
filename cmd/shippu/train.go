package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shippu/internal/agent"
	"github.com/vovakirdan/tui-shippu/internal/monitor"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

var (
	flagGenerations int
	flagMonitorAddr string
	flagResume      string
	flagPopulation  int
	flagOrigins     []string
)

var trainCmd = &cobra.Command{
	Use:   "train [mode]",
	Short: "Train a population of agents",
	Long: `Evolve a population of learning agents on a mode's level.

Every generation, each agent after the elite trains on freshly seeded
streams and is then scored on the canonical seeds. The population for the
next generation is stored in the scores database after every generation,
so a run can be resumed with --resume.

With --monitor, an HTTP server exposes:
  /health           - liveness
  /metrics          - Prometheus metrics
  /api/status       - current run status
  /api/generations  - recent generation reports
  /ws               - live episode and generation feed

Examples:
  shippu train --generations 20
  shippu train --monitor :8080
  shippu train --resume 7f0c... --generations 10
  shippu train --level ./my-level.yaml --population 8`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagGenerations, "generations", 10, "Number of generations to run")
	trainCmd.Flags().StringVar(&flagMonitorAddr, "monitor", "", "Serve the training monitor on this address (e.g. :8080)")
	trainCmd.Flags().StringVar(&flagResume, "resume", "", "Continue a stored training run")
	trainCmd.Flags().IntVar(&flagPopulation, "population", 0, "Population size (0 = config agent.population)")
	trainCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "Allowed monitor origins (default: localhost)")
	trainCmd.Flags().StringVar(&flagLevel, "level", "", "Level timeline YAML to train on instead of the mode's level")
}

// generationSaver stores every finished generation.
type generationSaver struct {
	store  *storage.Store
	runID  string
	logger *log.Logger
}

func (s *generationSaver) EpisodeFinished(agent.EpisodeReport) {}

func (s *generationSaver) GenerationFinished(rep agent.GenerationReport) {
	data, err := rep.Snapshot.Encode()
	if err != nil {
		s.logger.Error("could not encode population", "generation", rep.Generation, "error", err)
		return
	}
	err = s.store.SaveGeneration(storage.GenerationRecord{
		RunID:      s.runID,
		Generation: rep.Generation,
		Best:       rep.Best,
		Mean:       rep.Mean,
		BestAgent:  rep.BestAgent,
		Population: data,
	})
	if err != nil {
		s.logger.Error("could not save generation", "generation", rep.Generation, "error", err)
	}
}

func runTrain(cmd *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagPopulation > 0 {
		cfg.Agent.Population = flagPopulation
	}
	logger := newLogger("shippu-train")

	level, err := resolveLevel(mode, flagLevel)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := agent.OptionsFromConfig(cfg, level)
	trainer, runID, err := openTrainer(store, opts, logger)
	if err != nil {
		return err
	}
	logger.Info("training", "run", runID, "level", level.Name, "population", opts.Population,
		"generation", trainer.Generation(), "generations", flagGenerations)

	trainer.AddObserver(&generationSaver{store: store, runID: runID, logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagMonitorAddr != "" {
		mon := monitor.New(monitor.Options{
			RunID:      runID,
			Level:      level.Name,
			Population: opts.Population,
			Origins:    flagOrigins,
			Logger:     newLogger("shippu-monitor"),
		})
		trainer.AddObserver(mon)

		srv := monitor.NewServer(flagMonitorAddr, mon, monitor.RouterConfig{})
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		fmt.Printf("Monitor on http://%s (metrics at /metrics, live feed at /ws)\n", srv.Addr())
	}

	if err := trainer.Run(ctx, flagGenerations); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("training interrupted", "run", runID, "generation", trainer.Generation())
			return nil
		}
		return err
	}

	fmt.Printf("Run %s finished at generation %d.\n", runID, trainer.Generation()-1)
	fmt.Printf("Fly the best agent with: shippu run --policy agent --run-id %s\n", runID)
	return nil
}

// openTrainer resumes --resume or registers a new run.
func openTrainer(store *storage.Store, opts agent.Options, logger *log.Logger) (*agent.Trainer, string, error) {
	if flagResume == "" {
		trainer, err := agent.NewTrainer(opts, logger)
		if err != nil {
			return nil, "", err
		}
		run, err := store.CreateRun(opts.Level.Name, opts.Population, opts.MetaSeed)
		if err != nil {
			return nil, "", err
		}
		return trainer, run.ID, nil
	}

	run, err := store.Run(flagResume)
	if err != nil {
		return nil, "", err
	}
	if run == nil {
		return nil, "", fmt.Errorf("no training run %s", flagResume)
	}
	rec, err := store.LatestGeneration(run.ID)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", fmt.Errorf("training run %s has no stored generations", run.ID)
	}
	snap, err := agent.DecodeSnapshot(rec.Population)
	if err != nil {
		return nil, "", err
	}
	opts.MetaSeed = run.MetaSeed
	trainer, err := agent.ResumeTrainer(opts, snap, logger)
	if err != nil {
		return nil, "", err
	}
	return trainer, run.ID, nil
}
