package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/tui-shippu/internal/agent"
	"github.com/vovakirdan/tui-shippu/internal/audio"
	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
	"github.com/vovakirdan/tui-shippu/internal/registry"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

var (
	flagTicks    int
	flagRealtime bool
	flagPolicy   string
	flagRunID    string
	flagLevel    string
	flagJSON     bool
	flagSound    bool
)

var runCmd = &cobra.Command{
	Use:   "run [mode]",
	Short: "Headless playthrough",
	Long: `Play a mode without a terminal UI and print the frozen outcome.

Policies:
  idle    - hold nothing
  random  - a uniformly random action every tick (seeded by --seed)
  agent   - the best agent of a stored training run (needs --run-id)

Examples:
  shippu run --policy random
  shippu run shippu_boss --ticks 3600
  shippu run --policy agent --run-id 7f0c... --realtime --sound
  shippu run --level ./my-level.yaml --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = until game over)")
	runCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at the configured tick rate")
	runCmd.Flags().StringVar(&flagPolicy, "policy", "idle", "Pilot: idle, random or agent")
	runCmd.Flags().StringVar(&flagRunID, "run-id", "", "Training run whose best agent flies (policy agent)")
	runCmd.Flags().StringVar(&flagLevel, "level", "", "Level timeline YAML to play instead of the mode's level")
	runCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the result as JSON")
	runCmd.Flags().BoolVar(&flagSound, "sound", false, "Play cues through the audio device")
}

func runRun(cmd *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger("shippu-run")

	level, err := resolveLevel(mode, flagLevel)
	if err != nil {
		return err
	}

	var pilot *agent.Agent
	if flagPolicy == "agent" {
		if flagRunID == "" {
			return errors.New("policy agent needs --run-id")
		}
		pilot, err = loadBestAgent(flagRunID)
		if err != nil {
			return err
		}
	}
	ctrl, err := agent.NewController(flagPolicy, flagSeed, pilot)
	if err != nil {
		return err
	}

	enemy, effect := shippu.SeedsFor(flagSeed)
	scene := shippu.NewScene(shippu.Options{
		EnemySeed:  enemy,
		EffectSeed: effect,
		Stock:      cfg.Player.Stock,
		Weights:    shippu.Weights(cfg.Scoring),
		Level:      level,
	})

	play := agent.PlayConfig{MaxTicks: flagTicks}
	if flagRealtime {
		play.Pacer = rate.NewLimiter(rate.Every(core.TickInterval(cfg.Pacing.TickRate)), 1)
	}
	if flagSound {
		audioCfg := cfg.Audio
		audioCfg.Enabled = true
		sink, closeAudio := audio.Open(audioCfg, logger)
		defer closeAudio()
		play.Audio = sink
	}
	play.OnStep = func(tick int, res core.StepResult) {
		if res.State.GameOver {
			logger.Debug("game over", "tick", tick, "score", res.State.Score)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("playthrough started", "mode", mode, "level", level.Name, "policy", flagPolicy, "seed", flagSeed)
	res, err := agent.Play(ctx, scene, ctrl, play)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		res.Truncated = true
		scene.Status().SetCompleted()
		res.Outcome = scene.Status().Outcome()
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printResult(mode, scene, res)
	return nil
}

// resolveLevel picks the level file if given, otherwise the mode's level.
func resolveLevel(mode, file string) (*shippu.Level, error) {
	if file != "" {
		return shippu.LoadLevelFile(file)
	}
	game, err := registry.Create(mode)
	if err != nil {
		return nil, err
	}
	g, ok := game.(*shippu.Game)
	if !ok {
		return nil, fmt.Errorf("mode %q has no level timeline", mode)
	}
	return shippu.BuiltinLevel(g.LevelName())
}

// loadBestAgent restores the best agent of a run's latest generation.
func loadBestAgent(runID string) (*agent.Agent, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	rec, err := store.LatestGeneration(runID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("training run %s has no stored generations", runID)
	}
	snap, err := agent.DecodeSnapshot(rec.Population)
	if err != nil {
		return nil, err
	}
	best, _ := snap.Best()
	return best, nil
}

func printResult(mode string, s *shippu.Scene, res agent.EpisodeResult) {
	o := res.Outcome
	fmt.Printf("Result - %s\n", mode)
	fmt.Println()
	fmt.Printf("  %-12s %d\n", "Ticks", res.Ticks)
	fmt.Printf("  %-12s %d\n", "Score", o.Destruction)
	fmt.Printf("  %-12s %d\n", "Events", o.Events)
	fmt.Printf("  %-12s %s\n", "Lap", shippu.FormatLap(s.Status().LapTime()))
	fmt.Printf("  %-12s %d / %d\n", "Hits/Hurts", res.Hits, res.Hurts)
	fmt.Printf("  %-12s %.3f\n", "Outcome", o.Final)
	switch {
	case o.Cleared:
		fmt.Println("\nMission completed.")
	case res.Truncated:
		fmt.Println("\nStopped before game over.")
	}
}
