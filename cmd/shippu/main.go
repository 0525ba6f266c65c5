// shippu is a terminal side-scrolling shooter with a reinforcement-learning
// pilot.
//
// Usage:
//
//	shippu list                - List available modes
//	shippu play [mode]         - Play in the terminal
//	shippu run [mode]          - Headless playthrough with a scripted or trained pilot
//	shippu train               - Train a population of agents
//	shippu runs                - List stored training runs
//	shippu scores [mode]       - Show high scores and the best lap
//	shippu serve               - Start SSH server for remote play
//	shippu level check <file>  - Validate a level timeline
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed (0 = canonical stage seeds)
//	--db <path>          - Set database path (default: ~/.shippu/scores.db)
//	--config <path>      - Use a custom shippu.yaml
//	--difficulty <name>  - Starting stock preset: easy, normal, hard
//	--verbose            - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shippu/internal/config"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu" // registers the stages
	"github.com/vovakirdan/tui-shippu/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shippu",
	Short: "SHIPPU NN - a side-scrolling shooter in your terminal",
	Long: `SHIPPU NN is a fixed-timestep side-scrolling shooter that runs in the
terminal, with a population of learning agents that can fly it for you.

Available commands:
  list     - Show all available modes
  play     - Play a mode in the terminal
  run      - Headless playthrough, prints the outcome
  train    - Train agents, optionally with a live monitor
  runs     - List stored training runs
  scores   - View high scores and the best lap
  serve    - Start SSH server for remote play
  level    - Level timeline tools

Examples:
  shippu play
  shippu play shippu_boss --difficulty easy
  shippu run --policy random --ticks 3600
  shippu train --generations 10 --monitor :8080
  shippu serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (frames per second, 0 = config pacing.tick_rate)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = canonical stage seeds)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.shippu/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom shippu.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(levelCmd)
}

// newLogger returns a stderr logger for a component.
func newLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads shippu.yaml and applies --difficulty and --fps.
// The preset only overrides the stock when the flag is given.
func loadConfig() (config.ShippuConfig, error) {
	cfg, err := config.LoadShippu(flagConfig)
	if err != nil {
		return cfg, err
	}
	newLogger("config").Debug("loaded", "source", config.Source(flagConfig))
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyShippuPreset(&cfg, preset)
	}
	if flagFPS > 0 {
		cfg.Pacing.TickRate = flagFPS
	}
	return cfg, nil
}

// modeArg returns the mode named in args, or the full mission.
func modeArg(args []string) (string, error) {
	if len(args) == 0 {
		return shippu.IDMission, nil
	}
	if !registry.Exists(args[0]) {
		return "", fmt.Errorf("unknown mode %q; run 'shippu list' to see available modes", args[0])
	}
	return args[0], nil
}
