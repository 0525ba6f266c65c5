package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-shippu/internal/audio"
	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
	"github.com/vovakirdan/tui-shippu/internal/platform/tui"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

var (
	flagMute  bool
	flagTitle bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play in the terminal",
	Long: `Start playing the given mode (default: shippu, the full mission).

Controls:
  Arrows/WASD  - Move (keys are held for half a second after a press)
  Z/Space      - Main gun
  X            - Toggle rapid fire
  P            - Pause
  R            - Restart (after game over)
  M            - Mute
  Ctrl+S       - Screenshot
  Esc          - Back to the title
  Q/Ctrl+C     - Quit

Difficulty options:
  easy    - 5 ships
  normal  - 3 ships
  hard    - 1 ship

Examples:
  shippu play
  shippu play shippu_boss
  shippu play --difficulty hard --mute
  shippu play --title
  shippu play --config ./my-shippu.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start muted")
	playCmd.Flags().BoolVar(&flagTitle, "title", false, "Start on the title screen instead of the mode")
}

func runPlay(cmd *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger("shippu")

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	sink, closeAudio := audio.Open(cfg.Audio, logger)
	defer closeAudio()

	opts := tui.Options{
		Store: store,
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Pacing.TickRate,
			Seed:     flagSeed,
			Stock:    cfg.Player.Stock,
		},
		Weights: shippu.Weights(cfg.Scoring),
		Audio:   sink,
		Muted:   flagMute,
		Logger:  logger,
	}
	if !flagTitle {
		opts.Stage = mode
	}
	return tui.Run(opts)
}
