package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shippu/internal/config"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

var flagWatch bool

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Level timeline tools",
}

var levelCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a level timeline YAML",
	Long: `Parse a level file and report the first problem, if any.

With --watch, the file is checked again every time it is saved.

Examples:
  shippu level check ./my-level.yaml
  shippu level check ./my-level.yaml --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runLevelCheck,
}

func init() {
	levelCheckCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Re-check the file on every change")
	levelCmd.AddCommand(levelCheckCmd)
}

func runLevelCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	err := checkLevel(path)
	if !flagWatch {
		return err
	}

	w, werr := config.WatchFile(path)
	if werr != nil {
		return werr
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger("shippu-level")
	logger.Info("watching", "file", path)
	errs := w.Errors
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-w.Events:
			if !ok {
				return nil
			}
			if err := checkLevel(path); err != nil {
				logger.Error("invalid level", "file", path, "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// checkLevel parses path and prints a summary when it is valid.
func checkLevel(path string) error {
	lv, err := shippu.LoadLevelFile(path)
	if err != nil {
		fmt.Printf("%s: %v\n", path, err)
		return err
	}
	fmt.Printf("%s: ok (%s, %d directives)\n", path, lv.Title, len(lv.Directives))
	return nil
}
