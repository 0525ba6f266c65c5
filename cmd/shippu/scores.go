package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
	"github.com/vovakirdan/tui-shippu/internal/registry"
	"github.com/vovakirdan/tui-shippu/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and the best lap",
	Long: `Display the top 10 high scores and the fastest cleared laps for a mode
(default: shippu).

Examples:
  shippu scores
  shippu scores shippu_boss`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	mode, err := modeArg(args)
	if err != nil {
		return err
	}

	info, _ := registry.Lookup(mode)
	title := info.Title

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(mode, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'shippu play %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if st, err := store.Stats(mode); err == nil {
		fmt.Printf("Best: %d  (%d plays, %d clears", st.HighScore, st.Plays, st.Clears)
		if !st.LastPlayed.IsZero() {
			fmt.Printf(", last %s", st.LastPlayed.Local().Format("2006-01-02"))
		}
		fmt.Println(")")
	}

	laps, err := store.TopLaps(mode, 5)
	if err != nil {
		return fmt.Errorf("retrieving laps: %w", err)
	}
	if len(laps) == 0 {
		fmt.Printf("Best lap: %s (never cleared)\n", shippu.FormatLap(shippu.InitialBestLap))
		return nil
	}
	fmt.Printf("Best lap: %s\n", shippu.FormatLap(laps[0].Frames))
	for i, lap := range laps[1:] {
		fmt.Printf("  %d. %s  %s\n", i+2, shippu.FormatLap(lap.Frames), lap.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
