package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shippu/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsDelete bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List stored training runs",
	Long: `Without arguments, list the most recent training runs. With a run id,
show that run's generations.

Examples:
  shippu runs
  shippu runs 7f0c...
  shippu runs 7f0c... --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to list")
	runsCmd.Flags().BoolVar(&flagRunsDelete, "delete", false, "Delete the given run and its generations")
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsDelete {
		if len(args) != 1 {
			return fmt.Errorf("--delete needs a run id")
		}
		if err := store.DeleteRun(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted run %s\n", args[0])
		return nil
	}
	if len(args) == 1 {
		return printGenerations(store, args[0])
	}

	runs, err := store.Runs(flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No training runs recorded yet.")
		fmt.Println()
		fmt.Println("Start one with 'shippu train'.")
		return nil
	}

	fmt.Printf("  %-36s  %-8s  %-4s  %-5s  %s\n", "Run", "Level", "Pop", "Gens", "Started")
	fmt.Printf("  %-36s  %-8s  %-4s  %-5s  %s\n", "---", "-----", "---", "----", "-------")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-8s  %-4d  %-5d  %s\n",
			r.ID, r.Level, r.Population, r.Generations, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printGenerations(store *storage.Store, runID string) error {
	run, err := store.Run(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no training run %s", runID)
	}
	gens, err := store.Generations(run.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s - level %s, population %d, meta seed %d\n", run.ID, run.Level, run.Population, run.MetaSeed)
	fmt.Println()
	if len(gens) == 0 {
		fmt.Println("No generations stored.")
		return nil
	}
	fmt.Printf("  %-5s  %-12s  %-12s  %s\n", "Gen", "Best", "Mean", "Best agent")
	fmt.Printf("  %-5s  %-12s  %-12s  %s\n", "---", "----", "----", "----------")
	for _, g := range gens {
		fmt.Printf("  %-5d  %-12.4f  %-12.4f  %d\n", g.Generation, g.Best, g.Mean, g.BestAgent)
	}
	return nil
}
