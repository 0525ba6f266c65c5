package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
	"github.com/vovakirdan/tui-shippu/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows the registered play modes and the built-in level timelines.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range modes {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "ID", "Level", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, g := range modes {
		fmt.Printf("  %-*s  %-8s  %s\n", maxIDLen, g.ID, g.Level, g.Title)
	}

	fmt.Println()
	fmt.Println("Built-in levels:")
	for _, name := range shippu.LevelNames() {
		lv, err := shippu.BuiltinLevel(name)
		if err != nil {
			fmt.Printf("  %s (invalid: %v)\n", name, err)
			continue
		}
		fmt.Printf("  %-10s %d directives\n", name, len(lv.Directives))
	}

	fmt.Println()
	fmt.Println("Run 'shippu play <id>' to play a mode.")
}
