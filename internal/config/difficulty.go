package config

import (
	"fmt"
	"strings"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// StockForPreset returns the starting stock for a difficulty preset.
func StockForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 1
	default:
		return 3
	}
}

// ParsePreset converts a flag value to a preset. The empty string is normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyShippuPreset modifies the config based on a difficulty preset.
func ApplyShippuPreset(cfg *ShippuConfig, preset DifficultyPreset) {
	cfg.Player.Stock = StockForPreset(preset)
}
