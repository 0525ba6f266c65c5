package config

import (
	_ "embed"
)

//go:embed defaults/shippu.yaml
var defaultShippuYAML []byte

// DefaultShippuConfig returns the default configuration.
func DefaultShippuConfig() ShippuConfig {
	return ShippuConfig{
		Player: PlayerConfig{
			Stock: 3,
		},
		Scoring: ScoringConfig{
			Destruction: 1.0,
			Frame:       0.0,
			Event:       1.0,
		},
		Seeds: SeedsConfig{
			Enemy:  123,
			Effect: 456,
			Agent:  789,
		},
		Reward: RewardConfig{
			Hit:        1.0,
			Damage:     -1.0,
			FarX:       320,
			FarFactor:  0.1,
			NearX:      160,
			NearFactor: 1.1,
		},
		Agent: AgentConfig{
			Population:    4,
			TrainEpsilon:  0.1,
			ScoreEpsilon:  0.0,
			LearningRate:  0.001,
			Discount:      0.95,
			EliteSkipping: true,
			MaxTicks:      36000,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.3,
		},
		Pacing: PacingConfig{
			TickRate: 60,
		},
	}
}
