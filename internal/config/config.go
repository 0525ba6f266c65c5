// Package config provides YAML-based configuration loading, difficulty
// presets and config file watching for SHIPPU NN.
package config

// ShippuConfig contains all configuration for the game, the agent and the
// surrounding tooling.
type ShippuConfig struct {
	Player  PlayerConfig  `yaml:"player"`
	Scoring ScoringConfig `yaml:"scoring"`
	Seeds   SeedsConfig   `yaml:"seeds"`
	Reward  RewardConfig  `yaml:"reward"`
	Agent   AgentConfig   `yaml:"agent"`
	Audio   AudioConfig   `yaml:"audio"`
	Pacing  PacingConfig  `yaml:"pacing"`
}

// PlayerConfig defines player parameters.
type PlayerConfig struct {
	Stock int `yaml:"stock"`
}

// ScoringConfig weights the frozen outcome of a playthrough.
// Field order matches shippu.Weights so the two convert directly.
type ScoringConfig struct {
	Destruction float64 `yaml:"destruction"`
	Frame       float64 `yaml:"frame"`
	Event       float64 `yaml:"event"`
}

// SeedsConfig holds the three random streams.
type SeedsConfig struct {
	Enemy  int64 `yaml:"enemy"`
	Effect int64 `yaml:"effect"`
	Agent  int64 `yaml:"agent"`
}

// RewardConfig shapes the per-tick reward handed to the agent.
type RewardConfig struct {
	Hit        float64 `yaml:"hit"`
	Damage     float64 `yaml:"damage"`
	FarX       int     `yaml:"far_x"`
	FarFactor  float64 `yaml:"far_factor"`
	NearX      int     `yaml:"near_x"`
	NearFactor float64 `yaml:"near_factor"`
}

// AgentConfig defines the learning hyper-parameters.
type AgentConfig struct {
	Population    int     `yaml:"population"`
	TrainEpsilon  float64 `yaml:"train_epsilon"`
	ScoreEpsilon  float64 `yaml:"score_epsilon"`
	LearningRate  float64 `yaml:"learning_rate"`
	Discount      float64 `yaml:"discount"`
	EliteSkipping bool    `yaml:"elite_skipping"`
	MaxTicks      int     `yaml:"max_ticks"`
}

// AudioConfig controls the sound sink.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// PacingConfig controls real-time playback.
type PacingConfig struct {
	TickRate int `yaml:"tick_rate"`
}

// DifficultyPreset represents a predefined starting stock.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)
