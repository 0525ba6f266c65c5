package core

import "time"

// DefaultTickRate is the simulation rate the stages are tuned for.
const DefaultTickRate = 60

// RuntimeConfig is handed to a stage on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // terminal columns
	ScreenH  int   // terminal rows
	TickRate int   // ticks per second; <= 0 means DefaultTickRate
	Seed     int64 // 0 selects the canonical random streams
	Stock    int   // starting ships; 0 keeps the stage default
}

// DefaultConfig is an 80x24 terminal at the default rate with canonical seeds.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// TickInterval returns the wall-clock length of one tick at rate ticks per
// second. Non-positive rates fall back to DefaultTickRate.
func TickInterval(rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState is a stage's status as the platform sees it.
type GameState struct {
	Score    int
	Stock    int  // ships left
	LapTime  int  // ticks until the ending, or until game over
	Cleared  bool // the mission ending was reached
	GameOver bool
	Paused   bool
}

// StepResult reports one tick: the resulting state plus what happened
// during it.
type StepResult struct {
	State GameState
	Cues  []Cue // in request order
	Hits  int   // beams that struck an enemy
	Hurts int   // player damage events
}
