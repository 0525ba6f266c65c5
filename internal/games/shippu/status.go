package shippu

import (
	"fmt"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// DefaultStock is the number of ships a playthrough starts with.
const DefaultStock = 3

// InitialBestLap is the best-lap record before any mission is cleared.
const InitialBestLap = 59*60*60 + 59*60 + 59

// Event speed bounds.
var (
	minEventSpeed = core.FixF(0.5)
	maxEventSpeed = core.Fix(4)
)

// Weights combine the frozen outcome into a single number.
type Weights struct {
	Destruction float64 `yaml:"destruction"`
	Frame       float64 `yaml:"frame"`
	Event       float64 `yaml:"event"`
}

// DefaultWeights scores destruction and distance travelled equally.
func DefaultWeights() Weights {
	return Weights{Destruction: 1, Frame: 0, Event: 1}
}

// Outcome is the result of a playthrough, frozen exactly once.
type Outcome struct {
	Destruction int     `json:"destruction"` // score at completion
	Frames      int     `json:"frames"`      // frames elapsed at completion
	Events      int     `json:"events"`      // event distance in pixels at completion
	Final       float64 `json:"final"`       // weighted combination
	Cleared     bool    `json:"cleared"`     // mission ending was reached
}

// Status is the score and progress aggregate of one playthrough.
type Status struct {
	score      int
	multiplier int
	stock      int
	eventCount core.Fixed
	eventSpeed core.Fixed
	frameCount int
	lapTime    int
	completed  bool
	cleared    bool
	weights    Weights
	outcome    Outcome
}

// NewStatus creates a status with the given starting stock.
func NewStatus(stock int, w Weights) *Status {
	if stock <= 0 {
		stock = DefaultStock
	}
	return &Status{
		multiplier: 1,
		stock:      stock,
		eventSpeed: core.Fix(1),
		weights:    w,
	}
}

// Weights returns the outcome weights.
func (st *Status) Weights() Weights { return st.weights }

// Score returns the current score.
func (st *Status) Score() int { return st.score }

// Multiplier returns the current kill bonus multiplier.
func (st *Status) Multiplier() int { return st.multiplier }

// Stock returns the remaining ships, including the one in play.
func (st *Status) Stock() int { return st.stock }

// EventSpeed returns the current scroll speed.
func (st *Status) EventSpeed() core.Fixed { return st.eventSpeed }

// EventCount returns the accumulated event distance.
func (st *Status) EventCount() core.Fixed { return st.eventCount }

// FrameCount returns the number of frames counted so far.
func (st *Status) FrameCount() int { return st.frameCount }

// LapTime returns the frames elapsed until completion.
func (st *Status) LapTime() int { return st.lapTime }

// Completed reports whether the outcome has been frozen.
func (st *Status) Completed() bool { return st.completed }

// Cleared reports whether the mission ending was reached.
func (st *Status) Cleared() bool { return st.cleared }

// Outcome returns the frozen outcome. It is zero until Completed.
func (st *Status) Outcome() Outcome { return st.outcome }

// UpdateMultiplier grows the multiplier for an enemy killed after living
// more than 30 ticks.
func (st *Status) UpdateMultiplier(liveTicks int) {
	if liveTicks > 30 {
		st.multiplier += (liveTicks - 30) / 32
	}
}

// ResetMultiplier drops the multiplier back to 1.
func (st *Status) ResetMultiplier() {
	st.multiplier = 1
}

// AddScore adds a flat amount.
func (st *Status) AddScore(n int) {
	st.score += n
}

// AddBonus adds a kill bonus scaled by the multiplier and returns it.
func (st *Status) AddBonus(base int) int {
	bonus := base * st.multiplier
	st.score += bonus
	return bonus
}

// AddSuicideScore adds one point per remaining ship.
func (st *Status) AddSuicideScore() int {
	st.score += st.stock
	return st.stock
}

// DecrementStock removes n ships, never going below zero. Running out
// completes the playthrough.
func (st *Status) DecrementStock(n int) int {
	st.stock -= n
	if st.stock < 0 {
		st.stock = 0
	}
	if st.stock == 0 {
		st.SetCompleted()
	}
	return st.stock
}

// IncrementEventCount advances the event distance by the current speed and
// returns how many whole event ticks elapsed.
func (st *Status) IncrementEventCount() int {
	prev := st.eventCount
	st.eventCount += st.eventSpeed
	st.frameCount++
	return core.ScreenInt(st.eventCount) - core.ScreenInt(prev)
}

// AddEventSpeed nudges the scroll speed, clamped to [0.5, 4] pixels.
func (st *Status) AddEventSpeed(v core.Fixed) {
	st.eventSpeed += v
	if st.eventSpeed < minEventSpeed {
		st.eventSpeed = minEventSpeed
	}
	if st.eventSpeed > maxEventSpeed {
		st.eventSpeed = maxEventSpeed
	}
}

// IncrementLapTime counts a frame until completion.
func (st *Status) IncrementLapTime() {
	if !st.completed {
		st.lapTime++
	}
}

// SetCompleted freezes the outcome. Later calls keep the first outcome.
func (st *Status) SetCompleted() {
	if st.completed {
		return
	}
	st.completed = true
	events := core.ScreenInt(st.eventCount)
	st.outcome = Outcome{
		Destruction: st.score,
		Frames:      st.frameCount,
		Events:      events,
		Final: float64(st.score)*st.weights.Destruction +
			float64(st.frameCount)*st.weights.Frame +
			float64(events)*st.weights.Event,
	}
}

// MarkCleared records that the ending was reached and completes the run.
// A run that already ran out of ships stays uncleared.
func (st *Status) MarkCleared() {
	if !st.completed {
		st.cleared = true
	}
	st.SetCompleted()
	st.outcome.Cleared = st.cleared
}

// FormatLap renders a frame count as MM'SS''hh.
func FormatLap(frames int) string {
	mm := frames / (60 * 60)
	ss := (frames / 60) % 60
	hh := (frames%60)*100/60 + 1
	return fmt.Sprintf("%02d'%02d''%02d", mm, ss, hh)
}
