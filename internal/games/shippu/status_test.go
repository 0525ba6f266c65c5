package shippu

import (
	"testing"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

func TestStatusMultiplier(t *testing.T) {
	tests := []struct {
		live int
		want int
	}{
		{0, 1},
		{30, 1},
		{61, 1},
		{62, 2},
		{94, 3},
	}
	for _, tt := range tests {
		st := NewStatus(3, DefaultWeights())
		st.UpdateMultiplier(tt.live)
		if got := st.Multiplier(); got != tt.want {
			t.Errorf("UpdateMultiplier(%d): multiplier = %d, want %d", tt.live, got, tt.want)
		}
	}
}

func TestStatusBonusUsesMultiplier(t *testing.T) {
	st := NewStatus(3, DefaultWeights())
	st.UpdateMultiplier(94)
	if got := st.AddBonus(100); got != 300 {
		t.Errorf("AddBonus = %d, want 300", got)
	}
	st.ResetMultiplier()
	st.AddBonus(100)
	if st.Score() != 400 {
		t.Errorf("Score = %d, want 400", st.Score())
	}
}

func TestStatusStockCompletes(t *testing.T) {
	st := NewStatus(2, DefaultWeights())
	st.AddScore(50)
	st.DecrementStock(1)
	if st.Completed() {
		t.Fatal("completed with a ship left")
	}
	st.DecrementStock(3)
	if st.Stock() != 0 || !st.Completed() {
		t.Fatalf("stock %d completed %v, want 0 true", st.Stock(), st.Completed())
	}
	first := st.Outcome()
	if first.Destruction != 50 {
		t.Errorf("outcome destruction = %d, want 50", first.Destruction)
	}

	// The outcome is frozen once.
	st.AddScore(1000)
	st.SetCompleted()
	if st.Outcome() != first {
		t.Errorf("outcome changed after completion: %+v", st.Outcome())
	}
}

func TestStatusMarkCleared(t *testing.T) {
	st := NewStatus(3, DefaultWeights())
	st.MarkCleared()
	if !st.Cleared() || !st.Outcome().Cleared {
		t.Error("ending did not clear the mission")
	}

	over := NewStatus(1, DefaultWeights())
	over.DecrementStock(1)
	over.MarkCleared()
	if over.Cleared() {
		t.Error("a run out of ships was marked cleared")
	}
}

func TestStatusEventSpeedClamp(t *testing.T) {
	st := NewStatus(3, DefaultWeights())
	st.AddEventSpeed(core.Fix(-10))
	if st.EventSpeed() != core.FixF(0.5) {
		t.Errorf("speed = %v, want 0.5", st.EventSpeed().Pixels())
	}
	st.AddEventSpeed(core.Fix(10))
	if st.EventSpeed() != core.Fix(4) {
		t.Errorf("speed = %v, want 4", st.EventSpeed().Pixels())
	}
}

func TestStatusEventTicks(t *testing.T) {
	st := NewStatus(3, DefaultWeights())
	st.AddEventSpeed(core.FixF(-0.5))
	got := 0
	for range 10 {
		got += st.IncrementEventCount()
	}
	if got != 5 {
		t.Errorf("event ticks over 10 frames at half speed = %d, want 5", got)
	}
	if st.FrameCount() != 10 {
		t.Errorf("FrameCount = %d, want 10", st.FrameCount())
	}
}

func TestStatusLapFreezes(t *testing.T) {
	st := NewStatus(1, DefaultWeights())
	st.IncrementLapTime()
	st.IncrementLapTime()
	st.DecrementStock(1)
	st.IncrementLapTime()
	if st.LapTime() != 2 {
		t.Errorf("LapTime = %d, want 2", st.LapTime())
	}
}

func TestFormatLap(t *testing.T) {
	tests := []struct {
		frames int
		want   string
	}{
		{0, "00'00''01"},
		{59, "00'00''99"},
		{60, "00'01''01"},
		{60*60 + 30, "01'00''51"},
		{InitialBestLap, "59'59''99"},
	}
	for _, tt := range tests {
		if got := FormatLap(tt.frames); got != tt.want {
			t.Errorf("FormatLap(%d) = %q, want %q", tt.frames, got, tt.want)
		}
	}
}

func TestEventSpeedNudge(t *testing.T) {
	tests := []struct {
		x    int
		want core.Fixed
	}{
		{213, 0},
		{216, 0}, // 3/4 truncates
		{217, 1},
		{210, 0}, // -3/4 truncates toward zero
		{209, -1},
		{640, 106},
		{0, -53},
	}
	for _, tt := range tests {
		if got := eventSpeedNudge(core.Fix(tt.x)); got != tt.want {
			t.Errorf("eventSpeedNudge(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestDeathDragTruncates(t *testing.T) {
	tests := []struct {
		vy, want core.Fixed
	}{
		{256, 254},
		{-256, -254},
		{100, 99},   // 25400/256 = 99.2
		{-100, -99}, // toward zero, not floor
		{127, 126},
		{1, 0},
	}
	for _, tt := range tests {
		if got := deathDrag(tt.vy); got != tt.want {
			t.Errorf("deathDrag(%d) = %d, want %d", tt.vy, got, tt.want)
		}
	}

	vy := core.Fix(4)
	ticks := 0
	for vy != 0 && ticks < 100000 {
		vy = deathDrag(vy)
		ticks++
	}
	if vy != 0 {
		t.Error("drag never settles to zero")
	}
}
