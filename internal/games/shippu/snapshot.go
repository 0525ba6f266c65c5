package shippu

import "github.com/vovakirdan/tui-shippu/internal/core"

// Phase names the coarse state of a playthrough.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseEnding   Phase = "ending"
	PhaseGameOver Phase = "game_over"
	PhaseFinished Phase = "finished"
)

// Snapshot captures the state of a playthrough for determinism checks,
// replay comparison and the training monitor.
type Snapshot struct {
	Tick       int         `json:"tick"`
	Level      string      `json:"level"`
	Phase      Phase       `json:"phase"`
	Score      int         `json:"score"`
	Multiplier int         `json:"multiplier"`
	Stock      int         `json:"stock"`
	LapTime    int         `json:"lap_time"`
	EventCount core.Fixed  `json:"event_count"`
	EventSpeed core.Fixed  `json:"event_speed"`
	Cursor     int         `json:"cursor"`
	PlayerX    core.Fixed  `json:"player_x"`
	PlayerY    core.Fixed  `json:"player_y"`
	Player     PlayerState `json:"player"`
	Enemies    int         `json:"enemies"`
	Bullets    int         `json:"bullets"`
	Outcome    Outcome     `json:"outcome"`
}

// Snapshot returns the current playthrough snapshot.
func (s *Scene) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case s.over:
		phase = PhaseFinished
	case s.banner != nil:
		phase = PhaseGameOver
	case s.ending != nil:
		phase = PhaseEnding
	}
	st := s.status
	return Snapshot{
		Tick:       s.tick,
		Level:      s.level.Name,
		Phase:      phase,
		Score:      st.Score(),
		Multiplier: st.Multiplier(),
		Stock:      st.Stock(),
		LapTime:    st.LapTime(),
		EventCount: st.EventCount(),
		EventSpeed: st.EventSpeed(),
		Cursor:     s.timeline.Cursor(),
		PlayerX:    s.player.x,
		PlayerY:    s.player.y,
		Player:     s.player.state,
		Enemies:    s.enemies.Len(),
		Bullets:    s.bullets.Len(),
		Outcome:    st.Outcome(),
	}
}
