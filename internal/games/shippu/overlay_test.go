package shippu

import (
	"testing"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

func TestFloatStringLifetime(t *testing.T) {
	f := NewFloatString(core.Fix(100), core.Fix(200), "1000")
	ticks := 0
	for f.step() {
		ticks++
		if ticks > 1000 {
			t.Fatal("float string never expires")
		}
	}
	if ticks != 92 {
		t.Errorf("shown for %d ticks, want 92", ticks)
	}
	// 16 ticks rising fast, 60 drifting, 16 more rising fast.
	wantY := core.Fix(200-8) - core.Fix(2)*32 - core.FixF(0.5)*60
	if _, y, _ := f.Pos(); y != wantY {
		t.Errorf("final y = %v, want %v", y.Pixels(), wantY.Pixels())
	}
}

func TestTypewriterSchedule(t *testing.T) {
	tw := NewTypewriterString(0, 0, "ABC")
	for i := range 3 {
		if tw.step() {
			t.Fatalf("tick %d: finished before typing everything", i)
		}
	}
	if text, _ := tw.Visible(); text != "ABC" {
		t.Fatalf("typed %q, want ABC", text)
	}

	// Seven blinks, shown twice each: (1 off + (7-i) on) ticks per show.
	offs, blinkTicks := 0, 0
	for tw.step() {
		if tw.settled {
			break
		}
		blinkTicks++
		if _, cursor := tw.Visible(); !cursor {
			offs++
		}
	}
	if blinkTicks != 70 {
		t.Errorf("blink schedule lasted %d ticks, want 70", blinkTicks)
	}
	if offs != 14 {
		t.Errorf("cursor went off %d times, want 14", offs)
	}
	if _, cursor := tw.Visible(); cursor {
		t.Error("cursor still shown after the blinks")
	}
}

func TestTypewriterTextChains(t *testing.T) {
	tt := NewTypewriterText(NewTypewriterString(0, 0, "AB"), NewTypewriterString(0, 16, "C"))
	if len(tt.Lines()) != 1 {
		t.Fatalf("lines = %d, want 1", len(tt.Lines()))
	}
	tt.Step()
	tt.Step()
	tt.Step()
	if len(tt.Lines()) != 2 {
		t.Errorf("lines = %d after the first string finished, want 2", len(tt.Lines()))
	}
}

func TestGameOverStringStates(t *testing.T) {
	g := NewGameOverString()
	for range 60 {
		g.step()
		if g.State() != BannerAppear {
			t.Fatal("appeared too early")
		}
	}
	g.step()
	if g.State() != BannerAppeared {
		t.Fatalf("state = %d, want appeared", g.State())
	}
	if x, y := g.Letter(4); x != core.SceneWidth/2-16 || y != core.SceneHeight/2-16 {
		t.Errorf("middle letter at (%d,%d), want screen center", x, y)
	}

	g.ToDisappear()
	if g.State() != BannerDisappear {
		t.Fatal("ToDisappear did not switch state")
	}
	for range 30 {
		g.step()
	}
	if g.State() != BannerDisappear {
		t.Fatal("disappeared too early")
	}
	g.step()
	if g.State() != BannerDisappeared {
		t.Errorf("state = %d, want disappeared", g.State())
	}
}

func TestEndingSequence(t *testing.T) {
	s := sceneWith()
	s.player.state = PlayerMove
	s.player.phase = &playerMove{}
	e := NewEnding()

	for tick := 1; tick <= 360; tick++ {
		if !e.step(s, &s.fx) {
			t.Fatalf("ending stopped at tick %d", tick)
		}
		s.apply()
		text := e.Text().text
		switch {
		case tick <= 180 && text != endingLine1:
			t.Fatalf("tick %d: text %q", tick, text)
		case tick > 180 && text != endingLine2:
			t.Fatalf("tick %d: text %q", tick, text)
		}
	}
	stock := s.Status().Stock()
	if e.step(s, &s.fx) {
		t.Fatal("ending still running after the second line")
	}
	s.apply()
	if s.player.State() != PlayerDestroy {
		t.Error("player did not explode at the end")
	}
	if s.Status().Score() != stock {
		t.Errorf("score = %d, want %d for the remaining ships", s.Status().Score(), stock)
	}
	if s.Status().Stock() != 0 || !s.Status().Completed() {
		t.Error("suicide did not use up every ship")
	}
}
