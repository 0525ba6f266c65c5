package shippu

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/registry"
)

func TestRegistered(t *testing.T) {
	for _, id := range []string{IDMission, IDBoss} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %s, want %s", g.ID(), id)
		}
	}
}

func TestGameResetUsesConfig(t *testing.T) {
	g := New()
	cfg := core.DefaultConfig()
	cfg.Stock = 5
	g.Reset(cfg)
	if got := g.State().Stock; got != 5 {
		t.Errorf("Stock = %d, want 5", got)
	}

	cfg.Stock = 0
	g.Reset(cfg)
	if got := g.State().Stock; got != DefaultStock {
		t.Errorf("Stock = %d, want %d", got, DefaultStock)
	}
}

func TestGamePause(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())
	g.Step(core.InputFrame{})
	g.TogglePause()
	before := g.Scene().Tick()
	res := g.Step(core.InputFrame{})
	if g.Scene().Tick() != before {
		t.Error("paused game advanced")
	}
	if !res.State.Paused {
		t.Error("step result does not report the pause")
	}
	g.TogglePause()
	g.Step(core.InputFrame{})
	if g.Scene().Tick() != before+1 {
		t.Error("resumed game did not advance")
	}
}

func TestGameDeterminismBySeed(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Seed = 99
	inputs := randomInputs(3, 600)

	g1, g2 := New(), New()
	g1.Reset(cfg)
	g2.Reset(cfg)
	for _, in := range inputs {
		g1.Step(in)
		g2.Step(in)
	}
	if g1.Scene().Snapshot() != g2.Scene().Snapshot() {
		t.Error("same seed and inputs diverged")
	}
}

func TestRenderHUD(t *testing.T) {
	g := New()
	g.Reset(core.DefaultConfig())
	for range 30 {
		g.Step(core.InputFrame{})
	}
	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if row := dst.Row(0); !strings.HasPrefix(row, "SCORE:   0000000000") {
		t.Errorf("HUD row 0 = %q", row)
	}
	if row := dst.Row(1); !strings.Contains(row, "PLAYER STOCK:     2") {
		t.Errorf("HUD row 1 = %q", row)
	}
	if !strings.ContainsRune(dst.String(), '▶') {
		t.Error("player ship not drawn")
	}
}

// recorder is a canvas that remembers what was drawn.
type recorder struct {
	sprites map[Sprite]int
	texts   []string
}

func (r *recorder) Sprite(id Sprite, _ int, _, _ core.Fixed) { r.sprites[id]++ }
func (r *recorder) Text(_, _ int, text string) { r.texts = append(r.texts, text) }
func (r *recorder) Status(int, string) {}

func TestDrawUsesCanvas(t *testing.T) {
	s := sceneWith()
	s.Spawn(NewBoss(core.Fix(400), core.Fix(240)))
	s.float = NewFloatString(core.Fix(100), core.Fix(100), "42")

	rec := &recorder{sprites: map[Sprite]int{}}
	Draw(s, rec)

	if rec.sprites[SpriteStar] != StarCapacity {
		t.Errorf("stars drawn = %d, want %d", rec.sprites[SpriteStar], StarCapacity)
	}
	if rec.sprites[SpriteBoss] != 1 || rec.sprites[SpriteBattery] != 2 ||
		rec.sprites[SpriteSpread] != 2 || rec.sprites[SpriteLauncher] != 2 {
		t.Errorf("boss sprites = %v", rec.sprites)
	}
	if strings.Join(rec.texts, "") != "42" {
		t.Errorf("texts = %v, want the float string glyphs", rec.texts)
	}
}
