package shippu

import (
	"math"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// FloatString is the bonus text that pops up where a large enemy died.
// It grows, drifts upward, then shrinks away.
type FloatString struct {
	x, y  core.Fixed
	scale core.Fixed
	text  string
	tick  int
}

// NewFloatString centers text on the given position.
func NewFloatString(x, y core.Fixed, text string) *FloatString {
	return &FloatString{x: x - core.Fix(8), y: y - core.Fix(8), text: text}
}

// Text returns the displayed text.
func (f *FloatString) Text() string { return f.text }

// Pos returns the position of the first glyph and the per-glyph advance.
func (f *FloatString) Pos() (x, y, advance core.Fixed) {
	return f.x - f.scale*core.Fixed(len(f.text))/2, f.y, f.scale
}

// step advances the text and reports whether it is still shown.
func (f *FloatString) step() bool {
	t := f.tick
	f.tick++
	switch {
	case t < 16:
		f.scale = core.Fix(t)
		f.y -= core.Fix(2)
	case t < 76:
		f.y -= core.FixF(0.5)
	case t < 92:
		f.scale = core.Fix(15 - (t - 76))
		f.y -= core.Fix(2)
	default:
		return false
	}
	return true
}

// Cursor blink schedule after the text is typed: seven blinks, each shown
// twice, getting faster.
const (
	typewriterBlinks = 7
	typewriterCursor = "+"
)

// TypewriterString types its text one glyph per tick, then blinks a cursor.
type TypewriterString struct {
	X, Y    int
	text    string
	typed   int
	cursor  bool
	blink   int
	settled bool
}

// NewTypewriterString creates a typewriter at screen pixel coordinates.
func NewTypewriterString(x, y int, text string) *TypewriterString {
	return &TypewriterString{X: x, Y: y, text: text, cursor: true}
}

// Visible returns the typed prefix and whether the cursor is shown after it.
func (tw *TypewriterString) Visible() (string, bool) {
	return tw.text[:tw.typed], tw.cursor
}

// Typed reports whether every glyph has been typed.
func (tw *TypewriterString) Typed() bool { return tw.typed == len(tw.text) }

// step advances one tick. It returns true once typing is finished.
func (tw *TypewriterString) step() bool {
	if tw.typed < len(tw.text) {
		tw.typed++
		return false
	}
	if tw.settled {
		return true
	}
	t := tw.blink
	tw.blink++
	for i := range typewriterBlinks {
		for range 2 {
			if t == 0 {
				tw.cursor = false
				return true
			}
			t--
			if t < typewriterBlinks-i {
				tw.cursor = true
				return true
			}
			t -= typewriterBlinks - i
		}
	}
	tw.cursor = false
	tw.settled = true
	return true
}

// TypewriterText types several strings one after another.
type TypewriterText struct {
	lines []*TypewriterString
	shown int
}

// NewTypewriterText chains the given strings.
func NewTypewriterText(lines ...*TypewriterString) *TypewriterText {
	return &TypewriterText{lines: lines}
}

// Lines returns the strings started so far.
func (tt *TypewriterText) Lines() []*TypewriterString {
	if len(tt.lines) == 0 {
		return nil
	}
	return tt.lines[:tt.shown+1]
}

// Step advances the current string and moves on once it is typed.
func (tt *TypewriterText) Step() {
	if len(tt.lines) == 0 {
		return
	}
	if tt.lines[tt.shown].step() && tt.shown < len(tt.lines)-1 {
		tt.shown++
	}
}

// BannerState is the stage of the game-over banner.
type BannerState uint8

const (
	BannerAppear BannerState = iota
	BannerAppeared
	BannerDisappear
	BannerDisappeared
)

// GameOverText is what the banner spells.
const GameOverText = "GAME OVER"

// GameOverString is the spinning game-over banner. It flies in, waits, then
// flies out when asked.
type GameOverString struct {
	angle float64
	scale float64
	state BannerState
	tick  int
}

// NewGameOverString creates the banner at the start of its fly-in.
func NewGameOverString() *GameOverString {
	return &GameOverString{angle: 120, scale: 120}
}

// State returns the banner stage.
func (g *GameOverString) State() BannerState { return g.state }

// ToDisappear starts the fly-out.
func (g *GameOverString) ToDisappear() {
	g.state = BannerDisappear
	g.tick = 0
}

// Letter returns the top-left screen pixel of letter i.
func (g *GameOverString) Letter(i int) (x, y int) {
	r := float64((i-4)*32) * g.scale
	x = int(r*math.Cos(g.angle)/15 - 16 + core.SceneWidth/2)
	y = int(r*math.Sin(g.angle)/15 - 16 + core.SceneHeight/2)
	return x, y
}

func (g *GameOverString) step() {
	t := g.tick
	g.tick++
	switch g.state {
	case BannerAppear:
		if t < 60 {
			g.angle = float64(t-59) / 5.0
			g.scale = float64(59 - t + 15)
			return
		}
		g.state = BannerAppeared
	case BannerDisappear:
		if t < 30 {
			g.scale = float64(t*5 + 15)
			return
		}
		g.state = BannerDisappeared
	}
}

// Ending texts and timing.
const (
	endingLine1 = "MISSION COMPLETED!"
	endingLine2 = "BUT..."
	endingHold  = 180
)

// Ending plays the two closing lines, then makes the player's ship explode.
type Ending struct {
	text *TypewriterString
	tick int
}

// NewEnding creates the ending sequence.
func NewEnding() *Ending { return &Ending{} }

// Text returns the line currently shown, or nil before the first tick.
func (e *Ending) Text() *TypewriterString { return e.text }

// step advances one tick and reports whether the ending is still running.
func (e *Ending) step(s *Scene, fx *Effects) bool {
	if e.text != nil {
		e.text.step()
	}
	e.tick++
	switch e.tick {
	case 1:
		e.text = NewTypewriterString(176, 180, endingLine1)
	case endingHold + 1:
		e.text = NewTypewriterString(272, 180, endingLine2)
	case 2*endingHold + 1:
		s.player.suicide(s, fx)
		return false
	}
	return true
}
