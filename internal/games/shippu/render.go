package shippu

import (
	"fmt"
	"iter"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Canvas is the render sink. The simulation never reads back from it.
type Canvas interface {
	// Sprite draws an actor glyph at its scene position.
	Sprite(id Sprite, frame int, x, y core.Fixed)
	// Text draws a string with its first glyph at scene pixel (x, y).
	Text(x, y int, text string)
	// Status draws a HUD line.
	Status(line int, text string)
}

// Draw paints a scene back to front.
func Draw(s *Scene, c Canvas) {
	drawAll(c, s.Stars())
	drawAll(c, s.Beams())
	drawAll(c, s.Enemies())
	if s.player.Visible() {
		drawActor(c, s.player)
	}
	drawAll(c, s.Explosions())
	drawAll(c, s.Bullets())

	if f := s.float; f != nil {
		x, y, adv := f.Pos()
		for _, r := range f.Text() {
			c.Text(core.ScreenInt(x), core.ScreenInt(y), string(r))
			x += adv
		}
	}
	if b := s.banner; b != nil {
		for i, r := range GameOverText {
			x, y := b.Letter(i)
			c.Text(x, y, string(r))
		}
	}
	if e := s.ending; e != nil && e.Text() != nil {
		drawTypewriter(c, e.Text())
	}

	st := s.status
	c.Status(0, fmt.Sprintf("SCORE:   %010d  SPEED:         %03d%%",
		st.Score(), core.ScreenInt(st.EventSpeed()*100)))
	c.Status(1, fmt.Sprintf("PLAYER STOCK:     %1d  LAP TIME: %s",
		max(st.Stock()-1, 0), FormatLap(st.LapTime())))
}

func drawActor(c Canvas, a Actor) {
	x, y := a.Pos()
	id, frame := a.Sprite()
	c.Sprite(id, frame, x, y)
}

func drawAll[T Actor](c Canvas, seq iter.Seq[T]) {
	for a := range seq {
		drawActor(c, a)
	}
}

func drawTypewriter(c Canvas, tw *TypewriterString) {
	text, cursor := tw.Visible()
	if cursor {
		text += typewriterCursor
	}
	c.Text(tw.X, tw.Y, text)
}

// glyph is how a sprite looks in a terminal. Large sprites fill a block of
// w by h scene pixels.
type glyph struct {
	r     rune
	color core.Color
	w, h  int
}

var glyphs = map[Sprite]glyph{
	SpritePlayer:          {'▶', core.ColorShip, 0, 0},
	SpriteBeam:            {'─', core.ColorBeam, 0, 0},
	SpriteEnemy:           {'◆', core.ColorHostile, 0, 0},
	SpriteMiddle:          {'▓', core.ColorHeavy, 128, 128},
	SpriteBoss:            {'█', core.ColorBoss, 256, 256},
	SpriteBattery:         {'◘', core.ColorTurret, 0, 0},
	SpriteSpread:          {'✱', core.ColorShot, 0, 0},
	SpriteLauncher:        {'◙', core.ColorTurret, 0, 0},
	SpriteMissile:         {'➤', core.ColorMissile, 0, 0},
	SpriteBullet:          {'•', core.ColorShot, 0, 0},
	SpriteLongBullet:      {'═', core.ColorHostile, 48, 0},
	SpriteExplosion:       {'*', core.ColorFire, 0, 0},
	SpriteSmoke:           {'∙', core.ColorSmoke, 0, 0},
	SpriteBigExplosion:    {'✸', core.ColorFlash, 0, 0},
	SpritePlayerExplosion: {'+', core.ColorShip, 0, 0},
	SpriteBulletExplosion: {'·', core.ColorShot, 0, 0},
	SpriteStar:            {'.', core.ColorStar, 0, 0},
}

// fadeRunes are the late frames of the explosion family.
var fadeRunes = []rune{'+', '·'}

// hudRows is the number of screen rows reserved for the status lines.
const hudRows = 2

// ScreenCanvas draws into a character screen, scaling the 640x480 scene to
// whatever size the terminal has below the HUD.
type ScreenCanvas struct {
	dst *core.Screen
}

// NewScreenCanvas creates a canvas over dst.
func NewScreenCanvas(dst *core.Screen) *ScreenCanvas {
	return &ScreenCanvas{dst: dst}
}

func (sc *ScreenCanvas) cell(px, py int) (int, int) {
	rows := max(sc.dst.Height()-hudRows, 1)
	return px * sc.dst.Width() / core.SceneWidth, hudRows + py*rows/core.SceneHeight
}

// Sprite draws a glyph, or a block of glyphs for large sprites.
func (sc *ScreenCanvas) Sprite(id Sprite, frame int, x, y core.Fixed) {
	g, ok := glyphs[id]
	if !ok {
		return
	}
	r := g.r
	switch id {
	case SpriteBeam:
		if frame == 1 {
			r = '═'
		}
	case SpriteExplosion, SpriteBigExplosion, SpritePlayerExplosion:
		if i := frame - 8; i >= 0 {
			r = fadeRunes[min(i/4, len(fadeRunes)-1)]
		}
	}
	px, py := core.ScreenInt(x), core.ScreenInt(y)
	if g.w == 0 && g.h == 0 {
		cx, cy := sc.cell(px, py)
		sc.dst.SetColored(cx, cy, r, g.color)
		return
	}
	x0, y0 := sc.cell(px-g.w/2, py-g.h/2)
	x1, y1 := sc.cell(px+g.w/2, py+g.h/2)
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			sc.dst.SetColored(cx, cy, r, g.color)
		}
	}
}

// Text draws a string at scene pixel coordinates.
func (sc *ScreenCanvas) Text(x, y int, text string) {
	cx, cy := sc.cell(x, y)
	sc.dst.DrawTextColored(cx, cy, text, core.ColorText)
}

// Status draws a HUD line at the top of the screen.
func (sc *ScreenCanvas) Status(line int, text string) {
	sc.dst.DrawText(0, line, text)
}
