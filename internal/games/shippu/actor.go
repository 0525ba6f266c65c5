package shippu

import (
	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Sprite identifies what an actor looks like. Renderers map it to glyphs.
type Sprite uint8

const (
	SpritePlayer Sprite = iota
	SpriteBeam
	SpriteEnemy
	SpriteMiddle
	SpriteBoss
	SpriteBattery
	SpriteSpread
	SpriteLauncher
	SpriteMissile
	SpriteBullet
	SpriteLongBullet
	SpriteExplosion
	SpriteSmoke
	SpriteBigExplosion
	SpritePlayerExplosion
	SpriteBulletExplosion
	SpriteStar
)

// Actor is anything with a position and a collision shape.
type Actor interface {
	Pos() (x, y core.Fixed)
	Shape() core.Collision
	Sprite() (id Sprite, frame int)
}

// body is the positional state shared by all actors.
type body struct {
	x, y   core.Fixed
	vx, vy core.Fixed
	shape  core.Collision
}

// Pos returns the actor origin.
func (b *body) Pos() (core.Fixed, core.Fixed) { return b.x, b.y }

// Velocity returns the per-tick displacement.
func (b *body) Velocity() (core.Fixed, core.Fixed) { return b.vx, b.vy }

// Shape returns the collision shape.
func (b *body) Shape() core.Collision { return b.shape }

func (b *body) move() {
	b.x += b.vx
	b.y += b.vy
}

func (b *body) hits(o Actor) bool {
	ox, oy := o.Pos()
	return b.shape.Check(b.x, b.y, o.Shape(), ox, oy)
}

func (b *body) sceneOut() bool {
	return b.shape.SceneOut(b.x, b.y)
}

// search returns the heading toward o in [0, 2π).
func (b *body) search(o Actor) float64 {
	ox, oy := o.Pos()
	return core.Heading(b.x, b.y, ox, oy)
}

// Effects collects what one actor step asks of the scene. The scene applies
// spawns in order first, then removals.
type Effects struct {
	Beams      []*Beam
	Enemies    []Enemy
	Bullets    []*Bullet
	Explosions []*Explosion
	Cues       []core.Cue
	Removed    []Enemy
	Float      *FloatString
	Banner     bool
}

func (fx *Effects) reset() {
	fx.Beams = fx.Beams[:0]
	fx.Enemies = fx.Enemies[:0]
	fx.Bullets = fx.Bullets[:0]
	fx.Explosions = fx.Explosions[:0]
	fx.Cues = fx.Cues[:0]
	fx.Removed = fx.Removed[:0]
	fx.Float = nil
	fx.Banner = false
}

func (fx *Effects) beam(b *Beam)           { fx.Beams = append(fx.Beams, b) }
func (fx *Effects) enemy(e Enemy)          { fx.Enemies = append(fx.Enemies, e) }
func (fx *Effects) bullet(b ...*Bullet)    { fx.Bullets = append(fx.Bullets, b...) }
func (fx *Effects) explosion(e *Explosion) { fx.Explosions = append(fx.Explosions, e) }
func (fx *Effects) cue(c core.Cue)         { fx.Cues = append(fx.Cues, c) }
func (fx *Effects) remove(e Enemy)         { fx.Removed = append(fx.Removed, e) }
