package shippu

import (
	"github.com/vovakirdan/tui-shippu/internal/core"
)

// ExplosionKind selects the look of an explosion effect.
type ExplosionKind uint8

const (
	KindExplosion ExplosionKind = iota
	KindSmoke
	KindBigExplosion
	KindPlayerExplosion
	KindBulletExplosion
)

// explosionLifetime is the number of ticks an explosion lives.
const explosionLifetime = 32

// Explosion is a short-lived drifting effect. Bullet explosions are also
// what the boss sprays as harmless debris.
type Explosion struct {
	body
	kind ExplosionKind
	cnt  int
}

func newExplosion(kind ExplosionKind, x, y, vx, vy core.Fixed) *Explosion {
	shape := core.Square(16)
	if kind == KindBigExplosion {
		shape = core.Square(64)
	}
	return &Explosion{kind: kind, body: body{x: x, y: y, vx: vx, vy: vy, shape: shape}}
}

// NewExplosion creates a regular explosion.
func NewExplosion(x, y, vx, vy core.Fixed) *Explosion {
	return newExplosion(KindExplosion, x, y, vx, vy)
}

// NewSmoke creates an exhaust puff.
func NewSmoke(x, y, vx, vy core.Fixed) *Explosion {
	return newExplosion(KindSmoke, x, y, vx, vy)
}

// NewBigExplosion creates a large explosion.
func NewBigExplosion(x, y, vx, vy core.Fixed) *Explosion {
	return newExplosion(KindBigExplosion, x, y, vx, vy)
}

// NewPlayerExplosion creates a fragment of the player's ship.
func NewPlayerExplosion(x, y, vx, vy core.Fixed) *Explosion {
	return newExplosion(KindPlayerExplosion, x, y, vx, vy)
}

// NewBulletExplosion creates boss debris.
func NewBulletExplosion(x, y, vx, vy core.Fixed) *Explosion {
	return newExplosion(KindBulletExplosion, x, y, vx, vy)
}

// Kind returns the explosion kind.
func (e *Explosion) Kind() ExplosionKind { return e.kind }

// Sprite returns the glyph and the animation frame.
func (e *Explosion) Sprite() (Sprite, int) {
	id := SpriteExplosion
	switch e.kind {
	case KindSmoke:
		id = SpriteSmoke
	case KindBigExplosion:
		id = SpriteBigExplosion
	case KindPlayerExplosion:
		id = SpritePlayerExplosion
	case KindBulletExplosion:
		id = SpriteBulletExplosion
	}
	return id, e.cnt / 2
}

func (e *Explosion) step() bool {
	e.move()
	e.cnt++
	return e.cnt < explosionLifetime && !e.sceneOut()
}

// Star is a background parallax star.
type Star struct {
	body
	speed int
}

func newStar(s *Scene) *Star {
	st := &Star{body: body{shape: core.Box(core.Fix(-32), core.Fix(-8), core.Fix(32), core.Fix(8))}}
	st.x = core.Fix(s.rng.effect.Intn(core.SceneWidth))
	st.y = core.Fix(s.rng.effect.Intn(core.SceneHeight))
	st.speed = s.rng.effect.Intn(255) + 16
	return st
}

// Speed returns the parallax factor.
func (st *Star) Speed() int { return st.speed }

// Sprite returns the star glyph.
func (st *Star) Sprite() (Sprite, int) { return SpriteStar, 0 }

func (st *Star) step(s *Scene) {
	st.vx = core.Fixed(st.speed * int(s.status.EventSpeed()) / -16)
	st.move()
	if st.sceneOut() {
		st.x = core.Fix(core.SceneWidth + 32)
		st.y = core.Fix(s.rng.effect.Intn(core.SceneHeight))
		st.speed = s.rng.effect.Intn(255) + 16
	}
}
