package shippu

import (
	"math"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Beam is the player's shot.
type Beam struct {
	body
	cnt int
}

// NewBeam creates a beam at the given position.
func NewBeam(x, y core.Fixed) *Beam {
	return &Beam{body: body{x: x, y: y, shape: core.Square(16)}}
}

// Sprite returns the beam glyph and its two-frame flicker.
func (b *Beam) Sprite() (Sprite, int) { return SpriteBeam, b.cnt }

// step advances the beam and reports whether it is still in the scene.
func (b *Beam) step() bool {
	b.cnt = (b.cnt + 1) & 1
	b.x += core.Fix(16)
	return !b.sceneOut()
}

// Bullet is an enemy projectile. Round bullets collide as a point,
// long bullets as a box.
type Bullet struct {
	body
	long bool
	cnt  int
}

var longBulletShape = core.Box(core.Fix(-24), core.Fix(-16), core.Fix(48), core.Fix(32))

// NewBullet creates a round bullet.
func NewBullet(x, y, vx, vy core.Fixed) *Bullet {
	return &Bullet{body: body{
		x: x, y: y, vx: vx, vy: vy,
		shape: core.Point(core.Fix(-16), core.Fix(-16), core.Fix(16), core.Fix(16)),
	}}
}

// NewLongBullet creates the boss's long laser bullet.
func NewLongBullet(x, y, vx, vy core.Fixed) *Bullet {
	return &Bullet{long: true, body: body{x: x, y: y, vx: vx, vy: vy, shape: longBulletShape}}
}

// BulletFromAngle creates a round bullet heading along angle at speed pixels per tick.
func BulletFromAngle(x, y core.Fixed, angle, speed float64) *Bullet {
	vx, vy := core.Polar(angle, speed)
	return NewBullet(x, y, vx, vy)
}

// BulletsThreeWay creates bullets along angle and angle±spread.
func BulletsThreeWay(x, y core.Fixed, angle, spread, speed float64) []*Bullet {
	return []*Bullet{
		BulletFromAngle(x, y, angle, speed),
		BulletFromAngle(x, y, angle+spread, speed),
		BulletFromAngle(x, y, angle-spread, speed),
	}
}

// bulletsSpread creates n bullets along angle, each jittered by a random
// vector of up to power pixels drawn from the enemy stream.
func bulletsSpread(s *Scene, x, y core.Fixed, angle, speed float64, power, n int) []*Bullet {
	out := make([]*Bullet, 0, n)
	for range n {
		ox, oy := randomVector(s.rng.enemy, core.Fixed(s.rng.enemy.Intn(int(core.Fix(power)))))
		vx := core.FixF(math.Cos(angle)*speed) + ox
		vy := core.FixF(math.Sin(angle)*speed) + oy
		out = append(out, NewBullet(x, y, vx, vy))
	}
	return out
}

// Long reports whether this is a long bullet.
func (b *Bullet) Long() bool { return b.long }

// Sprite returns the bullet glyph.
func (b *Bullet) Sprite() (Sprite, int) {
	if b.long {
		return SpriteLongBullet, 0
	}
	return SpriteBullet, b.cnt
}

func (b *Bullet) step() bool {
	b.move()
	b.cnt = (b.cnt + 1) & 1
	return !b.sceneOut()
}
