package shippu

import (
	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Boss part constants.
const (
	partShield    = 24
	partBonus     = 100
	partFireEvery = 32
	spreadPeriod  = 128
)

type partMode uint8

const (
	partIdle partMode = iota
	partMove
	partFall
)

// BossPart is a detachable weapon mounted on the boss. While attached its
// position follows the boss; once detached it drifts off on its own.
type BossPart struct {
	enemyBase
	parent Handle
	offX   core.Fixed
	offY   core.Fixed
	mode   partMode
	cnt    int
	fallV  core.Fixed
}

func newBossPart(kind EnemyKind, b *Boss, offX, offY core.Fixed) *BossPart {
	p := &BossPart{
		enemyBase: newEnemyBase(kind, b.x, b.y),
		parent:    b.handle,
		offX:      offX,
		offY:      offY,
	}
	p.vx, p.vy = b.vx, b.vy
	p.shield = partShield
	return p
}

// Parent returns the boss handle, zero once detached.
func (p *BossPart) Parent() Handle { return p.parent }

// Attached reports whether the part still follows the boss.
func (p *BossPart) Attached() bool { return p.parent != 0 }

// Offset returns the mount offset from the boss origin.
func (p *BossPart) Offset() (core.Fixed, core.Fixed) { return p.offX, p.offY }

// Sprite returns the part glyph.
func (p *BossPart) Sprite() (Sprite, int) {
	switch p.kind {
	case KindBossBattery:
		return SpriteBattery, 0
	case KindBossSpread:
		return SpriteSpread, 0
	default:
		return SpriteLauncher, 0
	}
}

func (p *BossPart) step(s *Scene, fx *Effects) {
	switch p.mode {
	case partMove:
		p.fire(s, fx)
	case partFall:
		p.fall()
	}
	if p.parent == 0 && p.sceneOut() {
		fx.remove(p)
	}
}

func (p *BossPart) fire(s *Scene, fx *Effects) {
	p.cnt++
	switch p.kind {
	case KindBossBattery:
		if p.cnt == partFireEvery {
			p.cnt = 0
			p.aimed(s, fx, 5)
		}
	case KindBossLauncher:
		if p.cnt == partFireEvery {
			p.cnt = 0
			fx.cue(core.CueMissile)
			fx.enemy(NewMissile(p.x, p.y, core.Radian(180)))
		}
	case KindBossSpread:
		if p.cnt == spreadPeriod/2 {
			fx.bullet(bulletsSpread(s, p.x, p.y, p.search(s.player), 2, 1, 10)...)
		}
		if p.cnt == spreadPeriod {
			p.cnt = 0
		}
	}
}

func (p *BossPart) fall() {
	if p.cnt == 0 {
		p.cnt = 1
		p.fallV = core.FixF(-0.005)
		if p.offY > 0 {
			p.fallV = core.FixF(0.005)
		}
		p.vx = core.FixF(-0.5)
	}
	p.vy += p.fallV
	p.move()
}

// follow snaps the part to its mount on the boss.
func (p *BossPart) follow(b *Boss) {
	p.x = b.x + p.offX
	p.y = b.y + p.offY
	p.vx, p.vy = b.vx, b.vy
}

func (p *BossPart) toMove() {
	p.mode = partMove
	p.cnt = 0
}

func (p *BossPart) toIdle() {
	p.mode = partIdle
	p.cnt = 0
}

// detach cuts the part loose from the boss.
func (p *BossPart) detach() {
	p.parent = 0
	p.mode = partFall
	p.cnt = 0
}

func (p *BossPart) addDamage(s *Scene, fx *Effects, n int) {
	if !p.damage(s, n) {
		return
	}
	s.status.UpdateMultiplier(p.live)
	s.status.AddBonus(partBonus)
	p.toDestroy(s, fx)
}

// toDestroy blows the part up. An attached part knocks the boss away from
// its side and takes its grandchild with it.
func (p *BossPart) toDestroy(s *Scene, fx *Effects) {
	if b := s.boss(p.parent); b != nil {
		fx.cue(core.CueExplosion)
		r := s.rng.effect
		for range 16 {
			vx, vy := randomVector(r, core.Fix(r.Intn(12)))
			fx.explosion(NewExplosion(p.x, p.y, vx, vy))
		}
		kick := core.Fix(4)
		if p.offY > 0 {
			kick = core.Fix(-4)
		}
		b.toDamage(0, kick)
		b.splitPart(p)
		p.detach()
	}
	fx.cue(core.CueExplosionSmall)
	fx.explosion(NewExplosion(p.x, p.y, p.vx, p.vy))
	fx.remove(p)
}
