package shippu

import (
	"fmt"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Boss constants.
const (
	bossShield     = 192
	bossBonus      = 10000
	bossAppearTime = 160
	bossDamageTime = 120
	bossSplitDecay = 30
	bossDeathTime  = 180
	bossPartCount  = 6
)

// Part slots and their cascades. Destroying a slot with a grandchild also
// detaches the grandchild; after a damage phase, an empty slot detaches
// its pair.
var (
	bossGrandchild = [bossPartCount]int{-1, -1, 4, 5, -1, -1}
	bossPair       = [bossPartCount]int{-1, -1, 3, 2, 5, 4}
)

// bossPhase is the boss's primary behavior phase.
type bossPhase interface {
	step(b *Boss, s *Scene, fx *Effects)
}

// Boss is the composite end boss. Parts live in the enemy list like any other
// enemy; the boss keeps pointers to the attached ones and each part keeps
// the boss's handle.
type Boss struct {
	enemyBase
	parts   [bossPartCount]*BossPart
	targetV core.Fixed
	phase   bossPhase
	watcher bossWatcher
}

// NewBoss creates the boss and its six parts. The parts must be placed
// before the boss.
func NewBoss(x, y core.Fixed) *Boss {
	b := &Boss{enemyBase: newEnemyBase(KindBoss, x, y)}
	b.vx = core.FixF(-1.60)
	b.vy = core.Fix(-8)
	b.shield = bossShield
	b.shape = core.Square(128)
	b.phase = &bossAppear{}
	b.parts = [bossPartCount]*BossPart{
		newBossPart(KindBossBattery, b, core.Fix(-64), core.Fix(-128-16)),
		newBossPart(KindBossBattery, b, core.Fix(-64), core.Fix(128+16)),
		newBossPart(KindBossSpread, b, core.Fix(64), core.Fix(-128-16)),
		newBossPart(KindBossSpread, b, core.Fix(64), core.Fix(128+16)),
		newBossPart(KindBossLauncher, b, core.Fix(80), core.Fix(-128-48)),
		newBossPart(KindBossLauncher, b, core.Fix(80), core.Fix(128+48)),
	}
	return b
}

// Part returns the part attached at slot i, or nil.
func (b *Boss) Part(i int) *BossPart {
	return b.parts[i]
}

// Attached returns how many parts are still attached.
func (b *Boss) Attached() int {
	n := 0
	for _, p := range b.parts {
		if p != nil {
			n++
		}
	}
	return n
}

// Sprite returns the boss glyph.
func (b *Boss) Sprite() (Sprite, int) { return SpriteBoss, 0 }

func (b *Boss) step(s *Scene, fx *Effects) {
	b.phase.step(b, s, fx)
	b.watcher.step(b)
	for _, p := range b.parts {
		if p != nil {
			p.follow(b)
		}
	}
}

// splitPart detaches p and, recursively, its grandchild.
func (b *Boss) splitPart(p *BossPart) {
	for i := range b.parts {
		if b.parts[i] != p {
			continue
		}
		b.parts[i] = nil
		if g := bossGrandchild[i]; g >= 0 {
			if gc := b.parts[g]; gc != nil {
				b.splitPart(gc)
				gc.detach()
			}
		}
	}
}

// splitPairs detaches the pair of every empty slot. Reports whether any
// part came off.
func (b *Boss) splitPairs() bool {
	split := false
	for i := range b.parts {
		if b.parts[i] != nil {
			continue
		}
		if j := bossPair[i]; j >= 0 {
			if q := b.parts[j]; q != nil {
				b.splitPart(q)
				q.detach()
				split = true
			}
		}
	}
	return split
}

// toDamage knocks the boss back and restarts the damage phase.
func (b *Boss) toDamage(ivx, ivy core.Fixed) {
	b.vx += ivx
	b.vy += ivy
	b.phase = &bossDamage{}
}

// ease moves the vertical velocity toward the target.
func (b *Boss) ease() {
	if b.vy < b.targetV {
		b.vy += core.FixF(0.02)
	} else if b.vy > b.targetV {
		b.vy += core.FixF(-0.02)
	}
}

// decay slows the boss down.
func (b *Boss) decay() {
	b.vx = b.vx.MulF(0.95)
	b.vy = b.vy.MulF(0.95)
}

// debris sprays harmless bullet explosions from the boss's front.
func (b *Boss) debris(s *Scene, fx *Effects) {
	r := s.rng.effect
	vx, vy := randomVector(r, core.Fix(r.Intn(4)))
	y := b.y + core.Fix(r.Intn(256)-128)
	fx.explosion(NewBulletExplosion(b.x-core.Fix(128), y, core.Fix(-4)+vx, vy))
}

// laser fires one long bullet from the boss's front.
func (b *Boss) laser(s *Scene, fx *Effects) {
	y := b.y + core.Fix(s.rng.enemy.Intn(256)-128)
	fx.bullet(NewLongBullet(b.x-core.Fix(128), y, core.Fix(-16), 0))
}

func (b *Boss) addDamage(s *Scene, fx *Effects, n int) {
	if !b.damage(s, n) {
		return
	}
	s.status.UpdateMultiplier(b.live)
	bonus := s.status.AddBonus(bossBonus)
	fx.Float = NewFloatString(b.x, b.y, fmt.Sprint(bonus))

	parts := b.parts
	for i := range b.parts {
		if p := b.parts[i]; p != nil {
			b.splitPart(p)
			p.detach()
		}
	}
	for _, p := range parts {
		if p != nil {
			p.toDestroy(s, fx)
		}
	}
	b.state = EnemyDestroy
	b.phase = &bossDestroy{}
}

// bossAppear rises into view.
type bossAppear struct {
	tick int
}

func (a *bossAppear) step(b *Boss, s *Scene, fx *Effects) {
	if a.tick < bossAppearTime {
		a.tick++
		b.vx += core.FixF(0.01)
		b.vy += core.FixF(0.05)
		b.move()
		return
	}
	b.phase = &bossMove{}
	b.vx = 0
	b.vy += core.FixF(0.05)
	b.targetV = core.FixF(1.5)
	b.move()
}

// bossMove sweeps up and down: cruise, debris, then a laser burst.
type bossMove struct {
	tick int
}

func (m *bossMove) step(b *Boss, s *Scene, fx *Effects) {
	t := m.tick
	m.tick = (m.tick + 1) % 240
	switch {
	case t < 120:
		if b.y < core.Fix(120) {
			b.targetV = core.FixF(1.5)
		} else if b.y > core.Fix(360) {
			b.targetV = core.FixF(-1.5)
		}
		b.ease()
		b.move()
	case t < 180:
		b.ease()
		b.move()
		if (t-120)&1 == 0 {
			b.debris(s, fx)
		}
	default:
		b.ease()
		b.move()
		b.laser(s, fx)
	}
}

// bossBerserk chases the player vertically once every part is gone.
type bossBerserk struct {
	tick int
}

func (m *bossBerserk) step(b *Boss, s *Scene, fx *Effects) {
	t := m.tick
	m.tick = (m.tick + 1) % 165
	switch {
	case t < 60:
		target := core.Fixed(float64(s.player.y-b.y) * 0.015)
		b.vy += core.Fixed(float64(target-b.vy) * 0.05)
		b.move()
		if t&1 == 0 {
			b.debris(s, fx)
		}
	case t < 120:
		b.move()
		b.laser(s, fx)
	default:
		b.move()
	}
}

// bossDamage recoils, drops paired parts, then resumes attacking.
type bossDamage struct {
	tick  int
	split bool
}

func (d *bossDamage) step(b *Boss, s *Scene, fx *Effects) {
	t := d.tick
	d.tick++
	if t < bossDamageTime {
		b.decay()
		b.move()
		return
	}
	if t == bossDamageTime {
		d.split = b.splitPairs()
	}
	if d.split && t < bossDamageTime+bossSplitDecay {
		b.decay()
		b.move()
		return
	}
	if b.Attached() > 0 {
		b.phase = &bossMove{}
	} else {
		b.phase = &bossBerserk{}
	}
	b.move()
}

// deathDrag slows a dying boss by 254/256 per tick. The integer division
// truncates toward zero, so vy reaches 0 in finitely many ticks where a
// float drag would only approach it.
func deathDrag(vy core.Fixed) core.Fixed {
	return vy * 254 / 256
}

// bossDestroy drifts, bursts into flames and finally blows apart.
type bossDestroy struct {
	tick int
}

func (d *bossDestroy) step(b *Boss, s *Scene, fx *Effects) {
	r := s.rng.effect
	if d.tick < bossDeathTime {
		d.tick++
		b.vy = deathDrag(b.vy)
		b.move()
		if r.Intn(16) == 0 {
			fx.cue(core.CueExplosionSmall)
		}
		if r.Intn(3) == 0 {
			x := b.x + core.Fix(r.Intn(128)-64)
			y := b.y + core.Fix(r.Intn(128)-64)
			vx, vy := randomVector(r, core.Fix(r.Intn(8)))
			fx.explosion(NewExplosion(x, y, vx, vy))
		}
		return
	}
	fx.cue(core.CueExplosion)
	for range 64 {
		vx, vy := randomVector(r, core.Fix(r.Intn(24)))
		fx.explosion(NewBigExplosion(b.x+vx*3, b.y+vy*3, vx, vy))
	}
	fx.remove(b)
}

// Watcher stages, in activation order.
var watchOrder = [...]EnemyKind{KindBossBattery, KindBossSpread, KindBossLauncher}

const (
	watchActivate = iota
	watchActive
	watchRest
)

// bossWatcher cycles the part weapons: each kind fires for 128 ticks, then
// everything rests for 64. Kinds with no attached part are skipped. It runs
// alongside the primary phase and keeps its own counters.
type bossWatcher struct {
	stage  int
	mode   int
	wait   int
	exists [len(watchOrder)]bool
}

func (w *bossWatcher) step(b *Boss) {
	for {
		if w.wait > 0 {
			w.wait--
			return
		}
		switch w.mode {
		case watchActivate:
			if w.stage == len(watchOrder) {
				w.stage = 0
				if !w.exists[0] && !w.exists[2] {
					return
				}
				continue
			}
			w.exists[w.stage] = b.activate(watchOrder[w.stage])
			if w.exists[w.stage] {
				w.mode = watchActive
				w.wait = 127
				return
			}
			w.stage++
		case watchActive:
			for _, p := range b.parts {
				if p != nil {
					p.toIdle()
				}
			}
			w.mode = watchRest
			w.wait = 63
			return
		default:
			w.mode = watchActivate
			w.stage++
		}
	}
}

// activate arms every attached part of the kind. Reports whether any exists.
func (b *Boss) activate(kind EnemyKind) bool {
	found := false
	for _, p := range b.parts {
		if p != nil && p.kind == kind {
			found = true
			p.toMove()
		}
	}
	return found
}
