package shippu

import (
	"github.com/vovakirdan/tui-shippu/internal/core"
)

// PlayerState is the coarse state other actors can observe.
type PlayerState uint8

const (
	PlayerAppear PlayerState = iota
	PlayerMove
	PlayerDestroy
)

func (ps PlayerState) String() string {
	switch ps {
	case PlayerAppear:
		return "appear"
	case PlayerMove:
		return "move"
	default:
		return "destroy"
	}
}

// Player movement and pacing constants.
const (
	playerSpeed     = 5
	respawnNoCol    = 120
	destroyIdle     = 30
	playerFragments = 10
	// eventSpeedPivot is a third of the scene width, truncated to 213:
	// right of it the stage scrolls faster, left of it slower.
	eventSpeedPivot = core.SceneWidth / 3
)

// playerPhase is one behavior phase. Switching phases replaces the value.
type playerPhase interface {
	step(p *Player, s *Scene, fx *Effects)
}

// Player is the human- or policy-controlled ship.
type Player struct {
	body
	state PlayerState
	nocol int
	phase playerPhase
}

func newPlayer() *Player {
	return &Player{
		body:  body{shape: core.Square(8)},
		state: PlayerAppear,
		phase: &playerAppear{},
	}
}

// State returns the coarse player state.
func (p *Player) State() PlayerState { return p.state }

// Invulnerable returns the ticks left before the ship can be hit again.
func (p *Player) Invulnerable() int { return p.nocol }

// Visible reports whether the ship is drawn this tick (it blinks while invulnerable).
func (p *Player) Visible() bool {
	return p.state == PlayerAppear || (p.state == PlayerMove && p.nocol&1 == 0)
}

// Sprite returns the ship glyph.
func (p *Player) Sprite() (Sprite, int) { return SpritePlayer, 0 }

// HasCollision reports whether the ship can be hit.
func (p *Player) HasCollision() bool {
	return p.state == PlayerMove && p.nocol == 0
}

func (p *Player) step(s *Scene, fx *Effects) {
	p.phase.step(p, s, fx)
}

// addDamage blows the ship up and starts the respawn countdown.
func (p *Player) addDamage(s *Scene, fx *Effects) {
	s.status.ResetMultiplier()
	fx.cue(core.CueExplosionLarge)
	for range playerFragments {
		vx, vy := randomVector(s.rng.effect, core.Fix(s.rng.effect.Intn(8)))
		fx.explosion(NewPlayerExplosion(p.x, p.y, vx, vy))
	}
	p.state = PlayerDestroy
	p.phase = &playerDestroy{}
}

// suicide ends the mission after the ending: remaining ships become points.
func (p *Player) suicide(s *Scene, fx *Effects) {
	s.status.AddSuicideScore()
	s.status.DecrementStock(3)
	p.addDamage(s, fx)
}

// playerAppear flies the ship in from the bottom-left corner.
type playerAppear struct {
	tick  int
	vx    core.Fixed
	smoke int
}

func (a *playerAppear) step(p *Player, s *Scene, fx *Effects) {
	t := a.tick
	a.tick++
	switch {
	case t == 0:
		p.x = core.Fix(0)
		p.y = core.Fix(core.SceneHeight)
		a.vx = core.Fix(16)
	case t <= 30:
		a.vx -= core.Fix(1)
		p.x += a.vx + core.Fix(2)
		p.y -= core.Fix(10)
		a.smoke = (a.smoke + 1) & 1
		if a.smoke == 0 {
			vx := core.Fix(-18) + core.Fix(s.rng.effect.Intn(3)-1)
			vy := core.Fix(s.rng.effect.Intn(3) - 1)
			fx.explosion(NewSmoke(p.x, p.y, vx, vy))
		}
	default:
		p.state = PlayerMove
		p.nocol = respawnNoCol
		p.phase = &playerMove{}
	}
}

// playerMove is the controllable phase.
type playerMove struct {
	shot int
}

func (m *playerMove) step(p *Player, s *Scene, fx *Effects) {
	pressed := s.joystick.Pressed()
	if pressed.Has(core.ButtonRight) {
		p.x += core.Fix(playerSpeed)
	}
	if pressed.Has(core.ButtonLeft) {
		p.x -= core.Fix(playerSpeed)
	}
	if pressed.Has(core.ButtonUp) {
		p.y -= core.Fix(playerSpeed)
	}
	if pressed.Has(core.ButtonDown) {
		p.y += core.Fix(playerSpeed)
	}
	p.x, p.y = p.shape.ClampToScene(p.x, p.y)

	m.shot = (m.shot + 1) & 3
	synchro := m.shot & 1
	if (pressed.Has(core.ButtonA) && m.shot == 0) || (pressed.Has(core.ButtonB) && synchro == 0) {
		fx.beam(NewBeam(p.x, p.y))
	}
	if p.nocol > 0 {
		p.nocol--
	}
	s.status.AddEventSpeed(eventSpeedNudge(p.x))
}

// eventSpeedNudge is the per-tick scroll speed change for a ship at x.
// Both divisions truncate toward zero, so the result can sit one fixed
// unit closer to zero than a float computation would give.
func eventSpeedNudge(x core.Fixed) core.Fixed {
	return core.Fixed((core.ScreenInt(x) - eventSpeedPivot) / 4)
}

// playerDestroy waits out the explosion, then respawns or raises the banner.
type playerDestroy struct {
	tick int
	over bool
}

func (d *playerDestroy) step(p *Player, s *Scene, fx *Effects) {
	if d.over {
		return
	}
	if d.tick < destroyIdle {
		d.tick++
		return
	}
	s.status.DecrementStock(1)
	if s.status.Completed() {
		fx.Banner = true
		d.over = true
		return
	}
	p.state = PlayerAppear
	p.phase = &playerAppear{}
	p.phase.step(p, s, fx)
}
