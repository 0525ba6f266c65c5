package shippu

import (
	"iter"

	"github.com/vovakirdan/tui-shippu/internal/core"
)

// Options configure a playthrough.
type Options struct {
	EnemySeed  int64
	EffectSeed int64
	Stock      int
	Weights    Weights
	Level      *Level
}

// DefaultOptions plays the main stage on the canonical seeds.
func DefaultOptions() Options {
	return Options{
		EnemySeed:  DefaultEnemySeed,
		EffectSeed: DefaultEffectSeed,
		Stock:      DefaultStock,
		Weights:    DefaultWeights(),
		Level:      MustLevel("stage1"),
	}
}

// Scene is the simulation context of one playthrough. It owns every actor
// list, the random streams, the score and the level timeline.
type Scene struct {
	joystick core.Joystick
	rng      streams
	status   *Status
	level    *Level
	timeline *Timeline

	player     *Player
	beams      *ActorList[*Beam]
	enemies    *ActorList[Enemy]
	bullets    *ActorList[*Bullet]
	explosions *ActorList[*Explosion]
	stars      *ActorList[*Star]

	float  *FloatString
	banner *GameOverString
	ending *Ending

	handles    map[Handle]Enemy
	nextHandle Handle

	fx    Effects
	cues  []core.Cue
	hits  int
	hurts int
	exit  exitFlow
	over  bool
	tick  int
}

// NewScene creates a playthrough. A nil level plays an empty timeline.
func NewScene(opts Options) *Scene {
	lv := opts.Level
	if lv == nil {
		lv = &Level{Name: "empty"}
	}
	s := &Scene{
		rng:        newStreams(opts.EnemySeed, opts.EffectSeed),
		status:     NewStatus(opts.Stock, opts.Weights),
		level:      lv,
		timeline:   NewTimeline(lv.Directives),
		player:     newPlayer(),
		beams:      NewActorList[*Beam](BeamCapacity),
		enemies:    NewActorList[Enemy](EnemyCapacity),
		bullets:    NewActorList[*Bullet](BulletCapacity),
		explosions: NewActorList[*Explosion](ExplosionCapacity),
		stars:      NewActorList[*Star](StarCapacity),
		handles:    make(map[Handle]Enemy),
	}
	for range StarCapacity {
		s.stars.Append(newStar(s))
	}
	return s
}

// Step advances the playthrough by one tick with the given input.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	s.cues = nil
	s.hits, s.hurts = 0, 0
	s.joystick.Update(in)

	s.player.step(s, &s.fx)
	s.apply()
	s.beams.Each(func(b *Beam) {
		if !b.step() {
			s.beams.Remove(b)
		}
	})
	s.enemies.Each(func(e Enemy) {
		e.step(s, &s.fx)
		s.apply()
	})
	s.bullets.Each(func(b *Bullet) {
		if !b.step() {
			s.bullets.Remove(b)
		}
	})
	s.explosions.Each(func(e *Explosion) {
		if !e.step() {
			s.explosions.Remove(e)
		}
	})
	s.stars.Each(func(st *Star) { st.step(s) })

	if s.float != nil && !s.float.step() {
		s.float = nil
	}
	if s.banner != nil {
		s.banner.step()
	}
	if s.ending != nil {
		if !s.ending.step(s, &s.fx) {
			s.ending = nil
		}
		s.apply()
	}

	for range s.status.IncrementEventCount() {
		s.timeline.Step(s)
	}
	if s.exit.step(s) {
		s.over = true
	}

	s.collideBeams()
	s.collideBullets()
	s.collideEnemies()
	s.status.IncrementLapTime()
	s.tick++

	return core.StepResult{
		State: s.State(),
		Cues:  s.cues,
		Hits:  s.hits,
		Hurts: s.hurts,
	}
}

// collideBeams lets each beam damage the first enemy it touches.
func (s *Scene) collideBeams() {
	s.beams.Each(func(b *Beam) {
		s.enemies.EachWhile(func(e Enemy) bool {
			if !e.HasCollision() || !b.hits(e) {
				return true
			}
			e.addDamage(s, &s.fx, 1)
			s.apply()
			s.beams.Remove(b)
			s.hits++
			return false
		})
	})
}

func (s *Scene) collideBullets() {
	s.bullets.Each(func(b *Bullet) {
		if !s.player.HasCollision() || !b.hits(s.player) {
			return
		}
		s.player.addDamage(s, &s.fx)
		s.apply()
		s.bullets.Remove(b)
		s.hurts++
	})
}

func (s *Scene) collideEnemies() {
	s.enemies.Each(func(e Enemy) {
		if !s.player.HasCollision() || !e.HasCollision() || !e.base().hits(s.player) {
			return
		}
		s.player.addDamage(s, &s.fx)
		e.addDamage(s, &s.fx, 1)
		s.apply()
		s.hurts++
	})
}

// apply carries out what the last actor step asked for.
func (s *Scene) apply() {
	fx := &s.fx
	for _, b := range fx.Beams {
		if s.beams.Append(b) {
			s.cues = append(s.cues, core.CueBeam)
		}
	}
	for _, e := range fx.Enemies {
		s.spawn(e)
	}
	for _, b := range fx.Bullets {
		s.bullets.Append(b)
	}
	for _, e := range fx.Explosions {
		s.explosions.Append(e)
	}
	s.cues = append(s.cues, fx.Cues...)
	if fx.Float != nil {
		s.float = fx.Float
	}
	if fx.Banner && s.banner == nil {
		s.banner = NewGameOverString()
	}
	for _, e := range fx.Removed {
		s.remove(e)
	}
	fx.reset()
}

// spawn places an enemy and gives it a handle. A boss brings its parts,
// which take their slots first. Reports false when the list is full.
func (s *Scene) spawn(e Enemy) bool {
	if b, ok := e.(*Boss); ok {
		return s.spawnBoss(b)
	}
	return s.place(e)
}

func (s *Scene) spawnBoss(b *Boss) bool {
	s.nextHandle++
	b.handle = s.nextHandle
	for _, p := range b.parts {
		p.parent = b.handle
		s.place(p)
	}
	if !s.enemies.Append(b) {
		return false
	}
	s.handles[b.handle] = b
	return true
}

func (s *Scene) place(e Enemy) bool {
	s.nextHandle++
	eb := e.base()
	eb.handle = s.nextHandle
	if !s.enemies.Append(e) {
		return false
	}
	s.handles[eb.handle] = e
	return true
}

func (s *Scene) remove(e Enemy) {
	if s.enemies.Remove(e) {
		delete(s.handles, e.Handle())
	}
}

// boss resolves a part's parent handle.
func (s *Scene) boss(h Handle) *Boss {
	if h == 0 {
		return nil
	}
	b, _ := s.handles[h].(*Boss)
	return b
}

func (s *Scene) beginEnding() {
	s.ending = NewEnding()
	s.status.MarkCleared()
}

// exitFlow watches the game-over banner: it waits for the banner, holds it
// up to 60 ticks (A skips), and ends the playthrough once it has flown out.
type exitFlow struct {
	stage int
	count int
}

const bannerHold = 60

func (x *exitFlow) step(s *Scene) bool {
	for {
		switch x.stage {
		case 0:
			if s.banner == nil {
				return false
			}
			x.stage = 1
		case 1:
			if s.banner.State() == BannerAppear {
				return false
			}
			x.stage = 2
		case 2:
			if s.banner.State() == BannerAppeared {
				if s.joystick.Trigger().Has(core.ButtonA) {
					s.banner.ToDisappear()
				}
				x.count++
				if x.count >= bannerHold {
					s.banner.ToDisappear()
				}
				return false
			}
			x.stage = 3
		case 3:
			if s.banner.State() == BannerDisappear {
				return false
			}
			x.stage = 4
		default:
			return true
		}
	}
}

// State summarizes the playthrough for the platform.
func (s *Scene) State() core.GameState {
	return core.GameState{
		Score:    s.status.Score(),
		Stock:    s.status.Stock(),
		LapTime:  s.status.LapTime(),
		Cleared:  s.status.Cleared(),
		GameOver: s.over,
	}
}

// Over reports whether the playthrough has ended.
func (s *Scene) Over() bool { return s.over }

// Tick returns the number of ticks stepped.
func (s *Scene) Tick() int { return s.tick }

// Status returns the score aggregate.
func (s *Scene) Status() *Status { return s.status }

// Level returns the level being played.
func (s *Scene) Level() *Level { return s.level }

// Timeline returns the level timeline.
func (s *Scene) Timeline() *Timeline { return s.timeline }

// Joystick returns the latched input.
func (s *Scene) Joystick() *core.Joystick { return &s.joystick }

// Player returns the ship.
func (s *Scene) Player() *Player { return s.player }

// Beams iterates the live beams.
func (s *Scene) Beams() iter.Seq[*Beam] { return s.beams.All() }

// Enemies iterates the live enemies, boss parts included.
func (s *Scene) Enemies() iter.Seq[Enemy] { return s.enemies.All() }

// EnemyCount returns the number of live enemies.
func (s *Scene) EnemyCount() int { return s.enemies.Len() }

// Bullets iterates the live bullets.
func (s *Scene) Bullets() iter.Seq[*Bullet] { return s.bullets.All() }

// Explosions iterates the live effects.
func (s *Scene) Explosions() iter.Seq[*Explosion] { return s.explosions.All() }

// Stars iterates the background stars.
func (s *Scene) Stars() iter.Seq[*Star] { return s.stars.All() }

// FloatString returns the bonus text shown, or nil.
func (s *Scene) FloatString() *FloatString { return s.float }

// Banner returns the game-over banner, or nil.
func (s *Scene) Banner() *GameOverString { return s.banner }

// Ending returns the running ending, or nil.
func (s *Scene) Ending() *Ending { return s.ending }

// Spawn places an enemy outside the timeline.
func (s *Scene) Spawn(e Enemy) bool { return s.spawn(e) }
