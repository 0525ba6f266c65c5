package agent

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-shippu/internal/core"
	"github.com/vovakirdan/tui-shippu/internal/games/shippu"
)

func emptyLevel() *shippu.Level {
	return &shippu.Level{Name: "empty", Directives: []shippu.Directive{shippu.Idle(100000)}}
}

func TestObserveEnemyAndBoundaries(t *testing.T) {
	s := shippu.NewScene(shippu.Options{Level: emptyLevel()})
	s.Step(core.InputFrame{}) // ship enters at the bottom-left corner
	if !s.Spawn(shippu.NewStraight(core.Fix(30), core.Fix(440))) {
		t.Fatal("Spawn failed")
	}

	o := Observe(s)
	want := map[int]float64{
		obsThreat:      0.5, // 50 px away, heading -53 degrees
		obsEnemyUp + 2: 0.5,
		obsLeft:        1,
		obsBottom:      1,
	}
	for i, v := range o {
		if math.Abs(v-want[i]) > 1e-9 {
			t.Errorf("obs[%d] = %.4f, want %.4f", i, v, want[i])
		}
	}
}

func TestObservationBuckets(t *testing.T) {
	tests := []struct {
		name  string
		d     float64
		angle float64
		idx   int
		value float64
	}{
		{"ahead", 20, 22.5, obsThreat, 0.8},
		{"below", 50, 90 + 22.5, obsThreat + 2, 0.5},
		{"behind", 10, 180 + 22.5, obsThreat + 4, 0.9},
		{"just above", 75, -10 + 22.5, obsThreat, 0.25},
		{"above wraps", 0, -90 + 22.5, obsThreat + 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var o Observation
			o.threat(tt.d, tt.angle)
			if math.Abs(o[tt.idx]-tt.value) > 1e-9 {
				t.Errorf("obs[%d] = %.3f, want %.3f (%v)", tt.idx, o[tt.idx], tt.value, o)
			}
		})
	}

	var o Observation
	o.threat(150, 22.5)
	if o != (Observation{}) {
		t.Errorf("out-of-range threat recorded: %v", o)
	}

	o = Observation{}
	o.cone(obsEnemyUp, 250, 50)
	o.cone(obsEnemyUp, 40, -5)
	o.cone(obsEnemyUp, 40, 70) // outside the four cones
	if o[obsEnemyDown+3] != 1 || o[obsEnemyUp] != 0.4 {
		t.Errorf("cones = %v", o)
	}
}

func TestActionButtons(t *testing.T) {
	tests := []struct {
		a    Action
		want core.Buttons
	}{
		{ActionNone, core.ButtonA},
		{ActionUp, core.ButtonUp | core.ButtonA},
		{ActionDownRight, core.ButtonDown | core.ButtonRight | core.ButtonA},
		{ActionUpLeft, core.ButtonUp | core.ButtonLeft | core.ButtonA},
		{Action(42), core.ButtonA},
	}
	for _, tt := range tests {
		if got := tt.a.Buttons(); got != tt.want {
			t.Errorf("Action(%d).Buttons() = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestSmoothL1(t *testing.T) {
	tests := []struct {
		d, loss, grad float64
	}{
		{0, 0, 0},
		{0.5, 0.125, 0.5},
		{-0.5, 0.125, -0.5},
		{3, 2.5, 1},
		{-2, 1.5, -1},
	}
	for _, tt := range tests {
		loss, grad := smoothL1(tt.d)
		if loss != tt.loss || grad != tt.grad {
			t.Errorf("smoothL1(%g) = (%g, %g), want (%g, %g)", tt.d, loss, grad, tt.loss, tt.grad)
		}
	}
}

func TestGreedyAndBootstrap(t *testing.T) {
	v := [ActionCount]float64{0.1, 0.7, 0.7, -2, 0, 0, 0, 0, 0}
	if a := Greedy(v); a != ActionUp {
		t.Errorf("Greedy = %v, want first maximum", a)
	}
	if b := bootstrap(v); b != -2 {
		t.Errorf("bootstrap = %g, want -2 (larger magnitude minimum)", b)
	}
	v[3] = -0.5
	if b := bootstrap(v); b != 0.7 {
		t.Errorf("bootstrap = %g, want 0.7", b)
	}
}

func TestLinearQUpdateConverges(t *testing.T) {
	q := NewLinearQ(rand.New(rand.NewSource(1)))
	var obs Observation
	obs[3], obs[24] = 0.5, 1

	first := q.Update(obs, ActionRight, 2, 0.5)
	var last float64
	for range 500 {
		last = q.Update(obs, ActionRight, 2, 0.5)
	}
	if last >= first {
		t.Errorf("loss did not fall: first %g, last %g", first, last)
	}
	if got := q.Values(obs)[ActionRight]; math.Abs(got-2) > 0.05 {
		t.Errorf("value = %g, want about 2", got)
	}
}

func TestLinearQCloneIsIndependent(t *testing.T) {
	q := NewLinearQ(rand.New(rand.NewSource(1)))
	c := q.Clone().(*LinearQ)
	c.Weights[0][0] += 1
	c.Bias[0] += 1
	if q.Weights[0][0] == c.Weights[0][0] || q.Bias[0] == c.Bias[0] {
		t.Error("clone shares storage with original")
	}
}

func TestAgentDecide(t *testing.T) {
	meta := rand.New(rand.NewSource(789))
	a := New(NewLinearQ(rand.New(rand.NewSource(2))), meta)
	var obs Observation
	obs[0] = 1

	a.Begin(0)
	if got, want := a.Decide(obs), Greedy(a.Policy.Values(obs)); got != want {
		t.Errorf("greedy decision %v, want %v", got, want)
	}

	run := func() []Action {
		a.Begin(1)
		var out []Action
		for range 20 {
			out = append(out, a.Decide(obs))
		}
		return out
	}
	first, second := run(), run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("exploration not replayed from seed at %d: %v vs %v", i, first, second)
		}
	}
}

func TestAgentTrain(t *testing.T) {
	meta := rand.New(rand.NewSource(789))
	a := New(NewLinearQ(rand.New(rand.NewSource(3))), meta)
	a.Begin(0)
	if loss := a.Train(meta, 0.01, 0.95); loss != 0 {
		t.Errorf("empty memory loss = %g", loss)
	}

	var obs Observation
	for i := range 10 {
		obs[i] = 1
		a.Remember(Experience{State: obs, Action: Action(i % ActionCount), Reward: 1})
	}
	before := a.Policy.Clone()
	if loss := a.Train(meta, 0.01, 0.95); loss <= 0 {
		t.Errorf("loss = %g, want positive", loss)
	}
	if len(a.Experiences()) != 0 {
		t.Error("memory not cleared after training")
	}
	if before.Values(obs) == a.Policy.Values(obs) {
		t.Error("training did not change the policy")
	}
}

func TestAlternate(t *testing.T) {
	meta := rand.New(rand.NewSource(789))
	init := rand.New(rand.NewSource(1))
	agents := []*Agent{New(NewLinearQ(init), meta), New(NewLinearQ(init), meta), New(NewLinearQ(init), meta)}
	agents[0].Fitness.Score = 5
	agents[1].Fitness.Score = 9
	agents[2].Fitness.Score = 9

	bestSeed := agents[1].EpsilonSeed
	draws := rand.New(rand.NewSource(42))
	want1, want2 := int64(draws.Intn(epsilonSeeds)), int64(draws.Intn(epsilonSeeds))

	next := Alternate(agents, rand.New(rand.NewSource(42)))
	if len(next) != 3 {
		t.Fatalf("len = %d", len(next))
	}
	if next[0] == agents[1] || next[0].Fitness.Score != 9 || next[0].EpsilonSeed != bestSeed {
		t.Errorf("slot 0 is not a clone of the first best agent")
	}
	if next[1] != agents[1] || next[2] != agents[2] {
		t.Error("other slots should keep their agents")
	}
	if next[1].EpsilonSeed != want1 || next[2].EpsilonSeed != want2 {
		t.Errorf("epsilon seeds = %d, %d; want fresh draws %d, %d",
			next[1].EpsilonSeed, next[2].EpsilonSeed, want1, want2)
	}

	agents[0].Fitness.Score = 100
	if again := Alternate(agents, meta); again[0] != agents[0] {
		t.Error("elite should keep slot 0 when it is best")
	}
}

func TestShapingReward(t *testing.T) {
	sh := DefaultShaping()
	tests := []struct {
		name string
		res  core.StepResult
		x    int
		want float64
	}{
		{"nothing", core.StepResult{}, 200, 0},
		{"hit mid", core.StepResult{Hits: 2}, 200, 1},
		{"hurt overrides hit", core.StepResult{Hits: 1, Hurts: 1}, 200, -1},
		{"hit far", core.StepResult{Hits: 1}, 400, 0.1},
		{"at far line", core.StepResult{Hits: 1}, 320, 1},
		{"hit near", core.StepResult{Hits: 1}, 100, 1.1},
		{"hurt near", core.StepResult{Hurts: 1}, 100, -1.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sh.Reward(tt.res, core.Fix(tt.x)); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Reward = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSnapshotEncodeDecode(t *testing.T) {
	meta := rand.New(rand.NewSource(789))
	agents := []*Agent{New(NewLinearQ(rand.New(rand.NewSource(4))), meta)}
	agents[0].Fitness = Fitness{Score: 12.5, Destruction: 300, Frames: 900, Events: 1200}
	snap, err := snapshotOf(3, shippu.DefaultWeights(), agents)
	if err != nil {
		t.Fatalf("snapshotOf: %v", err)
	}
	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	if got.Generation != 3 || got.Weights != shippu.DefaultWeights() {
		t.Errorf("header = %d %+v", got.Generation, got.Weights)
	}
	best, idx := got.Best()
	if idx != 0 || best.Fitness != agents[0].Fitness || best.EpsilonSeed != agents[0].EpsilonSeed {
		t.Errorf("best = %+v", best)
	}
	var obs Observation
	obs[5] = 0.3
	if best.Policy.Values(obs) != agents[0].Policy.Values(obs) {
		t.Error("decoded policy computes different values")
	}

	if _, err := DecodeSnapshot([]byte("generation: 1\n")); err == nil {
		t.Error("expected error for a snapshot without agents")
	}
	if _, err := DecodeSnapshot([]byte("agents:\n  - policy:\n      weights: [[1]]\n      bias: [1]\n")); err == nil {
		t.Error("expected error for a malformed policy")
	}
}

func TestRunEpisodeDeterministic(t *testing.T) {
	cfg := EpisodeConfig{
		Level:      shippu.MustLevel("stage1"),
		EnemySeed:  shippu.DefaultEnemySeed,
		EffectSeed: shippu.DefaultEffectSeed,
		Weights:    shippu.DefaultWeights(),
		Epsilon:    0.1,
		MaxTicks:   300,
		Shaping:    DefaultShaping(),
	}
	run := func() (EpisodeResult, int) {
		meta := rand.New(rand.NewSource(789))
		a := New(NewLinearQ(rand.New(rand.NewSource(5))), meta)
		res, err := RunEpisode(context.Background(), a, cfg)
		if err != nil {
			t.Fatalf("RunEpisode: %v", err)
		}
		return res, len(a.Experiences())
	}
	r1, n1 := run()
	r2, n2 := run()
	if r1 != r2 {
		t.Errorf("episodes differ:\n%+v\n%+v", r1, r2)
	}
	if !r1.Truncated || r1.Ticks != 300 || n1 != 300 || n2 != 300 {
		t.Errorf("truncation: %+v, %d experiences", r1, n1)
	}
}

func TestRunEpisodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a := New(NewLinearQ(rand.New(rand.NewSource(6))), rand.New(rand.NewSource(7)))
	if _, err := RunEpisode(ctx, a, EpisodeConfig{Level: emptyLevel()}); err == nil {
		t.Error("expected context error")
	}
}

func TestNewController(t *testing.T) {
	s := shippu.NewScene(shippu.Options{Level: emptyLevel()})
	if in := (IdleController{}).Input(s); in.Pressed != 0 {
		t.Errorf("idle pressed %v", in.Pressed)
	}
	c, err := NewController("random", 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if in := c.Input(s); !in.Has(core.ButtonA) {
		t.Error("random controller should always fire")
	}
	if _, err := NewController("agent", 1, nil); err == nil {
		t.Error("agent controller without an agent should fail")
	}
	if _, err := NewController("joypad", 1, nil); err == nil {
		t.Error("unknown controller should fail")
	}
}
