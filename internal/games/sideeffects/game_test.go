package sideeffects

import (
	"strings"
	"testing"

	"github.com/vovakirdan/side-effects/internal/campaign"
	"github.com/vovakirdan/side-effects/internal/config"
	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/session"
	"github.com/vovakirdan/side-effects/internal/sides"
)

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}
}

func newGame(seed int64) *Game {
	tuning := config.DefaultTuning()
	c := campaign.New(campaign.Options{Params: session.ParamsFrom(tuning), Seed: seed})
	return New(Options{Campaign: c, Tuning: tuning})
}

func inputSequence(n int) []core.InputFrame {
	seq := make([]core.InputFrame, n)
	for i := range seq {
		seq[i] = core.NewInputFrame()
		switch {
		case i%90 < 30:
			seq[i].Set(core.ActionLeft)
			seq[i].Set(core.ActionRotateCW)
		case i%90 < 60:
			seq[i].Set(core.ActionUp)
		default:
			seq[i].Set(core.ActionRight)
			seq[i].Set(core.ActionRotateCCW)
		}
	}
	return seq
}

func TestGameDeterminism(t *testing.T) {
	cfg := testConfig()
	seq := inputSequence(900)

	run := func() Snapshot {
		g := newGame(cfg.Seed)
		g.Reset(cfg)
		for _, in := range seq {
			g.Step(in)
		}
		return g.Snapshot()
	}

	snap1 := run()
	snap2 := run()

	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Session.Score != snap2.Session.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", snap1.Session.Score, snap2.Session.Score)
	}
	if snap1.Tick != len(seq) {
		t.Errorf("expected %d ticks, got %d", len(seq), snap1.Tick)
	}
}

func TestGameSeedsDiffer(t *testing.T) {
	cfg := testConfig()
	seq := inputSequence(300)

	g1 := newGame(1)
	g1.Reset(cfg)
	g2 := newGame(2)
	g2.Reset(cfg)
	for _, in := range seq {
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() == s2.Hash() {
		t.Error("different campaign seeds should produce different games")
	}
}

func TestGameReset(t *testing.T) {
	cfg := testConfig()
	g := newGame(1)
	g.Reset(cfg)

	for _, in := range inputSequence(200) {
		g.Step(in)
	}
	g.Reset(cfg)

	if g.tickCount != 0 {
		t.Errorf("Reset should clear tickCount, got %d", g.tickCount)
	}
	if g.State().Score != 0 {
		t.Errorf("Reset should clear score, got %d", g.State().Score)
	}
	if len(g.Session().Balls()) != 0 {
		t.Errorf("Reset should start without balls, got %d", len(g.Session().Balls()))
	}
	if g.Result() != nil {
		t.Error("Reset should clear the level result")
	}
	if g.State().Level != 1 {
		t.Errorf("expected level 1, got %d", g.State().Level)
	}
}

func TestGamePause(t *testing.T) {
	cfg := testConfig()
	g := newGame(1)
	g.Reset(cfg)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	if !res.State.Paused {
		t.Fatal("expected game to be paused")
	}

	before := g.Session().Now()
	for range 30 {
		g.Step(core.NewInputFrame())
	}
	if g.Session().Now() != before {
		t.Error("simulated time should not advance while paused")
	}

	res = g.Step(pause)
	if res.State.Paused {
		t.Fatal("expected game to resume")
	}
	g.Step(core.NewInputFrame())
	if g.Session().Now() == before {
		t.Error("simulated time should advance after resuming")
	}
}

func TestGameMovesPlayer(t *testing.T) {
	cfg := testConfig()
	g := newGame(1)
	g.Reset(cfg)

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	right.Set(core.ActionRotateCCW)
	for range 10 {
		g.Step(right)
	}

	p := g.World().Player()
	if p.Center.X <= 0 {
		t.Errorf("expected player to move right, got x=%f", p.Center.X)
	}
	if p.Angle <= 0 {
		t.Errorf("expected counter-clockwise rotation, got angle=%f", p.Angle)
	}
}

func TestGameLevelCompletes(t *testing.T) {
	cfg := testConfig()
	g := newGame(1)
	g.Reset(cfg)

	limit := int(g.Session().Level().Duration.Seconds()+1) * cfg.TickRate
	var res core.StepResult
	for i := 0; i < limit && !res.State.LevelComplete; i++ {
		res = g.Step(core.NewInputFrame())
	}

	if !res.State.LevelComplete {
		t.Fatal("expected the level to complete when the clock runs out")
	}
	r := g.Result()
	if r == nil {
		t.Fatal("expected a level result")
	}
	if r.Level != 1 || r.Score != g.Session().Score() {
		t.Errorf("unexpected result %+v", *r)
	}
	if g.Campaign().LastResult() == nil {
		t.Error("campaign should record the result")
	}

	// Further steps are frozen on the result.
	now := g.Session().Now()
	g.Step(core.NewInputFrame())
	if g.Session().Now() != now {
		t.Error("a finished level should not advance")
	}
}

func TestAreaPositions(t *testing.T) {
	tests := []struct {
		bt   session.BallType
		want core.Vec2
	}{
		{session.BallA, core.V(-100, 100)},
		{session.BallB, core.V(100, 100)},
		{session.BallC, core.V(100, -100)},
		{session.BallD, core.V(-100, -100)},
	}
	for _, tt := range tests {
		if got := AreaPosition(tt.bt, 100); got != tt.want {
			t.Errorf("AreaPosition(%s) = %v, want %v", tt.bt, got, tt.want)
		}
	}
}

func TestGameRender(t *testing.T) {
	cfg := testConfig()
	g := newGame(1)
	g.Reset(cfg)
	for _, in := range inputSequence(120) {
		g.Step(in)
	}

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	str := screen.String()

	if !strings.Contains(str, "LEVEL 1") {
		t.Error("HUD should show the level")
	}
	if !strings.Contains(str, "TIME") {
		t.Error("HUD should show the remaining time")
	}
	if !strings.Contains(str, sides.NothingSpecial.Name()) {
		t.Error("legend should name the side types")
	}

	// The legend lists the sides in order on the last row.
	var row strings.Builder
	for x := 0; x < cfg.ScreenW; x++ {
		row.WriteRune(screen.Get(x, cfg.ScreenH-1))
	}
	if !strings.Contains(row.String(), "0:") || !strings.Contains(row.String(), "3:") {
		t.Errorf("legend row missing side labels: %q", row.String())
	}
}

func TestRenderPaused(t *testing.T) {
	cfg := testConfig()
	g := newGame(1)
	g.Reset(cfg)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)

	screen := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should say so")
	}
}

func TestSideColorsDistinct(t *testing.T) {
	seen := make(map[core.Color]sides.Type)
	for _, st := range sides.All() {
		c := SideColor(st)
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s share a color", prev, st)
		}
		seen[c] = st
	}
}

func TestViewportKeepsArenaOnScreen(t *testing.T) {
	cfg := WorldConfig(config.DefaultTuning())
	toScreen := Viewport(80, 24, cfg)
	h := cfg.HalfSize

	for _, p := range []core.Vec2{core.V(-h, h), core.V(h, -h), {}} {
		x, y := toScreen(p)
		if x < 0 || x >= 80 || y < 1 || y >= 23 {
			t.Errorf("%v maps to (%d,%d), outside the play field", p, x, y)
		}
	}
}
