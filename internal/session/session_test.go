package session

import (
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/sides"
)

const frame = 16 * time.Millisecond

func TestClassify(t *testing.T) {
	f := newFixture(t, sides.DefaultConfig().Types())
	b := f.ball(BallC)
	other := f.ball(BallA)

	tests := []struct {
		name string
		ev   core.Collision
		want ClassKind
	}{
		{"ball enters area", core.Collision{A: b.Entity, B: areaBase}, ClassScored},
		{"area reported first", core.Collision{A: areaBase, B: b.Entity}, ClassScored},
		{"ball hits side", hitSide(b, 2), ClassHitSide},
		{"side reported first", core.Collision{A: sideBase + 2, B: b.Entity}, ClassHitSide},
		{"ball hits wall", core.Collision{A: b.Entity, B: wallEntity}, ClassHitWall},
		{"ball hits ball", core.Collision{A: b.Entity, B: other.Entity}, ClassHitWall},
		{"no ball involved", core.Collision{A: wallEntity, B: sideBase}, ClassIgnored},
		{"unknown entities", core.Collision{A: 9999, B: 9998}, ClassIgnored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := f.s.Classify(tt.ev)
			if c.Kind != tt.want {
				t.Fatalf("Classify() = %s, want %s", c.Kind, tt.want)
			}
			if c.Kind != ClassIgnored && c.Ball == nil {
				t.Fatal("classification without a ball")
			}
		})
	}

	c := f.s.Classify(hitSide(b, 0))
	if c.Side != 0 || c.SideType != sides.SpeedUp {
		t.Errorf("side hit = (%d, %s), want (0, SpeedUp)", c.Side, c.SideType)
	}
	c = f.s.Classify(enterArea(b, BallD))
	if c.Area == nil || c.Area.Target != BallD {
		t.Errorf("area hit resolved to %+v, want area D", c.Area)
	}
}

func TestMatchingScoreAwardsPoints(t *testing.T) {
	f := newFixture(t, sides.DefaultConfig().Types())
	b := f.ball(BallA)

	res := f.step(frame, enterArea(b, BallA))

	if f.s.Score() != 1 {
		t.Errorf("score = %d, want 1", f.s.Score())
	}
	if !slices.Contains(res.Despawned, b.Entity) {
		t.Errorf("scored ball was not despawned: %v", res.Despawned)
	}
	if f.s.Ball(b.Entity) != nil {
		t.Error("scored ball still tracked")
	}
	if fl := f.area(BallA).Flash; fl == nil || !fl.Good {
		t.Errorf("area flash = %+v, want good flash", fl)
	}
	if f.cues.count(core.CueGood) != 1 {
		t.Errorf("good cue played %d times, want 1", f.cues.count(core.CueGood))
	}
}

func TestMismatchedScorePenalizes(t *testing.T) {
	f := newFixture(t, sides.DefaultConfig().Types())
	b := f.ball(BallB)

	res := f.step(frame, enterArea(b, BallA))

	if f.s.Score() != -1 {
		t.Errorf("score = %d, want -1", f.s.Score())
	}
	if !slices.Contains(res.Despawned, b.Entity) {
		t.Error("penalized ball was not despawned")
	}
	if fl := f.area(BallA).Flash; fl == nil || fl.Good {
		t.Errorf("area flash = %+v, want bad flash", fl)
	}
	if f.cues.count(core.CueBad) != 1 {
		t.Errorf("bad cue played %d times, want 1", f.cues.count(core.CueBad))
	}
}

func TestFlashExpires(t *testing.T) {
	f := newFixture(t, sides.DefaultConfig().Types())
	keep := f.ball(BallD)
	b := f.ball(BallA)

	f.step(frame, enterArea(b, BallA))
	if f.area(BallA).Flash == nil {
		t.Fatal("expected a flash after scoring")
	}
	f.step(DefaultParams().FlashDuration)
	if f.area(BallA).Flash != nil {
		t.Error("flash should clear after its duration")
	}
	if f.s.Ball(keep.Entity) == nil {
		t.Error("unrelated ball disappeared")
	}
}

func TestQueuedBallIsSkipped(t *testing.T) {
	f := newFixture(t, configWith(sides.ExtraPoints))
	b := f.ball(BallA)

	f.step(frame,
		enterArea(b, BallA),
		enterArea(b, BallA),
		enterArea(b, BallC),
		hitSide(b, 0),
	)

	if f.s.Score() != 1 {
		t.Errorf("score = %d, want 1 (later events must be skipped)", f.s.Score())
	}
	if f.cues.count(core.CueExtraPoints) != 0 {
		t.Error("effect applied to a ball already queued for despawn")
	}
	if len(f.world.despawned) != 1 {
		t.Errorf("despawned %d entities, want 1", len(f.world.despawned))
	}
}

func TestScoreMayGoNegative(t *testing.T) {
	f := newFixture(t, sides.DefaultConfig().Types())
	for range 3 {
		b := f.ball(BallC)
		f.step(frame, enterArea(b, BallD))
	}
	if f.s.Score() != -3 {
		t.Errorf("score = %d, want -3", f.s.Score())
	}
}

func TestSpeedUpAndNothingSpecialOnlyPlayCues(t *testing.T) {
	f := newFixture(t, configWith(sides.SpeedUp))
	b := f.ball(BallA)
	vel := f.world.vel[b.Entity]

	f.step(frame, hitSide(b, 0), hitSide(b, 1))

	if f.cues.count(core.CueUp) != 1 {
		t.Errorf("speed up cue played %d times, want 1", f.cues.count(core.CueUp))
	}
	if f.cues.count(core.CueHit) != 1 {
		t.Errorf("hit cue played %d times, want 1", f.cues.count(core.CueHit))
	}
	if f.world.vel[b.Entity] != vel {
		t.Error("cue-only effects must not touch the ball")
	}
}

func TestWallHitPlaysHitCue(t *testing.T) {
	f := newFixture(t, sides.DefaultConfig().Types())
	b := f.ball(BallA)

	f.step(frame, core.Collision{A: wallEntity, B: b.Entity})

	if f.cues.count(core.CueHit) != 1 {
		t.Errorf("hit cue played %d times, want 1", f.cues.count(core.CueHit))
	}
	if f.s.Score() != 0 {
		t.Errorf("score = %d, want 0", f.s.Score())
	}
}

func TestFreezeOthers(t *testing.T) {
	f := newFixture(t, configWith(sides.FreezeOthers))
	hitter := f.ball(BallA)
	o1 := f.ball(BallB)
	o2 := f.ball(BallC)
	f.world.vel[o1.Entity] = core.V(10, 0)
	f.world.vel[o2.Entity] = core.V(0, 20)

	f.step(frame, hitSide(hitter, 0))

	if hitter.IsFrozen() || f.world.fixed[hitter.Entity] {
		t.Error("the hitting ball must not freeze")
	}
	for _, b := range []*Ball{o1, o2} {
		if !b.IsFrozen() || !f.world.fixed[b.Entity] {
			t.Fatalf("ball %d should be frozen", b.Entity)
		}
	}
	if o1.Frozen.OriginalVelocity != core.V(10, 0) {
		t.Errorf("captured velocity = %v, want (10, 0)", o1.Frozen.OriginalVelocity)
	}

	f.step(DefaultParams().FreezeDuration)

	for _, b := range []*Ball{o1, o2} {
		if b.IsFrozen() || f.world.fixed[b.Entity] {
			t.Errorf("ball %d should be unfrozen", b.Entity)
		}
	}
	if f.world.vel[o2.Entity] != core.V(0, 20) {
		t.Errorf("restored velocity = %v, want (0, 20)", f.world.vel[o2.Entity])
	}
}

func TestRefreezeExtendsDeadlineAndKeepsFirstVelocity(t *testing.T) {
	f := newFixture(t, configWith(sides.FreezeOthers))
	hitter := f.ball(BallA)
	other := f.ball(BallB)
	f.world.vel[other.Entity] = core.V(10, 0)

	f.step(frame, hitSide(hitter, 0))
	f.world.vel[other.Entity] = core.V(0, 0) // held still while fixed
	f.step(time.Second, hitSide(hitter, 0))

	if other.Frozen.OriginalVelocity != core.V(10, 0) {
		t.Errorf("refreeze replaced captured velocity with %v", other.Frozen.OriginalVelocity)
	}
	if want := f.s.Now() + DefaultParams().FreezeDuration; other.Frozen.Until != want {
		t.Errorf("deadline = %v, want %v", other.Frozen.Until, want)
	}

	// Past the first deadline but not the second.
	f.step(2500 * time.Millisecond)
	if !other.IsFrozen() {
		t.Fatal("ball unfroze at the first deadline")
	}

	f.step(time.Second)
	if other.IsFrozen() {
		t.Fatal("ball should unfreeze at the extended deadline")
	}
	if f.world.vel[other.Entity] != core.V(10, 0) {
		t.Errorf("restored velocity = %v, want (10, 0)", f.world.vel[other.Entity])
	}
}

func TestFreezeSkipsBallsQueuedForDespawn(t *testing.T) {
	f := newFixture(t, configWith(sides.FreezeOthers))
	hitter := f.ball(BallA)
	scored := f.ball(BallB)

	f.step(frame, enterArea(scored, BallB), hitSide(hitter, 0))

	if scored.IsFrozen() || f.world.fixed[scored.Entity] {
		t.Error("a ball queued for despawn must not freeze")
	}
}

func TestBounceBackwards(t *testing.T) {
	f := newFixture(t, configWith(sides.BounceBackwards))
	b := f.ball(BallA)

	f.step(frame, hitSide(b, 0))

	p := DefaultParams()
	// Side 0 sits at (0, 50); its opposite, side 2, at (0, -50).
	wantVel := core.V(0, -p.BounceVelocity)
	wantPos := core.V(0, -50-(p.BallRadius+1))
	if f.world.vel[b.Entity] != wantVel {
		t.Errorf("velocity = %v, want %v", f.world.vel[b.Entity], wantVel)
	}
	if f.world.pos[b.Entity] != wantPos {
		t.Errorf("position = %v, want %v", f.world.pos[b.Entity], wantPos)
	}
	if f.cues.count(core.CueBounceBackwards) != 1 {
		t.Error("bounce backwards cue not played")
	}
}

func TestDestroy(t *testing.T) {
	f := newFixture(t, configWith(sides.Destroy))
	b := f.ball(BallA)

	res := f.step(frame, hitSide(b, 0), hitSide(b, 1))

	if !slices.Contains(res.Despawned, b.Entity) {
		t.Error("destroyed ball was not despawned")
	}
	if f.s.Score() != 0 {
		t.Errorf("score = %d, want 0", f.s.Score())
	}
	if f.cues.count(core.CueDestroy) != 1 {
		t.Error("destroy cue not played")
	}
	if f.cues.count(core.CueHit) != 0 {
		t.Error("effects after destroy must be dropped")
	}
}

func TestDuplicate(t *testing.T) {
	f := newFixture(t, configWith(sides.Duplicate))
	b := f.ball(BallB)
	f.world.vel[b.Entity] = core.V(0, -200)

	// Two hits in one batch still duplicate once.
	f.step(frame, hitSide(b, 0), hitSide(b, 0))

	balls := f.s.Balls()
	if len(balls) != 2 {
		t.Fatalf("balls = %d, want 2", len(balls))
	}
	dup := balls[1]
	if dup.Type != BallB || dup.Points != 1 {
		t.Errorf("duplicate = %+v, want type B with 1 point", dup)
	}
	if got, want := f.world.vel[dup.Entity], core.V(3, -197); got != want {
		t.Errorf("duplicate velocity = %v, want %v", got, want)
	}
	if b.Cooldown == nil || dup.Cooldown == nil {
		t.Fatal("both balls should be on cooldown")
	}

	f.step(500*time.Millisecond, hitSide(b, 0), hitSide(dup, 0))
	if n := len(f.s.Balls()); n != 2 {
		t.Fatalf("duplicated during cooldown: %d balls", n)
	}

	f.step(600 * time.Millisecond)
	if b.Cooldown != nil {
		t.Fatal("cooldown should have cleared")
	}
	f.step(frame, hitSide(b, 0))
	if n := len(f.s.Balls()); n != 3 {
		t.Errorf("balls = %d after cooldown, want 3", n)
	}
}

func TestDuplicateOfUpgradedBall(t *testing.T) {
	f := newFixture(t, [sides.Count]sides.Type{
		sides.ExtraPoints, sides.Duplicate, sides.NothingSpecial, sides.NothingSpecial,
	})
	b := f.ball(BallC)

	f.step(frame, hitSide(b, 0))
	if b.Points != 2 || !b.Upgraded {
		t.Fatalf("ball = %+v, want upgraded with 2 points", b)
	}
	p := DefaultParams()
	if f.world.ballRadius[b.Entity] != p.UpgradedBallRadius {
		t.Errorf("radius = %v, want %v", f.world.ballRadius[b.Entity], p.UpgradedBallRadius)
	}

	f.step(frame, hitSide(b, 1))
	dup := f.s.Balls()[1]
	if dup.Points != 1 || !dup.Upgraded || dup.Radius != p.UpgradedBallRadius {
		t.Errorf("duplicate = %+v, want upgraded size with 1 point", dup)
	}

	f.step(frame, enterArea(b, BallC), enterArea(dup, BallC))
	if f.s.Score() != 3 {
		t.Errorf("score = %d, want 3", f.s.Score())
	}
}

func TestExtraPointsDoublePenalty(t *testing.T) {
	f := newFixture(t, configWith(sides.ExtraPoints))
	b := f.ball(BallA)

	f.step(frame, hitSide(b, 0))
	f.step(frame, hitSide(b, 0))
	if b.Points != 2 {
		t.Errorf("points = %d, want 2", b.Points)
	}
	f.step(frame, enterArea(b, BallB))
	if f.s.Score() != -2 {
		t.Errorf("score = %d, want -2", f.s.Score())
	}
}

func TestResizeScoreAreas(t *testing.T) {
	f := newFixture(t, configWith(sides.ResizeScoreAreas))
	b := f.ball(BallA)
	p := DefaultParams()

	f.step(frame, hitSide(b, 0))

	for bt := BallA; bt < BallTypeCount; bt++ {
		a := f.area(bt)
		want := 90 - p.ResizeAmount
		if bt == BallA {
			want = 90 + p.ResizeAmount
		}
		if a.Radius != want || f.world.areaRadius[a.Entity] != want {
			t.Errorf("area %s radius = %v (world %v), want %v", bt, a.Radius, f.world.areaRadius[a.Entity], want)
		}
	}

	f.step(p.ResizeDuration)
	for bt := BallA; bt < BallTypeCount; bt++ {
		a := f.area(bt)
		if a.Radius != 90 || a.Resize != nil {
			t.Errorf("area %s not restored: radius %v", bt, a.Radius)
		}
	}
}

func TestResizeReArmsWithoutStacking(t *testing.T) {
	f := newFixture(t, configWith(sides.ResizeScoreAreas))
	a := f.ball(BallA)
	c := f.ball(BallC)
	p := DefaultParams()

	f.step(frame, hitSide(a, 0))
	f.step(2*time.Second, hitSide(c, 0))

	if got, want := f.area(BallC).Radius, 90+p.ResizeAmount; got != want {
		t.Errorf("area C radius = %v, want %v", got, want)
	}
	if got, want := f.area(BallA).Radius, 90-p.ResizeAmount; got != want {
		t.Errorf("area A radius = %v, want %v (sizes must not stack)", got, want)
	}

	f.step(4 * time.Second)
	if f.area(BallA).Resize == nil {
		t.Fatal("resize ended before the re-armed deadline")
	}
	f.step(time.Second)
	if f.area(BallA).Radius != 90 || f.area(BallC).Radius != 90 {
		t.Error("radii not restored to the original size")
	}
}

func TestPenaltyDisabledWhileResized(t *testing.T) {
	f := newFixture(t, configWith(sides.ResizeScoreAreas))
	trigger := f.ball(BallA)
	wrong := f.ball(BallC)
	other := f.ball(BallD)

	f.step(frame, hitSide(trigger, 0))
	res := f.step(frame, enterArea(wrong, BallA))
	res2 := f.step(frame, enterArea(other, BallA))

	if f.s.Score() != 0 {
		t.Errorf("score = %d, want 0", f.s.Score())
	}
	if len(res.Despawned) != 0 || f.s.Ball(wrong.Entity) == nil {
		t.Error("wrong ball should keep flying")
	}
	if len(res2.Despawned) != 0 || f.s.Ball(other.Entity) == nil {
		t.Error("second wrong ball should keep flying")
	}
	if f.area(BallA).Flash != nil || f.cues.count(core.CueBad) != 0 {
		t.Error("skipped penalty must not flash or play a cue")
	}

	// Matches still count during the resize.
	f.step(frame, enterArea(trigger, BallA))
	if f.s.Score() != 1 {
		t.Errorf("score = %d, want 1", f.s.Score())
	}

	f.step(DefaultParams().ResizeDuration)
	f.step(frame, enterArea(wrong, BallA))
	if f.s.Score() != 0 {
		t.Errorf("score = %d after resize ended, want 0", f.s.Score())
	}
}

func TestLevelClock(t *testing.T) {
	f := newFixture(t, sides.DefaultConfig().Types())
	b := f.ball(BallA)

	res := f.step(31*time.Second, enterArea(b, BallA))
	if res.LevelComplete || f.s.Complete() {
		t.Fatal("level completed early")
	}
	if got := f.s.RemainingText(); got != "1.0" {
		t.Errorf("RemainingText() = %q, want %q", got, "1.0")
	}

	res = f.step(time.Second)
	if !res.LevelComplete || !f.s.Complete() {
		t.Fatal("level should complete when the clock runs out")
	}
	if !f.s.Passed() {
		t.Error("score 1 should pass level 1")
	}

	now := f.s.Now()
	res = f.step(time.Second)
	if !res.LevelComplete || f.s.Now() != now {
		t.Error("a completed session must not advance")
	}
}

func TestStartResetsLevelState(t *testing.T) {
	f := newFixture(t, configWith(sides.ResizeScoreAreas))
	b := f.ball(BallA)
	other := f.ball(BallB)
	f.step(frame, hitSide(b, 0))
	f.step(frame, enterArea(b, BallA))

	f.s.Start()

	if f.s.Score() != 0 {
		t.Errorf("score = %d, want 0", f.s.Score())
	}
	if len(f.s.Balls()) != 0 {
		t.Errorf("balls = %d, want 0", len(f.s.Balls()))
	}
	if !slices.Contains(f.world.despawned, other.Entity) {
		t.Error("live balls must be despawned on restart")
	}
	for _, a := range f.s.ScoreAreas() {
		if a.Radius != a.BaseRadius || a.Resize != nil || a.Flash != nil {
			t.Errorf("area %s not restored", a.Target)
		}
		if f.world.areaRadius[a.Entity] != a.BaseRadius {
			t.Errorf("world radius of area %s not restored", a.Target)
		}
	}
	if f.s.Remaining() != f.s.Level().Duration {
		t.Errorf("remaining = %v, want full duration", f.s.Remaining())
	}
}

func TestNewPanicsWithoutSides(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic without a side configuration")
		}
	}()
	New(Options{World: newFakeWorld()})
}
