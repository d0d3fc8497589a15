package session

import (
	"testing"
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/level"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// fakeWorld records every call the session makes to the physics world.
type fakeWorld struct {
	next       core.EntityID
	pos        map[core.EntityID]core.Vec2
	vel        map[core.EntityID]core.Vec2
	fixed      map[core.EntityID]bool
	ballRadius map[core.EntityID]float64
	areaRadius map[core.EntityID]float64
	despawned  []core.EntityID
	sidePos    [sides.Count]core.Vec2
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		next:       100,
		pos:        make(map[core.EntityID]core.Vec2),
		vel:        make(map[core.EntityID]core.Vec2),
		fixed:      make(map[core.EntityID]bool),
		ballRadius: make(map[core.EntityID]float64),
		areaRadius: make(map[core.EntityID]float64),
		sidePos: [sides.Count]core.Vec2{
			core.V(0, 50), core.V(50, 0), core.V(0, -50), core.V(-50, 0),
		},
	}
}

func (w *fakeWorld) SpawnBall(pos, vel core.Vec2, radius float64) core.EntityID {
	w.next++
	w.pos[w.next] = pos
	w.vel[w.next] = vel
	w.ballRadius[w.next] = radius
	return w.next
}

func (w *fakeWorld) Despawn(id core.EntityID) {
	w.despawned = append(w.despawned, id)
	delete(w.pos, id)
	delete(w.vel, id)
}

func (w *fakeWorld) Position(id core.EntityID) core.Vec2        { return w.pos[id] }
func (w *fakeWorld) SetPosition(id core.EntityID, p core.Vec2)  { w.pos[id] = p }
func (w *fakeWorld) Velocity(id core.EntityID) core.Vec2        { return w.vel[id] }
func (w *fakeWorld) SetVelocity(id core.EntityID, v core.Vec2)  { w.vel[id] = v }
func (w *fakeWorld) ApplyImpulse(id core.EntityID, j core.Vec2) { w.vel[id] = w.vel[id].Add(j) }
func (w *fakeWorld) SetFixed(id core.EntityID, fixed bool)      { w.fixed[id] = fixed }
func (w *fakeWorld) SetBallRadius(id core.EntityID, r float64)  { w.ballRadius[id] = r }
func (w *fakeWorld) SetAreaRadius(id core.EntityID, r float64)  { w.areaRadius[id] = r }
func (w *fakeWorld) SidePosition(id sides.ID) core.Vec2         { return w.sidePos[id] }

// fakeCues records played cues in order.
type fakeCues struct {
	played []core.Cue
}

func (c *fakeCues) Play(cue core.Cue, _ float64) {
	c.played = append(c.played, cue)
}

func (c *fakeCues) count(cue core.Cue) int {
	n := 0
	for _, p := range c.played {
		if p == cue {
			n++
		}
	}
	return n
}

// Entity ids of the fixture's static bodies.
const (
	wallEntity core.EntityID = 1
	sideBase   core.EntityID = 10 // sides are sideBase+id
	areaBase   core.EntityID = 20 // areas are areaBase+BallType
)

type fixture struct {
	s     *Session
	world *fakeWorld
	cues  *fakeCues
}

// newFixture builds a started session with every side, score area and a
// wall registered. The spawner is parked so tests control every ball.
func newFixture(t *testing.T, cfg [sides.Count]sides.Type) *fixture {
	t.Helper()

	lvl := level.First()
	lvl.BallTypeB = true
	lvl.BallTypeD = true
	lvl.MaxRespiteTime = time.Hour

	f := newLevelFixture(t, lvl, cfg)
	f.s.spawner.NextSpawn = time.Hour
	return f
}

// newLevelFixture builds a started session playing lvl with a live spawner.
func newLevelFixture(t *testing.T, lvl level.Settings, cfg [sides.Count]sides.Type) *fixture {
	t.Helper()

	w := newFakeWorld()
	c := &fakeCues{}
	s := New(Options{
		Level:  lvl,
		Sides:  sides.NewConfig(cfg),
		World:  w,
		Cues:   c,
		Params: DefaultParams(),
		Seed:   1,
	})
	for id := sides.ID(0); id < sides.Count; id++ {
		s.RegisterSide(sideBase+core.EntityID(id), id)
	}
	for bt := BallA; bt < BallTypeCount; bt++ {
		s.RegisterScoreArea(areaBase+core.EntityID(bt), bt, 90)
	}
	s.Start()

	return &fixture{s: s, world: w, cues: c}
}

func (f *fixture) ball(t BallType) *Ball {
	return f.s.AddBall(t, core.V(0, 100), core.V(0, -200))
}

func hitSide(b *Ball, id sides.ID) core.Collision {
	return core.Collision{A: b.Entity, B: sideBase + core.EntityID(id)}
}

func enterArea(b *Ball, t BallType) core.Collision {
	return core.Collision{A: areaBase + core.EntityID(t), B: b.Entity}
}

func (f *fixture) area(t BallType) *ScoreArea {
	return f.s.areaIndex[areaBase+core.EntityID(t)]
}

// step advances the session by d with one collision batch.
func (f *fixture) step(d time.Duration, events ...core.Collision) TickResult {
	return f.s.Update(d, events)
}

func configWith(side0 sides.Type) [sides.Count]sides.Type {
	return [sides.Count]sides.Type{side0, sides.NothingSpecial, sides.NothingSpecial, sides.NothingSpecial}
}
