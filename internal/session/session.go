// Package session implements the side-effect resolution engine for one level
// attempt: ball spawning, collision classification, effect application with
// timed reversion and cooldowns, the score ledger and the level clock.
//
// A Session is driven by a single goroutine. Time is simulated: the host
// advances it through Update, and every timed state is polled once per tick.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/level"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// World is the physics collaborator. It owns positions, velocities and body
// kinds; the session only reads and nudges them.
type World interface {
	SpawnBall(pos, vel core.Vec2, radius float64) core.EntityID
	Despawn(id core.EntityID)
	Position(id core.EntityID) core.Vec2
	SetPosition(id core.EntityID, pos core.Vec2)
	Velocity(id core.EntityID) core.Vec2
	SetVelocity(id core.EntityID, vel core.Vec2)
	ApplyImpulse(id core.EntityID, impulse core.Vec2)
	// SetFixed switches a ball between a dynamic body and a fixed one.
	SetFixed(id core.EntityID, fixed bool)
	SetBallRadius(id core.EntityID, radius float64)
	SetAreaRadius(id core.EntityID, radius float64)
	// SidePosition returns the world position of the middle of a player side.
	SidePosition(id sides.ID) core.Vec2
}

// CuePlayer is the audio collaborator. Play must not block.
type CuePlayer interface {
	Play(cue core.Cue, volume float64)
}

type silentCues struct{}

func (silentCues) Play(core.Cue, float64) {}

// Options configure a new Session.
type Options struct {
	Level  level.Settings
	Sides  *sides.Config
	World  World
	Cues   CuePlayer // nil plays nothing
	Params Params
	Seed   int64
	Logger *log.Logger // nil discards logs
}

// TickResult reports what happened during one Update.
type TickResult struct {
	LevelComplete bool
	Spawned       int
	Despawned     []core.EntityID
}

// Session is the explicit state of one level attempt.
type Session struct {
	params Params
	level  level.Settings
	sides  *sides.Config
	world  World
	cues   CuePlayer
	logger *log.Logger
	rng    *core.RNG

	now time.Duration

	balls     []*Ball
	ballIndex map[core.EntityID]*Ball
	areas     []*ScoreArea
	areaIndex map[core.EntityID]*ScoreArea
	sideIndex map[core.EntityID]sides.ID

	despawnQueue []core.EntityID
	despawnSet   map[core.EntityID]bool

	score    Ledger
	clock    Clock
	spawner  Spawner
	complete bool
}

// New creates a session. Register the player sides and score areas, then
// call Start.
func New(opts Options) *Session {
	if opts.Sides == nil {
		panic("session: side configuration is required")
	}
	if opts.World == nil {
		panic("session: world is required")
	}
	cues := opts.Cues
	if cues == nil {
		cues = silentCues{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	lvl := opts.Level.Clone()
	if f := opts.Params.RespiteScale; f > 0 {
		lvl.MaxRespiteTime = time.Duration(float64(lvl.MaxRespiteTime) * f)
	}

	return &Session{
		params:     opts.Params,
		level:      lvl,
		sides:      opts.Sides,
		world:      opts.World,
		cues:       cues,
		logger:     logger,
		rng:        core.NewRNG(opts.Seed),
		ballIndex:  make(map[core.EntityID]*Ball),
		areaIndex:  make(map[core.EntityID]*ScoreArea),
		sideIndex:  make(map[core.EntityID]sides.ID),
		despawnSet: make(map[core.EntityID]bool),
	}
}

// RegisterSide tells the session that entity is side id of the player shape.
func (s *Session) RegisterSide(entity core.EntityID, id sides.ID) {
	s.sideIndex[entity] = id
}

// RegisterScoreArea tells the session that entity is the score area for target.
func (s *Session) RegisterScoreArea(entity core.EntityID, target BallType, radius float64) *ScoreArea {
	a := &ScoreArea{
		Entity:     entity,
		Target:     target,
		Radius:     radius,
		BaseRadius: radius,
	}
	s.areas = append(s.areas, a)
	s.areaIndex[entity] = a
	return a
}

// Start (re)starts the level: removes every ball, restores the score areas,
// resets the score to zero and arms the level clock.
func (s *Session) Start() {
	for _, b := range s.balls {
		s.world.Despawn(b.Entity)
	}
	s.balls = nil
	s.ballIndex = make(map[core.EntityID]*Ball)
	s.despawnQueue = nil
	s.despawnSet = make(map[core.EntityID]bool)

	for _, a := range s.areas {
		if a.Radius != a.BaseRadius {
			a.Radius = a.BaseRadius
			s.world.SetAreaRadius(a.Entity, a.Radius)
		}
		a.Resize = nil
		a.Flash = nil
	}

	s.score.Reset()
	s.clock.Arm(s.now, s.level.Duration)
	s.spawner.Reset(s.now)
	s.complete = false

	s.logger.Info("level started", "level", s.level.ID, "duration", s.level.Duration, "min_score", s.level.MinScore)
}

// Update advances simulated time by dt and runs one tick: spawning, the
// collision batch from the physics step, deferred despawns, timed reversion
// sweeps and the level clock.
func (s *Session) Update(dt time.Duration, collisions []core.Collision) TickResult {
	var res TickResult
	if s.complete {
		res.LevelComplete = true
		return res
	}

	s.now += dt

	if s.spawnTick() {
		res.Spawned++
	}

	s.Resolve(collisions)
	res.Despawned = s.flushDespawns()
	s.sweep()

	if s.clock.Expired(s.now) {
		s.complete = true
		res.LevelComplete = true
		s.logger.Info("level complete", "level", s.level.ID, "score", s.score.Value(), "passed", s.score.Meets(s.level.MinScore))
	}
	return res
}

// Resolve classifies a batch of collisions in arrival order, scores balls,
// queues side effects and then applies every pending effect. Despawns are
// only queued; they run in flushDespawns.
func (s *Session) Resolve(collisions []core.Collision) {
	for _, ev := range collisions {
		c := s.Classify(ev)
		if c.Kind == ClassIgnored {
			continue
		}
		if s.despawnSet[c.Ball.Entity] {
			continue
		}

		switch c.Kind {
		case ClassScored:
			s.scoreBall(c.Ball, c.Area)
		case ClassHitSide:
			c.Ball.pending = append(c.Ball.pending, Effect{Kind: EffectFor(c.SideType), Side: c.Side})
		case ClassHitWall:
			s.cues.Play(core.CueHit, s.params.HitVolume)
		}
	}

	s.applyPending()
}

// queueDespawn marks a ball for removal at the end of the tick.
func (s *Session) queueDespawn(b *Ball) {
	if s.despawnSet[b.Entity] {
		return
	}
	s.despawnSet[b.Entity] = true
	s.despawnQueue = append(s.despawnQueue, b.Entity)
}

// flushDespawns removes every queued ball from the world and the session.
func (s *Session) flushDespawns() []core.EntityID {
	if len(s.despawnQueue) == 0 {
		return nil
	}

	removed := s.despawnQueue
	for _, id := range removed {
		s.world.Despawn(id)
		delete(s.ballIndex, id)
	}

	live := s.balls[:0]
	for _, b := range s.balls {
		if !s.despawnSet[b.Entity] {
			live = append(live, b)
		}
	}
	for i := len(live); i < len(s.balls); i++ {
		s.balls[i] = nil
	}
	s.balls = live

	s.despawnQueue = nil
	s.despawnSet = make(map[core.EntityID]bool)
	return removed
}

// addBall registers a ball the world has just spawned.
func (s *Session) addBall(b *Ball) {
	s.balls = append(s.balls, b)
	s.ballIndex[b.Entity] = b
}

// AddBall spawns a ball of type t outside of the spawner's schedule.
func (s *Session) AddBall(t BallType, pos, vel core.Vec2) *Ball {
	id := s.world.SpawnBall(pos, vel, s.params.BallRadius)
	b := &Ball{Entity: id, Type: t, Points: 1, Radius: s.params.BallRadius}
	s.addBall(b)
	return b
}

// Now returns the simulated time since the session was created.
func (s *Session) Now() time.Duration {
	return s.now
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score.Value()
}

// Level returns the settings of the level being played.
func (s *Session) Level() level.Settings {
	return s.level.Clone()
}

// Remaining returns the time left on the level clock.
func (s *Session) Remaining() time.Duration {
	return s.clock.Remaining(s.now)
}

// RemainingText returns the countdown as displayed in the HUD.
func (s *Session) RemainingText() string {
	return s.clock.FormatRemaining(s.now)
}

// Complete reports whether the level clock has run out.
func (s *Session) Complete() bool {
	return s.complete
}

// Passed reports whether the current score meets the level's minimum.
func (s *Session) Passed() bool {
	return s.score.Meets(s.level.MinScore)
}

// Balls returns the live balls in spawn order. The slice must not be modified.
func (s *Session) Balls() []*Ball {
	return s.balls
}

// Ball returns the live ball with the given entity, or nil.
func (s *Session) Ball(id core.EntityID) *Ball {
	return s.ballIndex[id]
}

// ScoreAreas returns the registered score areas.
func (s *Session) ScoreAreas() []*ScoreArea {
	return s.areas
}

// SideConfig returns the side configuration the session plays with.
func (s *Session) SideConfig() *sides.Config {
	return s.sides
}
