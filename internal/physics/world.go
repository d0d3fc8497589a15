// Package physics is the 2D world the game runs in: circular balls, the
// rotating player square, the arena walls and circular score-area sensors.
//
// Bodies live in a Chipmunk2D space. Balls are dynamic circles, walls are
// static segments, score areas are static sensor circles and the player is a
// kinematic body carrying four segments. Elasticity of the touching shapes
// multiplies, so a side's restitution applies against a ball's unit
// elasticity. Coordinates are world units with y pointing up.
package physics

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// Config describes the static layout of a world.
type Config struct {
	HalfSize        float64 // Arena half extent; walls sit at +-HalfSize
	WallRestitution float64
	Gravity         float64 // Downward acceleration, units/s^2
	BallMass        float64 // Mass used to turn impulses into velocity
	MaxBallSpeed    float64 // Speeds above this are clamped; 0 disables

	PlayerRadius float64 // Distance from the player center to its corners
	MoveSpeed    float64 // Units per second
	RotateSpeed  float64 // Radians per second
}

// DefaultConfig returns the layout of the standard arena.
func DefaultConfig() Config {
	return Config{
		HalfSize:        350,
		WallRestitution: 1,
		BallMass:        0.05,
		MaxBallSpeed:    1800,
		PlayerRadius:    50,
		MoveSpeed:       400,
		RotateSpeed:     3,
	}
}

const (
	collisionBall cp.CollisionType = iota + 1
	collisionSolid
	collisionArea

	wallThickness = 8 // Segment radius of the arena walls
	sideThickness = 2 // Segment radius of the player sides
	maxSubsteps   = 16
)

type kind int

const (
	kindBall kind = iota + 1
	kindSide
	kindWall
	kindArea
)

// body is one entity of the world. Walls, areas and sides share the space's
// static or the player's kinematic body; balls own theirs.
type body struct {
	id     core.EntityID
	kind   kind
	body   *cp.Body
	shape  *cp.Shape
	pos    core.Vec2 // Areas only
	radius float64
	fixed  bool
}

// pair is an unordered contact key with A < B.
type pair struct {
	A, B core.EntityID
}

func makePair(a, b core.EntityID) pair {
	if a > b {
		a, b = b, a
	}
	return pair{A: a, B: b}
}

// World wraps a cp.Space. It is not safe for concurrent use.
type World struct {
	cfg    Config
	space  *cp.Space
	nextID core.EntityID

	bodies map[core.EntityID]*body
	balls  []*body // Spawn order
	walls  []*body
	areas  []*body

	player *Player

	// Contacts that began during the current Step.
	began  map[pair]bool
	events []core.Collision
}

// New creates an empty world. Call AddArena and AddPlayer to populate it.
func New(cfg Config) *World {
	if cfg.BallMass <= 0 {
		cfg.BallMass = 1
	}
	w := &World{
		cfg:    cfg,
		space:  cp.NewSpace(),
		bodies: make(map[core.EntityID]*body),
		began:  make(map[pair]bool),
	}
	w.space.SetGravity(cp.Vector{Y: -cfg.Gravity})

	handler := w.space.NewWildcardCollisionHandler(collisionBall)
	handler.BeginFunc = w.begin
	return w
}

// begin records a contact start. It runs inside cp.Space.Step, so it only
// buffers; the session reacts after the step.
func (w *World) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	sa, sb := arb.Shapes()
	a, okA := sa.UserData.(*body)
	b, okB := sb.UserData.(*body)
	if !okA || !okB {
		return true
	}
	p := makePair(a.id, b.id)
	if !w.began[p] {
		w.began[p] = true
		w.events = append(w.events, core.Collision{A: p.A, B: p.B})
	}
	return true
}

// Config returns the world layout.
func (w *World) Config() Config {
	return w.cfg
}

func (w *World) add(k kind, b *body) *body {
	w.nextID++
	b.id = w.nextID
	b.kind = k
	if b.shape != nil {
		b.shape.UserData = b
	}
	w.bodies[b.id] = b
	return b
}

func vec(v core.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVec(v cp.Vector) core.Vec2 {
	return core.V(v.X, v.Y)
}

// AddArena adds the four walls bounding the play area and returns their ids.
// Each wall is a thick segment whose inner face sits on the arena edge.
func (w *World) AddArena() [4]core.EntityID {
	h := w.cfg.HalfSize + wallThickness
	corners := [4]core.Vec2{core.V(-h, -h), core.V(-h, h), core.V(h, h), core.V(h, -h)}

	var ids [4]core.EntityID
	for i := range corners {
		shape := cp.NewSegment(w.space.StaticBody, vec(corners[i]), vec(corners[(i+1)%len(corners)]), wallThickness)
		shape.SetElasticity(w.cfg.WallRestitution)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionSolid)
		wall := w.add(kindWall, &body{body: w.space.StaticBody, shape: shape})
		w.space.AddShape(shape)
		w.walls = append(w.walls, wall)
		ids[i] = wall.id
	}
	return ids
}

func (w *World) newAreaShape(pos core.Vec2, radius float64) *cp.Shape {
	shape := cp.NewCircle(w.space.StaticBody, radius, vec(pos))
	shape.SetSensor(true)
	shape.SetCollisionType(collisionArea)
	return shape
}

// AddArea adds a circular sensor. Balls overlapping it report a contact but
// are not deflected.
func (w *World) AddArea(pos core.Vec2, radius float64) core.EntityID {
	a := w.add(kindArea, &body{
		body:   w.space.StaticBody,
		shape:  w.newAreaShape(pos, radius),
		pos:    pos,
		radius: radius,
	})
	w.space.AddShape(a.shape)
	w.areas = append(w.areas, a)
	return a.id
}

func (w *World) newBallShape(b *cp.Body, radius float64) *cp.Shape {
	shape := cp.NewCircle(b, radius, cp.Vector{})
	shape.SetElasticity(1)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionBall)
	return shape
}

func (w *World) setBallMass(b *body) {
	m := w.cfg.BallMass
	b.body.SetMass(m)
	b.body.SetMoment(cp.MomentForCircle(m, 0, b.radius, cp.Vector{}))
}

// SpawnBall adds a dynamic ball.
func (w *World) SpawnBall(pos, vel core.Vec2, radius float64) core.EntityID {
	m := w.cfg.BallMass
	cb := w.space.AddBody(cp.NewBody(m, cp.MomentForCircle(m, 0, radius, cp.Vector{})))
	cb.SetPosition(vec(pos))
	cb.SetVelocityVector(vec(vel))

	b := w.add(kindBall, &body{body: cb, shape: w.newBallShape(cb, radius), radius: radius})
	w.space.AddShape(b.shape)
	w.balls = append(w.balls, b)
	return b.id
}

// Despawn removes a ball from the space. Unknown ids are ignored.
func (w *World) Despawn(id core.EntityID) {
	b := w.ball(id)
	if b == nil {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.bodies, id)
	w.balls = slices.DeleteFunc(w.balls, func(x *body) bool { return x == b })
}

func (w *World) ball(id core.EntityID) *body {
	if b := w.bodies[id]; b != nil && b.kind == kindBall {
		return b
	}
	return nil
}

func (w *World) area(id core.EntityID) *body {
	if a := w.bodies[id]; a != nil && a.kind == kindArea {
		return a
	}
	return nil
}

// Position returns the center of a ball or area, or the zero vector for
// unknown ids.
func (w *World) Position(id core.EntityID) core.Vec2 {
	if b := w.ball(id); b != nil {
		return fromVec(b.body.Position())
	}
	if a := w.area(id); a != nil {
		return a.pos
	}
	return core.Vec2{}
}

// SetPosition teleports a ball.
func (w *World) SetPosition(id core.EntityID, pos core.Vec2) {
	if b := w.ball(id); b != nil {
		b.body.SetPosition(vec(pos))
	}
}

// Velocity returns a ball's velocity. Fixed balls report zero.
func (w *World) Velocity(id core.EntityID) core.Vec2 {
	if b := w.ball(id); b != nil && !b.fixed {
		return fromVec(b.body.Velocity())
	}
	return core.Vec2{}
}

// SetVelocity sets a ball's velocity. Fixed balls ignore it.
func (w *World) SetVelocity(id core.EntityID, vel core.Vec2) {
	if b := w.ball(id); b != nil && !b.fixed {
		b.body.SetVelocityVector(vec(vel))
	}
}

// ApplyImpulse changes a ball's velocity by impulse / mass.
func (w *World) ApplyImpulse(id core.EntityID, impulse core.Vec2) {
	if b := w.ball(id); b != nil && !b.fixed {
		b.body.ApplyImpulseAtWorldPoint(vec(impulse), b.body.Position())
	}
}

// SetFixed turns a ball into a kinematic body at rest, or back into a dynamic
// one. Moving balls still collide with a fixed ball; walls and sensors do not.
func (w *World) SetFixed(id core.EntityID, fixed bool) {
	b := w.ball(id)
	if b == nil || b.fixed == fixed {
		return
	}
	b.fixed = fixed
	if fixed {
		b.body.SetType(cp.BODY_KINEMATIC)
		b.body.SetVelocityVector(cp.Vector{})
		return
	}
	b.body.SetType(cp.BODY_DYNAMIC)
	w.setBallMass(b)
}

// IsFixed reports whether a ball is pinned.
func (w *World) IsFixed(id core.EntityID) bool {
	b := w.ball(id)
	return b != nil && b.fixed
}

// SetBallRadius resizes a ball by swapping its circle shape.
func (w *World) SetBallRadius(id core.EntityID, radius float64) {
	b := w.ball(id)
	if b == nil || b.radius == radius {
		return
	}
	w.space.RemoveShape(b.shape)
	b.radius = radius
	b.shape = w.newBallShape(b.body, radius)
	b.shape.UserData = b
	w.space.AddShape(b.shape)
	if !b.fixed {
		w.setBallMass(b)
	}
}

// BallRadius returns a ball's radius, or 0 for unknown ids.
func (w *World) BallRadius(id core.EntityID) float64 {
	if b := w.ball(id); b != nil {
		return b.radius
	}
	return 0
}

// SetAreaRadius resizes a score-area sensor.
func (w *World) SetAreaRadius(id core.EntityID, radius float64) {
	a := w.area(id)
	if a == nil || a.radius == radius {
		return
	}
	w.space.RemoveShape(a.shape)
	a.radius = radius
	a.shape = w.newAreaShape(a.pos, radius)
	a.shape.UserData = a
	w.space.AddShape(a.shape)
}

// AreaRadius returns a sensor's radius, or 0 for unknown ids.
func (w *World) AreaRadius(id core.EntityID) float64 {
	if a := w.area(id); a != nil {
		return a.radius
	}
	return 0
}

// SidePosition returns the midpoint of a player side.
func (w *World) SidePosition(id sides.ID) core.Vec2 {
	if w.player == nil {
		return core.Vec2{}
	}
	a, b := w.player.Side(id)
	return a.Add(b).Scale(0.5)
}

// Player returns the player square, or nil before AddPlayer.
func (w *World) Player() *Player {
	return w.player
}

// Step advances the world by dt and returns the contacts that started during
// the step, ordered by entity ids. Fast balls are integrated in substeps so
// they cannot skip through a segment.
func (w *World) Step(dt time.Duration) []core.Collision {
	secs := dt.Seconds()
	if secs <= 0 {
		return nil
	}

	if w.player != nil {
		w.player.drive(secs, w.cfg)
	}

	n := w.substeps(secs)
	h := secs / float64(n)
	for range n {
		w.space.Step(h)
		w.limitBalls()
	}

	if w.player != nil {
		w.player.settle()
	}

	events := w.events
	w.events = nil
	clear(w.began)
	slices.SortFunc(events, func(a, b core.Collision) int {
		if c := cmp.Compare(a.A, b.A); c != 0 {
			return c
		}
		return cmp.Compare(a.B, b.B)
	})
	return events
}

func (w *World) substeps(secs float64) int {
	n := 1
	for _, b := range w.balls {
		if b.fixed || b.radius <= 0 {
			continue
		}
		travel := b.body.Velocity().Length() * secs
		if k := int(math.Ceil(travel / (b.radius * 0.5))); k > n {
			n = k
		}
	}
	return core.Clamp(n, 1, maxSubsteps)
}

// limitBalls clamps ball speed and puts back any ball that escaped the arena.
func (w *World) limitBalls() {
	for _, b := range w.balls {
		if b.fixed {
			continue
		}
		vel := fromVec(b.body.Velocity())
		if limit := w.cfg.MaxBallSpeed; limit > 0 {
			if l := vel.Len(); l > limit {
				vel = vel.Scale(limit / l)
				b.body.SetVelocityVector(vec(vel))
			}
		}

		lim := w.cfg.HalfSize - b.radius
		if lim <= 0 || len(w.walls) == 0 {
			continue
		}
		pos := fromVec(b.body.Position())
		if pos.X >= -lim && pos.X <= lim && pos.Y >= -lim && pos.Y <= lim {
			continue
		}
		if pos.X < -lim || pos.X > lim {
			pos.X = core.ClampF(pos.X, -lim, lim)
			vel.X = -vel.X
		}
		if pos.Y < -lim || pos.Y > lim {
			pos.Y = core.ClampF(pos.Y, -lim, lim)
			vel.Y = -vel.Y
		}
		b.body.SetPosition(vec(pos))
		b.body.SetVelocityVector(vec(vel))
	}
}
