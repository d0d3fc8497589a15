package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// Player is the rotating square the balls bounce off. Side i faces the
// direction Angle + pi/2 - i*pi/2, so side 0 starts on top and sides go
// clockwise.
type Player struct {
	Center core.Vec2
	Angle  float64 // Radians, counterclockwise
	Radius float64 // Center to corner

	body    *cp.Body
	sideIDs [sides.Count]core.EntityID

	move core.Vec2 // Requested direction for the next step
	turn float64   // Requested turn for the next step: -1, 0 or 1
}

// localSide returns the endpoints of side id relative to an unrotated center.
func localSide(id sides.ID, radius float64) (core.Vec2, core.Vec2) {
	facing := math.Pi/2 - float64(id)*math.Pi/2
	return core.V(radius, 0).Rotate(facing + math.Pi/4), core.V(radius, 0).Rotate(facing - math.Pi/4)
}

// AddPlayer places the player square at center as a kinematic body. Each side
// bounces balls with the restitution of its configured type.
func (w *World) AddPlayer(center core.Vec2, cfg *sides.Config) *Player {
	p := &Player{Center: center, Radius: w.cfg.PlayerRadius}
	p.body = w.space.AddBody(cp.NewKinematicBody())
	p.body.SetPosition(vec(center))

	for id := sides.ID(0); id < sides.Count; id++ {
		a, b := localSide(id, p.Radius)
		shape := cp.NewSegment(p.body, vec(a), vec(b), sideThickness)
		shape.SetElasticity(cfg.Get(id).Restitution())
		shape.SetFriction(0)
		shape.SetCollisionType(collisionSolid)
		side := w.add(kindSide, &body{body: p.body, shape: shape})
		w.space.AddShape(shape)
		p.sideIDs[id] = side.id
	}
	w.player = p
	return p
}

// SideEntity returns the entity of side id.
func (p *Player) SideEntity(id sides.ID) core.EntityID {
	return p.sideIDs[id]
}

// Drive sets the movement for the next step. move is a direction whose
// components are clamped to [-1, 1]; turn > 0 rotates counterclockwise.
func (p *Player) Drive(move core.Vec2, turn float64) {
	p.move = core.V(core.ClampF(move.X, -1, 1), core.ClampF(move.Y, -1, 1))
	p.turn = core.ClampF(turn, -1, 1)
}

// Side returns the endpoints of side id in world coordinates.
func (p *Player) Side(id sides.ID) (core.Vec2, core.Vec2) {
	a, b := localSide(id, p.Radius)
	return p.Center.Add(a.Rotate(p.Angle)), p.Center.Add(b.Rotate(p.Angle))
}

// drive works out where the requested input takes the square this step,
// keeping it inside the arena, and hands the motion to the kinematic body as
// velocities so balls feel the surface speed.
func (p *Player) drive(secs float64, cfg Config) {
	target := p.Center.Add(p.move.Scale(cfg.MoveSpeed * secs))
	if lim := cfg.HalfSize - p.Radius; lim > 0 {
		target.X = core.ClampF(target.X, -lim, lim)
		target.Y = core.ClampF(target.Y, -lim, lim)
	}
	angVel := p.turn * cfg.RotateSpeed

	p.body.SetPosition(vec(p.Center))
	p.body.SetAngle(p.Angle)
	p.body.SetVelocityVector(vec(target.Sub(p.Center).Scale(1 / secs)))
	p.body.SetAngularVelocity(angVel)

	p.Center = target
	p.Angle = math.Mod(p.Angle+angVel*secs, 2*math.Pi)

	p.move = core.Vec2{}
	p.turn = 0
}

// settle snaps the body onto the exact pose computed by drive and stops it.
func (p *Player) settle() {
	p.body.SetPosition(vec(p.Center))
	p.body.SetAngle(p.Angle)
	p.body.SetVelocityVector(cp.Vector{})
	p.body.SetAngularVelocity(0)
}
