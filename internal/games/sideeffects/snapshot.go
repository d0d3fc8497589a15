package sideeffects

import (
	"math"

	"github.com/vovakirdan/side-effects/internal/session"
)

// Snapshot is the full state of a running level: the rules engine plus the
// bodies the physics world owns, in milli-units.
type Snapshot struct {
	Tick    int
	Paused  bool
	Session session.Snapshot

	// Player is 3 ints: X, Y, Angle (milli-radians).
	Player [3]int64

	// Each ball is 4 ints: X, Y, VX, VY, in session ball order.
	BodyData []int64
}

func milli(v float64) int64 {
	return int64(math.Round(v * 1000))
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.tickCount,
		Paused:  g.paused,
		Session: g.session.Snapshot(),
	}

	p := g.world.Player()
	snap.Player = [3]int64{milli(p.Center.X), milli(p.Center.Y), milli(p.Angle)}

	balls := g.session.Balls()
	snap.BodyData = make([]int64, 0, len(balls)*4)
	for _, b := range balls {
		pos := g.world.Position(b.Entity)
		vel := g.world.Velocity(b.Entity)
		snap.BodyData = append(snap.BodyData, milli(pos.X), milli(pos.Y), milli(vel.X), milli(vel.Y))
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Session.Hash()
	h = h*31 + uint64(snap.Tick) //#nosec G115 -- hash computation
	if snap.Paused {
		h = h*31 + 1
	}
	for _, v := range snap.Player {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BodyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
