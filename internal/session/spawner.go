package session

import (
	"fmt"
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/level"
)

// Spawner is the wave state of the ball spawner.
type Spawner struct {
	NextSpawn      time.Duration
	SpawnedInGroup int
}

// Reset schedules the first spawn for now.
func (sp *Spawner) Reset(now time.Duration) {
	sp.NextSpawn = now
	sp.SpawnedInGroup = 0
}

// spawnTick runs the spawner once. Returns true if a ball was spawned.
func (s *Session) spawnTick() bool {
	sp := &s.spawner
	lvl := &s.level

	// An empty board never waits longer than the respite time.
	if len(s.balls) == 0 && sp.NextSpawn-s.now > lvl.MaxRespiteTime {
		sp.NextSpawn = s.now + lvl.MaxRespiteTime
		return false
	}
	if s.now < sp.NextSpawn {
		return false
	}

	s.spawnBall()

	sp.SpawnedInGroup++
	if sp.SpawnedInGroup >= lvl.BallsPerGroup {
		sp.SpawnedInGroup = 0
		sp.NextSpawn = s.now + lvl.TimeBetweenGroups
	} else {
		sp.NextSpawn = s.now + lvl.TimeBetweenSpawnsInGroup
	}
	return true
}

// spawnBall launches one random ball from a random spawn point.
func (s *Session) spawnBall() *Ball {
	points := s.level.SpawnPoints
	if len(points) == 0 {
		panic(fmt.Sprintf("session: level %d has no spawn points", s.level.ID))
	}

	types := ActiveBallTypes(s.level)
	t := types[s.rng.Intn(len(types))]
	sp := points[s.rng.Intn(len(points))]

	pos := sp.Position.Add(core.V(
		s.rng.Signed()*sp.MaxOffset.X,
		s.rng.Signed()*sp.MaxOffset.Y,
	))
	impulse := core.V(sp.ImpulseX.Lerp(s.rng.Float64()), sp.ImpulseY.Lerp(s.rng.Float64()))
	vel := impulse.Scale(1 / s.params.BallMass)

	b := s.AddBall(t, pos, vel)
	s.cues.Play(core.CueLaunch, s.params.CueVolume)
	s.logger.Debug("ball spawned", "entity", b.Entity, "type", t, "pos", pos)
	return b
}

// ActiveBallTypes returns the ball types a level spawns. A and C are always
// active; B and D are gated per level.
func ActiveBallTypes(l level.Settings) []BallType {
	types := []BallType{BallA, BallC}
	if l.BallTypeB {
		types = append(types, BallB)
	}
	if l.BallTypeD {
		types = append(types, BallD)
	}
	return types
}
