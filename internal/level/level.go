// Package level holds the level progression table: the spawn cadence, ball
// mix, spawn geometry, duration, score threshold and unlocks of every level.
// Levels 1-5 are hand-authored; later levels follow a fixed difficulty ramp.
package level

import (
	"math"
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// Ramp applied to every generated level after the last hand-authored one.
const (
	RampBallsPerGroup = 1
	RampMinImpulse    = 3.0
	RampMinScore      = 3
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Lerp maps f in [0, 1) onto the range.
func (r Range) Lerp(f float64) float64 {
	return r.Min + (r.Max-r.Min)*f
}

// SpawnPoint is a place balls are launched from.
type SpawnPoint struct {
	Position  core.Vec2 // Center of the spawn box
	MaxOffset core.Vec2 // Half extents of the spawn box
	ImpulseX  Range     // Initial impulse, x component
	ImpulseY  Range     // Initial impulse, y component (negative is down)
}

// steeper widens the launch impulse by d along the point's launch axis,
// away from zero. The weakest launch of the point stays as it was.
func (sp SpawnPoint) steeper(d float64) SpawnPoint {
	r := &sp.ImpulseY
	if math.Abs(sp.ImpulseX.Lerp(0.5)) > math.Abs(sp.ImpulseY.Lerp(0.5)) {
		r = &sp.ImpulseX
	}
	if r.Lerp(0.5) < 0 {
		r.Min -= d
	} else {
		r.Max += d
	}
	return sp
}

// Settings describes one level. Treat it as immutable; Next and Clone return
// deep copies.
type Settings struct {
	ID int

	TimeBetweenSpawnsInGroup time.Duration
	TimeBetweenGroups        time.Duration
	BallsPerGroup            int
	MaxRespiteTime           time.Duration

	// Types A and C are always active; B and D are gated per level.
	BallTypeB bool
	BallTypeD bool

	SpawnPoints []SpawnPoint
	Duration    time.Duration
	MinScore    int

	SidesToUnlock []sides.Type
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	c := s
	c.SpawnPoints = append([]SpawnPoint(nil), s.SpawnPoints...)
	c.SidesToUnlock = append([]sides.Type(nil), s.SidesToUnlock...)
	return c
}

var (
	spawnTop = SpawnPoint{
		Position:  core.V(0, 300),
		MaxOffset: core.V(120, 10),
		ImpulseX:  Range{Min: -4, Max: 4},
		ImpulseY:  Range{Min: -15, Max: -8},
	}
	spawnLeft = SpawnPoint{
		Position:  core.V(-300, 0),
		MaxOffset: core.V(10, 100),
		ImpulseX:  Range{Min: 8, Max: 15},
		ImpulseY:  Range{Min: -4, Max: 4},
	}
	spawnRight = SpawnPoint{
		Position:  core.V(300, 0),
		MaxOffset: core.V(10, 100),
		ImpulseX:  Range{Min: -15, Max: -8},
		ImpulseY:  Range{Min: -4, Max: 4},
	}
	spawnBottom = SpawnPoint{
		Position:  core.V(0, -300),
		MaxOffset: core.V(120, 10),
		ImpulseX:  Range{Min: -4, Max: 4},
		ImpulseY:  Range{Min: 8, Max: 15},
	}
)

// builtin returns the hand-authored levels, in order.
func builtin() []Settings {
	return []Settings{
		{
			ID:                       1,
			TimeBetweenSpawnsInGroup: 1500 * time.Millisecond,
			TimeBetweenGroups:        5 * time.Second,
			BallsPerGroup:            2,
			MaxRespiteTime:           2 * time.Second,
			SpawnPoints:              []SpawnPoint{spawnTop},
			Duration:                 32 * time.Second,
			MinScore:                 1,
			SidesToUnlock:            []sides.Type{sides.FreezeOthers},
		},
		{
			ID:                       2,
			TimeBetweenSpawnsInGroup: 1200 * time.Millisecond,
			TimeBetweenGroups:        5 * time.Second,
			BallsPerGroup:            3,
			MaxRespiteTime:           2 * time.Second,
			BallTypeB:                true,
			SpawnPoints:              []SpawnPoint{spawnTop},
			Duration:                 40 * time.Second,
			MinScore:                 5,
			SidesToUnlock:            []sides.Type{sides.Duplicate},
		},
		{
			ID:                       3,
			TimeBetweenSpawnsInGroup: time.Second,
			TimeBetweenGroups:        4500 * time.Millisecond,
			BallsPerGroup:            3,
			MaxRespiteTime:           2 * time.Second,
			BallTypeB:                true,
			SpawnPoints:              []SpawnPoint{spawnTop, spawnLeft},
			Duration:                 45 * time.Second,
			MinScore:                 10,
			SidesToUnlock:            []sides.Type{sides.ResizeScoreAreas, sides.BounceBackwards},
		},
		{
			ID:                       4,
			TimeBetweenSpawnsInGroup: time.Second,
			TimeBetweenGroups:        4 * time.Second,
			BallsPerGroup:            4,
			MaxRespiteTime:           1500 * time.Millisecond,
			BallTypeB:                true,
			BallTypeD:                true,
			SpawnPoints:              []SpawnPoint{spawnTop, spawnLeft, spawnRight},
			Duration:                 50 * time.Second,
			MinScore:                 15,
			SidesToUnlock:            []sides.Type{sides.Destroy, sides.ExtraPoints},
		},
		{
			ID:                       5,
			TimeBetweenSpawnsInGroup: 800 * time.Millisecond,
			TimeBetweenGroups:        4 * time.Second,
			BallsPerGroup:            4,
			MaxRespiteTime:           1500 * time.Millisecond,
			BallTypeB:                true,
			BallTypeD:                true,
			SpawnPoints:              []SpawnPoint{spawnTop, spawnLeft, spawnRight, spawnBottom},
			Duration:                 60 * time.Second,
			MinScore:                 20,
			SidesToUnlock:            []sides.Type{sides.ExtremeBounce},
		},
	}
}

// First returns the settings of level 1.
func First() Settings {
	return builtin()[0]
}

// Next returns the level that follows cur. It never fails: past the
// hand-authored levels every call applies the difficulty ramp once more.
func Next(cur Settings) Settings {
	levels := builtin()
	if cur.ID >= 1 && cur.ID < len(levels) {
		return levels[cur.ID]
	}

	next := cur.Clone()
	next.ID = cur.ID + 1
	next.BallsPerGroup += RampBallsPerGroup
	for i := range next.SpawnPoints {
		next.SpawnPoints[i] = next.SpawnPoints[i].steeper(RampMinImpulse)
	}
	next.MinScore += RampMinScore
	next.SidesToUnlock = nil
	return next
}

// ByID returns the settings of level id (1-based) by walking Next from First.
// Ids below 1 yield level 1.
func ByID(id int) Settings {
	s := First()
	for s.ID < id {
		s = Next(s)
	}
	return s
}

// HandAuthoredCount returns how many levels are defined explicitly.
func HandAuthoredCount() int {
	return len(builtin())
}
