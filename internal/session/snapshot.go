package session

import (
	"math"
	"time"
)

// Snapshot is the rules-engine state of a session, flattened to primitives.
// Positions and velocities belong to the World and are not included.
type Snapshot struct {
	Now      time.Duration
	Level    int
	Score    int
	Complete bool

	NextSpawn      time.Duration
	SpawnedInGroup int

	// Each ball is 6 ints: Entity, Type, Points, Upgraded, FrozenUntil, CooldownUntil.
	// Absent timers are stored as -1.
	BallData []int64

	// Each area is 4 ints: Target, Radius (milli-units), ResizeUntil, FlashUntil.
	AreaData []int64

	RNGState uint64
}

const ballStride, areaStride = 6, 4

// Snapshot captures the current rules-engine state.
func (s *Session) Snapshot() Snapshot {
	ballData := make([]int64, 0, len(s.balls)*ballStride)
	for _, b := range s.balls {
		upgraded := int64(0)
		if b.Upgraded {
			upgraded = 1
		}
		frozen, cooldown := int64(-1), int64(-1)
		if b.Frozen != nil {
			frozen = int64(b.Frozen.Until)
		}
		if b.Cooldown != nil {
			cooldown = int64(b.Cooldown.Until)
		}
		ballData = append(ballData,
			int64(b.Entity), //#nosec G115 -- entity ids are small
			int64(b.Type),
			int64(b.Points),
			upgraded,
			frozen,
			cooldown,
		)
	}

	areaData := make([]int64, 0, len(s.areas)*areaStride)
	for _, a := range s.areas {
		resize, flash := int64(-1), int64(-1)
		if a.Resize != nil {
			resize = int64(a.Resize.Until)
		}
		if a.Flash != nil {
			flash = int64(a.Flash.Until)
		}
		areaData = append(areaData,
			int64(a.Target),
			int64(math.Round(a.Radius*1000)),
			resize,
			flash,
		)
	}

	return Snapshot{
		Now:            s.now,
		Level:          s.level.ID,
		Score:          s.score.Value(),
		Complete:       s.complete,
		NextSpawn:      s.spawner.NextSpawn,
		SpawnedInGroup: s.spawner.SpawnedInGroup,
		BallData:       ballData,
		AreaData:       areaData,
		RNGState:       s.rng.State(),
	}
}

// BallCount returns the number of balls in the snapshot.
func (snap *Snapshot) BallCount() int {
	return len(snap.BallData) / ballStride
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Now)                  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.NextSpawn)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SpawnedInGroup) //#nosec G115 -- hash computation
	if snap.Complete {
		h = h*31 + 1
	}

	for _, v := range snap.BallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, v := range snap.AreaData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
