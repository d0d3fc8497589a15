package session

import (
	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// EffectKind is the pending effect a side hit attaches to a ball.
type EffectKind int

const (
	EffectNone EffectKind = iota
	EffectSpeedUp
	EffectFreezeOthers
	EffectBounceBackwards
	EffectDestroy
	EffectDuplicate
	EffectResizeScoreAreas
	EffectExtremeBounce
	EffectExtraPoints
)

// Effect is a side effect waiting to be applied to a ball this tick.
type Effect struct {
	Kind EffectKind
	Side sides.ID // The side that was hit
}

// EffectFor maps a side type to the effect it triggers.
func EffectFor(t sides.Type) EffectKind {
	switch t {
	case sides.SpeedUp:
		return EffectSpeedUp
	case sides.FreezeOthers:
		return EffectFreezeOthers
	case sides.BounceBackwards:
		return EffectBounceBackwards
	case sides.Destroy:
		return EffectDestroy
	case sides.Duplicate:
		return EffectDuplicate
	case sides.ResizeScoreAreas:
		return EffectResizeScoreAreas
	case sides.ExtremeBounce:
		return EffectExtremeBounce
	case sides.ExtraPoints:
		return EffectExtraPoints
	default:
		return EffectNone
	}
}

// scoreBall handles a ball entering a score area.
func (s *Session) scoreBall(b *Ball, a *ScoreArea) {
	if b.Type == a.Target {
		s.score.Add(b.Points)
		s.cues.Play(core.CueGood, s.params.CueVolume)
		s.flash(a, true)
		s.queueDespawn(b)
		return
	}

	if a.penaltyDisabled() {
		// The ball passes through untouched and keeps flying.
		s.logger.Debug("penalty skipped", "entity", b.Entity, "area", a.Target)
		return
	}

	s.score.Add(-b.Points)
	s.cues.Play(core.CueBad, s.params.CueVolume)
	s.flash(a, false)
	s.queueDespawn(b)
}

func (s *Session) flash(a *ScoreArea, good bool) {
	a.Flash = &Flash{Good: good, Started: s.now, Until: s.now + s.params.FlashDuration}
}

// applyPending applies and clears every ball's pending effects. Balls spawned
// while applying (duplicates) are not visited this tick.
func (s *Session) applyPending() {
	n := len(s.balls)
	for i := 0; i < n; i++ {
		b := s.balls[i]
		if len(b.pending) == 0 {
			continue
		}
		pending := b.pending
		b.pending = nil
		for _, e := range pending {
			if s.despawnSet[b.Entity] {
				break
			}
			s.applyEffect(b, e)
		}
	}
}

// applyEffect is the single dispatch point for side effects.
func (s *Session) applyEffect(b *Ball, e Effect) {
	s.logger.Debug("apply effect", "entity", b.Entity, "kind", e.Kind, "side", e.Side)

	switch e.Kind {
	case EffectNone:
		s.cues.Play(core.CueHit, s.params.HitVolume)
	case EffectSpeedUp:
		s.cues.Play(core.CueUp, s.params.CueVolume)
	case EffectExtremeBounce:
		s.cues.Play(core.CueExtremeBounce, s.params.CueVolume)
	case EffectFreezeOthers:
		s.freezeOthers(b)
	case EffectBounceBackwards:
		s.bounceBackwards(b, e.Side)
	case EffectDestroy:
		s.queueDespawn(b)
		s.cues.Play(core.CueDestroy, s.params.CueVolume)
	case EffectDuplicate:
		s.duplicate(b)
	case EffectResizeScoreAreas:
		s.resizeScoreAreas(b.Type)
	case EffectExtraPoints:
		s.extraPoints(b)
	}
}

// freezeOthers freezes every other live ball, or extends the freeze of balls
// that are already frozen. The velocity captured by the first freeze is kept.
func (s *Session) freezeOthers(hitter *Ball) {
	until := s.now + s.params.FreezeDuration
	for _, other := range s.balls {
		if other == hitter || s.despawnSet[other.Entity] {
			continue
		}
		if other.Frozen != nil {
			other.Frozen.Until = until
			continue
		}
		other.Frozen = &Frozen{
			Until:            until,
			OriginalVelocity: s.world.Velocity(other.Entity),
		}
		s.world.SetFixed(other.Entity, true)
	}
	s.cues.Play(core.CueFreeze, s.params.CueVolume)
}

// bounceBackwards sends the ball out through the side opposite the one it hit.
func (s *Session) bounceBackwards(b *Ball, hit sides.ID) {
	hitPos := s.world.SidePosition(hit)
	oppositePos := s.world.SidePosition(hit.Opposite())
	dir := oppositePos.Sub(hitPos).Normalize()

	s.world.SetVelocity(b.Entity, dir.Scale(s.params.BounceVelocity))
	s.world.SetPosition(b.Entity, oppositePos.Add(dir.Scale(b.Radius+1)))
	s.cues.Play(core.CueBounceBackwards, s.params.CueVolume)
}

// duplicate spawns a copy of the ball unless it is on cooldown. The copy
// inherits the extra points upgrade but starts at one point.
func (s *Session) duplicate(b *Ball) {
	if b.Cooldown != nil {
		return
	}

	pos := s.world.Position(b.Entity)
	vel := s.world.Velocity(b.Entity)
	radius := s.params.BallRadius
	if b.Upgraded {
		radius = s.params.UpgradedBallRadius
	}

	id := s.world.SpawnBall(pos, vel, radius)
	s.world.ApplyImpulse(id, s.params.DuplicateImpulse)

	dup := &Ball{
		Entity:   id,
		Type:     b.Type,
		Points:   1,
		Radius:   radius,
		Upgraded: b.Upgraded,
	}
	s.addBall(dup)

	until := s.now + s.params.DuplicateCooldown
	b.Cooldown = &DuplicateCooldown{Until: until}
	dup.Cooldown = &DuplicateCooldown{Until: until}

	s.cues.Play(core.CueDuplicate, s.params.CueVolume)
}

// resizeScoreAreas grows the area matching t and shrinks the others. Re-arming
// restarts the timer and re-derives sizes from the original radius.
func (s *Session) resizeScoreAreas(t BallType) {
	until := s.now + s.params.ResizeDuration
	for _, a := range s.areas {
		if a.Resize == nil {
			a.Resize = &Resize{OriginalRadius: a.Radius}
		}
		a.Resize.Until = until
		a.Resize.PenaltyDisabled = true

		if a.Target == t {
			a.Radius = a.Resize.OriginalRadius + s.params.ResizeAmount
		} else {
			a.Radius = a.Resize.OriginalRadius - s.params.ResizeAmount
		}
		s.world.SetAreaRadius(a.Entity, a.Radius)
	}
	s.cues.Play(core.CueResize, s.params.CueVolume)
}

// extraPoints upgrades the ball to two points and the upgraded size.
func (s *Session) extraPoints(b *Ball) {
	b.Points = 2
	b.Upgraded = true
	b.Radius = s.params.UpgradedBallRadius
	s.world.SetBallRadius(b.Entity, b.Radius)
	s.cues.Play(core.CueExtraPoints, s.params.CueVolume)
}
