package session

import (
	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// ClassKind is the gameplay meaning of a collision.
type ClassKind int

const (
	ClassIgnored ClassKind = iota // No ball involved
	ClassScored                   // Ball entered a score area
	ClassHitSide                  // Ball hit a player side
	ClassHitWall                  // Ball hit anything else
)

// String returns the name of the classification.
func (k ClassKind) String() string {
	switch k {
	case ClassIgnored:
		return "ignored"
	case ClassScored:
		return "scored"
	case ClassHitSide:
		return "hit-side"
	case ClassHitWall:
		return "hit-wall"
	default:
		return "unknown"
	}
}

// Classification is a collision together with the typed data it involves.
type Classification struct {
	Kind     ClassKind
	Ball     *Ball
	Area     *ScoreArea // Set for ClassScored
	Side     sides.ID   // Set for ClassHitSide
	SideType sides.Type // Set for ClassHitSide
}

// Classify determines what a collision between two entities means.
func (s *Session) Classify(ev core.Collision) Classification {
	ball, other := s.ballIndex[ev.A], ev.B
	if ball == nil {
		ball, other = s.ballIndex[ev.B], ev.A
	}
	if ball == nil {
		return Classification{Kind: ClassIgnored}
	}

	if area, ok := s.areaIndex[other]; ok {
		return Classification{Kind: ClassScored, Ball: ball, Area: area}
	}
	if id, ok := s.sideIndex[other]; ok {
		return Classification{
			Kind:     ClassHitSide,
			Ball:     ball,
			Side:     id,
			SideType: s.sides.Get(id),
		}
	}
	return Classification{Kind: ClassHitWall, Ball: ball}
}
