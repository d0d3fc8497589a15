package session

import (
	"fmt"
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
)

// BallType is the color of a ball; it must be scored in the area of the same type.
type BallType int

const (
	BallA BallType = iota
	BallB
	BallC
	BallD
	BallTypeCount // Sentinel for counting types
)

// String returns the single-letter name of the ball type.
func (t BallType) String() string {
	if t < BallA || t >= BallTypeCount {
		return fmt.Sprintf("BallType(%d)", int(t))
	}
	return string(rune('A' + int(t)))
}

// Ball is the rules-engine view of a live ball. Position and velocity are
// owned by the World.
type Ball struct {
	Entity core.EntityID
	Type   BallType
	Points int     // Awarded (or deducted) when scored; only ever grows
	Radius float64 // Current collision radius

	// Upgraded is set by the extra points effect and carried over by
	// duplication.
	Upgraded bool

	Frozen   *Frozen
	Cooldown *DuplicateCooldown

	pending []Effect
}

// Frozen marks a ball held in place by the freeze others effect.
type Frozen struct {
	Until            time.Duration
	OriginalVelocity core.Vec2 // Restored on unfreeze
}

// DuplicateCooldown keeps a ball from triggering the duplicate effect again
// until it elapses.
type DuplicateCooldown struct {
	Until time.Duration
}

// IsFrozen reports whether the ball is currently frozen.
func (b *Ball) IsFrozen() bool {
	return b.Frozen != nil
}
