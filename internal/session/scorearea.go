package session

import (
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
)

// ScoreArea is a zone that rewards balls of its Target type and penalizes
// the others.
type ScoreArea struct {
	Entity     core.EntityID
	Target     BallType
	Radius     float64 // Current radius
	BaseRadius float64 // Radius outside of any resize

	Resize *Resize
	Flash  *Flash
}

// Resize is the transient state armed by the resize score areas effect.
type Resize struct {
	Until           time.Duration
	OriginalRadius  float64
	PenaltyDisabled bool // Wrong-type hits cost nothing while set
}

// Flash is the short tint shown after a ball is scored in the area.
type Flash struct {
	Good    bool // Green for a match, red for a miss
	Started time.Duration
	Until   time.Duration
}

// Progress returns how far the flash has faded, from 0 (just started) to 1.
func (f *Flash) Progress(now time.Duration) float64 {
	total := f.Until - f.Started
	if total <= 0 {
		return 1
	}
	return core.ClampF(float64(now-f.Started)/float64(total), 0, 1)
}

// penaltyDisabled reports whether a wrong-type hit on this area is free.
func (a *ScoreArea) penaltyDisabled() bool {
	return a.Resize != nil && a.Resize.PenaltyDisabled
}
