package session

import (
	"time"

	"github.com/vovakirdan/side-effects/internal/config"
	"github.com/vovakirdan/side-effects/internal/core"
)

// Params are the effect constants the engine runs with.
type Params struct {
	BallRadius         float64
	UpgradedBallRadius float64
	BallMass           float64

	FreezeDuration    time.Duration
	ResizeDuration    time.Duration
	ResizeAmount      float64
	DuplicateCooldown time.Duration
	DuplicateImpulse  core.Vec2
	BounceVelocity    float64
	FlashDuration     time.Duration

	RespiteScale float64 // Multiplies the level's MaxRespiteTime; 0 means 1

	HitVolume float64
	CueVolume float64
}

// ParamsFrom extracts engine parameters from the gameplay tuning.
func ParamsFrom(t config.Tuning) Params {
	return Params{
		BallRadius:         t.Ball.Radius,
		UpgradedBallRadius: t.Ball.UpgradedRadius,
		BallMass:           t.Ball.Mass,
		FreezeDuration:     t.Effects.FreezeDuration,
		ResizeDuration:     t.Effects.ResizeDuration,
		ResizeAmount:       t.Effects.ResizeAmount,
		DuplicateCooldown:  t.Effects.DuplicateCooldown,
		DuplicateImpulse:   t.Effects.DuplicateImpulse,
		BounceVelocity:     t.Effects.BounceVelocity,
		FlashDuration:      t.Effects.FlashDuration,
		RespiteScale:       t.Spawning.RespiteScale,
		HitVolume:          t.Audio.HitVolume,
		CueVolume:          t.Audio.CueVolume,
	}
}

// DefaultParams returns the parameters of the default tuning.
func DefaultParams() Params {
	return ParamsFrom(config.DefaultTuning())
}
