package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

// DefaultTuning returns the hardcoded default tuning. It matches the
// embedded defaults/tuning.yaml.
func DefaultTuning() Tuning {
	return Tuning{
		Ball: BallTuning{
			Radius:         12,
			UpgradedRadius: 17,
			Mass:           0.05,
		},
		Effects: EffectTuning{
			FreezeDuration:    3 * time.Second,
			ResizeDuration:    5 * time.Second,
			ResizeAmount:      30,
			DuplicateCooldown: time.Second,
			DuplicateImpulse:  core.V(3, 3),
			BounceVelocity:    400,
			FlashDuration:     250 * time.Millisecond,
		},
		Spawning: SpawnTuning{
			RespiteScale: 1,
		},
		Arena: ArenaTuning{
			HalfSize:        350,
			ScoreAreaRadius: 90,
			WallRestitution: 1.0,
			Gravity:         0,
		},
		Player: PlayerTuning{
			Radius:      50,
			MoveSpeed:   400,
			RotateSpeed: 3,
		},
		Audio: AudioTuning{
			HitVolume: 0.5,
			CueVolume: 1.0,
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultTuningYAML
}
