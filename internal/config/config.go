// Package config provides YAML-based tuning configuration and difficulty
// presets for the game.
package config

import (
	"time"

	"github.com/vovakirdan/side-effects/internal/core"
)

// Tuning contains every gameplay constant that is not part of the level
// progression table.
type Tuning struct {
	Ball     BallTuning   `yaml:"ball"`
	Effects  EffectTuning `yaml:"effects"`
	Spawning SpawnTuning  `yaml:"spawning"`
	Arena    ArenaTuning  `yaml:"arena"`
	Player   PlayerTuning `yaml:"player"`
	Audio    AudioTuning  `yaml:"audio"`
}

// BallTuning defines ball geometry and mass.
type BallTuning struct {
	Radius         float64 `yaml:"radius"`
	UpgradedRadius float64 `yaml:"upgraded_radius"` // Radius after the extra points effect
	Mass           float64 `yaml:"mass"`            // Spawn impulse / mass = launch velocity
}

// EffectTuning defines side effect magnitudes and durations.
type EffectTuning struct {
	FreezeDuration    time.Duration `yaml:"freeze_duration"`
	ResizeDuration    time.Duration `yaml:"resize_duration"`
	ResizeAmount      float64       `yaml:"resize_amount"`
	DuplicateCooldown time.Duration `yaml:"duplicate_cooldown"`
	DuplicateImpulse  core.Vec2     `yaml:"duplicate_impulse"`
	BounceVelocity    float64       `yaml:"bounce_velocity"` // Speed after bounce backwards
	FlashDuration     time.Duration `yaml:"flash_duration"`  // Score area hit flash
}

// SpawnTuning adjusts the level table's spawn cadence.
type SpawnTuning struct {
	// RespiteScale multiplies every level's maximum wait for a ball while
	// the arena is empty.
	RespiteScale float64 `yaml:"respite_scale"`
}

// ArenaTuning defines the play area.
type ArenaTuning struct {
	HalfSize        float64 `yaml:"half_size"`         // Walls at +-HalfSize on both axes
	ScoreAreaRadius float64 `yaml:"score_area_radius"` // Base radius of the corner score areas
	WallRestitution float64 `yaml:"wall_restitution"`
	Gravity         float64 `yaml:"gravity"` // Downward acceleration in units/s^2
}

// PlayerTuning defines the player shape.
type PlayerTuning struct {
	Radius      float64 `yaml:"radius"`       // Center to corner
	MoveSpeed   float64 `yaml:"move_speed"`   // Units per second
	RotateSpeed float64 `yaml:"rotate_speed"` // Radians per second
}

// AudioTuning defines cue volumes.
type AudioTuning struct {
	HitVolume float64 `yaml:"hit_volume"`
	CueVolume float64 `yaml:"cue_volume"`
}
