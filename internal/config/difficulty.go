package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset scales the helpful effects up (easy) or down (hard). Easy
// also shortens the idle wait for a ball when the arena is empty; hard
// stretches it. Normal leaves the tuning untouched.
func ApplyPreset(t *Tuning, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		t.Effects.FreezeDuration = scaleDuration(t.Effects.FreezeDuration, 1.5)
		t.Effects.ResizeDuration = scaleDuration(t.Effects.ResizeDuration, 1.5)
		t.Effects.ResizeAmount *= 1.25
		t.Arena.ScoreAreaRadius *= 1.15
		t.Player.MoveSpeed *= 1.2
		t.Spawning.RespiteScale *= 0.75
	case DifficultyHard:
		t.Effects.FreezeDuration = scaleDuration(t.Effects.FreezeDuration, 0.6)
		t.Effects.ResizeDuration = scaleDuration(t.Effects.ResizeDuration, 0.6)
		t.Effects.DuplicateCooldown = scaleDuration(t.Effects.DuplicateCooldown, 1.5)
		t.Arena.ScoreAreaRadius *= 0.85
		t.Arena.Gravity += 40
		t.Spawning.RespiteScale *= 1.25
	}
}

func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(float64(d) * f)
}
