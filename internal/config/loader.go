package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME for configs, saves and scores.
const AppDir = ".sideeffects"

// LoadTuning loads the gameplay tuning.
// Search order: customPath -> ~/.sideeffects/configs/tuning.yaml -> ./configs/tuning.yaml -> embedded default
//
// Files only need to mention the values they override: every lookup starts
// from the defaults.
func LoadTuning(customPath string) (Tuning, error) {
	cfg := DefaultTuning()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath("tuning.yaml"), filepath.Join("configs", "tuning.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultTuning()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTuningYAML, &cfg); err != nil {
		return DefaultTuning(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Validate rejects tunings the simulation cannot run with.
func (t Tuning) Validate() error {
	switch {
	case t.Ball.Radius <= 0:
		return fmt.Errorf("config: ball.radius must be positive")
	case t.Ball.UpgradedRadius < t.Ball.Radius:
		return fmt.Errorf("config: ball.upgraded_radius must be at least ball.radius")
	case t.Ball.Mass <= 0:
		return fmt.Errorf("config: ball.mass must be positive")
	case t.Spawning.RespiteScale <= 0:
		return fmt.Errorf("config: spawning.respite_scale must be positive")
	case t.Arena.HalfSize <= t.Player.Radius:
		return fmt.Errorf("config: arena.half_size must exceed player.radius")
	case t.Arena.ScoreAreaRadius <= t.Effects.ResizeAmount:
		return fmt.Errorf("config: arena.score_area_radius must exceed effects.resize_amount")
	}
	return nil
}

// UserPath returns a path under ~/.sideeffects, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	return UserPath("configs", filename)
}
