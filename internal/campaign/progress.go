package campaign

import (
	"errors"
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/side-effects/internal/level"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// AppName names the per-user data directory used for saves.
const AppName = "side_effects"

const (
	progressObject   = "campaign"
	progressProperty = "progress.yaml"
)

// MaxLevel bounds the level a save may resume from. Restoring walks the
// ramp one level at a time.
const MaxLevel = 10000

// Progress is the saved campaign state.
type Progress struct {
	Level    int          `yaml:"level"`
	Sides    []sides.Type `yaml:"sides"`
	Unlocked []sides.Type `yaml:"unlocked"`
}

// Validate checks that the progress describes a playable campaign.
func (p Progress) Validate() error {
	if p.Level < 1 || p.Level > MaxLevel {
		return fmt.Errorf("campaign: invalid level %d", p.Level)
	}
	if len(p.Sides) != sides.Count {
		return fmt.Errorf("campaign: want %d sides, got %d", sides.Count, len(p.Sides))
	}
	seen := make(map[sides.Type]bool)
	for _, t := range p.Sides {
		if seen[t] && !t.MultipleAllowed() {
			return fmt.Errorf("campaign: %s configured on more than one side", t)
		}
		seen[t] = true
	}
	return nil
}

// ErrNoProgress is returned by Load when nothing has been saved yet.
var ErrNoProgress = errors.New("campaign: no saved progress")

// Store persists campaign progress.
type Store interface {
	Load() (Progress, error)
	Save(p Progress) error
}

// GdataStore keeps progress in the per-user application data directory.
type GdataStore struct {
	m *gdata.Manager
}

// OpenStore opens the progress store for appName (AppName if empty).
func OpenStore(appName string) (*GdataStore, error) {
	if appName == "" {
		appName = AppName
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("campaign: open save data: %w", err)
	}
	return &GdataStore{m: m}, nil
}

// Load reads saved progress. Returns ErrNoProgress if there is none.
func (s *GdataStore) Load() (Progress, error) {
	if !s.m.ObjectPropExists(progressObject, progressProperty) {
		return Progress{}, ErrNoProgress
	}
	data, err := s.m.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return Progress{}, fmt.Errorf("campaign: load progress: %w", err)
	}

	var p Progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Progress{}, fmt.Errorf("campaign: decode progress: %w", err)
	}
	return p, nil
}

// Save writes progress, replacing any earlier save.
func (s *GdataStore) Save(p Progress) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("campaign: encode progress: %w", err)
	}
	if err := s.m.SaveObjectProp(progressObject, progressProperty, data); err != nil {
		return fmt.Errorf("campaign: save progress: %w", err)
	}
	return nil
}

// Save stores the campaign's progress.
func (c *Campaign) Save(store Store) error {
	return store.Save(c.Progress())
}

// Load restores the campaign from store. A missing save leaves the
// campaign untouched and returns ErrNoProgress.
func (c *Campaign) Load(store Store) error {
	p, err := store.Load()
	if err != nil {
		return err
	}
	return c.Restore(p)
}

// Reset returns the campaign to level 1 with the default sides.
func (c *Campaign) Reset() {
	c.level = level.First()
	c.sides = sides.DefaultConfig()
	c.unlocked = sides.DefaultUnlocked()
	c.last = nil
	c.attempts = 0
}
