// Package campaign carries a player through the level table: it starts each
// level session, decides pass or fail when the clock runs out, unlocks new
// side types and keeps the side configuration between levels.
package campaign

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/side-effects/internal/level"
	"github.com/vovakirdan/side-effects/internal/session"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// ErrNotPassed is returned by Advance when the last level was not passed.
var ErrNotPassed = errors.New("campaign: level not passed")

// Result is the outcome of one level attempt.
type Result struct {
	Level    int
	Score    int
	MinScore int
	Passed   bool
	Unlocked []sides.Type // Side types unlocked by this result, in unlock order
}

// Options configure a new Campaign.
type Options struct {
	Params session.Params
	Seed   int64
	Logger *log.Logger // nil discards logs
}

// Campaign is the persistent state between level attempts.
type Campaign struct {
	params session.Params
	seed   int64
	logger *log.Logger

	level    level.Settings
	sides    *sides.Config
	unlocked *sides.Unlocked

	attempts int
	last     *Result
}

// New starts a campaign at level 1 with the default sides.
func New(opts Options) *Campaign {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Campaign{
		params:   opts.Params,
		seed:     opts.Seed,
		logger:   logger,
		level:    level.First(),
		sides:    sides.DefaultConfig(),
		unlocked: sides.DefaultUnlocked(),
	}
}

// Level returns the settings of the current level.
func (c *Campaign) Level() level.Settings {
	return c.level.Clone()
}

// Sides returns a copy of the current side configuration.
func (c *Campaign) Sides() *sides.Config {
	return c.sides.Clone()
}

// Unlocked returns the side types available for configuration.
func (c *Campaign) Unlocked() []sides.Type {
	return c.unlocked.List()
}

// IsUnlocked reports whether t can be configured.
func (c *Campaign) IsUnlocked(t sides.Type) bool {
	return c.unlocked.Contains(t)
}

// LastResult returns the result of the last finished level, or nil.
func (c *Campaign) LastResult() *Result {
	return c.last
}

// ConfigureSide assigns t to side id. It fails when t is still locked or is
// exclusive and held by another side.
func (c *Campaign) ConfigureSide(id sides.ID, t sides.Type) bool {
	if !c.unlocked.Contains(t) {
		return false
	}
	return c.sides.Configure(id, t)
}

// SelectableTypes returns the unlocked types that may be put on side id.
func (c *Campaign) SelectableTypes(id sides.ID) []sides.Type {
	var out []sides.Type
	for _, t := range c.unlocked.List() {
		if sides.IsSelectable(t, id, c.sides) {
			out = append(out, t)
		}
	}
	return out
}

// StartLevel creates and starts a session for the current level. setup is
// called before the level starts so the host can register its sides and
// score areas.
func (c *Campaign) StartLevel(world session.World, cues session.CuePlayer, setup func(*session.Session)) *session.Session {
	c.attempts++
	c.last = nil

	s := session.New(session.Options{
		Level:  c.level,
		Sides:  c.sides.Clone(),
		World:  world,
		Cues:   cues,
		Params: c.params,
		Seed:   c.sessionSeed(),
		Logger: c.logger,
	})
	if setup != nil {
		setup(s)
	}
	s.Start()
	return s
}

// sessionSeed varies the spawn sequence between levels and retries while
// staying reproducible for a given campaign seed.
func (c *Campaign) sessionSeed() int64 {
	return c.seed + int64(c.level.ID)*7919 + int64(c.attempts)
}

// FinishLevel records the final score of the current level. A passing score
// unlocks the level's side types.
func (c *Campaign) FinishLevel(score int) Result {
	r := Result{
		Level:    c.level.ID,
		Score:    score,
		MinScore: c.level.MinScore,
		Passed:   score >= c.level.MinScore,
	}
	if r.Passed {
		r.Unlocked = c.unlocked.Unlock(c.level.SidesToUnlock...)
	}
	c.last = &r

	c.logger.Info("level finished", "level", r.Level, "score", r.Score, "min_score", r.MinScore, "passed", r.Passed)
	for _, t := range r.Unlocked {
		c.logger.Info("side unlocked", "type", t)
	}
	return r
}

// Advance moves to the next level. Only allowed after a passing result.
func (c *Campaign) Advance() error {
	if c.last == nil || !c.last.Passed {
		return ErrNotPassed
	}
	c.level = level.Next(c.level)
	c.last = nil
	c.attempts = 0
	return nil
}

// Restart keeps the current level so it can be played again.
func (c *Campaign) Restart() {
	c.last = nil
}

// Progress returns the state worth saving.
func (c *Campaign) Progress() Progress {
	types := c.sides.Types()
	return Progress{
		Level:    c.level.ID,
		Sides:    types[:],
		Unlocked: c.unlocked.List(),
	}
}

// Restore replaces the campaign state with saved progress.
func (c *Campaign) Restore(p Progress) error {
	if err := p.Validate(); err != nil {
		return err
	}

	unlocked := sides.DefaultUnlocked()
	unlocked.Unlock(p.Unlocked...)

	var types [sides.Count]sides.Type
	copy(types[:], p.Sides)
	for _, t := range types {
		if !unlocked.Contains(t) {
			return fmt.Errorf("campaign: side type %s is not unlocked", t)
		}
	}

	c.level = level.ByID(p.Level)
	c.sides = sides.NewConfig(types)
	c.unlocked = unlocked
	c.last = nil
	c.attempts = 0
	return nil
}
