// Package sideeffects hosts one level of the game: it builds the physics
// world for the campaign's current level, feeds player input and physics
// contacts into the level session and draws the result.
package sideeffects

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/side-effects/internal/campaign"
	"github.com/vovakirdan/side-effects/internal/config"
	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/physics"
	"github.com/vovakirdan/side-effects/internal/session"
	"github.com/vovakirdan/side-effects/internal/sides"
)

// ID is the identifier used for screenshots and logs.
const ID = "sideeffects"

// Options configure a new Game.
type Options struct {
	Campaign *campaign.Campaign
	Tuning   config.Tuning
	Cues     session.CuePlayer // nil plays nothing
	Logger   *log.Logger       // nil discards logs
}

// Game plays the campaign's current level.
type Game struct {
	campaign *campaign.Campaign
	tuning   config.Tuning
	cues     session.CuePlayer
	logger   *log.Logger

	cfg     core.RuntimeConfig
	world   *physics.World
	session *session.Session
	walls   [4]core.EntityID

	tickCount int
	paused    bool
	result    *campaign.Result
	state     core.GameState
}

// New creates a game bound to a campaign.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := opts.Campaign
	if c == nil {
		c = campaign.New(campaign.Options{Params: session.ParamsFrom(opts.Tuning), Logger: logger})
	}
	return &Game{
		campaign: c,
		tuning:   opts.Tuning,
		cues:     opts.Cues,
		logger:   logger,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Side Effects"
}

// Campaign returns the campaign the game plays.
func (g *Game) Campaign() *campaign.Campaign {
	return g.campaign
}

// Reset builds a fresh world and starts the campaign's current level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	g.cfg = cfg
	g.tickCount = 0
	g.paused = false
	g.result = nil

	g.world = physics.New(WorldConfig(g.tuning))
	g.walls = g.world.AddArena()
	player := g.world.AddPlayer(core.Vec2{}, g.campaign.Sides())

	g.session = g.campaign.StartLevel(g.world, g.cues, func(s *session.Session) {
		for id := sides.ID(0); id < sides.Count; id++ {
			s.RegisterSide(player.SideEntity(id), id)
		}
		r := g.tuning.Arena.ScoreAreaRadius
		for _, bt := range []session.BallType{session.BallA, session.BallB, session.BallC, session.BallD} {
			s.RegisterScoreArea(g.world.AddArea(AreaPosition(bt, g.tuning.Arena.HalfSize), r), bt, r)
		}
	})

	g.syncState()
	g.logger.Debug("level reset", "level", g.state.Level, "seed", cfg.Seed)
}

// WorldConfig derives the physics layout from the tuning.
func WorldConfig(t config.Tuning) physics.Config {
	cfg := physics.DefaultConfig()
	cfg.HalfSize = t.Arena.HalfSize
	cfg.WallRestitution = t.Arena.WallRestitution
	cfg.Gravity = t.Arena.Gravity
	cfg.BallMass = t.Ball.Mass
	cfg.PlayerRadius = t.Player.Radius
	cfg.MoveSpeed = t.Player.MoveSpeed
	cfg.RotateSpeed = t.Player.RotateSpeed
	return cfg
}

// AreaPosition returns the center of the score area for bt. Areas sit in the
// arena corners: A top left, B top right, C bottom right, D bottom left.
func AreaPosition(bt session.BallType, halfSize float64) core.Vec2 {
	switch bt {
	case session.BallA:
		return core.V(-halfSize, halfSize)
	case session.BallB:
		return core.V(halfSize, halfSize)
	case session.BallC:
		return core.V(halfSize, -halfSize)
	default:
		return core.V(-halfSize, -halfSize)
	}
}

// Step advances the level by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.result == nil {
		g.paused = !g.paused
	}
	if g.paused || g.result != nil {
		g.syncState()
		return core.StepResult{State: g.state}
	}

	g.tickCount++
	g.world.Player().Drive(driveFrom(in))

	dt := time.Second / time.Duration(g.cfg.TickRate)
	events := g.world.Step(dt)
	res := g.session.Update(dt, events)

	if res.LevelComplete {
		r := g.campaign.FinishLevel(g.session.Score())
		g.result = &r
	}

	g.syncState()
	return core.StepResult{State: g.state}
}

// driveFrom maps held actions to a movement direction and a turn.
func driveFrom(in core.InputFrame) (core.Vec2, float64) {
	var move core.Vec2
	var turn float64
	if in.Has(core.ActionUp) {
		move.Y++
	}
	if in.Has(core.ActionDown) {
		move.Y--
	}
	if in.Has(core.ActionLeft) {
		move.X--
	}
	if in.Has(core.ActionRight) {
		move.X++
	}
	if in.Has(core.ActionRotateCCW) {
		turn++
	}
	if in.Has(core.ActionRotateCW) {
		turn--
	}
	return move, turn
}

func (g *Game) syncState() {
	g.state = core.GameState{
		Score:         g.session.Score(),
		Level:         g.session.Level().ID,
		LevelComplete: g.result != nil,
		Paused:        g.paused,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.state
}

// Result returns the outcome of the level once it is complete, or nil.
func (g *Game) Result() *campaign.Result {
	return g.result
}

// Session returns the running level session.
func (g *Game) Session() *session.Session {
	return g.session
}

// World returns the physics world of the running level.
func (g *Game) World() *physics.World {
	return g.world
}
