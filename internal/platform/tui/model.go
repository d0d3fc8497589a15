package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/side-effects/internal/campaign"
	"github.com/vovakirdan/side-effects/internal/config"
	"github.com/vovakirdan/side-effects/internal/core"
	"github.com/vovakirdan/side-effects/internal/games/sideeffects"
	"github.com/vovakirdan/side-effects/internal/session"
	"github.com/vovakirdan/side-effects/internal/storage"
)

// Options configure a play Model.
type Options struct {
	Config   core.RuntimeConfig
	Tuning   config.Tuning
	Campaign *campaign.Campaign
	Progress campaign.Store    // nil: progress is not saved
	Store    *storage.Store    // nil: results are not recorded
	Cues     session.CuePlayer // nil plays nothing
	Music    MusicPlayer       // nil plays no music
	Palette  *Palette          // nil uses the default renderer
	Player   string
	Logger   *log.Logger // nil discards logs

	// SkipTitle starts the current level right away.
	SkipTitle bool
}

// MusicPlayer loops background music between levels.
type MusicPlayer interface {
	StartMusic(volume float64)
	StopMusic()
}

// menuMusicVolume is the between-levels loop volume.
const menuMusicVolume = 0.25

type phase int

const (
	phaseTitle phase = iota
	phasePlaying
	phaseReport
)

// Model is the Bubble Tea model that plays the campaign level after level.
type Model struct {
	game     *sideeffects.Game
	campaign *campaign.Campaign
	progress campaign.Store
	store    *storage.Store
	music    MusicPlayer
	palette  Palette
	player   string
	logger   *log.Logger

	screen    *core.Screen
	config    core.RuntimeConfig
	keys      *KeyMapper
	input     *heldInput
	gameState core.GameState

	phase    phase
	title    TitleModel
	report   ReportModel
	quitting bool
}

// NewModel creates a play model.
func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := opts.Campaign
	if c == nil {
		c = campaign.New(campaign.Options{
			Params: session.ParamsFrom(opts.Tuning),
			Seed:   cfg.Seed,
			Logger: logger,
		})
	}
	cues, music := opts.Cues, opts.Music
	if cfg.Muted {
		cues, music = nil, nil
	}
	start := phaseTitle
	if opts.SkipTitle {
		start = phasePlaying
	}
	palette := NewPalette(nil)
	if opts.Palette != nil {
		palette = *opts.Palette
	}

	return Model{
		game: sideeffects.New(sideeffects.Options{
			Campaign: c,
			Tuning:   opts.Tuning,
			Cues:     cues,
			Logger:   logger,
		}),
		campaign: c,
		progress: opts.Progress,
		store:    opts.Store,
		music:    music,
		palette:  palette,
		player:   opts.Player,
		logger:   logger,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:   cfg,
		keys:     NewKeyMapper(),
		input:    newHeldInput(),
		phase:    start,
		title:    NewTitleModel(c, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init shows the title screen or starts the current level.
func (m Model) Init() tea.Cmd {
	if m.phase == phaseTitle {
		return nil
	}
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
		m.screen.Resize(wsm.Width, wsm.Height)
	}

	switch m.phase {
	case phaseTitle:
		return m.updateTitle(msg)
	case phaseReport:
		return m.updateReport(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input while a level runs.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.input.Press(action)
	return m, nil
}

// handleTick runs one simulation tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.input.Frame()

	if frame.Has(core.ActionRestart) {
		m.campaign.Restart()
		m.game.Reset(m.config)
		m.input.Reset()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	if r := m.game.Result(); r != nil {
		m.finishLevel(*r)
		m.phase = phaseReport
		m.report = NewReportModel(m.campaign, *r, m.config.ScreenW, m.config.ScreenH)
		m.input.Reset()
		if m.music != nil {
			m.music.StartMusic(menuMusicVolume)
		}
		// The tick loop stops until the next level starts.
		return m, nil
	}

	return m, tickCmd(m.config.TickRate)
}

// finishLevel records the result and the unlocked progress.
func (m Model) finishLevel(r campaign.Result) {
	if m.store != nil {
		_, err := m.store.SaveResult(storage.Result{
			Player:   m.player,
			Level:    r.Level,
			Score:    r.Score,
			MinScore: r.MinScore,
			Passed:   r.Passed,
			Sides:    sideList(m.campaign),
		})
		if err != nil {
			m.logger.Warn("could not save result", "error", err)
		}
	}
	m.saveProgress()
}

func (m Model) saveProgress() {
	if m.progress == nil {
		return
	}
	if err := m.campaign.Save(m.progress); err != nil {
		m.logger.Warn("could not save progress", "error", err)
	}
}

// sideList formats the side configuration for the results table.
func sideList(c *campaign.Campaign) string {
	types := c.Sides().Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return strings.Join(names, ",")
}

// updateReport forwards messages to the between-levels screen and starts
// the next attempt once the player has chosen.
func (m Model) updateReport(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.report.Update(msg)
	if rm, ok := next.(ReportModel); ok {
		m.report = rm
	}

	choice := m.report.Choice()
	if choice != ChoiceNone && m.music != nil {
		m.music.StopMusic()
	}

	switch choice {
	case ChoiceQuit:
		m.saveProgress()
		m.quitting = true
		return m, tea.Quit
	case ChoiceNext:
		if err := m.campaign.Advance(); err != nil {
			m.logger.Warn("cannot advance", "error", err)
			m.campaign.Restart()
		}
	case ChoiceRetry:
		m.campaign.Restart()
	default:
		return m, nil
	}

	m.saveProgress()
	return m.startLevel()
}

// updateTitle forwards messages to the title screen and acts on its choice.
func (m Model) updateTitle(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, _ := m.title.Update(msg)
	if tm, ok := next.(TitleModel); ok {
		m.title = tm
	}

	switch m.title.Choice() {
	case TitleQuit:
		m.quitting = true
		return m, tea.Quit
	case TitleContinue:
	case TitleNewCampaign:
		m.campaign.Reset()
		m.saveProgress()
	case TitleResetProgress:
		m.campaign.Reset()
		m.saveProgress()
		m.logger.Info("progress reset")
		m.title = NewTitleModel(m.campaign, m.config.ScreenW, m.config.ScreenH).WithStatus("Progress reset")
		return m, nil
	default:
		return m, nil
	}
	return m.startLevel()
}

// startLevel begins an attempt at the campaign's current level and starts
// the tick loop.
func (m Model) startLevel() (tea.Model, tea.Cmd) {
	m.phase = phasePlaying
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.input.Reset()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".sideeffects", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_level%d_%s.txt", m.game.ID(), m.gameState.Level, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.phase {
	case phaseTitle:
		return m.title.View()
	case phaseReport:
		return m.report.View()
	}

	m.game.Render(m.screen)
	return m.palette.RenderScreen(m.screen)
}

// Campaign returns the campaign the model plays.
func (m Model) Campaign() *campaign.Campaign {
	return m.campaign
}

// Run starts the Bubble Tea program with a play model.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
